package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/feedbackloop/interviewd/internal/domain"
)

// LocalStore stores one <key>.json file per document under a base directory.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a filesystem-backed store rooted at baseDir.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(key)+".json")
}

func (s *LocalStore) Put(ctx context.Context, key string, doc any) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document %s: %w", key, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) Get(ctx context.Context, key string, out any) error {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) List(ctx context.Context, prefix string) ([][]byte, error) {
	dir := filepath.Join(s.baseDir, filepath.FromSlash(prefix))
	namePrefix := ""
	// A prefix that is not a whole directory ("transcripts/sess_") narrows
	// by filename inside the parent directory.
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		namePrefix = filepath.Base(dir)
		dir = filepath.Dir(dir)
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}

	var docs [][]byte
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if namePrefix != "" && !strings.HasPrefix(entry.Name(), namePrefix) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		docs = append(docs, data)
	}
	return docs, nil
}

func (s *LocalStore) Close() error { return nil }
