package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackloop/interviewd/internal/blob"
	"github.com/feedbackloop/interviewd/internal/domain"
)

func newTestTranscripts(t *testing.T) (*Transcripts, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := blob.NewLocalStore(dir)
	require.NoError(t, err)
	return NewTranscripts(store), dir
}

func TestTranscriptSaveReplacesWhole(t *testing.T) {
	repo, _ := newTestTranscripts(t)
	ctx := context.Background()

	first := []domain.Message{
		{Role: domain.RoleUser, Content: "Hi"},
		{Role: domain.RoleAssistant, Content: "Hello"},
	}
	require.NoError(t, repo.Save(ctx, "s1", first))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, first, got.History)
	firstStamp := got.UpdatedAt

	second := append(first, domain.Message{Role: domain.RoleUser, Content: "More"})
	require.NoError(t, repo.Save(ctx, "s1", second))

	got, err = repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, got.History, 3)
	assert.False(t, got.UpdatedAt.Before(firstStamp))
}

func TestTranscriptGetAbsent(t *testing.T) {
	repo, _ := newTestTranscripts(t)

	_, err := repo.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTranscriptListAllSkipsCorrupt(t *testing.T) {
	repo, dir := newTestTranscripts(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "s1", []domain.Message{{Role: domain.RoleUser, Content: "a"}}))
	require.NoError(t, repo.Save(ctx, "s2", []domain.Message{{Role: domain.RoleUser, Content: "b"}}))

	corrupt := filepath.Join(dir, "transcripts", "s3_transcript.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("%%%"), 0o644))

	transcripts, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, transcripts, 2)
}
