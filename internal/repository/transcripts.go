package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/feedbackloop/interviewd/internal/blob"
	"github.com/feedbackloop/interviewd/internal/domain"
)

const transcriptPrefix = "transcripts/"

func transcriptKey(sessionID string) string {
	return transcriptPrefix + sessionID + "_transcript"
}

// Transcripts is the transcript repository.
type Transcripts struct {
	store blob.Store
}

// NewTranscripts creates a transcript repository over the given store.
func NewTranscripts(store blob.Store) *Transcripts {
	return &Transcripts{store: store}
}

// Save replaces the whole transcript for a session and refreshes UpdatedAt.
// Append semantics are the caller's: every turn hands over the full history.
func (r *Transcripts) Save(ctx context.Context, sessionID string, history []domain.Message) error {
	t := domain.Transcript{
		SessionID: sessionID,
		UpdatedAt: time.Now().UTC(),
		History:   history,
	}
	if err := r.store.Put(ctx, transcriptKey(sessionID), &t); err != nil {
		return fmt.Errorf("failed to save transcript %s: %w", sessionID, err)
	}
	return nil
}

// Get loads the transcript for a session id. Returns domain.ErrNotFound
// when no turn has been persisted yet.
func (r *Transcripts) Get(ctx context.Context, sessionID string) (*domain.Transcript, error) {
	var t domain.Transcript
	err := r.store.Get(ctx, transcriptKey(sessionID), &t)
	if err == domain.ErrNotFound {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript %s: %w", sessionID, err)
	}
	return &t, nil
}

// ListAll returns every readable transcript for analytics. Corrupt
// documents are logged and skipped.
func (r *Transcripts) ListAll(ctx context.Context) ([]domain.Transcript, error) {
	raws, err := r.store.List(ctx, transcriptPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	transcripts := make([]domain.Transcript, 0, len(raws))
	for _, raw := range raws {
		var t domain.Transcript
		if err := json.Unmarshal(raw, &t); err != nil {
			log.Printf("skipping corrupt transcript document: %v", err)
			continue
		}
		transcripts = append(transcripts, t)
	}
	return transcripts, nil
}
