// Package repository provides the structured-document view over the blob
// store: scenario configurations and conversation transcripts.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/feedbackloop/interviewd/internal/blob"
	"github.com/feedbackloop/interviewd/internal/domain"
)

const scenarioPrefix = "scenarios/"

// idWidth is the session id length in hex chars. Collisions are accepted as
// negligible at this width for the expected session volume.
const idWidth = 8

// Scenarios is the scenario repository.
type Scenarios struct {
	store blob.Store
}

// NewScenarios creates a scenario repository over the given store.
func NewScenarios(store blob.Store) *Scenarios {
	return &Scenarios{store: store}
}

// NewSessionID mints a short opaque session identifier.
func NewSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idWidth]
}

// Create persists a scenario, minting a session id when none is set,
// stamping CreatedAt when zero and defaulting the status to GENERATED.
// Returns the session id.
func (r *Scenarios) Create(ctx context.Context, sc *domain.Scenario) (string, error) {
	if sc.SessionID == "" {
		sc.SessionID = NewSessionID()
	}
	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = time.Now().UTC()
	}
	if sc.Status == "" {
		sc.Status = domain.StatusGenerated
	}
	if err := r.store.Put(ctx, scenarioPrefix+sc.SessionID, sc); err != nil {
		return "", fmt.Errorf("failed to save scenario: %w", err)
	}
	return sc.SessionID, nil
}

// Get loads the scenario for a session id. Returns
// domain.ErrScenarioNotFound when no record exists.
func (r *Scenarios) Get(ctx context.Context, sessionID string) (*domain.Scenario, error) {
	var sc domain.Scenario
	err := r.store.Get(ctx, scenarioPrefix+sessionID, &sc)
	if err == domain.ErrNotFound {
		return nil, domain.ErrScenarioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario %s: %w", sessionID, err)
	}
	return &sc, nil
}

// SetStatus advances a session's status with a read-modify-write. An absent
// scenario is a no-op, not an error; a transition the state machine forbids
// is silently dropped so the status stays monotonic under any call order.
func (r *Scenarios) SetStatus(ctx context.Context, sessionID string, status domain.SessionStatus) error {
	sc, err := r.Get(ctx, sessionID)
	if err == domain.ErrScenarioNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if !sc.Status.CanAdvance(status) {
		return nil
	}
	sc.Status = status
	if err := r.store.Put(ctx, scenarioPrefix+sessionID, sc); err != nil {
		return fmt.Errorf("failed to update scenario %s: %w", sessionID, err)
	}
	return nil
}

// ListAll returns every readable scenario, newest first. A document that
// fails to parse is logged and skipped so one corrupt record cannot hide
// the rest.
func (r *Scenarios) ListAll(ctx context.Context) ([]domain.Scenario, error) {
	raws, err := r.store.List(ctx, scenarioPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	scenarios := make([]domain.Scenario, 0, len(raws))
	for _, raw := range raws {
		var sc domain.Scenario
		if err := json.Unmarshal(raw, &sc); err != nil {
			log.Printf("skipping corrupt scenario document: %v", err)
			continue
		}
		scenarios = append(scenarios, sc)
	}
	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].CreatedAt.After(scenarios[j].CreatedAt)
	})
	return scenarios, nil
}
