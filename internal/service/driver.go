package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/feedbackloop/interviewd/internal/agent"
	"github.com/feedbackloop/interviewd/internal/domain"
)

// TurnResult is the outcome of one driven turn.
type TurnResult struct {
	// History is the full updated message history, trailing assistant
	// message included, sentinel already stripped.
	History []domain.Message
	// Started mirrors the caller's first-turn flag after this turn.
	Started bool
	// Done signals the caller to stop accepting input for this session.
	Done bool
}

// DriveTurn runs one conversation turn for a session. history must end with
// the newest user message; started tells the driver whether this session
// already left GENERATED (the flag is reconstructible from the transcript
// being empty, callers keep it to avoid a redundant read per turn).
//
// Turns for the same session are serialized on a per-session lock; the
// storage layer has no mutual exclusion of its own. Re-delivering an
// identical trailing message is not idempotent: every successful call
// drives the model forward and persists a new transcript snapshot.
func (s *Service) DriveTurn(ctx context.Context, sessionID string, history []domain.Message, started bool) (*TurnResult, error) {
	if sessionID == "" {
		return nil, domain.ErrMissingSessionID
	}
	lock := s.cache.SessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	return s.driveTurnLocked(ctx, sessionID, history, started)
}

// driveTurnLocked is the turn body. The caller holds the session lock.
func (s *Service) driveTurnLocked(ctx context.Context, sessionID string, history []domain.Message, started bool) (*TurnResult, error) {
	if len(history) == 0 || history[len(history)-1].Role != domain.RoleUser {
		return nil, domain.ErrEmptyTurn
	}

	// First driven turn: leave GENERATED before contacting the runtime.
	if !started {
		if err := s.scenarios.SetStatus(ctx, sessionID, domain.StatusOngoing); err != nil {
			return nil, err
		}
		started = true
	}

	runner, err := s.cache.GetOrCreate(sessionID, func() (*agent.Runner, error) {
		sc, err := s.scenarios.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		// Everything except the trailing message is replay context; the
		// trailing message is the new turn, forwarded below.
		prior := history[:len(history)-1]
		instruction := agent.BuildInterviewInstruction(sc, prior)
		return agent.NewRunner(instruction, s.llm), nil
	})
	if err != nil {
		return nil, err
	}

	raw, err := runner.Send(ctx, history[len(history)-1].Content)
	if err != nil {
		return nil, fmt.Errorf("agent runtime call failed: %w", err)
	}

	clean, done := agent.StripSentinel(raw)
	history = append(history, domain.Message{Role: domain.RoleAssistant, Content: clean})

	if err := s.transcripts.Save(ctx, sessionID, history); err != nil {
		return nil, err
	}
	if done {
		if err := s.scenarios.SetStatus(ctx, sessionID, domain.StatusCompleted); err != nil {
			return nil, err
		}
	}

	return &TurnResult{History: history, Started: started, Done: done}, nil
}

// ParticipantTurn accepts one new participant message, reconstructs the
// running history from the persisted transcript (seeding the disclaimer for
// a fresh session) and drives a turn. The first-turn flag is derived from
// the scenario still being GENERATED.
func (s *Service) ParticipantTurn(ctx context.Context, sessionID, message string) (*TurnResult, error) {
	if sessionID == "" {
		return nil, domain.ErrMissingSessionID
	}
	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrEmptyTurn
	}

	// The lock spans the transcript read, not just the turn: the save is a
	// full replace, so a concurrent turn reading the same snapshot would
	// drop this one's messages.
	lock := s.cache.SessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sc, err := s.scenarios.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sc.Status.Terminal() {
		return nil, domain.ErrSessionCompleted
	}
	started := sc.Status != domain.StatusGenerated

	var history []domain.Message
	t, err := s.transcripts.Get(ctx, sessionID)
	switch {
	case err == domain.ErrNotFound:
		history = []domain.Message{{Role: domain.RoleAssistant, Content: DisclaimerMessage}}
	case err != nil:
		return nil, err
	default:
		history = t.History
	}

	history = append(history, domain.Message{Role: domain.RoleUser, Content: message})
	return s.driveTurnLocked(ctx, sessionID, history, started)
}
