package service

import (
	"context"
	"fmt"

	"github.com/feedbackloop/interviewd/internal/domain"
)

// DisclaimerMessage opens every fresh session before the first turn.
const DisclaimerMessage = `Welcome!

Thank you for your time. We would like to hear your opinion about the recruitment process.
This conversation is run by an automated AI assistant.

Confidentiality:
Everything you share is stored and will be reviewed by our HR team to improve the quality of recruitment.
If you do not consent to this conversation being processed, simply close this window.

To begin, say "Hi" or answer the first question if one appears.`

// SessionView is what the participant entry point sees when opening a link.
type SessionView struct {
	SessionID string               `json:"session_id"`
	Status    domain.SessionStatus `json:"status"`
	History   []domain.Message     `json:"history"`
	// ReadOnly disables input: the session is COMPLETED and only the
	// persisted transcript is shown.
	ReadOnly bool `json:"read_only"`
}

// OpenSession loads the state a participant sees when following their link.
// Returns domain.ErrMissingSessionID for an empty id and
// domain.ErrScenarioNotFound for an unknown one.
func (s *Service) OpenSession(ctx context.Context, sessionID string) (*SessionView, error) {
	if sessionID == "" {
		return nil, domain.ErrMissingSessionID
	}
	sc, err := s.scenarios.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := &SessionView{
		SessionID: sessionID,
		Status:    sc.Status,
		ReadOnly:  sc.Status.Terminal(),
	}
	t, err := s.transcripts.Get(ctx, sessionID)
	switch {
	case err == domain.ErrNotFound:
		view.History = []domain.Message{{Role: domain.RoleAssistant, Content: DisclaimerMessage}}
	case err != nil:
		return nil, err
	default:
		view.History = t.History
	}
	return view, nil
}

// SessionSummary is one row of the admin session listing.
type SessionSummary struct {
	SessionID     string               `json:"session_id"`
	CandidateName string               `json:"candidate_name"`
	Status        domain.SessionStatus `json:"status"`
	CreatedAt     string               `json:"created_at"`
	Link          string               `json:"link"`
}

// ParticipantLink builds the shareable URL for a session.
func (s *Service) ParticipantLink(sessionID string) string {
	return fmt.Sprintf("%s/candidate?id=%s", s.config.BaseURL, sessionID)
}

// ListSessions returns a summary of every scenario, newest first.
func (s *Service) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	scenarios, err := s.scenarios.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]SessionSummary, 0, len(scenarios))
	for _, sc := range scenarios {
		name := sc.CandidateName
		if name == "" {
			name = "N/A"
		}
		summaries = append(summaries, SessionSummary{
			SessionID:     sc.SessionID,
			CandidateName: name,
			Status:        sc.Status,
			CreatedAt:     sc.CreatedAt.Format(domain.TimeFormat),
			Link:          s.ParticipantLink(sc.SessionID),
		})
	}
	return summaries, nil
}
