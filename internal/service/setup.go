package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/feedbackloop/interviewd/internal/agent"
	"github.com/feedbackloop/interviewd/internal/domain"
)

// setupRunnerKey addresses the single manager runner in the cache. The
// manager session is always fresh for the process lifetime: it never gets a
// resumption block.
const setupRunnerKey = "admin:setup"

// SetupTurn drives one turn of the admin configuration chat. history must
// end with the operator's newest message; the updated history is returned.
func (s *Service) SetupTurn(ctx context.Context, history []domain.Message) ([]domain.Message, error) {
	if len(history) == 0 || history[len(history)-1].Role != domain.RoleUser {
		return nil, domain.ErrEmptyTurn
	}

	lock := s.cache.SessionLock(setupRunnerKey)
	lock.Lock()
	defer lock.Unlock()

	runner, err := s.cache.GetOrCreate(setupRunnerKey, func() (*agent.Runner, error) {
		return agent.NewRunner(agent.SetupInstruction, s.llm), nil
	})
	if err != nil {
		return nil, err
	}

	reply, err := runner.Send(ctx, history[len(history)-1].Content)
	if err != nil {
		return nil, fmt.Errorf("agent runtime call failed: %w", err)
	}
	return append(history, domain.Message{Role: domain.RoleAssistant, Content: reply}), nil
}

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)```")

// ExtractScenarioJSON pulls the scenario configuration out of a manager
// agent message. The documented contract is a fenced block with the json
// language tag; the largest brace-delimited substring is accepted as a
// fallback. Anything else is domain.ErrMalformedAgentOutput — recoverable,
// the operator re-prompts without losing the draft.
func ExtractScenarioJSON(text string) (*domain.Scenario, error) {
	candidate := ""
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	} else {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("%w: no JSON block found", domain.ErrMalformedAgentOutput)
		}
		candidate = text[start : end+1]
	}

	var sc domain.Scenario
	if err := json.Unmarshal([]byte(candidate), &sc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedAgentOutput, err)
	}
	return &sc, nil
}

// AcceptScenario parses the approved draft message, persists the scenario
// and returns the new session id together with the participant link.
func (s *Service) AcceptScenario(ctx context.Context, draft string) (string, string, error) {
	sc, err := ExtractScenarioJSON(draft)
	if err != nil {
		return "", "", err
	}
	id, err := s.scenarios.Create(ctx, sc)
	if err != nil {
		return "", "", err
	}
	return id, s.ParticipantLink(id), nil
}
