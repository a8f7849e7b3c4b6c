package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/feedbackloop/interviewd/internal/domain"
)

// MockClient is a canned implementation of Client for local development
// without an API key, and for tests.
type MockClient struct {
	// Responses, when non-empty, are returned in order; afterwards the
	// client falls back to echoing the last user message.
	Responses []string

	mu    sync.Mutex
	calls int
}

// NewMockClient creates a mock runtime client.
func NewMockClient(responses ...string) *MockClient {
	return &MockClient{Responses: responses}
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) Complete(ctx context.Context, instruction string, history []domain.Message) (string, error) {
	// One shared client serves every session in keyless mode, so the
	// counter needs the lock.
	m.mu.Lock()
	call := m.calls
	m.calls++
	m.mu.Unlock()

	if call < len(m.Responses) {
		return m.Responses[call], nil
	}

	var lastUser string
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == domain.RoleUser {
			lastUser = history[i].Content
			break
		}
	}
	if lastUser == "" {
		return "[MOCK] This is a mock response from the agent runtime.", nil
	}
	return fmt.Sprintf("[MOCK] Received your message: %q.", truncate(lastUser, 100)), nil
}

// Calls reports how many completions were requested.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
