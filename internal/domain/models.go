package domain

import "time"

// TimeFormat is the display format used for persisted timestamps.
const TimeFormat = "2006-01-02 15:04:05"

// Scenario is one interview configuration, keyed by session id.
type Scenario struct {
	SessionID     string        `json:"session_id"`
	CandidateName string        `json:"candidate_name"`
	Context       string        `json:"context"`
	Tone          string        `json:"tone"`
	KeyQuestions  []string      `json:"key_questions"`
	Status        SessionStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Message is a single entry in a session's dialogue.
type Message struct {
	Role    string `json:"role"` // user, assistant
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Transcript is the durable dialogue record for one session. It is
// persisted as a full replace on every turn, never as a delta.
type Transcript struct {
	SessionID string    `json:"session_id"`
	UpdatedAt time.Time `json:"updated_at"`
	History   []Message `json:"history"`
}
