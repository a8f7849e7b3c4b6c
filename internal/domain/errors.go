package domain

import "errors"

var (
	// ErrNotFound is returned by the blob store when a key does not exist.
	ErrNotFound = errors.New("not found")

	// ErrScenarioNotFound means the referenced session id has no scenario
	// record. Surfaced to the participant as a blocking, non-retryable error.
	ErrScenarioNotFound = errors.New("scenario not found")

	// ErrMissingSessionID means the entry point carried no session identifier.
	ErrMissingSessionID = errors.New("missing session id")

	// ErrMalformedAgentOutput means the expected JSON block was absent or
	// unparsable from the agent's final message. Recoverable: the operator
	// can re-prompt without losing the draft.
	ErrMalformedAgentOutput = errors.New("malformed agent output")

	// ErrEmptyTurn means a turn was driven without a trailing user message.
	// Guards against double-invocation, not against duplicate legitimate turns.
	ErrEmptyTurn = errors.New("turn has no trailing user message")

	// ErrSessionCompleted means input arrived for a session that already
	// observed the completion sentinel.
	ErrSessionCompleted = errors.New("session already completed")
)
