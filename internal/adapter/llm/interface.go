// Package llm provides an abstraction over the hosted agent runtime.
package llm

import (
	"context"

	"github.com/feedbackloop/interviewd/internal/domain"
)

// Client produces the next assistant message for a dialogue, given a system
// instruction and the running history. The runtime is opaque: no guarantee
// is made about output format beyond the documented sentinel convention.
type Client interface {
	Complete(ctx context.Context, instruction string, history []domain.Message) (string, error)
}
