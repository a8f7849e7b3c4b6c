package agent

import (
	"context"
	"sync"

	"github.com/feedbackloop/interviewd/internal/adapter/llm"
	"github.com/feedbackloop/interviewd/internal/domain"
)

// Runner is a live agent handle: a frozen instruction bound to a running
// dialogue with the agent runtime. Runners are process-local and never
// persisted; after a restart they are rebuilt from scenario + transcript.
type Runner struct {
	instruction string
	client      llm.Client

	mu       sync.Mutex
	dialogue []domain.Message
}

// NewRunner creates a runner with the given frozen instruction.
func NewRunner(instruction string, client llm.Client) *Runner {
	return &Runner{instruction: instruction, client: client}
}

// Instruction returns the instruction the runner was created with.
func (r *Runner) Instruction() string { return r.instruction }

// Send forwards one user message to the runtime and returns the raw
// assistant response. The runner maintains the running dialogue itself, so
// callers only ever hand over the newest message.
func (r *Runner) Send(ctx context.Context, text string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.dialogue = append(r.dialogue, domain.Message{Role: domain.RoleUser, Content: text})
	reply, err := r.client.Complete(ctx, r.instruction, r.dialogue)
	if err != nil {
		// Drop the unanswered message so a retry does not duplicate it.
		r.dialogue = r.dialogue[:len(r.dialogue)-1]
		return "", err
	}
	r.dialogue = append(r.dialogue, domain.Message{Role: domain.RoleAssistant, Content: reply})
	return reply, nil
}

// Cache holds at most one live runner per session id for the process
// lifetime. It also hands out a per-session lock so the conversation driver
// serializes turns for the same session; the storage layer itself offers no
// mutual exclusion.
//
// Eviction is deliberately absent: sessions are short-lived and low-volume,
// and a runner is cheap once its instruction is built.
type Cache struct {
	mu      sync.Mutex
	runners map[string]*Runner
	locks   map[string]*sync.Mutex
}

// NewCache creates an empty runner cache.
func NewCache() *Cache {
	return &Cache{
		runners: make(map[string]*Runner),
		locks:   make(map[string]*sync.Mutex),
	}
}

// SessionLock returns the mutex dedicated to a session id, creating it on
// first use.
func (c *Cache) SessionLock(sessionID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[sessionID] = l
	}
	return l
}

// GetOrCreate returns the cached runner for a session id, calling create to
// build one lazily when absent. create runs under the cache lock, which is
// fine: construction is pure string assembly.
func (c *Cache) GetOrCreate(sessionID string, create func() (*Runner, error)) (*Runner, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.runners[sessionID]; ok {
		return r, nil
	}
	r, err := create()
	if err != nil {
		return nil, err
	}
	c.runners[sessionID] = r
	return r, nil
}

// Get returns the cached runner for a session id, if any.
func (c *Cache) Get(sessionID string) (*Runner, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.runners[sessionID]
	return r, ok
}

// Len reports how many live runners the cache holds.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.runners)
}
