// Package consent models a one-shot offer the user may accept or dismiss,
// such as installing the default config file on first run.
package consent

import (
	"context"
	"sync"
)

// State is where a Prompt is in its lifecycle.
type State int

const (
	Unavailable State = iota
	Available
	Prompting
	Resolved
)

func (s State) String() string {
	switch s {
	case Unavailable:
		return "unavailable"
	case Available:
		return "available"
	case Prompting:
		return "prompting"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

// Outcome is the user's answer.
type Outcome int

const (
	Pending Outcome = iota
	Accepted
	Dismissed
)

// Prompt tracks one offer. The zero value is Unavailable.
type Prompt struct {
	mu      sync.Mutex
	state   State
	outcome Outcome
}

// MarkAvailable moves Unavailable to Available. Other states are unchanged.
func (p *Prompt) MarkAvailable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Unavailable {
		p.state = Available
	}
}

// State reports the current state.
func (p *Prompt) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Outcome is Pending until resolved.
func (p *Prompt) Outcome() Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outcome
}

// Begin starts prompting and hands out the handle that resolves it. ok is
// false unless the prompt is Available.
func (p *Prompt) Begin() (*Handle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Available {
		return nil, false
	}
	p.state = Prompting
	h := &Handle{prompt: p, done: make(chan struct{})}
	return h, true
}

// Handle resolves exactly one prompting cycle.
type Handle struct {
	prompt  *Prompt
	once    sync.Once
	done    chan struct{}
	outcome Outcome
}

// Resolve records o. Only the first call has any effect; it returns true.
func (h *Handle) Resolve(o Outcome) bool {
	if o == Pending {
		return false
	}
	resolved := false
	h.once.Do(func() {
		h.outcome = o
		p := h.prompt
		p.mu.Lock()
		p.state = Resolved
		p.outcome = o
		p.mu.Unlock()
		close(h.done)
		resolved = true
	})
	return resolved
}

// Wait blocks until Resolve or ctx is done.
func (h *Handle) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-h.done:
		return h.outcome, nil
	case <-ctx.Done():
		return Pending, ctx.Err()
	}
}
