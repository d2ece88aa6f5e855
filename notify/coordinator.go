// Package notify decouples best-effort realtime publishes from the response
// path: dispatches run as tracked background tasks, failures are logged and
// swallowed, and shutdown drains the in-flight set with a bounded wait
// followed by forced cancellation.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// task is one in-flight dispatch. done is closed when the dispatch function
// returns, success or failure.
type task struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}
}

// Coordinator tracks fire-and-forget dispatches so they are neither silently
// dropped nor able to block process shutdown indefinitely.
// Coordinator is safe for concurrent use.
type Coordinator struct {
	logger *slog.Logger

	mu    sync.Mutex
	tasks map[*task]struct{}
}

// NewCoordinator creates a Coordinator. A nil logger falls back to
// slog.Default().
func NewCoordinator(logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		logger: logger,
		tasks:  make(map[*task]struct{}),
	}
}

// Dispatch runs fn in the background with its own cancellable context. The
// dispatch is held in the shared set until fn returns and is removed
// automatically; a returned error is logged and never propagated.
func (c *Coordinator) Dispatch(name string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithCancel(context.Background())
	t := &task{name: name, cancel: cancel, done: make(chan struct{})}

	c.mu.Lock()
	c.tasks[t] = struct{}{}
	c.mu.Unlock()

	go func() {
		defer close(t.done)
		defer cancel()
		defer func() {
			c.mu.Lock()
			delete(c.tasks, t)
			c.mu.Unlock()
		}()

		if err := fn(ctx); err != nil {
			c.logger.Warn("background dispatch failed", "dispatch", t.name, "error", err)
		}
	}()
}

// InFlight returns the number of dispatches currently tracked.
func (c *Coordinator) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// snapshot returns the currently tracked tasks.
func (c *Coordinator) snapshot() []*task {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*task, 0, len(c.tasks))
	for t := range c.tasks {
		out = append(out, t)
	}
	return out
}

// awaitAll blocks until every tracked dispatch finishes or the deadline
// fires, reporting whether the set fully drained.
func (c *Coordinator) awaitAll(deadline <-chan time.Time) bool {
	for {
		remaining := c.snapshot()
		if len(remaining) == 0 {
			return true
		}
		select {
		case <-remaining[0].done:
		case <-deadline:
			return false
		}
	}
}

// Shutdown waits up to drainTimeout for in-flight dispatches, cancels any
// still outstanding, then waits at most cancelWait more before returning.
// It returns the number of dispatches that had to be cancelled. Shutdown
// returns within roughly drainTimeout+cancelWait even when a dispatch
// ignores cancellation.
func (c *Coordinator) Shutdown(drainTimeout, cancelWait time.Duration) int {
	if c.awaitAll(time.After(drainTimeout)) {
		return 0
	}

	stragglers := c.snapshot()
	for _, t := range stragglers {
		c.logger.Warn("cancelling stalled dispatch", "dispatch", t.name)
		t.cancel()
	}

	c.awaitAll(time.After(cancelWait))
	return len(stragglers)
}
