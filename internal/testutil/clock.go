package testutil

import (
	"sync"
	"time"
)

// DefaultTime is the wall time FixedClock starts at when given the zero time.
var DefaultTime = time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

// FixedClock is a settable wall clock for tests.
//
// Now returns the same instant until Advance or Set moves it, so timestamps
// written by the engine are reproducible across runs and golden snapshots.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock stopped at t. The zero time means DefaultTime.
func NewFixedClock(t time.Time) *FixedClock {
	if t.IsZero() {
		t = DefaultTime
	}
	return &FixedClock{now: t}
}

// Now returns the current fixed instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
