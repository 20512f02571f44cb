// Package testutil provides shared test doubles.
package testutil

import (
	"sync"
	"time"
)

// FixedClock is a thread-safe wall clock test double.
//
// Unlike time.Now, FixedClock only moves when a test advances it, so
// history timestamps and staleness checks are deterministic.
type FixedClock struct {
	mu sync.Mutex
	t  time.Time
}

// NewFixedClock creates a clock frozen at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

// Now returns the clock's current time without advancing it.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Advance moves the clock forward by d. Monotonic: d must not be negative
// in tests that feed a ledger, since history timestamps never regress.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// Set jumps the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}
