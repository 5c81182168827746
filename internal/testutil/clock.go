package testutil

import (
	"sync"
	"time"
)

// Clock is a deterministic time source for tests.
//
// Report log lines timestamp each source with the current time; a frozen
// or stepping clock makes the rendered output byte-identical across runs,
// which golden snapshot comparison depends on.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Clock struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
	step  time.Duration
}

// NewFixedClock creates a clock frozen at the given instant.
// Every Now call returns the same time.
func NewFixedClock(at time.Time) *Clock {
	return &Clock{start: at, now: at}
}

// NewSteppingClock creates a clock that starts at start and advances by
// step after every Now call. Useful when each rendered line should carry
// a distinct, still-deterministic timestamp.
func NewSteppingClock(start time.Time, step time.Duration) *Clock {
	return &Clock{start: start, now: start, step: step}
}

// Now returns the clock's current instant, then advances it by the
// configured step. Pass the method value (clock.Now) wherever a
// func() time.Time is expected.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

// Reset rewinds the clock to its start instant.
//
// Used for test reuse. After Reset(), the next Now() returns the start
// time again.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
}
