package tasksrepo

import (
	"sync"
	"time"
)

// clock issues millisecond timestamps that never repeat or go backwards
// within the process.
type clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

func newClock(now func() time.Time) *clock {
	if now == nil {
		now = time.Now
	}
	return &clock{now: now}
}

// next returns a timestamp strictly after both the previously issued one
// and floor.
func (c *clock) next(floor time.Time) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC().Truncate(time.Millisecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Millisecond)
	}
	if !floor.IsZero() && !t.After(floor) {
		t = floor.UTC().Truncate(time.Millisecond).Add(time.Millisecond)
	}
	c.last = t
	return t
}
