package service

import (
	"sync"
	"time"
)

// Clock returns write timestamps.
type Clock interface {
	Now() time.Time
}

// monotonicClock hands out UTC timestamps at millisecond resolution (the
// document store's precision), each strictly later than the previous one.
type monotonicClock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewMonotonicClock returns a Clock reading from now; nil means time.Now.
func NewMonotonicClock(now func() time.Time) Clock {
	if now == nil {
		now = time.Now
	}
	return &monotonicClock{now: now}
}

func (c *monotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC().Truncate(time.Millisecond)
	if !t.After(c.last) {
		t = c.last.Add(time.Millisecond)
	}
	c.last = t
	return t
}
