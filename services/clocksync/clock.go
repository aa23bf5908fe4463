// Package clocksync keeps a localized wall clock. Sync is best effort: the
// device keeps running on an implausible clock rather than refusing to show
// sensor rows.
package clocksync

import (
	"sync"
	"time"
)

// Clock is the time source the renderer reads. It layers an NTP-derived
// offset and a location over the monotonic system clock.
type Clock struct {
	mu     sync.Mutex
	offset time.Duration
	loc    *time.Location
	nowFn  func() time.Time // test hook
}

func NewClock() *Clock {
	return &Clock{loc: time.UTC, nowFn: time.Now}
}

// Now returns the corrected, localized time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nowFn().Add(c.offset).In(c.loc)
}

func (c *Clock) SetLocation(loc *time.Location) {
	c.mu.Lock()
	c.loc = loc
	c.mu.Unlock()
}

func (c *Clock) setOffset(d time.Duration) {
	c.mu.Lock()
	c.offset = d
	c.mu.Unlock()
}
