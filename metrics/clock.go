// Package metrics implements the per-frame bookkeeping subsystems: the frame
// clock, the frame rate counter and the CPU load counter.
package metrics

import "time"

// Clock measures the time between subsequent frames.
type Clock struct {
	now       func() time.Time
	last      time.Time
	frameTime float32
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

func (c *Clock) Init() error {
	c.last = c.now()
	c.frameTime = 0
	return nil
}

func (c *Clock) Frame() {
	now := c.now()
	c.frameTime = float32(now.Sub(c.last).Nanoseconds()) / float32(time.Millisecond)
	c.last = now
}

// Get the last frame time in milliseconds.
func (c *Clock) Time() float32 {
	return c.frameTime
}

func (c *Clock) Shutdown() {}
