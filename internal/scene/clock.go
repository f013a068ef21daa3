package scene

import "time"

// Clock measures elapsed wall-clock time between frames.
type Clock struct {
	now     func() time.Time
	last    time.Time
	started bool
}

// NewClock creates a clock; a nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Delta returns seconds since the previous call. The first call returns 0.
func (c *Clock) Delta() float64 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}
	d := t.Sub(c.last).Seconds()
	c.last = t
	if d < 0 {
		return 0
	}
	return d
}
