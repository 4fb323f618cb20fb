package pipeline

import "time"

// Clock measures time since the start of the run. It is read-only after
// construction and safe for concurrent use.
type Clock struct {
	start time.Time
	now   func() time.Time
}

// NewClock starts a Clock at the current time.
func NewClock() *Clock {
	return &Clock{start: time.Now(), now: time.Now}
}

// Start returns the instant the run began.
func (c *Clock) Start() time.Time { return c.start }

// Elapsed returns the time since Start.
func (c *Clock) Elapsed() time.Duration { return c.now().Sub(c.start) }
