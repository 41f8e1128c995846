package clock

import "time"

// Clock measures play time since Start, excluding time spent paused.
type Clock struct {
	now func() time.Time

	start       time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
	paused      bool
	running     bool
}

func New() *Clock {
	return &Clock{now: time.Now}
}

// NewWithNow is New with a custom time source, used by tests and replays.
func NewWithNow(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Start resets the clock and begins counting from now.
func (c *Clock) Start() {
	c.start = c.now()
	c.pausedAt = time.Time{}
	c.pausedTotal = 0
	c.paused = false
	c.running = true
}

// Pause is a no-op when already paused or not started.
func (c *Clock) Pause() {
	if !c.running || c.paused {
		return
	}
	c.pausedAt = c.now()
	c.paused = true
}

// Resume is a no-op unless paused, so pause time is never counted twice.
func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	c.pausedTotal += c.now().Sub(c.pausedAt)
	c.paused = false
}

// Elapsed while paused reports the value at the moment of pausing.
func (c *Clock) Elapsed() time.Duration {
	if !c.running {
		return 0
	}
	at := c.now()
	if c.paused {
		at = c.pausedAt
	}
	return at.Sub(c.start) - c.pausedTotal
}

func (c *Clock) Paused() bool {
	return c.paused
}

func (c *Clock) PausedTotal() time.Duration {
	return c.pausedTotal
}
