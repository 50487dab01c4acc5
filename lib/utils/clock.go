package utils

import "time"

// Clock is a monotonic source of seconds. Only differences between two
// readings are meaningful.
type Clock interface {
	Seconds() float64
}

// MonotonicClock reads the Go runtime's monotonic clock
type MonotonicClock struct {
	start time.Time
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

func (c *MonotonicClock) Seconds() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock only moves when told to
type ManualClock struct {
	Now float64
}

func (c *ManualClock) Seconds() float64 {
	return c.Now
}

func (c *ManualClock) Advance(seconds float64) {
	c.Now += seconds
}
