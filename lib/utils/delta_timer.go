package utils

import "time"

// DeltaTimer measures the time between consecutive calls to Next
type DeltaTimer struct {
	Clock Clock

	last    float64
	started bool
}

func (d *DeltaTimer) Next() time.Duration {
	if d.Clock == nil {
		d.Clock = NewMonotonicClock()
	}
	// acquire timestamp exactly once to ensure we're not accumulating error
	now := d.Clock.Seconds()

	defer d.set(now)
	if !d.started {
		return 0
	}
	return time.Duration((now - d.last) * float64(time.Second))
}

func (d *DeltaTimer) set(now float64) {
	d.last = now
	d.started = true
}
