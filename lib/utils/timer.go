package utils

// Timer fires once its duration has passed since the last reset
type Timer struct {
	clock    Clock
	start    float64
	duration float64
}

func NewTimer(clock Clock, durationSeconds float64) *Timer {
	return &Timer{
		clock:    clock,
		start:    clock.Seconds(),
		duration: durationSeconds,
	}
}

func (t *Timer) IsElapsed() bool {
	return t.clock.Seconds()-t.start >= t.duration
}

func (t *Timer) Reset() {
	t.start = t.clock.Seconds()
}

func (t *Timer) Remaining() float64 {
	r := t.duration - (t.clock.Seconds() - t.start)
	if r < 0 {
		return 0
	}
	return r
}
