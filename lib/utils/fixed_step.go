package utils

import "time"

// FixedStep turns variable frame times into a whole number of fixed-size
// simulation steps. Leftover time is carried to the next frame.
type FixedStep struct {
	Step     time.Duration
	MaxSteps int
	// Dropped is how many steps the last Advance discarded
	Dropped int

	acc time.Duration
}

func NewFixedStep(rate float32, maxSteps int) *FixedStep {
	return &FixedStep{
		Step:     time.Duration(float64(time.Second) / float64(rate)),
		MaxSteps: maxSteps,
	}
}

// Advance adds dt to the accumulator and returns how many steps to run.
// When more than MaxSteps are due the surplus is dropped so that a long
// stall does not snowball into ever longer frames.
func (f *FixedStep) Advance(dt time.Duration) int {
	if f.Step <= 0 {
		return 0
	}
	f.acc += dt
	steps := 0
	f.Dropped = 0
	for f.acc >= f.Step {
		f.acc -= f.Step
		steps++
	}
	if f.MaxSteps > 0 && steps > f.MaxSteps {
		f.Dropped = steps - f.MaxSteps
		steps = f.MaxSteps
		f.acc = 0
	}
	return steps
}

// StepSeconds is the length of one step as the simulation sees it
func (f *FixedStep) StepSeconds() float32 {
	return float32(f.Step.Seconds())
}
