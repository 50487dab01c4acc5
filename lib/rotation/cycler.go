package rotation

import (
	"errors"
	"fmt"

	"github.com/fosdem/layertunnel/lib/utils"
)

var ErrEmptyScript = errors.New("mode script is empty")

// DefaultScript dwells longer on some modes by repeating them
var DefaultScript = []Mode{
	Off, WholeCW, WholeCCW, WholeCCW, WholeCW,
	LayerCW, LayerCCW, LayerCW, LayerCCW,
	FrozenLayerRotation, FrozenLayerRotation,
	LayerOscillate, LayerOscillate,
	FrozenLayerRotation, FrozenLayerRotation,
}

// Cycler replays a script of modes, moving to the next entry every time
// its timer expires. Before the first expiry the initial mode is active.
type Cycler struct {
	script  []Mode
	next    int
	current Mode
	timer   *utils.Timer
}

func NewCycler(script []Mode, initial Mode, periodSeconds float64, clock utils.Clock) (*Cycler, error) {
	if len(script) == 0 {
		return nil, ErrEmptyScript
	}
	for i, m := range script {
		if !m.Valid() {
			return nil, fmt.Errorf("mode script entry %d: %d is not a rotation mode", i, m)
		}
	}
	if !initial.Valid() {
		return nil, fmt.Errorf("initial mode %d is not a rotation mode", initial)
	}
	if periodSeconds <= 0 {
		return nil, fmt.Errorf("mode cycle period must be positive, got %g", periodSeconds)
	}
	s := make([]Mode, len(script))
	copy(s, script)
	return &Cycler{
		script:  s,
		current: initial,
		timer:   utils.NewTimer(clock, periodSeconds),
	}, nil
}

func (c *Cycler) Current() Mode {
	return c.current
}

// Poll advances to the next scripted mode if the timer has expired.
// It returns the active mode and whether it was just switched to.
func (c *Cycler) Poll() (Mode, bool) {
	if !c.timer.IsElapsed() {
		return c.current, false
	}
	c.timer.Reset()
	return c.Advance(), true
}

// Advance moves to the next scripted mode immediately
func (c *Cycler) Advance() Mode {
	if c.next >= len(c.script) {
		c.next = 0
	}
	c.current = c.script[c.next]
	c.next++
	return c.current
}

// Force overrides the active mode until the next expiry. The script position
// is untouched and the timer restarts.
func (c *Cycler) Force(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%d is not a rotation mode", m)
	}
	c.current = m
	c.timer.Reset()
	return nil
}

func (c *Cycler) Script() []Mode {
	s := make([]Mode, len(c.script))
	copy(s, c.script)
	return s
}

// TimeToNext is the number of seconds until the next scripted switch
func (c *Cycler) TimeToNext() float64 {
	return c.timer.Remaining()
}
