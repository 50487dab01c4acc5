package rotation

import (
	"fmt"
	"strconv"
)

// Mode decides which rotation angle, if any, is advanced and applied
type Mode int

const (
	Off Mode = iota
	WholeCW
	WholeCCW
	WholeOscillate
	LayerCW
	LayerCCW
	LayerOscillate
	// FrozenLayerRotation applies no rotation, but layers keep the angles
	// they already have so that a later layer mode resumes from them
	FrozenLayerRotation
)

const NumModes = 8

// Scope tells what a mode rotates
type Scope int

const (
	ScopeNone Scope = iota
	ScopeWhole
	ScopeLayer
)

// Motion tells how a mode advances its angle
type Motion int

const (
	Still Motion = iota
	Clockwise
	CounterClockwise
	Oscillate
)

type behaviour struct {
	name   string
	scope  Scope
	motion Motion
	// per-layer angles are revisited on every update
	layerUpdates bool
}

var behaviours = [NumModes]behaviour{
	Off:                 {"off", ScopeNone, Still, false},
	WholeCW:             {"whole-cw", ScopeWhole, Clockwise, false},
	WholeCCW:            {"whole-ccw", ScopeWhole, CounterClockwise, false},
	WholeOscillate:      {"whole-oscillate", ScopeWhole, Oscillate, false},
	LayerCW:             {"layer-cw", ScopeLayer, Clockwise, true},
	LayerCCW:            {"layer-ccw", ScopeLayer, CounterClockwise, true},
	LayerOscillate:      {"layer-oscillate", ScopeLayer, Oscillate, true},
	FrozenLayerRotation: {"frozen-layer", ScopeNone, Still, true},
}

func (m Mode) Valid() bool {
	return m >= 0 && m < NumModes
}

func (m Mode) Scope() Scope {
	if !m.Valid() {
		return ScopeNone
	}
	return behaviours[m].scope
}

func (m Mode) Motion() Motion {
	if !m.Valid() {
		return Still
	}
	return behaviours[m].motion
}

// UpdatesLayers reports whether per-layer angles are recomputed in this mode
func (m Mode) UpdatesLayers() bool {
	return m.Valid() && behaviours[m].layerUpdates
}

func (m Mode) String() string {
	if !m.Valid() {
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
	return behaviours[m].name
}

// ParseMode accepts either the mode number or its name
func ParseMode(s string) (Mode, error) {
	if n, err := strconv.Atoi(s); err == nil {
		m := Mode(n)
		if !m.Valid() {
			return Off, fmt.Errorf("rotation mode %d out of range 0-%d", n, NumModes-1)
		}
		return m, nil
	}
	for i, b := range behaviours {
		if b.name == s {
			return Mode(i), nil
		}
	}
	return Off, fmt.Errorf("unknown rotation mode: %s", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
