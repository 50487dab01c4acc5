// Package effects holds the time driven behaviour of the tunnel that is not
// geometry: the startup fade, rotation angles and layer colours.
package effects

import (
	"math"

	"github.com/fosdem/layertunnel/lib/layer"
	"github.com/fosdem/layertunnel/lib/rotation"
	"github.com/fosdem/layertunnel/lib/utils"
	"github.com/go-gl/mathgl/mgl32"
)

// RandomSource yields uniform floats in [0,1). *rand.Rand satisfies it.
type RandomSource interface {
	Float32() float32
}

type Spin struct {
	Speed            float32
	OscillationSpeed float32
	SwingAmplitude   float32
}

type Settings struct {
	InitialFadeAlpha float32
	FadeSpeed        float32
	AlphaClamp       float32

	IdleSpeed float32
	SpeedRamp float32

	InitFrontDistance float32
	InitZ             float32
	LayerDistance     float32

	Whole Spin
	Layer Spin
}

type Engine struct {
	settings Settings
	rand     RandomSource

	fadeAlpha   float32
	initialized bool

	wholeRotationTime float32
}

func New(settings Settings, rand RandomSource) *Engine {
	return &Engine{
		settings:  settings,
		rand:      rand,
		fadeAlpha: settings.InitialFadeAlpha,
	}
}

// CreateInitialLayers fills the tunnel from the front distance up to (but
// excluding) the spawn depth so the first frame is not empty
func (e *Engine) CreateInitialLayers(points layer.Pattern) []*layer.Layer {
	var layers []*layer.Layer
	if e.settings.LayerDistance <= 0 {
		return layers
	}
	for i := 0; ; i++ {
		z := e.settings.InitFrontDistance + float32(i)*e.settings.LayerDistance
		if z >= e.settings.InitZ {
			break
		}
		layers = append(layers, layer.New(points, e.GenerateRandomRGBA(), z))
	}
	return layers
}

// UpdateFadeAlpha advances the startup fade and returns the scene speed,
// ramped towards the idle speed while the fade is still running
func (e *Engine) UpdateFadeAlpha(deltaTime float32, speed float32) float32 {
	if e.initialized {
		return speed
	}
	e.fadeAlpha -= e.settings.FadeSpeed * deltaTime
	if e.fadeAlpha <= 0 {
		e.fadeAlpha = 0
		e.initialized = true
	}
	if speed < e.settings.IdleSpeed {
		speed = min(speed+e.settings.SpeedRamp, e.settings.IdleSpeed)
	}
	return speed
}

func (e *Engine) IsInitialized() bool {
	return e.initialized
}

func (e *Engine) FadeAlpha() float32 {
	return e.fadeAlpha
}

func (e *Engine) GenerateRandomRGBA() utils.Colour {
	alpha := e.ClampAlpha(e.rand.Float32())
	return utils.Colour{
		R: e.rand.Float32(),
		G: e.rand.Float32(),
		B: e.rand.Float32(),
		A: alpha,
	}
}

// ClampAlpha raises alpha to the configured floor, it never lowers it
func (e *Engine) ClampAlpha(alpha float32) float32 {
	if alpha < e.settings.AlphaClamp {
		return e.settings.AlphaClamp
	}
	return alpha
}

// CalculateRotationAngle advances the whole scene angle for one of the
// whole scene modes. Other modes return the angle unchanged (but wrapped).
func (e *Engine) CalculateRotationAngle(mode rotation.Mode, angle float32, deltaTime float32) float32 {
	if mode.Scope() != rotation.ScopeWhole {
		return wrap(angle)
	}
	if mode.Motion() == rotation.Oscillate {
		e.wholeRotationTime += deltaTime
	}
	return advance(mode.Motion(), angle, deltaTime, e.wholeRotationTime, e.settings.Whole)
}

// CalculateLayerAngle is the per-layer counterpart of CalculateRotationAngle.
// Oscillation runs on the layer's own age so every layer swings with its own
// phase.
func (e *Engine) CalculateLayerAngle(mode rotation.Mode, l *layer.Layer, deltaTime float32) float32 {
	if mode.Scope() != rotation.ScopeLayer {
		return wrap(l.RotationAngle)
	}
	if mode.Motion() == rotation.Oscillate {
		l.Age += deltaTime
	}
	return advance(mode.Motion(), l.RotationAngle, deltaTime, l.Age, e.settings.Layer)
}

// AngleToRotationVector returns cos and sin of the angle in degrees. Modes
// that draw nothing rotated get the identity without any trigonometry.
func AngleToRotationVector(mode rotation.Mode, angle float32) (float32, float32) {
	if mode.Scope() == rotation.ScopeNone {
		return 1, 0
	}
	rad := float64(mgl32.DegToRad(angle))
	return float32(math.Cos(rad)), float32(math.Sin(rad))
}

func advance(motion rotation.Motion, angle float32, deltaTime float32, t float32, spin Spin) float32 {
	switch motion {
	case rotation.Clockwise:
		angle -= spin.Speed * deltaTime
	case rotation.CounterClockwise:
		angle += spin.Speed * deltaTime
	case rotation.Oscillate:
		angle = float32(math.Sin(float64(t*spin.OscillationSpeed))) * spin.SwingAmplitude
	}
	return wrap(angle)
}

// wrap brings an angle back into [0,360)
func wrap(angle float32) float32 {
	if angle >= 0 && angle < 360 {
		return angle
	}
	angle = float32(math.Mod(float64(angle), 360))
	if angle < 0 {
		angle += 360
	}
	// float32 rounding can land -tiny+360 exactly on 360
	if angle >= 360 {
		angle = 0
	}
	return angle
}
