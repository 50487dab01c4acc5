package theatre

import (
	"github.com/fosdem/layertunnel/lib/effects"
	"github.com/fosdem/layertunnel/lib/metrics"
	"github.com/fosdem/layertunnel/lib/projector"
	"github.com/fosdem/layertunnel/lib/rotation"
	"github.com/fosdem/layertunnel/lib/utils"
	"github.com/go-gl/mathgl/mgl32"
)

// DrawCall is one quad for the graphics backend
type DrawCall struct {
	Offset mgl32.Vec2
	Scale  float32
	Colour utils.Colour
	// Textured is false for the fade overlay, which is a flat quad that
	// ignores the aspect ratio
	Textured bool
}

type Frame struct {
	Aspect float32
	Calls  []DrawCall
	// Skipped counts points that could not be projected
	Skipped int
}

const fadeOverlayScale = 2

// BuildFrame projects every point of every layer into f, reusing its
// backing storage. Points that cannot be projected are skipped.
func (t *Theatre) BuildFrame(f *Frame) {
	f.Aspect = t.Camera.Aspect()
	f.Calls = f.Calls[:0]
	f.Skipped = 0

	mode := t.State.Mode
	scope := mode.Scope()

	rot := projector.Identity
	if scope == rotation.ScopeWhole {
		rot.Cos, rot.Sin = effects.AngleToRotationVector(mode, t.State.SceneAngle)
	}

	for _, l := range t.State.Layers {
		if scope == rotation.ScopeLayer {
			rot.Cos, rot.Sin = effects.AngleToRotationVector(mode, l.RotationAngle)
		}
		for _, p := range l.Points {
			placement, err := projector.Project(p, rot, l.Depth, t.Camera)
			if err != nil {
				f.Skipped++
				continue
			}
			f.Calls = append(f.Calls, DrawCall{
				Offset:   placement.NDC,
				Scale:    placement.Scale,
				Colour:   l.Colour,
				Textured: true,
			})
		}
	}

	if !t.Effects.IsInitialized() && !t.Debug {
		f.Calls = append(f.Calls, DrawCall{
			Scale:  fadeOverlayScale,
			Colour: utils.Colour{A: t.Effects.FadeAlpha()},
		})
	}

	if f.Skipped > 0 {
		metrics.ProjectionErrors.Add(float64(f.Skipped))
		t.debug("Skipped %d points that could not be projected", f.Skipped)
	}
	metrics.FramesRendered.Inc()
	metrics.DrawCalls.Add(float64(len(f.Calls)))
}
