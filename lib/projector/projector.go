package projector

import (
	"fmt"

	"github.com/fosdem/layertunnel/lib/layer"
	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionError is returned for points that sit on or behind the camera
type ProjectionError struct {
	Depth float32
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("cannot project point at non-positive depth %g", e.Depth)
}

type Camera struct {
	FocalLength float32
	BaseScale   float32
	Width       float32
	Height      float32
}

func (c Camera) Aspect() float32 {
	return c.Width / c.Height
}

// Rotation is a 2D rotation given by its cosine and sine
type Rotation struct {
	Cos float32
	Sin float32
}

var Identity = Rotation{Cos: 1, Sin: 0}

func (r Rotation) Matrix() mgl32.Mat2 {
	// column major
	return mgl32.Mat2{r.Cos, r.Sin, -r.Sin, r.Cos}
}

// Placement is where and how large one point ends up on screen
type Placement struct {
	// NDC is the centre in normalised device coordinates, [-1,1] on screen
	NDC   mgl32.Vec2
	Scale float32
}

// Rotate applies r to the model point
func Rotate(p layer.Point2D, r Rotation) mgl32.Vec2 {
	return r.Matrix().Mul2x1(mgl32.Vec2{p.X, p.Y})
}

// Project rotates p, places it at depth in front of the camera and maps the
// result into device coordinates
func Project(p layer.Point2D, r Rotation, depth float32, cam Camera) (Placement, error) {
	if depth <= 0 {
		return Placement{}, &ProjectionError{Depth: depth}
	}
	rotated := Rotate(p, r)

	scale := cam.FocalLength / depth

	halfW := cam.Width / 2
	halfH := cam.Height / 2
	// screen y grows downwards
	screenX := halfW + rotated.X()*scale
	screenY := halfH - rotated.Y()*scale

	return Placement{
		NDC:   mgl32.Vec2{screenX/halfW - 1, 1 - screenY/halfH},
		Scale: scale * cam.BaseScale,
	}, nil
}
