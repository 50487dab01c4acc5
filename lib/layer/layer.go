package layer

import (
	"github.com/fosdem/layertunnel/lib/utils"
)

// Layer is one copy of the point pattern flying towards the camera
type Layer struct {
	// Points is shared between all layers and must not be modified
	Points Pattern

	Depth  float32
	Colour utils.Colour

	// RotationAngle is in degrees, kept in [0,360)
	RotationAngle float32

	// Age is the oscillation time base for per-layer swinging, in seconds
	Age float32
}

func New(points Pattern, colour utils.Colour, depth float32) *Layer {
	return &Layer{
		Points: points,
		Depth:  depth,
		Colour: colour,
	}
}

// Move brings the layer closer to the camera by movement and reports
// whether it has passed the retire threshold. The threshold itself is
// still visible.
func (l *Layer) Move(movement float32, removeThreshold float32) bool {
	l.Depth -= movement
	return l.Depth < removeThreshold
}
