package layer

import (
	"fmt"
	"math"
)

type Point2D struct {
	X float32
	Y float32
}

// Pattern is an immutable list of model-space points
type Pattern []Point2D

// PatternFunc builds a pattern. Implementations must be pure.
type PatternFunc func(points int, radius float32) Pattern

var patterns = map[string]PatternFunc{
	"star":   func(int, float32) Pattern { return Star() },
	"circle": Circle,
	"square": Square,
	"cross":  Cross,
}

func PatternNames() []string {
	return []string{"star", "circle", "square", "cross"}
}

func MakePattern(kind string, points int, radius float32) (Pattern, error) {
	f, ok := patterns[kind]
	if !ok {
		return nil, fmt.Errorf("unknown pattern: %s", kind)
	}
	p := f(points, radius)
	if len(p) == 0 {
		return nil, fmt.Errorf("pattern %s with %d points is empty", kind, points)
	}
	return p, nil
}

// Star is the classic 16 point star / diamond arrangement
func Star() Pattern {
	return Pattern{
		{260, 0}, {0, 260}, {-260, 0}, {0, -260},

		{275, 150}, {275, -150}, {150, 275}, {150, -275},
		{-275, 150}, {-275, -150}, {-150, 275}, {-150, -275},

		{300, 300}, {-300, 300}, {300, -300}, {-300, -300},
	}
}

func Circle(points int, radius float32) Pattern {
	p := make(Pattern, points)
	for i := range points {
		a := 2 * math.Pi * float64(i) / float64(points)
		p[i] = Point2D{
			X: radius * float32(math.Cos(a)),
			Y: radius * float32(math.Sin(a)),
		}
	}
	return p
}

// Square spreads the points evenly over the outline of a square with the
// given half side length. The point count is rounded down to a multiple of 4.
func Square(points int, radius float32) Pattern {
	perSide := points / 4
	p := make(Pattern, 0, perSide*4)
	for i := range perSide {
		t := -radius + 2*radius*float32(i)/float32(perSide)
		p = append(p,
			Point2D{t, radius},
			Point2D{radius, -t},
			Point2D{-t, -radius},
			Point2D{-radius, t},
		)
	}
	return p
}

// Cross places points on the two axes, rounded down to a multiple of 4
func Cross(points int, radius float32) Pattern {
	perArm := points / 4
	p := make(Pattern, 0, perArm*4)
	for i := 1; i <= perArm; i++ {
		r := radius * float32(i) / float32(perArm)
		p = append(p,
			Point2D{r, 0},
			Point2D{0, r},
			Point2D{-r, 0},
			Point2D{0, -r},
		)
	}
	return p
}
