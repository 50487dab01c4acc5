package layer

import (
	"testing"

	"github.com/fosdem/layertunnel/lib/utils"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMove(t *testing.T) {
	Convey("Given a layer at depth 31 with a retire threshold of 30", t, func() {
		l := New(Star(), utils.Colour{A: 1}, 31)

		Convey("Moving to 30.5 keeps it", func() {
			So(l.Move(0.5, 30), ShouldBeFalse)
			So(l.Depth, ShouldEqual, 30.5)

			Convey("Moving on to 29.5 retires it", func() {
				So(l.Move(1, 30), ShouldBeTrue)
				So(l.Depth, ShouldEqual, 29.5)
			})
		})

		Convey("Landing exactly on the threshold keeps it", func() {
			So(l.Move(1, 30), ShouldBeFalse)
		})

		Convey("A new layer starts unrotated", func() {
			So(l.RotationAngle, ShouldEqual, 0)
			So(l.Age, ShouldEqual, 0)
		})
	})
}

func TestPatterns(t *testing.T) {
	Convey("The star has 16 distinct points", t, func() {
		p := Star()
		So(len(p), ShouldEqual, 16)
		seen := map[Point2D]bool{}
		for _, pt := range p {
			seen[pt] = true
		}
		So(len(seen), ShouldEqual, 16)
		So(seen[Point2D{300, -300}], ShouldBeTrue)
		So(seen[Point2D{-150, 275}], ShouldBeTrue)
	})

	Convey("A circle keeps every point on its radius", t, func() {
		p := Circle(12, 100)
		So(len(p), ShouldEqual, 12)
		for _, pt := range p {
			So(pt.X*pt.X+pt.Y*pt.Y, ShouldAlmostEqual, 10000, 0.1)
		}
	})

	Convey("Square and cross round down to a multiple of 4", t, func() {
		So(len(Square(10, 50)), ShouldEqual, 8)
		So(len(Cross(7, 50)), ShouldEqual, 4)
		for _, pt := range Square(16, 50) {
			onEdge := pt.X == 50 || pt.X == -50 || pt.Y == 50 || pt.Y == -50
			So(onEdge, ShouldBeTrue)
		}
	})

	Convey("MakePattern", t, func() {
		Convey("knows every listed pattern", func() {
			for _, name := range PatternNames() {
				p, err := MakePattern(name, 16, 100)
				So(err, ShouldBeNil)
				So(len(p), ShouldBeGreaterThan, 0)
			}
		})

		Convey("ignores the point count for the star", func() {
			p, err := MakePattern("star", 3, 1)
			So(err, ShouldBeNil)
			So(len(p), ShouldEqual, 16)
		})

		Convey("rejects unknown kinds", func() {
			_, err := MakePattern("hexagon", 6, 100)
			So(err, ShouldNotBeNil)
		})

		Convey("rejects empty patterns", func() {
			_, err := MakePattern("square", 3, 100)
			So(err, ShouldNotBeNil)
		})
	})
}
