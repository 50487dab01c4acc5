package utils

import (
	"image/color"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTimer(t *testing.T) {
	Convey("Given a 10 second timer on a manual clock", t, func() {
		clock := &ManualClock{Now: 3}
		timer := NewTimer(clock, 10)

		Convey("It is not elapsed before its duration", func() {
			clock.Advance(9.99)
			So(timer.IsElapsed(), ShouldBeFalse)
			So(timer.Remaining(), ShouldAlmostEqual, 0.01, 1e-9)
		})

		Convey("It is elapsed exactly at its duration", func() {
			clock.Advance(10)
			So(timer.IsElapsed(), ShouldBeTrue)
			So(timer.Remaining(), ShouldEqual, 0)
		})

		Convey("Reset starts counting again from now", func() {
			clock.Advance(15)
			timer.Reset()
			So(timer.IsElapsed(), ShouldBeFalse)
			clock.Advance(10)
			So(timer.IsElapsed(), ShouldBeTrue)
		})
	})
}

func TestDeltaTimer(t *testing.T) {
	Convey("Given a delta timer on a manual clock", t, func() {
		clock := &ManualClock{}
		d := DeltaTimer{Clock: clock}

		Convey("The first call yields zero", func() {
			clock.Advance(5)
			So(d.Next(), ShouldEqual, time.Duration(0))
		})

		Convey("Later calls yield the time since the previous call", func() {
			d.Next()
			clock.Advance(0.25)
			So(d.Next(), ShouldEqual, 250*time.Millisecond)
			clock.Advance(0.5)
			So(d.Next(), ShouldEqual, 500*time.Millisecond)
		})
	})
}

func TestFixedStep(t *testing.T) {
	Convey("Given a 100Hz fixed step capped at 5 steps", t, func() {
		f := NewFixedStep(100, 5)
		So(f.Step, ShouldEqual, 10*time.Millisecond)
		So(f.StepSeconds(), ShouldAlmostEqual, 0.01, 1e-6)

		Convey("Leftover time is carried over", func() {
			So(f.Advance(15*time.Millisecond), ShouldEqual, 1)
			So(f.Advance(5*time.Millisecond), ShouldEqual, 1)
			So(f.Advance(9*time.Millisecond), ShouldEqual, 0)
		})

		Convey("Short frames run no step", func() {
			So(f.Advance(3*time.Millisecond), ShouldEqual, 0)
			So(f.Dropped, ShouldEqual, 0)
		})

		Convey("A long stall is clamped and the surplus dropped", func() {
			So(f.Advance(time.Second), ShouldEqual, 5)
			So(f.Dropped, ShouldEqual, 95)
			So(f.Advance(9*time.Millisecond), ShouldEqual, 0)
			So(f.Advance(1*time.Millisecond), ShouldEqual, 1)
			So(f.Dropped, ShouldEqual, 0)
		})
	})

	Convey("A fixed step without a rate never steps", t, func() {
		f := &FixedStep{}
		So(f.Advance(time.Second), ShouldEqual, 0)
	})
}

func TestColour(t *testing.T) {
	Convey("Colour strings", t, func() {
		Convey("Only #RRGGBBAA is valid", func() {
			So(ColourValidate("#ff8000ff"), ShouldBeTrue)
			So(ColourValidate("#FF8000FF"), ShouldBeTrue)
			So(ColourValidate("#ff8000"), ShouldBeFalse)
			So(ColourValidate("ff8000ff"), ShouldBeFalse)
			So(ColourValidate("#ff8000ff00"), ShouldBeFalse)
			So(ColourValidate("#gg8000ff"), ShouldBeFalse)
		})

		Convey("Parsing maps channels to [0,1]", func() {
			c := ColourParse("#ff000080")
			So(c.R, ShouldEqual, 1)
			So(c.G, ShouldEqual, 0)
			So(c.B, ShouldEqual, 0)
			So(c.A, ShouldAlmostEqual, 128.0/255, 1e-6)

			v := c.Vec4()
			So(v[0], ShouldEqual, 1)
			So(v[1], ShouldEqual, 0)
			So(v[3], ShouldEqual, c.A)
		})

		Convey("String round trips", func() {
			So(ColourParse("#12345678").String(), ShouldEqual, "#12345678")
			So(ColourFromRGBA(color.RGBA{R: 255, A: 255}).String(), ShouldEqual, "#ff0000ff")
		})

		Convey("Out of range channels are clamped when printed", func() {
			So(Colour{R: 2, G: -1, B: 0.5, A: 1}.String(), ShouldEqual, "#ff0080ff")
		})
	})
}
