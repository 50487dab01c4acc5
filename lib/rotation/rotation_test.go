package rotation

import (
	"errors"
	"testing"

	"github.com/fosdem/layertunnel/lib/utils"
	yaml "github.com/goccy/go-yaml"
	. "github.com/smartystreets/goconvey/convey"
)

func TestModes(t *testing.T) {
	Convey("Every mode has a consistent behaviour", t, func() {
		So(Off.Scope(), ShouldEqual, ScopeNone)
		So(WholeCW.Scope(), ShouldEqual, ScopeWhole)
		So(WholeOscillate.Motion(), ShouldEqual, Oscillate)
		So(LayerCCW.Scope(), ShouldEqual, ScopeLayer)
		So(LayerCCW.Motion(), ShouldEqual, CounterClockwise)
		So(FrozenLayerRotation.Scope(), ShouldEqual, ScopeNone)

		for m := Off; m < NumModes; m++ {
			So(m.Valid(), ShouldBeTrue)
			So(m.UpdatesLayers(), ShouldEqual, m >= LayerCW)
		}
	})

	Convey("Invalid modes behave like off", t, func() {
		m := Mode(8)
		So(m.Valid(), ShouldBeFalse)
		So(m.Scope(), ShouldEqual, ScopeNone)
		So(m.UpdatesLayers(), ShouldBeFalse)
		So(m.String(), ShouldEqual, "mode(8)")
	})

	Convey("ParseMode", t, func() {
		Convey("accepts numbers", func() {
			m, err := ParseMode("6")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, LayerOscillate)
		})

		Convey("accepts names", func() {
			for i := Off; i < NumModes; i++ {
				m, err := ParseMode(i.String())
				So(err, ShouldBeNil)
				So(m, ShouldEqual, i)
			}
		})

		Convey("rejects anything else", func() {
			_, err := ParseMode("8")
			So(err, ShouldNotBeNil)
			_, err = ParseMode("-1")
			So(err, ShouldNotBeNil)
			_, err = ParseMode("sideways")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Modes decode from YAML by number or name", t, func() {
		var out struct {
			Script []Mode
		}
		err := yaml.Unmarshal([]byte("script: [0, whole-ccw, 7]\n"), &out)
		So(err, ShouldBeNil)
		So(out.Script, ShouldResemble, []Mode{Off, WholeCCW, FrozenLayerRotation})

		err = yaml.Unmarshal([]byte("script: [9]\n"), &out)
		So(err, ShouldNotBeNil)
	})
}

func TestCycler(t *testing.T) {
	Convey("Given a cycler over [0,1,2] with a 10 second period", t, func() {
		clock := &utils.ManualClock{}
		c, err := NewCycler([]Mode{Off, WholeCW, WholeCCW}, LayerCW, 10, clock)
		So(err, ShouldBeNil)

		Convey("The initial mode is active until the first expiry", func() {
			So(c.Current(), ShouldEqual, LayerCW)
			clock.Advance(9.9)
			m, switched := c.Poll()
			So(switched, ShouldBeFalse)
			So(m, ShouldEqual, LayerCW)
		})

		Convey("Five expiries replay 0,1,2,0,1", func() {
			var seen []Mode
			for i := 0; i < 5; i++ {
				clock.Advance(10)
				m, switched := c.Poll()
				So(switched, ShouldBeTrue)
				seen = append(seen, m)
			}
			So(seen, ShouldResemble, []Mode{Off, WholeCW, WholeCCW, Off, WholeCW})
		})

		Convey("Forcing a mode restarts the timer but not the script", func() {
			clock.Advance(10)
			c.Poll()
			clock.Advance(5)
			So(c.Force(LayerOscillate), ShouldBeNil)
			So(c.Current(), ShouldEqual, LayerOscillate)
			So(c.TimeToNext(), ShouldAlmostEqual, 10)

			clock.Advance(9)
			_, switched := c.Poll()
			So(switched, ShouldBeFalse)

			clock.Advance(1)
			m, switched := c.Poll()
			So(switched, ShouldBeTrue)
			So(m, ShouldEqual, WholeCW)
		})

		Convey("Forcing an invalid mode fails", func() {
			So(c.Force(Mode(42)), ShouldNotBeNil)
			So(c.Current(), ShouldEqual, LayerCW)
		})

		Convey("The script cannot be modified from outside", func() {
			s := c.Script()
			s[0] = LayerCCW
			So(c.Script()[0], ShouldEqual, Off)
		})
	})

	Convey("An empty script is rejected", t, func() {
		_, err := NewCycler(nil, Off, 10, &utils.ManualClock{})
		So(errors.Is(err, ErrEmptyScript), ShouldBeTrue)
	})

	Convey("Invalid scripts and periods are rejected", t, func() {
		clock := &utils.ManualClock{}
		_, err := NewCycler([]Mode{Off, 12}, Off, 10, clock)
		So(err, ShouldNotBeNil)
		_, err = NewCycler([]Mode{Off}, Off, 0, clock)
		So(err, ShouldNotBeNil)
		_, err = NewCycler([]Mode{Off}, -1, 10, clock)
		So(err, ShouldNotBeNil)
	})

	Convey("The default script is valid", t, func() {
		_, err := NewCycler(DefaultScript, Off, 10, &utils.ManualClock{})
		So(err, ShouldBeNil)
		So(len(DefaultScript), ShouldEqual, 15)
	})
}
