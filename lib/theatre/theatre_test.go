package theatre

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/fosdem/layertunnel/lib/config"
	"github.com/fosdem/layertunnel/lib/rotation"
	"github.com/fosdem/layertunnel/lib/utils"
	. "github.com/smartystreets/goconvey/convey"
)

func newTheatre(cfg *config.Config, clock utils.Clock) *Theatre {
	t, err := New(cfg, clock, rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		panic(err)
	}
	return t
}

func TestNew(t *testing.T) {
	Convey("Given the default config", t, func() {
		cfg := config.Default()
		clock := &utils.ManualClock{}

		Convey("The tunnel is populated far to near", func() {
			th := newTheatre(cfg, clock)
			So(len(th.State.Layers), ShouldEqual, 45)
			So(th.State.Layers[0].Depth, ShouldEqual, 4900)
			So(th.State.Layers[44].Depth, ShouldEqual, 500)
			So(th.State.Speed, ShouldEqual, 30)
			So(th.State.Mode, ShouldEqual, rotation.Off)
			So(th.Snapshot().ActiveLayers, ShouldEqual, 45)
		})

		Convey("A zero layer distance is a configuration error", func() {
			cfg.Motion.LayerDistance = 0
			_, err := New(cfg, clock, rand.New(rand.NewPCG(1, 1)))
			So(config.IsConfigurationError(err), ShouldBeTrue)
		})

		Convey("An empty script is a configuration error", func() {
			cfg.Modes.Script = nil
			_, err := New(cfg, clock, rand.New(rand.NewPCG(1, 1)))
			So(config.IsConfigurationError(err), ShouldBeTrue)
		})

		Convey("Debug mode shows one frozen layer", func() {
			cfg.Debug.Enabled = true
			th := newTheatre(cfg, clock)
			So(len(th.State.Layers), ShouldEqual, 1)
			So(th.State.Layers[0].Depth, ShouldEqual, 500)
			So(th.State.Layers[0].Colour, ShouldResemble, white())

			for i := 0; i < 100; i++ {
				clock.Advance(1)
				th.Update(0.5)
			}
			So(len(th.State.Layers), ShouldEqual, 1)
			So(th.State.Layers[0].Depth, ShouldEqual, 500)
			So(th.State.Mode, ShouldEqual, rotation.Off)
		})
	})
}

func TestUpdate(t *testing.T) {
	Convey("Given a running theatre", t, func() {
		cfg := config.Default()
		clock := &utils.ManualClock{}
		th := newTheatre(cfg, clock)

		Convey("Layers move towards the camera at the ramped speed", func() {
			th.Update(0.1)
			So(th.State.Speed, ShouldEqual, 31)
			So(th.State.Layers[44].Depth, ShouldAlmostEqual, 500-3.1, 1e-3)
		})

		Convey("The fade completes and speed settles at idle", func() {
			for i := 0; i < 2000 && !th.Effects.IsInitialized(); i++ {
				th.Update(1.0 / 120)
			}
			So(th.Effects.IsInitialized(), ShouldBeTrue)
			So(th.Snapshot().Initialized, ShouldBeTrue)
			So(th.State.Speed, ShouldBeLessThanOrEqualTo, 450)
		})

		Convey("The number of layers stays steady once at speed", func() {
			th.State.Speed = 450
			th.Effects.UpdateFadeAlpha(100, 450)
			for i := 0; i < 120*20; i++ {
				th.Update(1.0 / 120)
			}
			So(len(th.State.Layers), ShouldBeBetweenOrEqual, 48, 50)
			snap := th.Snapshot()
			So(snap.LayersSpawned-snap.LayersRetired, ShouldEqual, uint64(len(th.State.Layers)-45))
		})

		Convey("The script drives the mode", func() {
			clock.Advance(10)
			th.Update(0.01)
			So(th.State.Mode, ShouldEqual, rotation.DefaultScript[0])
			clock.Advance(10)
			th.Update(0.01)
			So(th.State.Mode, ShouldEqual, rotation.DefaultScript[1])
		})

		Convey("Angles stay in range through every mode", func() {
			cfg.Modes.CycleSeconds = 0.5
			cfg.Modes.Script = []rotation.Mode{0, 1, 2, 3, 4, 5, 6, 7}
			th := newTheatre(cfg, clock)
			for i := 0; i < 120*8; i++ {
				clock.Advance(1.0 / 120)
				th.Update(1.0 / 120)
				So(th.State.SceneAngle, ShouldBeGreaterThanOrEqualTo, 0)
				So(th.State.SceneAngle, ShouldBeLessThan, 360)
				for _, l := range th.State.Layers {
					if l.RotationAngle < 0 || l.RotationAngle >= 360 {
						So(l.RotationAngle, ShouldBeBetween, 0, 360)
					}
				}
			}
		})

		Convey("Frozen layer rotation keeps layer angles", func() {
			th.State.Mode = rotation.FrozenLayerRotation
			for _, l := range th.State.Layers {
				l.RotationAngle = 45
			}
			th.Update(0.5)
			for _, l := range th.State.Layers {
				So(l.RotationAngle, ShouldEqual, 45)
			}
		})
	})
}

func TestRequestMode(t *testing.T) {
	Convey("Given a running theatre", t, func() {
		clock := &utils.ManualClock{}
		th := newTheatre(config.Default(), clock)

		Convey("A requested mode is applied on the next update", func() {
			events := make(chan EventDataModeChange, 1)
			th.AddEventListener(EventModeChange, func(t *Theatre, data interface{}) {
				events <- data.(EventDataModeChange)
			})

			So(th.RequestMode(rotation.LayerOscillate), ShouldBeNil)
			So(th.State.Mode, ShouldEqual, rotation.Off)
			th.Update(0.01)
			So(th.State.Mode, ShouldEqual, rotation.LayerOscillate)
			So(th.Snapshot().Mode, ShouldEqual, rotation.LayerOscillate)

			select {
			case ev := <-events:
				So(ev.Mode, ShouldEqual, rotation.LayerOscillate)
				So(ev.Manual, ShouldBeTrue)
				So(ev.Event, ShouldEqual, EventModeChange)
			case <-time.After(time.Second):
				So("no event", ShouldBeEmpty)
			}

			Convey("and lasts until the next scripted switch", func() {
				clock.Advance(9)
				th.Update(0.01)
				So(th.State.Mode, ShouldEqual, rotation.LayerOscillate)
				clock.Advance(1)
				th.Update(0.01)
				So(th.State.Mode, ShouldEqual, rotation.DefaultScript[0])
			})
		})

		Convey("Invalid modes are refused", func() {
			So(th.RequestMode(rotation.Mode(8)), ShouldNotBeNil)
		})

		Convey("The request queue is bounded", func() {
			var err error
			for i := 0; i <= maxPendingRequests; i++ {
				err = th.RequestMode(rotation.WholeCW)
			}
			So(err, ShouldNotBeNil)
		})

		Convey("Shutdown can be requested", func() {
			So(th.ShutdownRequested.Load(), ShouldBeFalse)
			th.RequestShutdown()
			So(th.ShutdownRequested.Load(), ShouldBeTrue)
		})
	})

	Convey("Given a theatre in debug mode", t, func() {
		cfg := config.Default()
		cfg.Debug.Enabled = true
		th := newTheatre(cfg, &utils.ManualClock{})

		Convey("Mode requests are refused instead of queued", func() {
			initial := th.State.Mode
			for i := 0; i < maxPendingRequests+4; i++ {
				err := th.RequestMode(rotation.WholeCW)
				So(errors.Is(err, ErrModesFrozen), ShouldBeTrue)
			}
			So(len(th.modeRequests), ShouldEqual, 0)

			th.Update(0.01)
			So(th.State.Mode, ShouldEqual, initial)
		})
	})
}

func TestBuildFrame(t *testing.T) {
	Convey("Given the default theatre", t, func() {
		cfg := config.Default()
		th := newTheatre(cfg, &utils.ManualClock{})
		frame := &Frame{}

		Convey("Every point is drawn, plus the fade overlay while fading", func() {
			th.BuildFrame(frame)
			So(len(frame.Calls), ShouldEqual, 45*16+1)
			So(frame.Skipped, ShouldEqual, 0)
			So(frame.Aspect, ShouldAlmostEqual, 1920.0/1080, 1e-6)

			overlay := frame.Calls[len(frame.Calls)-1]
			So(overlay.Textured, ShouldBeFalse)
			So(overlay.Scale, ShouldEqual, 2)
			So(overlay.Colour.A, ShouldEqual, 1)
		})

		Convey("Far layers are drawn first", func() {
			th.BuildFrame(frame)
			So(frame.Calls[0].Scale, ShouldBeLessThan, frame.Calls[45*16-1].Scale)
		})

		Convey("The overlay goes away once faded in", func() {
			th.Effects.UpdateFadeAlpha(100, 30)
			th.BuildFrame(frame)
			So(len(frame.Calls), ShouldEqual, 45*16)
			So(frame.Calls[len(frame.Calls)-1].Textured, ShouldBeTrue)
		})

		Convey("The frame's storage is reused", func() {
			th.BuildFrame(frame)
			first := &frame.Calls[0]
			th.BuildFrame(frame)
			So(&frame.Calls[0], ShouldPointTo, first)
		})

		Convey("Points that cannot be projected are skipped", func() {
			th.State.Layers[0].Depth = 0
			th.BuildFrame(frame)
			So(frame.Skipped, ShouldEqual, 16)
			So(len(frame.Calls), ShouldEqual, 44*16+1)
		})
	})

	Convey("Given a debug theatre with one layer at depth 500", t, func() {
		cfg := config.Default()
		cfg.Debug.Enabled = true
		th := newTheatre(cfg, &utils.ManualClock{})
		frame := &Frame{}

		// the first star point (260,0) turned a quarter lands on (0,260)
		quarterTurned := func() {
			call := frame.Calls[0]
			So(call.Offset.X(), ShouldAlmostEqual, 0, 1e-5)
			So(call.Offset.Y(), ShouldAlmostEqual, 260*300.0/500/540, 1e-5)
		}

		Convey("No overlay is drawn", func() {
			th.BuildFrame(frame)
			So(len(frame.Calls), ShouldEqual, 16)
			So(frame.Calls[0].Offset.X(), ShouldAlmostEqual, 260*300.0/500/960, 1e-5)
		})

		Convey("Whole scene modes rotate by the scene angle", func() {
			th.State.Mode = rotation.WholeCCW
			th.State.SceneAngle = 90
			th.BuildFrame(frame)
			quarterTurned()
		})

		Convey("Layer modes rotate by the layer angle", func() {
			th.State.Mode = rotation.LayerCCW
			th.State.Layers[0].RotationAngle = 90
			th.BuildFrame(frame)
			quarterTurned()
		})

		Convey("Frozen layers are drawn unrotated", func() {
			th.State.Mode = rotation.FrozenLayerRotation
			th.State.Layers[0].RotationAngle = 90
			th.BuildFrame(frame)
			So(frame.Calls[0].Offset.Y(), ShouldAlmostEqual, 0, 1e-5)
		})
	})
}

