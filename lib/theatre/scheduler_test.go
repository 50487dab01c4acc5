package theatre

import (
	"testing"

	"github.com/fosdem/layertunnel/lib/layer"
	"github.com/fosdem/layertunnel/lib/utils"
	. "github.com/smartystreets/goconvey/convey"
)

func white() utils.Colour {
	return utils.Colour{R: 1, G: 1, B: 1, A: 1}
}

func TestScheduler(t *testing.T) {
	Convey("Given a scheduler spawning every 100 units", t, func() {
		s := Scheduler{
			LayerDistance:   100,
			RemoveThreshold: 30,
			SpawnDepth:      5000,
			Pattern:         layer.Star(),
		}
		state := &SceneState{}

		Convey("Three steps of 100 spawn three layers", func() {
			spawned := 0
			for i := 0; i < 3; i++ {
				spawned += s.Step(state, 100, white).Spawned
			}
			So(spawned, ShouldEqual, 3)
			So(len(state.Layers), ShouldEqual, 3)
			So(state.ZAccumulator, ShouldEqual, 0)
		})

		Convey("Three steps of 150 spawn four layers and carry the rest", func() {
			spawned := 0
			for i := 0; i < 3; i++ {
				spawned += s.Step(state, 150, white).Spawned
			}
			So(spawned, ShouldEqual, 4)
			So(state.ZAccumulator, ShouldEqual, 50)
		})

		Convey("Small steps spawn nothing until a full distance is covered", func() {
			for i := 0; i < 9; i++ {
				So(s.Step(state, 10, white).Spawned, ShouldEqual, 0)
			}
			So(s.Step(state, 10, white).Spawned, ShouldEqual, 1)
		})

		Convey("New layers start at the spawn depth in front of the list", func() {
			state.Layers = []*layer.Layer{layer.New(s.Pattern, white(), 1000)}
			s.Step(state, 100, white)
			So(len(state.Layers), ShouldEqual, 2)
			So(state.Layers[0].Depth, ShouldEqual, 5000)
			So(state.Layers[1].Depth, ShouldEqual, 900)
		})

		Convey("Layers past the threshold are retired after the sweep", func() {
			state.Layers = []*layer.Layer{
				layer.New(s.Pattern, white(), 1000),
				layer.New(s.Pattern, white(), 40),
				layer.New(s.Pattern, white(), 35),
			}
			res := s.Step(state, 6, white)
			So(res.Retired, ShouldEqual, 1)
			So(len(state.Layers), ShouldEqual, 2)
			So(state.Layers[0].Depth, ShouldEqual, 994)
			So(state.Layers[1].Depth, ShouldEqual, 34)
		})

		Convey("All spawned layers share the pattern", func() {
			s.Step(state, 300, white)
			for _, l := range state.Layers {
				So(&l.Points[0], ShouldPointTo, &s.Pattern[0])
			}
		})
	})
}
