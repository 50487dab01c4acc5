package theatre

import (
	"slices"

	"github.com/fosdem/layertunnel/lib/layer"
	"github.com/fosdem/layertunnel/lib/utils"
)

// Scheduler keeps a steady stream of layers flowing through the tunnel,
// one every LayerDistance units of travel regardless of frame rate
type Scheduler struct {
	LayerDistance   float32
	RemoveThreshold float32
	SpawnDepth      float32
	Pattern         layer.Pattern
}

type StepResult struct {
	Spawned int
	Retired int
}

// Step moves every layer by movement, retires the ones that passed the
// remove threshold and spawns one layer per LayerDistance travelled
func (s *Scheduler) Step(state *SceneState, movement float32, newColour func() utils.Colour) StepResult {
	var res StepResult

	state.ZAccumulator += movement
	for state.ZAccumulator >= s.LayerDistance {
		state.ZAccumulator -= s.LayerDistance
		res.Spawned++
	}

	for _, l := range state.Layers {
		if l.Move(movement, s.RemoveThreshold) {
			res.Retired++
		}
	}
	// removal only after the sweep so the slice is not modified under it
	if res.Retired > 0 {
		state.Layers = slices.DeleteFunc(state.Layers, func(l *layer.Layer) bool {
			return l.Depth < s.RemoveThreshold
		})
	}

	if res.Spawned > 0 {
		spawned := make([]*layer.Layer, res.Spawned)
		// the newest layer goes first, as if each was inserted at the front
		for i := range spawned {
			spawned[len(spawned)-1-i] = layer.New(s.Pattern, newColour(), s.SpawnDepth)
		}
		state.Layers = append(spawned, state.Layers...)
	}

	return res
}
