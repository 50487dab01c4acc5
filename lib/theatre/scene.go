package theatre

import (
	"github.com/fosdem/layertunnel/lib/layer"
	"github.com/fosdem/layertunnel/lib/rotation"
)

// SceneState is everything the simulation mutates between frames.
// Layers are kept far to near, which is also the order they are drawn in.
type SceneState struct {
	Layers       []*layer.Layer
	ZAccumulator float32
	Speed        float32
	Mode         rotation.Mode
	// SceneAngle is the whole scene rotation in degrees, kept in [0,360)
	SceneAngle float32
}

// Snapshot is a copy of the scene's vital signs that is safe to hand to
// other goroutines
type Snapshot struct {
	ActiveLayers   int           `json:"active_layers"`
	Mode           rotation.Mode `json:"mode"`
	ModeNumber     int           `json:"mode_number"`
	SceneAngle     float32       `json:"scene_angle"`
	Speed          float32       `json:"speed"`
	FadeAlpha      float32       `json:"fade_alpha"`
	Initialized    bool          `json:"initialized"`
	Debug          bool          `json:"debug"`
	LayersSpawned  uint64        `json:"layers_spawned"`
	LayersRetired  uint64        `json:"layers_retired"`
	TimeToNextMode float64       `json:"time_to_next_mode"`
}
