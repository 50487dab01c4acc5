package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LayersSpawned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layertunnel_layers_spawned_total",
		Help: "Total number of layers spawned at the far end of the tunnel",
	})
	LayersRetired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layertunnel_layers_retired_total",
		Help: "Total number of layers retired after passing the camera threshold",
	})
	ActiveLayers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "layertunnel_active_layers",
		Help: "Number of layers currently in the tunnel",
	})
	RotationMode = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "layertunnel_rotation_mode",
		Help: "Currently active rotation mode (0-7)",
	})
	ModeChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "layertunnel_mode_changes_total",
		Help: "Total number of rotation mode changes",
	}, []string{"source"})
	ProjectionErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layertunnel_projection_errors_total",
		Help: "Total number of points skipped because they could not be projected",
	})
	UpdateSteps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layertunnel_update_steps_total",
		Help: "Total number of simulation steps run",
	})
	DroppedSteps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layertunnel_update_steps_dropped_total",
		Help: "Total number of simulation steps dropped because a frame fell too far behind",
	})
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layertunnel_frames_rendered_total",
		Help: "Total number of frames submitted for drawing",
	})
	DrawCalls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "layertunnel_draw_calls_total",
		Help: "Total number of quads submitted for drawing",
	})
	TextureReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "layertunnel_texture_reloads_total",
		Help: "Total number of texture reloads by result",
	}, []string{"result"})
)

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
