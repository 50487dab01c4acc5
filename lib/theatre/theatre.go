package theatre

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/fosdem/layertunnel/lib/config"
	"github.com/fosdem/layertunnel/lib/effects"
	"github.com/fosdem/layertunnel/lib/layer"
	"github.com/fosdem/layertunnel/lib/metrics"
	"github.com/fosdem/layertunnel/lib/projector"
	"github.com/fosdem/layertunnel/lib/rotation"
	"github.com/fosdem/layertunnel/lib/utils"
)

const maxPendingRequests = 16

// Theatre owns the scene and drives it from one goroutine: Update advances
// the simulation, BuildFrame turns the result into draw calls. Other
// goroutines may only queue requests and read snapshots.
type Theatre struct {
	State     SceneState
	Effects   *effects.Engine
	Cycler    *rotation.Cycler
	Scheduler Scheduler
	Camera    projector.Camera
	Debug     bool

	ShutdownRequested atomic.Bool

	layersSpawned uint64
	layersRetired uint64

	modeRequests chan rotation.Mode

	snapshot      Snapshot
	snapshotMutex sync.RWMutex

	listener      map[string][]EventListener
	listenerMutex sync.Mutex
}

func New(cfg *config.Config, clock utils.Clock, rand effects.RandomSource) (*Theatre, error) {
	pattern, err := layer.MakePattern(cfg.Pattern.Kind, cfg.Pattern.Points, cfg.Pattern.Radius)
	if err != nil {
		return nil, &config.ConfigurationError{Field: "pattern", Reason: "cannot build pattern", Err: err}
	}

	cycler, err := rotation.NewCycler(cfg.Modes.Script, cfg.Modes.Initial, cfg.Modes.CycleSeconds, clock)
	if err != nil {
		return nil, &config.ConfigurationError{Field: "modes", Reason: "cannot build mode cycler", Err: err}
	}
	if cfg.Motion.LayerDistance <= 0 {
		return nil, &config.ConfigurationError{
			Field:  "motion.layer_distance",
			Reason: fmt.Sprintf("must be positive, got %g", cfg.Motion.LayerDistance),
		}
	}

	t := &Theatre{
		Effects: effects.New(effectSettings(cfg), rand),
		Cycler:  cycler,
		Scheduler: Scheduler{
			LayerDistance:   cfg.Motion.LayerDistance,
			RemoveThreshold: cfg.Motion.RemoveDistance,
			SpawnDepth:      cfg.Motion.InitZ,
			Pattern:         pattern,
		},
		Camera: projector.Camera{
			FocalLength: cfg.Motion.FocalLength,
			BaseScale:   cfg.Motion.BaseImageScale,
			Width:       cfg.Viewport.Width,
			Height:      cfg.Viewport.Height,
		},
		Debug:        cfg.Debug.Enabled,
		modeRequests: make(chan rotation.Mode, maxPendingRequests),
		listener:     make(map[string][]EventListener),
	}
	t.State.Speed = cfg.Motion.StartSpeed
	t.State.Mode = cycler.Current()

	if t.Debug {
		t.State.Layers = []*layer.Layer{
			layer.New(pattern, utils.ColourParse(cfg.Debug.Colour), cfg.Debug.InitZ),
		}
		t.log("Debug mode: single layer at depth %g, updates disabled", cfg.Debug.InitZ)
	} else {
		initial := t.Effects.CreateInitialLayers(pattern)
		// far to near
		slices.Reverse(initial)
		t.State.Layers = initial
		t.log("Populated tunnel with %d layers", len(initial))
	}

	t.publish()
	return t, nil
}

func effectSettings(cfg *config.Config) effects.Settings {
	return effects.Settings{
		InitialFadeAlpha:  cfg.Fade.InitialAlpha,
		FadeSpeed:         cfg.Fade.Speed,
		AlphaClamp:        cfg.AlphaClamp,
		IdleSpeed:         cfg.Motion.IdleSpeed,
		SpeedRamp:         cfg.Motion.SpeedRamp,
		InitFrontDistance: cfg.Motion.InitFrontDistance,
		InitZ:             cfg.Motion.InitZ,
		LayerDistance:     cfg.Motion.LayerDistance,
		Whole: effects.Spin{
			Speed:            cfg.Rotation.Whole.Speed,
			OscillationSpeed: cfg.Rotation.Whole.OscillationSpeed,
			SwingAmplitude:   cfg.Rotation.Whole.SwingAmplitude,
		},
		Layer: effects.Spin{
			Speed:            cfg.Rotation.Layer.Speed,
			OscillationSpeed: cfg.Rotation.Layer.OscillationSpeed,
			SwingAmplitude:   cfg.Rotation.Layer.SwingAmplitude,
		},
	}
}

// Update advances the scene by deltaTime seconds
func (t *Theatre) Update(deltaTime float32) {
	if t.Debug {
		return
	}
	metrics.UpdateSteps.Inc()

	t.applyModeRequests()
	if mode, switched := t.Cycler.Poll(); switched {
		t.setMode(mode, false)
	}

	if !t.Effects.IsInitialized() {
		t.State.Speed = t.Effects.UpdateFadeAlpha(deltaTime, t.State.Speed)
		if t.Effects.IsInitialized() {
			t.log("Fade-in complete at speed %g", t.State.Speed)
		}
	}

	mode := t.State.Mode
	if mode.UpdatesLayers() {
		for _, l := range t.State.Layers {
			l.RotationAngle = t.Effects.CalculateLayerAngle(mode, l, deltaTime)
		}
	}

	res := t.Scheduler.Step(&t.State, t.State.Speed*deltaTime, t.Effects.GenerateRandomRGBA)
	t.layersSpawned += uint64(res.Spawned)
	t.layersRetired += uint64(res.Retired)
	metrics.LayersSpawned.Add(float64(res.Spawned))
	metrics.LayersRetired.Add(float64(res.Retired))

	if mode.Scope() == rotation.ScopeWhole {
		t.State.SceneAngle = t.Effects.CalculateRotationAngle(mode, t.State.SceneAngle, deltaTime)
	}

	t.publish()
}

var ErrModesFrozen = errors.New("mode changes are disabled in debug mode")

// RequestMode queues a manual mode switch. It is applied on the next update
// and lasts until the cycler's next scripted switch.
func (t *Theatre) RequestMode(m rotation.Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%d is not a rotation mode", m)
	}
	// Update never drains the queue in debug mode
	if t.Debug {
		return ErrModesFrozen
	}
	select {
	case t.modeRequests <- m:
		return nil
	default:
		return fmt.Errorf("too many pending mode requests")
	}
}

func (t *Theatre) RequestShutdown() {
	t.ShutdownRequested.Store(true)
}

func (t *Theatre) applyModeRequests() {
	for {
		select {
		case m := <-t.modeRequests:
			if err := t.Cycler.Force(m); err != nil {
				t.error("Could not force mode: %s", err)
				continue
			}
			t.setMode(m, true)
		default:
			return
		}
	}
}

func (t *Theatre) setMode(m rotation.Mode, manual bool) {
	if manual {
		metrics.ModeChanges.WithLabelValues("manual").Inc()
	} else {
		metrics.ModeChanges.WithLabelValues("script").Inc()
	}
	metrics.RotationMode.Set(float64(m))
	t.debug("Rotation mode %s -> %s", t.State.Mode, m)
	t.State.Mode = m
	t.invoke(EventModeChange, EventDataModeChange{Event: EventModeChange, Mode: m, Manual: manual})
}

func (t *Theatre) publish() {
	metrics.ActiveLayers.Set(float64(len(t.State.Layers)))

	s := Snapshot{
		ActiveLayers:   len(t.State.Layers),
		Mode:           t.State.Mode,
		ModeNumber:     int(t.State.Mode),
		SceneAngle:     t.State.SceneAngle,
		Speed:          t.State.Speed,
		FadeAlpha:      t.Effects.FadeAlpha(),
		Initialized:    t.Effects.IsInitialized(),
		Debug:          t.Debug,
		LayersSpawned:  t.layersSpawned,
		LayersRetired:  t.layersRetired,
		TimeToNextMode: t.Cycler.TimeToNext(),
	}
	t.snapshotMutex.Lock()
	t.snapshot = s
	t.snapshotMutex.Unlock()
}

// Snapshot returns the state as of the last update. Safe for concurrent use.
func (t *Theatre) Snapshot() Snapshot {
	t.snapshotMutex.RLock()
	defer t.snapshotMutex.RUnlock()
	return t.snapshot
}

func (t *Theatre) log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "theatre"))
}

func (t *Theatre) debug(msg string, args ...interface{}) {
	slog.Debug(fmt.Sprintf(msg, args...), slog.String("module", "theatre"))
}

func (t *Theatre) error(msg string, args ...interface{}) {
	slog.Error(fmt.Sprintf(msg, args...), slog.String("module", "theatre"))
}
