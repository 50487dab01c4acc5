package mixer

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/fosdem/layertunnel/lib/api"
	"github.com/fosdem/layertunnel/lib/config"
	"github.com/fosdem/layertunnel/lib/kbdctl"
	"github.com/fosdem/layertunnel/lib/metrics"
	"github.com/fosdem/layertunnel/lib/rendering"
	"github.com/fosdem/layertunnel/lib/rendering/shaders"
	"github.com/fosdem/layertunnel/lib/sink/windowsink"
	"github.com/fosdem/layertunnel/lib/stats"
	"github.com/fosdem/layertunnel/lib/texture"
	"github.com/fosdem/layertunnel/lib/theatre"
	"github.com/fosdem/layertunnel/lib/utils"
)

// NewRand returns the colour source, seeded from the config when a seed is
// set so that runs can be reproduced
func NewRand(cfg *config.Config) *rand.Rand {
	if cfg.Seed != nil {
		return rand.New(rand.NewPCG(*cfg.Seed, *cfg.Seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// MakeWindowAndMix opens the window and runs the frame loop until asked to
// stop by the keyboard, the API, the window manager or ctx. Must be called
// from the main thread.
func MakeWindowAndMix(ctx context.Context, cfg *config.Config) error {
	ws := windowsink.New(cfg.Window)
	if err := ws.Start(); err != nil {
		return err
	}
	defer ws.Stop()

	err := rendering.Init()
	if err != nil {
		return fmt.Errorf("could not initialise renderer: %w", err)
	}
	ws.LogGLInfo()

	// glfw is initialised now, so its timer can drive the scene
	clock := windowsink.Clock{}

	t, err := theatre.New(cfg, clock, NewRand(cfg))
	if err != nil {
		return fmt.Errorf("could not build theatre: %w", err)
	}

	src, err := texture.New(string(cfg.Texture.Path), cfg.Texture.Inotify)
	if err != nil {
		return fmt.Errorf("could not load texture: %w", err)
	}
	src.Start()
	defer src.Stop()

	program, err := shaders.BuildGLProgram(&shaders.ShaderData{GLSLVersion: shaders.DefaultGLSLVersion}, "")
	if err != nil {
		return fmt.Errorf("could not init GL program: %w", err)
	}

	st := stats.New(clock)
	api.ServeInBackground(cfg, t, st)

	kbdctl.SetupShortcutKeys(t, ws)

	glvars := rendering.NewGLVars(program, rendering.NewTexture(src), utils.ColourParse(cfg.BackgroundColour))
	glvars.Start()
	defer glvars.Delete()

	loop(ctx, t, ws, glvars, st, utils.NewFixedStep(cfg.SimulationRate(), cfg.MaxStepsPerFrame), clock)
	return nil
}

func loop(ctx context.Context, t *theatre.Theatre, ws *windowsink.WindowSink, glvars *rendering.GLVars, st *stats.Stats, fixedStep *utils.FixedStep, clock utils.Clock) {
	deltaTimer := utils.DeltaTimer{Clock: clock}
	frame := &theatre.Frame{}

	for !t.ShutdownRequested.Load() {
		if ctx.Err() != nil {
			slog.Info("Interrupted, exiting", slog.String("module", "mixer"))
			return
		}

		dt := deltaTimer.Next()
		steps := fixedStep.Advance(dt)
		if fixedStep.Dropped > 0 {
			metrics.DroppedSteps.Add(float64(fixedStep.Dropped))
			slog.Debug(fmt.Sprintf("Fell behind, dropped %d steps", fixedStep.Dropped), slog.String("module", "mixer"))
		}
		for i := 0; i < steps; i++ {
			t.Update(fixedStep.StepSeconds())
		}

		t.BuildFrame(frame)
		w, h := ws.FramebufferSize()
		glvars.StartFrame(w, h)
		glvars.DrawFrame(frame)
		ws.Swap()
		if ws.ShouldClose() {
			t.RequestShutdown()
		}

		// Maintenance
		st.Update(t.Snapshot(), rendering.TextureUploadCounter)
		kbdctl.Poll()
	}
}

