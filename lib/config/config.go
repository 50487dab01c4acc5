package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fosdem/layertunnel/lib/layer"
	"github.com/fosdem/layertunnel/lib/rotation"
	"github.com/fosdem/layertunnel/lib/utils"
	yaml "github.com/goccy/go-yaml"
)

type Config struct {
	Window   WindowCfg
	Viewport ViewportCfg

	// FPS is the simulation rate; rendering follows the display
	FPS              float32 `yaml:"fps"`
	MaxStepsPerFrame int     `yaml:"max_steps_per_frame"`

	Texture TextureCfg
	Pattern PatternCfg
	Debug   DebugCfg

	Motion     MotionCfg
	Fade       FadeCfg
	AlphaClamp float32 `yaml:"alpha_clamp"`
	Rotation   RotationCfg
	Modes      ModesCfg

	// Seed makes colours reproducible when set
	Seed *uint64

	BackgroundColour string `yaml:"background_colour"`
	LogLevel         string `yaml:"log_level"`

	Api *ApiCfg
}

type WindowCfg struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	Monitor    int
	VSync      bool `yaml:"vsync"`
}

// ViewportCfg is the virtual screen the projection works in
type ViewportCfg struct {
	Width  float32
	Height float32
}

type TextureCfg struct {
	Path    CfgPath
	Inotify bool
}

type PatternCfg struct {
	Kind   string
	Points int
	Radius float32
}

type DebugCfg struct {
	Enabled bool
	InitZ   float32 `yaml:"init_z"`
	Colour  string
	// FPS replaces the top level fps while debugging
	FPS float32 `yaml:"fps"`
}

type MotionCfg struct {
	StartSpeed        float32 `yaml:"start_speed"`
	IdleSpeed         float32 `yaml:"idle_speed"`
	SpeedRamp         float32 `yaml:"speed_ramp"`
	LayerDistance     float32 `yaml:"layer_distance"`
	RemoveDistance    float32 `yaml:"remove_distance"`
	InitFrontDistance float32 `yaml:"init_front_distance"`
	InitZ             float32 `yaml:"init_z"`
	FocalLength       float32 `yaml:"focal_length"`
	BaseImageScale    float32 `yaml:"base_image_scale"`
}

type FadeCfg struct {
	InitialAlpha float32 `yaml:"initial_alpha"`
	Speed        float32
}

type RotationCfg struct {
	Whole SpinCfg
	Layer SpinCfg
}

type SpinCfg struct {
	// Speed is in degrees per second
	Speed            float32
	OscillationSpeed float32 `yaml:"oscillation_speed"`
	SwingAmplitude   float32 `yaml:"swing_amplitude"`
}

type ModesCfg struct {
	CycleSeconds float64 `yaml:"cycle_seconds"`
	Initial      rotation.Mode
	Script       []rotation.Mode
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

// Default returns the tuned values the effect was designed around
func Default() *Config {
	return &Config{
		Window: WindowCfg{
			Title:  "layertunnel",
			Width:  1920,
			Height: 1080,
			VSync:  true,
		},
		Viewport:         ViewportCfg{Width: 1920, Height: 1080},
		FPS:              120,
		MaxStepsPerFrame: 8,
		Pattern: PatternCfg{
			Kind:   "star",
			Points: 16,
			Radius: 300,
		},
		Debug: DebugCfg{
			InitZ:  500,
			Colour: "#ffffffff",
			FPS:    60,
		},
		Motion: MotionCfg{
			StartSpeed:        30,
			IdleSpeed:         450,
			SpeedRamp:         1,
			LayerDistance:     100,
			RemoveDistance:    30,
			InitFrontDistance: 500,
			InitZ:             5000,
			FocalLength:       300,
			BaseImageScale:    0.15,
		},
		Fade: FadeCfg{
			InitialAlpha: 1,
			Speed:        0.25,
		},
		AlphaClamp: 0.35,
		Rotation: RotationCfg{
			Whole: SpinCfg{Speed: 20, OscillationSpeed: 0.35, SwingAmplitude: 25},
			Layer: SpinCfg{Speed: 20, OscillationSpeed: 0.8, SwingAmplitude: 30},
		},
		Modes: ModesCfg{
			CycleSeconds: 10,
			Initial:      rotation.Off,
			Script:       append([]rotation.Mode(nil), rotation.DefaultScript...),
		},
		BackgroundColour: "#000000ff",
		LogLevel:         "info",
	}
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", filename, err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			slog.Warn(fmt.Sprintf("could not close %s: %s", filename, err), slog.String("module", "config"))
		}
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	unmarshalBase = filepath.Dir(absFilename)
	defer func() { unmarshalBase = "" }()

	m := yaml.NewDecoder(f)
	cfg := Default()
	err = m.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", filename, err)
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return invalid("viewport", "width and height must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window", "width and height must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.FPS <= 0 {
		return invalid("fps", "must be positive, got %g", c.FPS)
	}
	if c.MaxStepsPerFrame < 0 {
		return invalid("max_steps_per_frame", "must not be negative")
	}

	if err := c.Motion.Validate(); err != nil {
		return err
	}
	if err := c.Fade.Validate(); err != nil {
		return err
	}
	if c.AlphaClamp < 0 || c.AlphaClamp > 1 {
		return invalid("alpha_clamp", "must be within [0,1], got %g", c.AlphaClamp)
	}
	if err := c.Rotation.Whole.Validate("rotation.whole"); err != nil {
		return err
	}
	if err := c.Rotation.Layer.Validate("rotation.layer"); err != nil {
		return err
	}
	if err := c.Modes.Validate(); err != nil {
		return err
	}
	if _, err := layer.MakePattern(c.Pattern.Kind, c.Pattern.Points, c.Pattern.Radius); err != nil {
		return &ConfigurationError{Field: "pattern", Reason: "cannot build pattern", Err: err}
	}

	if c.Debug.Enabled && c.Debug.InitZ <= 0 {
		return invalid("debug.init_z", "must be positive, got %g", c.Debug.InitZ)
	}
	if c.Debug.Enabled && c.Debug.FPS <= 0 {
		return invalid("debug.fps", "must be positive, got %g", c.Debug.FPS)
	}
	if !utils.ColourValidate(c.Debug.Colour) {
		return invalid("debug.colour", "%s is not a valid RGBA hex colour", c.Debug.Colour)
	}
	if !utils.ColourValidate(c.BackgroundColour) {
		return invalid("background_colour", "%s is not a valid RGBA hex colour", c.BackgroundColour)
	}
	if _, err := c.SlogLevel(); err != nil {
		return &ConfigurationError{Field: "log_level", Reason: "unknown level", Err: err}
	}
	if c.Texture.Inotify && c.Texture.Path == "" {
		return invalid("texture.inotify", "cannot watch a texture without path")
	}
	if c.Api != nil && c.Api.Bind == "" {
		return invalid("api.bind", "must be specified when the api is enabled")
	}
	return nil
}

func (m *MotionCfg) Validate() error {
	if m.LayerDistance <= 0 {
		return invalid("motion.layer_distance", "must be positive, got %g", m.LayerDistance)
	}
	if m.RemoveDistance <= 0 {
		return invalid("motion.remove_distance", "must be positive so that projected depths stay positive, got %g", m.RemoveDistance)
	}
	if m.FocalLength <= 0 {
		return invalid("motion.focal_length", "must be positive, got %g", m.FocalLength)
	}
	if m.BaseImageScale <= 0 {
		return invalid("motion.base_image_scale", "must be positive, got %g", m.BaseImageScale)
	}
	if m.StartSpeed < 0 {
		return invalid("motion.start_speed", "must not be negative, got %g", m.StartSpeed)
	}
	if m.IdleSpeed < m.StartSpeed {
		return invalid("motion.idle_speed", "must not be below start_speed (%g), got %g", m.StartSpeed, m.IdleSpeed)
	}
	if m.SpeedRamp < 0 {
		return invalid("motion.speed_ramp", "must not be negative, got %g", m.SpeedRamp)
	}
	if m.InitFrontDistance < m.RemoveDistance {
		return invalid("motion.init_front_distance", "must not be below remove_distance (%g), got %g", m.RemoveDistance, m.InitFrontDistance)
	}
	if m.InitZ <= m.InitFrontDistance {
		return invalid("motion.init_z", "must be beyond init_front_distance (%g), got %g", m.InitFrontDistance, m.InitZ)
	}
	return nil
}

func (f *FadeCfg) Validate() error {
	if f.InitialAlpha < 0 || f.InitialAlpha > 1 {
		return invalid("fade.initial_alpha", "must be within [0,1], got %g", f.InitialAlpha)
	}
	if f.Speed <= 0 {
		return invalid("fade.speed", "must be positive or the fade never ends, got %g", f.Speed)
	}
	return nil
}

func (s *SpinCfg) Validate(field string) error {
	if s.Speed < 0 {
		return invalid(field+".speed", "must not be negative, got %g", s.Speed)
	}
	if s.OscillationSpeed < 0 {
		return invalid(field+".oscillation_speed", "must not be negative, got %g", s.OscillationSpeed)
	}
	if s.SwingAmplitude < 0 || s.SwingAmplitude > 360 {
		return invalid(field+".swing_amplitude", "must be within [0,360], got %g", s.SwingAmplitude)
	}
	return nil
}

func (m *ModesCfg) Validate() error {
	if len(m.Script) == 0 {
		return &ConfigurationError{Field: "modes.script", Reason: "at least one mode is required", Err: rotation.ErrEmptyScript}
	}
	for i, mode := range m.Script {
		if !mode.Valid() {
			return invalid("modes.script", "entry %d (%d) is not a rotation mode", i, mode)
		}
	}
	if !m.Initial.Valid() {
		return invalid("modes.initial", "%d is not a rotation mode", m.Initial)
	}
	if m.CycleSeconds <= 0 {
		return invalid("modes.cycle_seconds", "must be positive, got %g", m.CycleSeconds)
	}
	return nil
}

// SimulationRate is the fixed step rate the frame loop should run at
func (c *Config) SimulationRate() float32 {
	if c.Debug.Enabled {
		return c.Debug.FPS
	}
	return c.FPS
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

// IsConfigurationError reports whether err was caused by a bad config value
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("Window:\n")
	b.WriteString(fmt.Sprintf("  %dx%d fullscreen=%t vsync=%t\n", c.Window.Width, c.Window.Height, c.Window.Fullscreen, c.Window.VSync))
	b.WriteString(fmt.Sprintf("  viewport %gx%g, simulated at %g fps\n", c.Viewport.Width, c.Viewport.Height, c.SimulationRate()))

	b.WriteString("\nLayers:\n")
	b.WriteString(fmt.Sprintf("  pattern %s (%d points, radius %g)\n", c.Pattern.Kind, c.Pattern.Points, c.Pattern.Radius))
	b.WriteString(fmt.Sprintf("  spawned every %g at depth %g, retired below %g\n", c.Motion.LayerDistance, c.Motion.InitZ, c.Motion.RemoveDistance))
	b.WriteString(fmt.Sprintf("  speed %g -> %g, focal length %g\n", c.Motion.StartSpeed, c.Motion.IdleSpeed, c.Motion.FocalLength))

	b.WriteString("\nModes:\n")
	names := make([]string, len(c.Modes.Script))
	for i, m := range c.Modes.Script {
		names[i] = m.String()
	}
	b.WriteString(fmt.Sprintf("  every %gs: %s\n", c.Modes.CycleSeconds, strings.Join(names, ", ")))

	if c.Texture.Path != "" {
		b.WriteString(fmt.Sprintf("\nTexture: %s\n", c.Texture.Path))
	}
	if c.Debug.Enabled {
		b.WriteString("\nDebug mode enabled\n")
	}
	if c.Api != nil {
		b.WriteString(fmt.Sprintf("\nApi: %s\n", c.Api.Bind))
	}

	return b.String()
}
