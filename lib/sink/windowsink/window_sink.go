package windowsink

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/layertunnel/lib/config"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowSink is the on-screen output. It owns the GL context.
type WindowSink struct {
	cfg    config.WindowCfg
	Window *glfw.Window
}

func New(cfg config.WindowCfg) *WindowSink {
	return &WindowSink{cfg: cfg}
}

func (w *WindowSink) Start() error {
	if w.Window != nil {
		return nil
	}
	window, err := w.makeWindow()
	if err != nil {
		return err
	}
	w.Window = window
	return nil
}

// FramebufferSize is the drawable size in pixels, which differs from the
// window size on scaled displays
func (w *WindowSink) FramebufferSize() (int, int) {
	return w.Window.GetFramebufferSize()
}

func (w *WindowSink) Swap() {
	w.Window.SwapBuffers()
}

func (w *WindowSink) ShouldClose() bool {
	return w.Window.ShouldClose()
}

func (w *WindowSink) Stop() {
	if w.Window != nil {
		w.Window.Destroy()
		w.Window = nil
	}
	glfw.Terminate()
}

// Clock reads glfw's timer, which starts when the window is created
type Clock struct{}

func (Clock) Seconds() float64 {
	return glfw.GetTime()
}

func (w *WindowSink) makeWindow() (*glfw.Window, error) {
	w.debug("Initializing window")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor
	width, height := w.cfg.Width, w.cfg.Height
	if w.cfg.Fullscreen {
		monitors := glfw.GetMonitors()
		if w.cfg.Monitor < 0 || w.cfg.Monitor >= len(monitors) {
			return nil, fmt.Errorf("monitor %d not found, %d connected", w.cfg.Monitor, len(monitors))
		}
		monitor = monitors[w.cfg.Monitor]
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
		w.log("Going fullscreen on %s at %dx%d", monitor.GetName(), width, height)
	}

	window, err := glfw.CreateWindow(width, height, w.cfg.Title, monitor, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create window: %w", err)
	}

	window.MakeContextCurrent()
	if w.cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return window, nil
}

// LogGLInfo must be called after gl.Init
func (w *WindowSink) LogGLInfo() {
	vendor := gl.GoStr(gl.GetString(gl.VENDOR))
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	version := gl.GoStr(gl.GetString(gl.VERSION))

	w.log("OpenGL version %s / %s / %s", vendor, renderer, version)
}

func (w *WindowSink) log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "window"))
}

func (w *WindowSink) debug(msg string, args ...interface{}) {
	slog.Debug(fmt.Sprintf(msg, args...), slog.String("module", "window"))
}
