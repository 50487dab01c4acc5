package kbdctl

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/layertunnel/lib/rotation"
	"github.com/fosdem/layertunnel/lib/sink/windowsink"
	"github.com/fosdem/layertunnel/lib/theatre"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Controller is the part of the theatre the keyboard can reach
type Controller interface {
	RequestMode(m rotation.Mode) error
	RequestShutdown()
}

func SetupShortcutKeys(t *theatre.Theatre, ws *windowsink.WindowSink) {
	ws.Window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		HandleKey(t, key, action, mods)
	})
}

func Poll() {
	glfw.PollEvents()
}

// HandleKey maps digits to rotation modes and Ctrl+Shift+Q to quitting
func HandleKey(c Controller, key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		if key == glfw.KeyQ &&
			mods&glfw.ModControl != 0 &&
			mods&glfw.ModShift != 0 {
			log("told to quit, exiting")
			c.RequestShutdown()
		}
		return
	}
	if action != glfw.Press {
		return
	}
	if key < glfw.Key0 || key > glfw.Key9 {
		return
	}
	selected := rotation.Mode(key - glfw.Key0)
	if !selected.Valid() {
		log("Mode %d out of range", selected)
		return
	}
	log("set mode %s", selected)
	if err := c.RequestMode(selected); err != nil {
		slog.Error(err.Error(), slog.String("module", "kbdctl"))
	}
}

func log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "kbdctl"))
}
