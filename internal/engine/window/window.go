// Package window creates the OS window and its OpenGL context.
//
// Two backends are available: SDL2 (the default) and GLFW. Both request an
// OpenGL 4.1 core profile, the highest version macOS supports.
package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Faultbox/glsandbox/internal/config"
	"github.com/Faultbox/glsandbox/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// ErrInit is returned when the windowing layer or the window itself cannot be
// created.
var ErrInit = errors.New("window init failed")

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	// Backend is config.BackendSDL or config.BackendGLFW, already
	// normalised by config.Validate. Empty selects SDL.
	Backend string
}

// Window is an open window with a current OpenGL context.
type Window interface {
	// PollEvents processes pending platform events into the queue.
	PollEvents(q *input.Queue)
	SwapBuffers()
	// DrawableSize is the framebuffer size in pixels, the unit glViewport
	// and glReadPixels use. On HiDPI displays it exceeds the window size.
	// Resize events carry the same unit.
	DrawableSize() (int, int)
	SetTitle(title string)
	Close()
}

// New opens a window with the configured backend. Failures wrap ErrInit.
func New(cfg Config) (Window, error) {
	switch cfg.Backend {
	case "", config.BackendSDL:
		w, err := newSDL(cfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	case config.BackendGLFW:
		w, err := newGLFW(cfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrInit, cfg.Backend)
	}
}

func initError(step string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInit, step, err)
}
