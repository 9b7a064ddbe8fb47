package window

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/glsandbox/internal/config"
	"github.com/Faultbox/glsandbox/internal/engine/input"
	"github.com/Faultbox/glsandbox/internal/logger"
)

// glfwWindow wraps a GLFW window. GLFW delivers events through callbacks,
// so they are buffered in pending until PollEvents hands them out.
type glfwWindow struct {
	config  Config
	window  *glfw.Window
	pending []input.Event
}

func newGLFW(cfg Config) (*glfwWindow, error) {
	logger.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, initError("glfwInit", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, initError("glfwCreateWindow", err)
	}
	win.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &glfwWindow{config: cfg, window: win}
	win.SetKeyCallback(w.onKey)
	win.SetFramebufferSizeCallback(w.onResize)

	logger.Info("window created",
		zap.String("backend", config.BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

func (w *glfwWindow) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	switch action {
	case glfw.Press:
		w.pending = append(w.pending, input.Event{Type: input.EventKeyDown, Key: glfwKey(key)})
	case glfw.Release:
		w.pending = append(w.pending, input.Event{Type: input.EventKeyUp, Key: glfwKey(key)})
	}
}

func (w *glfwWindow) onResize(_ *glfw.Window, width, height int) {
	w.pending = append(w.pending, input.Event{
		Type:   input.EventWindowResize,
		Width:  width,
		Height: height,
	})
}

func glfwKey(key glfw.Key) input.Key {
	switch key {
	case glfw.KeyEscape:
		return input.KeyEscape
	case glfw.KeyR:
		return input.KeyR
	case glfw.KeySpace:
		return input.KeySpace
	default:
		return input.KeyUnknown
	}
}

// PollEvents processes GLFW events and forwards them to q.
func (w *glfwWindow) PollEvents(q *input.Queue) {
	glfw.PollEvents()

	for _, e := range w.pending {
		q.Push(e)
	}
	w.pending = w.pending[:0]

	if w.window.ShouldClose() {
		q.Push(input.Event{Type: input.EventQuit})
	}
}

// Close destroys the window and terminates GLFW.
func (w *glfwWindow) Close() {
	logger.Info("closing window")

	if w.window != nil {
		w.window.Destroy()
	}
	glfw.Terminate()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *glfwWindow) SwapBuffers() {
	w.window.SwapBuffers()
}

// DrawableSize returns the framebuffer size in pixels, matching the unit of
// the framebuffer-size callback.
func (w *glfwWindow) DrawableSize() (int, int) {
	return w.window.GetFramebufferSize()
}

// SetTitle sets the window title.
func (w *glfwWindow) SetTitle(title string) {
	w.window.SetTitle(title)
}
