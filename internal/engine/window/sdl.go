package window

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/glsandbox/internal/config"
	"github.com/Faultbox/glsandbox/internal/engine/input"
	"github.com/Faultbox/glsandbox/internal/logger"
)

// sdlWindow wraps an SDL2 window and OpenGL context.
type sdlWindow struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

func newSDL(cfg Config) (*sdlWindow, error) {
	w := &sdlWindow{
		config: cfg,
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, initError("SDL_Init", err)
	}

	// Set OpenGL attributes BEFORE creating window
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, initError("SDL_CreateWindow", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, initError("SDL_GL_CreateContext", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logger.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	logger.Info("window created",
		zap.String("backend", config.BackendSDL),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// PollEvents drains the SDL event queue.
func (w *sdlWindow) PollEvents(q *input.Queue) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			q.Push(input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			// Data1/Data2 are in screen units; report pixels instead
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height := w.DrawableSize()
				q.Push(input.Event{
					Type:   input.EventWindowResize,
					Width:  width,
					Height: height,
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				q.Push(input.Event{Type: input.EventKeyDown, Key: sdlKey(e.Keysym.Scancode)})
			} else if e.Type == sdl.KEYUP {
				q.Push(input.Event{Type: input.EventKeyUp, Key: sdlKey(e.Keysym.Scancode)})
			}
		}
	}
}

func sdlKey(sc sdl.Scancode) input.Key {
	switch sc {
	case sdl.SCANCODE_ESCAPE:
		return input.KeyEscape
	case sdl.SCANCODE_R:
		return input.KeyR
	case sdl.SCANCODE_SPACE:
		return input.KeySpace
	default:
		return input.KeyUnknown
	}
}

// Close destroys the window and cleans up SDL2.
func (w *sdlWindow) Close() {
	logger.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *sdlWindow) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// DrawableSize returns the GL drawable size in pixels.
func (w *sdlWindow) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *sdlWindow) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
