// Package app wires the window, renderer and shader resource together and
// runs the frame loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/glsandbox/internal/assets"
	"github.com/Faultbox/glsandbox/internal/config"
	"github.com/Faultbox/glsandbox/internal/engine/input"
	"github.com/Faultbox/glsandbox/internal/engine/renderer"
	"github.com/Faultbox/glsandbox/internal/engine/screenshot"
	"github.com/Faultbox/glsandbox/internal/engine/window"
	"github.com/Faultbox/glsandbox/internal/logger"
	"github.com/Faultbox/glsandbox/internal/shaderwatch"
)

// App is the running sandbox.
type App struct {
	config   *config.Config
	window   window.Window
	renderer *renderer.Renderer
	input    *input.Queue
	assets   *assets.Manager
	watcher  *shaderwatch.Watcher
	capture  *screenshot.Capture
	log      *zap.Logger
}

// New opens the window, loads the shader resource and builds the renderer.
// Errors wrap window.ErrInit, renderer.ErrGLInit, shadersrc.ErrUnreadable or
// a *shader.BuildError.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config:  cfg,
		input:   input.NewQueue(),
		assets:  assets.NewManager(),
		capture: screenshot.New(cfg.Render.ScreenshotDir, "sandbox"),
		log:     logger.Named("app"),
	}

	// Read the resource first so a bad path fails before a window opens
	src, err := a.assets.Load(cfg.Render.ShaderPath)
	if err != nil {
		return nil, err
	}
	if vEmpty, fEmpty := src.Empty(); vEmpty || fEmpty {
		a.log.Warn("shader resource has an empty section",
			zap.String("path", a.shaderName()),
			zap.Bool("vertexEmpty", vEmpty),
			zap.Bool("fragmentEmpty", fEmpty),
		)
	}

	// Create window (this also creates the OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Backend:    cfg.Window.Backend,
	})
	if err != nil {
		return nil, err
	}

	a.renderer, err = renderer.New(renderConfig(cfg, a.window), src)
	if err != nil {
		a.window.Close()
		return nil, err
	}

	if cfg.Render.WatchShader {
		if cfg.Render.ShaderPath == "" {
			a.log.Warn("watch_shader ignored: the embedded shader cannot change")
		} else if a.watcher, err = shaderwatch.New(cfg.Render.ShaderPath); err != nil {
			a.log.Warn("shader hot reload disabled", zap.Error(err))
			a.watcher = nil
		}
	}

	a.log.Info("sandbox initialized", zap.String("shader", a.shaderName()))
	return a, nil
}

// Run loops until the window is closed or Escape is pressed.
func (a *App) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting render loop")

	for {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		a.input.Reset()
		a.window.PollEvents(a.input)
		if a.input.QuitRequested() || a.input.IsKeyPressed(input.KeyEscape) {
			return nil
		}

		for _, event := range a.input.Events() {
			if event.Type == input.EventWindowResize {
				a.renderer.Resize(event.Width, event.Height)
			}
		}

		if a.input.IsKeyPressed(input.KeyR) || a.shaderChanged() {
			a.reloadShader()
		}

		if err := a.renderer.Frame(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if a.input.IsKeyPressed(input.KeySpace) {
			a.saveScreenshot()
		}

		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.window.SetTitle(fpsTitle(a.config.Window.Title, frameCount))
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

// Close releases resources in reverse creation order.
func (a *App) Close() {
	a.log.Info("closing sandbox")

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("closing shader watcher", zap.Error(err))
		}
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) shaderChanged() bool {
	if a.watcher == nil {
		return false
	}
	select {
	case <-a.watcher.Changes():
		return true
	default:
		return false
	}
}

// reloadShader rebuilds the program from disk. A failed rebuild keeps the
// current program bound.
func (a *App) reloadShader() {
	src, err := a.assets.Reload(a.config.Render.ShaderPath)
	if err != nil {
		a.log.Error("shader reload failed", zap.Error(err))
		return
	}
	hits, misses := a.assets.CacheStats()
	a.log.Debug("shader cache", zap.Int("hits", hits), zap.Int("misses", misses))

	if err := a.renderer.SetShader(src); err != nil {
		a.log.Error("shader rebuild failed, keeping previous program", zap.Error(err))
		return
	}
	a.log.Info("shader reloaded", zap.String("shader", a.shaderName()))
}

// saveScreenshot captures the frame just drawn, before it is swapped.
func (a *App) saveScreenshot() {
	pixels, w, h, err := a.renderer.ReadPixels()
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	path, err := a.capture.Save(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) shaderName() string {
	if a.config.Render.ShaderPath == "" {
		return "embedded:" + assets.BasicShader
	}
	return a.config.Render.ShaderPath
}

// renderConfig sizes the first viewport from the drawable, which is larger
// than the configured window size on HiDPI displays.
func renderConfig(cfg *config.Config, win window.Window) renderer.Config {
	pulse := renderer.DefaultPulse()
	pulse.Step = cfg.Render.PulseStep

	width, height := win.DrawableSize()
	return renderer.Config{
		Width:       width,
		Height:      height,
		ClearColor:  cfg.Render.ClearColor,
		CheckErrors: cfg.Render.CheckErrors,
		Validate:    cfg.Render.Validate,
		Pulse:       pulse,
	}
}

// fpsTitle is the window title shown while the loop runs.
func fpsTitle(title string, fps int) string {
	return fmt.Sprintf("%s | %d FPS", title, fps)
}
