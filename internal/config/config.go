// Package config handles sandbox configuration loading and management.
package config

import (
	"fmt"
	"strings"

	"github.com/Faultbox/glsandbox/internal/logger"
)

// Window backends accepted in WindowConfig.Backend.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Config holds all sandbox settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Backend    string `yaml:"backend"` // sdl or glfw
}

// RenderConfig holds rendering settings.
type RenderConfig struct {
	// ShaderPath is a combined .shader resource. Empty uses the embedded default.
	ShaderPath  string     `yaml:"shader_path"`
	WatchShader bool       `yaml:"watch_shader"`
	CheckErrors bool       `yaml:"check_errors"`
	Validate    bool       `yaml:"validate"`
	ClearColor  [4]float32 `yaml:"clear_color"`
	PulseStep   float32    `yaml:"pulse_step"`
	// ScreenshotDir receives PNG captures taken with the space key.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Hello World",
			Width:      640,
			Height:     480,
			Fullscreen: false,
			VSync:      true,
			Backend:    BackendSDL,
		},
		Render: RenderConfig{
			ShaderPath:    "",
			WatchShader:   false,
			CheckErrors:   false,
			Validate:      true,
			ClearColor:    [4]float32{0, 0, 0, 1},
			PulseStep:     0.05,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// ParseBackend maps a backend name to BackendSDL or BackendGLFW, ignoring
// case and surrounding space. Empty selects SDL.
func ParseBackend(s string) (string, error) {
	switch b := strings.ToLower(strings.TrimSpace(s)); b {
	case "":
		return BackendSDL, nil
	case BackendSDL, BackendGLFW:
		return b, nil
	default:
		return "", fmt.Errorf("unknown window backend %q", s)
	}
}

// Validate checks values that would otherwise fail deep inside setup. The
// backend name is normalised in place.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	backend, err := ParseBackend(c.Window.Backend)
	if err != nil {
		return err
	}
	c.Window.Backend = backend
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Render.PulseStep < 0 {
		return fmt.Errorf("pulse_step must not be negative, got %v", c.Render.PulseStep)
	}
	return nil
}

// LogFileConfig returns the rotation settings for the configured log file.
func (c *Config) LogFileConfig() logger.FileConfig {
	if c.Logging.LogFile == "" {
		return logger.FileConfig{}
	}
	fc := logger.DefaultFileConfig(c.Logging.LogFile)
	if c.Logging.MaxSizeMB > 0 {
		fc.MaxSizeMB = c.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups > 0 {
		fc.MaxBackups = c.Logging.MaxBackups
	}
	return fc
}
