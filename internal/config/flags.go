package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagBackend    = flag.String("backend", "", "Window backend (sdl or glfw)")
	flagShader     = flag.String("shader", "", "Path to a .shader resource")
	flagWatch      = flag.Bool("watch", false, "Rebuild the program when the shader file changes")
	flagGLDebug    = flag.Bool("gldebug", false, "Check GL error flags around every call (off unless set here or by check_errors)")
	flagNoVSync    = flag.Bool("novsync", false, "Disable vsync")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagSaveConfig = flag.Bool("saveconfig", false, "Write the effective settings to the user config file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether -saveconfig was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagBackend != "" {
		cfg.Window.Backend = *flagBackend
	}
	if *flagShader != "" {
		cfg.Render.ShaderPath = *flagShader
	}
	if *flagWatch {
		cfg.Render.WatchShader = true
	}
	if *flagGLDebug {
		cfg.Render.CheckErrors = true
	}
	if *flagNoVSync {
		cfg.Window.VSync = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
}
