// Package main is the entry point for the OpenGL sandbox.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/glsandbox/internal/app"
	"github.com/Faultbox/glsandbox/internal/config"
	"github.com/Faultbox/glsandbox/internal/engine/renderer"
	"github.com/Faultbox/glsandbox/internal/engine/window"
	"github.com/Faultbox/glsandbox/internal/logger"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitInitFailure = -1
)

func main() {
	os.Exit(run())
}

func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return exitInitFailure
	}

	if err := logger.InitWithFileConfig(cfg.Logging.Level, cfg.LogFileConfig(), true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return exitInitFailure
	}
	defer logger.Sync()

	logger.Info("=== GL Sandbox ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if path, err := cfg.Save(); err != nil {
			logger.Warn("failed to save config", zap.Error(err))
		} else {
			logger.Info("config saved", zap.String("path", path))
		}
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to start sandbox", zap.Error(err))
		return exitCode(err)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("sandbox error", zap.Error(err))
		return exitFailure
	}

	logger.Info("window closed normally")
	return exitOK
}

// exitCode maps a startup error to the process exit code.
func exitCode(err error) int {
	if errors.Is(err, window.ErrInit) || errors.Is(err, renderer.ErrGLInit) {
		return exitInitFailure
	}
	return exitFailure
}
