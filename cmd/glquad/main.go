// Package main is the entry point for glquad.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/glquad/internal/app"
	"github.com/Faultbox/glquad/internal/config"
	"github.com/Faultbox/glquad/internal/engine/window"
	"github.com/Faultbox/glquad/internal/logger"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exit.
func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			return 1
		}
		fmt.Printf("wrote %s\n", path)
		return 0
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== glquad ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		if errors.Is(err, window.ErrCreate) {
			return -1
		}
		return 1
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("render loop failed", zap.Error(err))
		return 1
	}

	logger.Info("window closed normally")
	return 0
}
