// Package main runs the multi-light demo: ten textured cubes lit by a
// directional light, four point lights and a camera flashlight.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/app"
	"github.com/Faultbox/learngl/internal/config"
	"github.com/Faultbox/learngl/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== LearnGL lighting ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.WriteConfigRequested() {
		if err := cfg.Save(); err != nil {
			logger.Warn("failed to save config", zap.Error(err))
		} else {
			logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		}
	}

	a, err := app.New(cfg, "lighting")
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	scene, err := newScene(a.Device(), cfg)
	if err != nil {
		logger.Error("failed to build scene", zap.Error(err))
		a.Close()
		os.Exit(1)
	}
	defer scene.Close()

	if err := a.Run(scene); err != nil {
		logger.Error("render loop error", zap.Error(err))
		scene.Close()
		a.Close()
		os.Exit(1)
	}

	logger.Info("closed normally")
}
