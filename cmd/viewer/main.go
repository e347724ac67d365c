// cmd/viewer/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-canvas/pkg/config"
	"github.com/opd-ai/go-canvas/pkg/engine"
	"github.com/opd-ai/go-canvas/pkg/logging"
	engorender "github.com/opd-ai/go-canvas/pkg/render/engo"
	"github.com/opd-ai/go-canvas/pkg/scene"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	scenePath := flag.String("scene", "", "Scene file (.yaml, .yml or .json)")
	follow := flag.String("follow", "", "Name of an entity the camera follows")
	zoom := flag.Float64("zoom", 1, "Initial pixels per world unit")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	width := flag.Int("width", 1024, "Window width")
	height := flag.Int("height", 768, "Window height")
	flag.Parse()

	logger := logging.NewLogger()
	ctx := logging.WithRunID(context.Background(), "")

	var cfg *config.Config
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", *configPath,
		)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
	}
	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	if *scenePath == "" {
		logger.Error(ctx, "No scene given", errors.New("-scene is required"))
		os.Exit(2)
	}
	doc, err := scene.LoadFile(*scenePath)
	if err != nil {
		logger.Error(ctx, "Failed to load scene", err, "scene_path", *scenePath)
		os.Exit(1)
	}

	eng, err := engine.New(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create engine", err)
		os.Exit(1)
	}
	if err := doc.Build(eng); err != nil {
		logger.Error(ctx, "Failed to build scene", err, "scene_path", *scenePath)
		os.Exit(1)
	}

	debugScene := engorender.NewDebugScene(eng, logger)
	debugScene.Follow = *follow
	debugScene.Zoom = float32(*zoom)

	opts := engo.RunOptions{
		Title:      "go-canvas: " + *scenePath,
		Width:      *width,
		Height:     *height,
		Fullscreen: *fullscreen,
		VSync:      true,
	}

	logger.Info(ctx, "Opening viewer",
		"scene_path", *scenePath,
		"entities", eng.Registry.Len(),
	)
	engo.Run(opts, debugScene)
}
