// cmd/collide/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/opd-ai/go-canvas/pkg/config"
	"github.com/opd-ai/go-canvas/pkg/engine"
	"github.com/opd-ai/go-canvas/pkg/entity"
	"github.com/opd-ai/go-canvas/pkg/event"
	"github.com/opd-ai/go-canvas/pkg/logging"
	"github.com/opd-ai/go-canvas/pkg/render"
	"github.com/opd-ai/go-canvas/pkg/scene"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	scenePath := flag.String("scene", "", "Scene file (.yaml, .yml or .json)")
	frames := flag.Int("frames", 0, "Number of fixed steps to simulate; 0 runs in real time until interrupted")
	renderer := flag.String("render", "", "Debug renderer: none, terminal or png (overrides config)")
	output := flag.String("out", "", "PNG output path (overrides config)")
	flag.Parse()

	// logs go to stderr so terminal frames stay readable on stdout
	level, _ := logging.ParseLevel(os.Getenv(logging.LevelEnv))
	logger := logging.NewLoggerWithWriter(os.Stderr, level)
	ctx := logging.WithRunID(context.Background(), "")

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}
	if *renderer != "" {
		cfg.Debug.Renderer = *renderer
	}
	if *output != "" {
		cfg.Debug.Output = *output
	}
	fitTerminal(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
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
	subscribeToCollisions(ctx, logger, eng)
	if err := doc.Build(eng); err != nil {
		logger.Error(ctx, "Failed to build scene", err, "scene_path", *scenePath)
		os.Exit(1)
	}
	logger.Info(ctx, "Scene loaded",
		"scene_path", *scenePath,
		"entities", eng.Registry.Len(),
		"broad_phase", cfg.BroadPhase.Mode,
	)

	var out io.Writer = os.Stdout
	if cfg.Debug.Renderer == config.RendererPNG {
		// only the last frame is kept, see writePNG
		out = nil
	}
	r, err := render.New(cfg.Debug, out, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create renderer", err)
		os.Exit(1)
	}
	if t, ok := r.(*render.TerminalRenderer); ok {
		t.ClearScreen = term.IsTerminal(int(os.Stdout.Fd()))
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *frames > 0 {
		err = simulate(runCtx, eng, r, cfg, *frames)
	} else {
		err = eng.RunWith(runCtx, func() error { return draw(eng, r) })
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "Simulation failed", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Simulation finished",
		"frames", eng.Frame(),
		"active_collisions", len(eng.ActiveCollisions()),
	)

	if raster, ok := r.(*render.RasterRenderer); ok {
		if err := writePNG(raster, cfg.Debug.Output); err != nil {
			logger.Error(ctx, "Failed to write image", err, "output", cfg.Debug.Output)
			os.Exit(1)
		}
		logger.Info(ctx, "Wrote image", "output", cfg.Debug.Output)
	}
}

// loadConfig reads path when it exists, falls back to defaults otherwise,
// then applies CANVAS_* environment overrides
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fitTerminal sizes the terminal renderer to the window, leaving room for
// the border and the cursor line
func fitTerminal(cfg *config.Config) {
	if cfg.Debug.Renderer != config.RendererTerminal || !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 3 || height < 4 {
		return
	}
	cfg.Debug.Width = width - 2
	cfg.Debug.Height = height - 3
}

func subscribeToCollisions(ctx context.Context, logger *logging.Logger, eng *engine.Engine) {
	handler := func(e event.Event) {
		c, ok := e.(*event.CollisionEvent)
		if !ok {
			return
		}
		args := []any{"a", c.EntityA, "b", c.EntityB, "frame", eng.Frame()}
		if c.Contact != nil {
			args = append(args,
				"normal_x", c.Contact.Normal.X,
				"normal_y", c.Contact.Normal.Y,
				"penetration", c.Contact.Penetration,
			)
		}
		logger.Info(ctx, string(c.GetType()), args...)
	}
	eng.EventBus.Subscribe(event.CollisionStarted, handler)
	eng.EventBus.Subscribe(event.CollisionEnded, handler)
}

// simulate advances the engine by a fixed step frames times
func simulate(ctx context.Context, eng *engine.Engine, r entity.Renderer, cfg *config.Config, frames int) error {
	dt := 1 / float64(cfg.UpdateRate)
	eng.Start()
	defer eng.Stop()

	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		eng.Update(dt)
		if err := draw(eng, r); err != nil {
			return err
		}
	}
	return nil
}

// draw renders one frame with the colliding entities highlighted
func draw(eng *engine.Engine, r entity.Renderer) error {
	if h, ok := r.(interface{ Highlight(...string) }); ok {
		pairs := eng.ActiveCollisions()
		names := make([]string, 0, 2*len(pairs))
		for _, p := range pairs {
			names = append(names, p.A.Name, p.B.Name)
		}
		h.Highlight(names...)
	}
	return entity.RenderFrame(r, eng.Entities())
}

func writePNG(r *render.RasterRenderer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
