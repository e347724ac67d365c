// pkg/render/engo/scene.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-canvas/pkg/engine"
	"github.com/opd-ai/go-canvas/pkg/entity"
	"github.com/opd-ai/go-canvas/pkg/event"
	"github.com/opd-ai/go-canvas/pkg/logging"
)

// DebugScene shows a collision engine in an engo window. Every frame it
// steps the engine and redraws each collider outline, with colliding
// entities highlighted.
type DebugScene struct {
	engine *engine.Engine
	logger *logging.Logger

	// Follow names an entity the camera tracks; empty keeps the camera free
	Follow string
	// Zoom is the initial number of pixels per world unit
	Zoom float32

	camera   *CameraSystem
	outlines *OutlineSystem
	subs     []*event.Subscription
}

// NewDebugScene creates a scene for eng
func NewDebugScene(eng *engine.Engine, logger *logging.Logger) *DebugScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &DebugScene{engine: eng, logger: logger, Zoom: 1}
}

// Type returns the scene type (required by Engo)
func (scene *DebugScene) Type() string {
	return "DebugScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *DebugScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *DebugScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Warn(context.Background(), "Unexpected updater, viewer disabled")
		return
	}

	common.SetBackground(backgroundColor)
	RegisterControls()

	render := &common.RenderSystem{}
	world.AddSystem(render)

	scene.camera = NewCameraSystem(engo.GameWidth(), engo.GameHeight(), scene.Zoom)
	world.AddSystem(scene.camera)

	scene.outlines = NewOutlineSystem(render, scene.camera)
	world.AddSystem(&stepSystem{scene: scene})

	scene.subscribeToEvents()
	scene.engine.Start()
}

// subscribeToEvents logs collision changes while the window is open
func (scene *DebugScene) subscribeToEvents() {
	logCollision := func(e event.Event) {
		if c, ok := e.(*event.CollisionEvent); ok {
			scene.logger.Info(context.Background(), string(c.GetType()),
				"a", c.EntityA,
				"b", c.EntityB,
				"frame", scene.engine.Frame(),
			)
		}
	}
	scene.subs = append(scene.subs,
		scene.engine.EventBus.Subscribe(event.CollisionStarted, logCollision),
		scene.engine.EventBus.Subscribe(event.CollisionEnded, logCollision),
	)
}

// draw renders the current engine state through the outline system
func (scene *DebugScene) draw() {
	if scene.Follow != "" {
		if e, ok := scene.engine.Registry.Find(scene.Follow); ok {
			scene.camera.SetTarget(e.Position())
		}
	}
	scene.outlines.Highlight(highlightNames(scene.engine.ActiveCollisions())...)
	if err := entity.RenderFrame(scene.outlines, scene.engine.Entities()); err != nil {
		scene.logger.Error(context.Background(), "Failed to render frame", err)
	}
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *DebugScene) Exit() {
	for _, sub := range scene.subs {
		sub.Cancel()
	}
	scene.subs = nil
	scene.engine.Stop()
}

// stepSystem advances the engine once per engo frame
type stepSystem struct {
	scene  *DebugScene
	paused bool
}

// Priority runs the step before the camera and render systems
func (s *stepSystem) Priority() int {
	return 100
}

func (s *stepSystem) Remove(basic ecs.BasicEntity) {}

func (s *stepSystem) Update(dt float32) {
	if engo.Input.Button(buttonPause).JustPressed() {
		s.paused = !s.paused
	}
	if !s.paused {
		s.scene.engine.Update(float64(dt))
	}
	s.scene.draw()
}

// highlightNames returns both names of every pair
func highlightNames(pairs []entity.Pair) []string {
	names := make([]string, 0, 2*len(pairs))
	for _, p := range pairs {
		names = append(names, p.A.Name, p.B.Name)
	}
	return names
}
