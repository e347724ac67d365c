// pkg/engine/engine.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-canvas/pkg/config"
	"github.com/opd-ai/go-canvas/pkg/entity"
	"github.com/opd-ai/go-canvas/pkg/event"
	"github.com/opd-ai/go-canvas/pkg/logging"
)

// maxDeltaTime caps the step taken by Tick after a stall
const maxDeltaTime = 0.1

// ErrNotRunning is returned by Run when the engine was stopped elsewhere
var ErrNotRunning = errors.New("engine is not running")

// Engine drives a collision world: it owns the registry, moves entities,
// scans for collisions and publishes the resulting events on EventBus.
// Event handlers run after the engine lock is released, so they may call
// Spawn, Destroy or Entities.
type Engine struct {
	Config   *config.Config
	Registry *entity.Registry
	EventBus *event.Bus

	logger     *logging.Logger
	world      *ecs.World
	motion     *MotionSystem
	collisions *CollisionSystem

	mu         sync.Mutex
	running    bool
	frame      uint64
	lastUpdate time.Time
}

// New creates an engine. A nil cfg uses DefaultConfig and a nil logger
// discards output.
func New(cfg *config.Config, logger *logging.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	registry := entity.NewRegistry()
	e := &Engine{
		Config:     cfg,
		Registry:   registry,
		EventBus:   event.NewEventBus(),
		logger:     logger,
		world:      &ecs.World{},
		motion:     NewMotionSystem(),
		collisions: NewCollisionSystem(registry, cfg, logger),
		lastUpdate: time.Now(),
	}
	e.world.AddSystem(e.motion)
	e.world.AddSystem(e.collisions)
	return e, nil
}

// Spawn registers ent and publishes EntityRegistered
func (e *Engine) Spawn(ent *entity.Entity) error {
	e.mu.Lock()
	if err := e.Registry.Register(ent); err != nil {
		e.mu.Unlock()
		return err
	}
	e.motion.Add(ent)
	e.mu.Unlock()

	e.logger.Debug(context.Background(), "Entity registered", "name", ent.Name, "id", ent.ID())
	e.EventBus.Publish(event.NewEntityEvent(event.EntityRegistered, e, ent.Name))
	return nil
}

// Destroy removes the named entity. Its active collisions end at once.
func (e *Engine) Destroy(name string) bool {
	e.mu.Lock()
	ent, ok := e.Registry.Find(name)
	if !ok {
		e.mu.Unlock()
		return false
	}
	e.Registry.Destroy(name)
	e.world.RemoveEntity(ent.BasicEntity)
	pending := e.collisions.drain()
	e.mu.Unlock()

	e.logger.Debug(context.Background(), "Entity destroyed", "name", name)
	e.publishAll(pending)
	e.EventBus.Publish(event.NewEntityEvent(event.EntityDestroyed, e, name))
	return true
}

// Update advances the world by dt seconds: motion first, then collisions
func (e *Engine) Update(dt float64) {
	e.mu.Lock()
	e.world.Update(float32(dt))
	e.frame++
	pending := e.collisions.drain()
	e.mu.Unlock()

	e.publishAll(pending)
}

// Tick calls Update with the wall time since the previous Tick, capped at
// 100ms so a stalled process does not tunnel entities through each other.
func (e *Engine) Tick() {
	now := time.Now()
	e.mu.Lock()
	dt := now.Sub(e.lastUpdate).Seconds()
	e.lastUpdate = now
	e.mu.Unlock()

	if dt > maxDeltaTime {
		dt = maxDeltaTime
	}
	e.Update(dt)
}

// Start marks the engine running and publishes EngineStarted
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.lastUpdate = time.Now()
	frame := e.frame
	e.mu.Unlock()

	e.logger.Info(context.Background(), "Engine started", "entities", e.Registry.Len(), "broad_phase", e.Config.BroadPhase.Mode)
	e.EventBus.Publish(event.NewEngineEvent(event.EngineStarted, e, frame))
}

// Stop marks the engine stopped and publishes EngineStopped
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	frame := e.frame
	e.mu.Unlock()

	e.logger.Info(context.Background(), "Engine stopped", "frame", frame)
	e.EventBus.Publish(event.NewEngineEvent(event.EngineStopped, e, frame))
}

// Running reports whether Start was called without a matching Stop
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Run starts the engine and ticks it at Config.UpdateRate until ctx is done
// or Stop is called. It returns ctx.Err() on cancellation and ErrNotRunning
// after an external Stop.
func (e *Engine) Run(ctx context.Context) error {
	return e.RunWith(ctx, nil)
}

// RunWith is Run calling afterTick once after every tick. An error from
// afterTick stops the engine and is returned.
func (e *Engine) RunWith(ctx context.Context, afterTick func() error) error {
	e.Start()
	defer e.Stop()

	ticker := time.NewTicker(time.Second / time.Duration(e.Config.UpdateRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !e.Running() {
				return ErrNotRunning
			}
			e.Tick()
			if afterTick != nil {
				if err := afterTick(); err != nil {
					return err
				}
			}
		}
	}
}

// Frame returns the number of updates performed
func (e *Engine) Frame() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame
}

// ActiveCollisions returns the pairs intersecting as of the last update
func (e *Engine) ActiveCollisions() []entity.Pair {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.collisions.Active()
}

// Entities returns the registered entities in registration order
func (e *Engine) Entities() []*entity.Entity {
	return e.Registry.List()
}

func (e *Engine) publishAll(events []event.Event) {
	for _, ev := range events {
		if c, ok := ev.(*event.CollisionEvent); ok {
			e.logger.Debug(context.Background(), "Collision", "type", c.GetType(), "a", c.EntityA, "b", c.EntityB)
		}
		e.EventBus.Publish(ev)
	}
}
