// pkg/engine/motion_system.go
package engine

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-canvas/pkg/entity"
)

// System priorities; ecs.World runs higher priorities first so entities
// move before collisions are scanned.
const (
	motionPriority    = 10
	collisionPriority = 0
)

// MotionSystem applies each entity's Motion once per update
type MotionSystem struct {
	entities []*entity.Entity
}

// NewMotionSystem creates an empty motion system
func NewMotionSystem() *MotionSystem {
	return &MotionSystem{}
}

// Add starts moving e. Adding the same entity twice is a no-op.
func (ms *MotionSystem) Add(e *entity.Entity) {
	for _, item := range ms.entities {
		if item.ID() == e.ID() {
			return
		}
	}
	ms.entities = append(ms.entities, e)
}

// Remove satisfies the ecs.System interface
func (ms *MotionSystem) Remove(basic ecs.BasicEntity) {
	for i, e := range ms.entities {
		if e.ID() == basic.ID() {
			ms.entities = append(ms.entities[:i:i], ms.entities[i+1:]...)
			return
		}
	}
}

// Priority implements ecs.Prioritizer
func (ms *MotionSystem) Priority() int {
	return motionPriority
}

// Len returns the number of tracked entities
func (ms *MotionSystem) Len() int {
	return len(ms.entities)
}

// Update moves every entity by Velocity*dt and turns it by Spin*dt
func (ms *MotionSystem) Update(dt float32) {
	seconds := float64(dt)
	for _, e := range ms.entities {
		if v := e.Motion.Velocity; v.X != 0 || v.Y != 0 {
			e.Translate(v.Scale(seconds))
		}
		if e.Motion.Spin != 0 {
			e.Rotate(e.Motion.Spin * seconds)
		}
	}
}
