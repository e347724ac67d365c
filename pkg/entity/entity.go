// pkg/entity/entity.go
package entity

import (
	"math"
	"slices"

	"github.com/EngoEngine/ecs"
	"github.com/opd-ai/go-canvas/pkg/physics"
)

// Motion is the per-second movement applied by the engine's motion system
type Motion struct {
	Velocity physics.Vector2D
	// Spin is in degrees per second
	Spin float64
}

// Entity is a named object with a position, a rotation and an optional
// collider. The position is treated as the center of the entity.
// An Entity is not safe for concurrent mutation.
type Entity struct {
	ecs.BasicEntity

	Name string
	Tags []string
	// Size is the drawing rect; it does not affect collisions
	Size   physics.RectSize
	Motion Motion

	position physics.Vector2D
	rotation float64
	collider *physics.Collider
}

// New creates an entity with a fresh ecs identity
func New(name string, tags ...string) *Entity {
	return &Entity{
		BasicEntity: ecs.NewBasic(),
		Name:        name,
		Tags:        slices.Clone(tags),
	}
}

// Position returns the entity's center
func (e *Entity) Position() physics.Vector2D {
	return e.position
}

// SetPosition moves the entity to p
func (e *Entity) SetPosition(p physics.Vector2D) {
	e.position = p
}

// Rotation returns the rotation in degrees, in [0, 360)
func (e *Entity) Rotation() float64 {
	return e.rotation
}

// SetRotation stores degrees modulo 360. NaN and infinite values reset the
// rotation to zero.
func (e *Entity) SetRotation(degrees float64) {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		e.rotation = 0
		return
	}
	r := math.Mod(degrees, 360)
	if r < 0 {
		r += 360
	}
	e.rotation = r
}

// Rotate adds degrees to the current rotation
func (e *Entity) Rotate(degrees float64) {
	e.SetRotation(e.rotation + degrees)
}

// Pose implements physics.Body
func (e *Entity) Pose() physics.Pose {
	if e == nil {
		return physics.Pose{}
	}
	return physics.Pose{Position: e.position, Rotation: e.rotation}
}

// Collider implements physics.Body. It returns nil when nothing is attached
// and for a nil entity.
func (e *Entity) Collider() *physics.Collider {
	if e == nil {
		return nil
	}
	return e.collider
}

// AttachCollider replaces the entity's collider. A collider belongs to one
// entity; attaching the same collider to two entities shares its geometry.
func (e *Entity) AttachCollider(c *physics.Collider) {
	e.collider = c
}

// DetachCollider removes the collider; the entity stops colliding
func (e *Entity) DetachCollider() {
	e.collider = nil
}

// HasTag reports whether the entity carries tag
func (e *Entity) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// AddTag appends tags that are not present yet
func (e *Entity) AddTag(tags ...string) {
	for _, tag := range tags {
		if !e.HasTag(tag) {
			e.Tags = append(e.Tags, tag)
		}
	}
}

// Translate moves the entity by v. NaN components count as zero.
func (e *Entity) Translate(v physics.Vector2D) {
	if math.IsNaN(v.X) {
		v.X = 0
	}
	if math.IsNaN(v.Y) {
		v.Y = 0
	}
	e.position = e.position.Add(v)
}

// MoveTowards moves the entity step units toward target. Nothing happens when
// the target is closer than step, which stops the entity from oscillating
// around it, or when the entity already sits on the target.
func (e *Entity) MoveTowards(target physics.Vector2D, step float64) {
	delta := target.Sub(e.position)
	direction, err := delta.Normalize()
	if err != nil {
		return
	}
	if delta.Length() >= step {
		e.Translate(direction.Scale(step))
	}
}

// IsIntersecting reports whether the colliders of e and target overlap.
// It is false when either entity has no collider.
func (e *Entity) IsIntersecting(target *Entity) bool {
	if e == nil || target == nil {
		return false
	}
	return physics.Intersects(e, target)
}

// Shape returns the collider resolved at the entity's current pose
func (e *Entity) Shape() (physics.ResolvedShape, bool) {
	if e == nil {
		return nil, false
	}
	return physics.ResolvedShapeOf(e.collider, e.Pose())
}
