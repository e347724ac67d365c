// pkg/physics/collider.go
package physics

import (
	"fmt"
	"math"
)

// Kind identifies the shape of a collider. The set is closed: every kind
// must have a narrow-phase pairing with every other kind in intersectShapes.
type Kind int

const (
	KindRect Kind = iota
	KindCircle
)

// String returns the lowercase shape name
func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// RectSize holds the width and height of a rectangle
type RectSize struct {
	Width  float64
	Height float64
}

func (s RectSize) valid() bool {
	return isFinite(s.Width) && isFinite(s.Height) && s.Width >= 0 && s.Height >= 0
}

// Pose is an owner's world-space position and rotation (degrees) at query time
type Pose struct {
	Position Vector2D
	Rotation float64
}

// Collider is a shape attached to a single owner. It keeps no reference to the
// owner: world-space geometry is produced on demand from the owner's Pose.
type Collider struct {
	kind           Kind
	size           RectSize
	radius         float64
	offset         Vector2D
	boundingRadius float64
}

// NewRectCollider creates a rectangular collider. The optional offset moves the
// rect's center away from the owner's position and swings with its rotation.
func NewRectCollider(size RectSize, offset ...Vector2D) (*Collider, error) {
	c := &Collider{kind: KindRect}
	if err := c.SetSize(size); err != nil {
		return nil, err
	}
	if len(offset) > 0 {
		if err := c.SetOffset(offset[0]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewCircleCollider creates a circular collider
func NewCircleCollider(radius float64, offset ...Vector2D) (*Collider, error) {
	c := &Collider{kind: KindCircle}
	if err := c.SetRadius(radius); err != nil {
		return nil, err
	}
	if len(offset) > 0 {
		if err := c.SetOffset(offset[0]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Kind returns the collider's shape kind
func (c *Collider) Kind() Kind {
	return c.kind
}

// Size returns the rect dimensions. Circles report their diameter on both axes.
func (c *Collider) Size() RectSize {
	if c.kind == KindCircle {
		return RectSize{Width: c.radius * 2, Height: c.radius * 2}
	}
	return c.size
}

// Radius returns the circle radius, or zero for rect colliders
func (c *Collider) Radius() float64 {
	return c.radius
}

// Offset returns the local, unrotated offset from the owner's position
func (c *Collider) Offset() Vector2D {
	return c.offset
}

// BoundingRadius returns the radius of a circle centered on the owner's
// position that contains the resolved shape for any rotation.
func (c *Collider) BoundingRadius() float64 {
	return c.boundingRadius
}

// SetSize replaces the rect dimensions
func (c *Collider) SetSize(size RectSize) error {
	if c.kind != KindRect {
		return fmt.Errorf("set size on %s collider: %w", c.kind, ErrKindMismatch)
	}
	if !size.valid() {
		return fmt.Errorf("%w: %gx%g", ErrInvalidSize, size.Width, size.Height)
	}
	c.size = size
	c.updateBoundingRadius()
	return nil
}

// SetRadius replaces the circle radius
func (c *Collider) SetRadius(radius float64) error {
	if c.kind != KindCircle {
		return fmt.Errorf("set radius on %s collider: %w", c.kind, ErrKindMismatch)
	}
	if !isFinite(radius) || radius < 0 {
		return fmt.Errorf("%w: %g", ErrInvalidRadius, radius)
	}
	c.radius = radius
	c.updateBoundingRadius()
	return nil
}

// SetOffset replaces the local offset
func (c *Collider) SetOffset(offset Vector2D) error {
	if !offset.IsFinite() {
		return fmt.Errorf("%w: (%g, %g)", ErrInvalidOffset, offset.X, offset.Y)
	}
	c.offset = offset
	c.updateBoundingRadius()
	return nil
}

// updateBoundingRadius measures from the owner's position, so the offset
// length is added to the shape's own extent.
func (c *Collider) updateBoundingRadius() {
	var extent float64
	switch c.kind {
	case KindRect:
		extent = math.Hypot(c.size.Width, c.size.Height) / 2
	case KindCircle:
		extent = c.radius
	}
	c.boundingRadius = extent + c.offset.Length()
}
