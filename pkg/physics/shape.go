// pkg/physics/shape.go
package physics

import "math"

// ResolvedShape is world-space collider geometry for one pose.
// It is implemented only by ResolvedRect and ResolvedCircle.
type ResolvedShape interface {
	Kind() Kind
	// Center is the world-space center of the shape
	Center() Vector2D
	// Bounds is the axis-aligned box enclosing the shape
	Bounds() AABB
	resolved()
}

// ResolvedRect is a rect collider in world space. Vertices are clockwise in
// screen space (y down); edge i runs from Vertices[i] to Vertices[(i+1)%4].
type ResolvedRect struct {
	// Position is the owner's position and the rotation pivot
	Position Vector2D
	Vertices [4]Vector2D
}

// ResolvedCircle is a circle collider in world space
type ResolvedCircle struct {
	Position Vector2D
	Radius   float64
}

func (ResolvedRect) resolved()   {}
func (ResolvedCircle) resolved() {}

// Kind implements ResolvedShape
func (ResolvedRect) Kind() Kind { return KindRect }

// Kind implements ResolvedShape
func (ResolvedCircle) Kind() Kind { return KindCircle }

// Center returns the mean of the four vertices
func (r ResolvedRect) Center() Vector2D {
	var sum Vector2D
	for _, v := range r.Vertices {
		sum = sum.Add(v)
	}
	return sum.Scale(0.25)
}

// Center implements ResolvedShape
func (c ResolvedCircle) Center() Vector2D {
	return c.Position
}

// Bounds implements ResolvedShape
func (r ResolvedRect) Bounds() AABB {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range r.Vertices {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return AABB{
		Center: Vector2D{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Bounds implements ResolvedShape
func (c ResolvedCircle) Bounds() AABB {
	return AABB{Center: c.Position, Width: c.Radius * 2, Height: c.Radius * 2}
}

// Resolve produces the collider's world-space geometry for the given pose
func (c *Collider) Resolve(pose Pose) ResolvedShape {
	switch c.kind {
	case KindRect:
		return c.ResolveRect(pose)
	case KindCircle:
		return c.ResolveCircle(pose)
	default:
		panic(&UnsupportedPairError{A: c.kind, B: c.kind})
	}
}

// ResolveRect builds the clockwise corners around pose.Position+offset and
// rotates them about the owner's position, so an offset rect swings with it.
func (c *Collider) ResolveRect(pose Pose) ResolvedRect {
	center := pose.Position.Add(c.offset)
	hw := c.size.Width / 2
	hh := c.size.Height / 2
	corners := [4]Vector2D{
		{X: center.X - hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y + hh},
		{X: center.X - hw, Y: center.Y + hh},
	}
	if pose.Rotation != 0 {
		for i := range corners {
			corners[i] = corners[i].RotateAround(pose.Position, pose.Rotation)
		}
	}
	return ResolvedRect{Position: pose.Position, Vertices: corners}
}

// ResolveCircle places the circle center at the rotated offset
func (c *Collider) ResolveCircle(pose Pose) ResolvedCircle {
	center := pose.Position.Add(c.offset)
	if pose.Rotation != 0 {
		center = center.RotateAround(pose.Position, pose.Rotation)
	}
	return ResolvedCircle{Position: center, Radius: c.radius}
}

// ResolvedShapeOf resolves c for debug drawing. A nil collider reports false.
func ResolvedShapeOf(c *Collider, pose Pose) (ResolvedShape, bool) {
	if c == nil {
		return nil, false
	}
	return c.Resolve(pose), true
}
