// pkg/physics/narrowphase.go
package physics

// IsLeft reports whether c lies strictly to the left of the directed edge a->b,
// with y growing downward that is the inside of a clockwise polygon.
func IsLeft(a, b, c Vector2D) bool {
	return (b.X-a.X)*(c.Y-a.Y)-(b.Y-a.Y)*(c.X-a.X) > 0
}

// SegmentsIntersect tests segment ab against segment cd. Collinear and
// touching segments fall out of the strict IsLeft comparison and are not
// special-cased.
func SegmentsIntersect(a, b, c, d Vector2D) bool {
	return IsLeft(a, c, d) != IsLeft(b, c, d) && IsLeft(a, b, c) != IsLeft(a, b, d)
}

// PolyIntersect checks whether any edge of target crosses an edge of self, or
// whether any vertex of target lies inside self. Both polygons must be convex
// and wound clockwise. A single direction can miss containment of self inside
// target; RectsIntersect runs both.
func PolyIntersect(self, target []Vector2D) bool {
	selfCount := len(self)
	targetCount := len(target)
	if selfCount == 0 || targetCount == 0 {
		return false
	}

	for ti := 0; ti < targetCount; ti++ {
		c := target[ti]
		d := target[(ti+1)%targetCount]
		inside := true
		crossed := false

		for si := 0; si < selfCount; si++ {
			a := self[si]
			b := self[(si+1)%selfCount]
			if SegmentsIntersect(a, b, c, d) {
				crossed = true
				break
			}
			// one failing edge is enough to put c outside a convex polygon
			if !IsLeft(a, b, c) {
				inside = false
				break
			}
		}

		if crossed || inside {
			return true
		}
	}
	return false
}

// RectsIntersect runs PolyIntersect in both directions
func RectsIntersect(a, b ResolvedRect) bool {
	return PolyIntersect(a.Vertices[:], b.Vertices[:]) || PolyIntersect(b.Vertices[:], a.Vertices[:])
}

// CircleIntersect reports overlap of two circles. Tangent circles do not intersect.
func CircleIntersect(a, b ResolvedCircle) bool {
	if a.Position.Equals(b.Position) {
		return true
	}
	return a.Position.Distance(b.Position) < a.Radius+b.Radius
}

// DistanceToSegment returns the distance from p to the closest point of segment ab
func DistanceToSegment(p, a, b Vector2D) float64 {
	ab := b.Sub(a)
	lengthSq := ab.LengthSquared()
	if lengthSq == 0 {
		return p.Distance(a)
	}
	t := clamp(p.Sub(a).Dot(ab)/lengthSq, 0, 1)
	nearest := a.Add(ab.Scale(t))
	return p.Distance(nearest)
}

// CirclePolyIntersect tests a circle against a clockwise convex polygon.
// An edge closer than the radius is an immediate hit; otherwise the result is
// whether the center lies inside every edge.
func CirclePolyIntersect(circle ResolvedCircle, vertices []Vector2D) bool {
	count := len(vertices)
	if count == 0 {
		return false
	}

	inside := true
	for i := 0; i < count; i++ {
		current := vertices[i]
		next := vertices[(i+1)%count]
		if inside && !IsLeft(current, next, circle.Position) {
			inside = false
		}
		if DistanceToSegment(circle.Position, current, next) < circle.Radius {
			return true
		}
	}
	return inside
}

// CircleRectIntersect is CirclePolyIntersect for a resolved rect
func CircleRectIntersect(circle ResolvedCircle, rect ResolvedRect) bool {
	return CirclePolyIntersect(circle, rect.Vertices[:])
}

// Contact contains information about a circle/circle collision
type Contact struct {
	Collided    bool
	Normal      Vector2D
	Penetration float64
	Point       Vector2D
}

// CircleContact performs detailed collision detection between two circles.
// Coincident centers collide with a zero normal, since no direction exists.
func CircleContact(a, b ResolvedCircle) Contact {
	if !CircleIntersect(a, b) {
		return Contact{}
	}

	// Vector from A to B
	delta := b.Position.Sub(a.Position)
	distance := delta.Length()
	penetration := a.Radius + b.Radius - distance

	normal, err := delta.Normalize()
	if err != nil {
		return Contact{Collided: true, Penetration: penetration, Point: a.Position}
	}

	return Contact{
		Collided:    true,
		Normal:      normal,
		Penetration: penetration,
		Point:       a.Position.Add(normal.Scale(a.Radius)),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
