// pkg/physics/broadphase.go
package physics

// CanSkipBroadPhase reports whether two bounding circles centered on the
// owners' positions are too far apart to touch. Squared distances avoid a sqrt.
// It never skips a pair whose resolved shapes overlap.
func CanSkipBroadPhase(a Pose, radiusA float64, b Pose, radiusB float64) bool {
	reach := radiusA + radiusB
	return a.Position.DistanceSquared(b.Position) >= reach*reach
}

// BoundingCircle returns the collider's bounding circle for a pose
func (c *Collider) BoundingCircle(pose Pose) ResolvedCircle {
	return ResolvedCircle{Position: pose.Position, Radius: c.boundingRadius}
}
