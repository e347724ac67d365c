// pkg/physics/resolver.go
package physics

// Body is anything that owns an optional collider and can report its pose.
// A nil Collider means the body never collides. Pointer implementations
// must tolerate a nil receiver, since a typed nil passes the nil check in
// Intersects.
type Body interface {
	Pose() Pose
	Collider() *Collider
}

// Intersects reports whether the colliders of two bodies overlap.
// Bodies without a collider never intersect. Neither body is modified.
func Intersects(a, b Body) bool {
	if a == nil || b == nil {
		return false
	}
	return IntersectsColliders(a.Collider(), a.Pose(), b.Collider(), b.Pose())
}

// IntersectsColliders is Intersects with explicit poses
func IntersectsColliders(ca *Collider, pa Pose, cb *Collider, pb Pose) bool {
	if ca == nil || cb == nil {
		return false
	}
	if CanSkipBroadPhase(pa, ca.boundingRadius, pb, cb.boundingRadius) {
		return false
	}
	return intersectShapes(ca, pa, cb, pb)
}

// intersectShapes dispatches on the kind pair. Every pairing of the closed
// Kind set is listed; a new kind must add its rows here.
func intersectShapes(ca *Collider, pa Pose, cb *Collider, pb Pose) bool {
	switch {
	case ca.kind == KindRect && cb.kind == KindRect:
		return RectsIntersect(ca.ResolveRect(pa), cb.ResolveRect(pb))
	case ca.kind == KindCircle && cb.kind == KindCircle:
		return CircleIntersect(ca.ResolveCircle(pa), cb.ResolveCircle(pb))
	case ca.kind == KindCircle && cb.kind == KindRect:
		return CircleRectIntersect(ca.ResolveCircle(pa), cb.ResolveRect(pb))
	case ca.kind == KindRect && cb.kind == KindCircle:
		return CircleRectIntersect(cb.ResolveCircle(pb), ca.ResolveRect(pa))
	default:
		panic(&UnsupportedPairError{A: ca.kind, B: cb.kind})
	}
}

// ContactBetween returns circle contact details when both bodies carry circle
// colliders that overlap. Other pairs report ok=false.
func ContactBetween(a, b Body) (Contact, bool) {
	if a == nil || b == nil {
		return Contact{}, false
	}
	ca, cb := a.Collider(), b.Collider()
	if ca == nil || cb == nil || ca.kind != KindCircle || cb.kind != KindCircle {
		return Contact{}, false
	}
	contact := CircleContact(ca.ResolveCircle(a.Pose()), cb.ResolveCircle(b.Pose()))
	return contact, contact.Collided
}
