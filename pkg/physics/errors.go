package physics

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateVector is returned when an operation needs a direction
	// but the vector has zero length.
	ErrDegenerateVector = errors.New("degenerate vector")
	// ErrInvalidSize is returned for negative or non-finite rect dimensions.
	ErrInvalidSize = errors.New("invalid collider size")
	// ErrInvalidRadius is returned for negative or non-finite circle radii.
	ErrInvalidRadius = errors.New("invalid collider radius")
	// ErrInvalidOffset is returned for non-finite collider offsets.
	ErrInvalidOffset = errors.New("invalid collider offset")
	// ErrKindMismatch is returned when a setter does not apply to the collider's shape kind.
	ErrKindMismatch = errors.New("collider kind mismatch")
)

// DegenerateVectorError records the operation that hit a zero-length vector.
type DegenerateVectorError struct {
	Op     string
	Vector Vector2D
}

func (e *DegenerateVectorError) Error() string {
	return fmt.Sprintf("%s: %s (%g, %g)", e.Op, ErrDegenerateVector, e.Vector.X, e.Vector.Y)
}

// Unwrap lets errors.Is match ErrDegenerateVector.
func (e *DegenerateVectorError) Unwrap() error {
	return ErrDegenerateVector
}

// UnsupportedPairError describes a shape-kind pair the dispatcher has no algorithm for.
// New shape kinds must extend intersectShapes for every pairing.
type UnsupportedPairError struct {
	A, B Kind
}

func (e *UnsupportedPairError) Error() string {
	return fmt.Sprintf("no narrow-phase test for %s/%s", e.A, e.B)
}
