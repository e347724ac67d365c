// pkg/physics/vector_test.go
package physics

import (
	"errors"
	"math"
	"testing"
)

func TestVector2D_AddSub(t *testing.T) {
	tests := []struct {
		name        string
		v1          Vector2D
		v2          Vector2D
		expectedAdd Vector2D
		expectedSub Vector2D
	}{
		{
			name:        "positive_vectors",
			v1:          Vector2D{X: 3, Y: 4},
			v2:          Vector2D{X: 1, Y: 2},
			expectedAdd: Vector2D{X: 4, Y: 6},
			expectedSub: Vector2D{X: 2, Y: 2},
		},
		{
			name:        "mixed_signs",
			v1:          Vector2D{X: 5, Y: -3},
			v2:          Vector2D{X: -2, Y: 7},
			expectedAdd: Vector2D{X: 3, Y: 4},
			expectedSub: Vector2D{X: 7, Y: -10},
		},
		{
			name:        "zero_operand",
			v1:          Vector2D{X: 4, Y: 6},
			v2:          Vector2D{},
			expectedAdd: Vector2D{X: 4, Y: 6},
			expectedSub: Vector2D{X: 4, Y: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v1.Add(tt.v2); !got.Equals(tt.expectedAdd) {
				t.Errorf("Add() = %v, expected %v", got, tt.expectedAdd)
			}
			if got := tt.v1.Sub(tt.v2); !got.Equals(tt.expectedSub) {
				t.Errorf("Sub() = %v, expected %v", got, tt.expectedSub)
			}
		})
	}
}

func TestVector2D_Scale(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		factor   float64
		expected Vector2D
	}{
		{"double", Vector2D{X: 3, Y: 4}, 2, Vector2D{X: 6, Y: 8}},
		{"negate", Vector2D{X: 3, Y: 4}, -1, Vector2D{X: -3, Y: -4}},
		{"zero", Vector2D{X: 3, Y: 4}, 0, Vector2D{}},
		{"half", Vector2D{X: 4, Y: 8}, 0.5, Vector2D{X: 2, Y: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.Scale(tt.factor); !got.Equals(tt.expected) {
				t.Errorf("Scale() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestVector2D_DotAndCross(t *testing.T) {
	a := Vector2D{X: 2, Y: 3}
	b := Vector2D{X: 4, Y: -1}

	if got := a.Dot(b); got != 5 {
		t.Errorf("Dot() = %v, expected 5", got)
	}
	if got := a.Cross(b); got != -14 {
		t.Errorf("Cross() = %v, expected -14", got)
	}
	if got := (Vector2D{X: 1}).Dot(Vector2D{Y: 1}); got != 0 {
		t.Errorf("perpendicular Dot() = %v, expected 0", got)
	}
}

func TestVector2D_LengthAndDistance(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector2D
		v2       Vector2D
		expected float64
	}{
		{"same_point", Vector2D{X: 3, Y: 4}, Vector2D{X: 3, Y: 4}, 0},
		{"pythagorean_triple", Vector2D{X: 0, Y: 0}, Vector2D{X: 3, Y: 4}, 5},
		{"negative_quadrant", Vector2D{X: -1, Y: -1}, Vector2D{X: -4, Y: -5}, 5},
		{"axis_aligned", Vector2D{X: 10, Y: 2}, Vector2D{X: 2, Y: 2}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v1.Distance(tt.v2); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Distance() = %v, expected %v", got, tt.expected)
			}
			if got := tt.v1.DistanceSquared(tt.v2); math.Abs(got-tt.expected*tt.expected) > 1e-9 {
				t.Errorf("DistanceSquared() = %v, expected %v", got, tt.expected*tt.expected)
			}
			delta := tt.v2.Sub(tt.v1)
			if got := delta.Length(); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Length() = %v, expected %v", got, tt.expected)
			}
			if got := delta.LengthSquared(); math.Abs(got-tt.expected*tt.expected) > 1e-9 {
				t.Errorf("LengthSquared() = %v, expected %v", got, tt.expected*tt.expected)
			}
		})
	}
}

func TestVector2D_DistanceMatchesHypot(t *testing.T) {
	points := []Vector2D{{X: 0.1, Y: 0.2}, {X: -7.3, Y: 12.9}, {X: 1e6, Y: -3e5}, {X: 0, Y: 0}}
	for _, a := range points {
		for _, b := range points {
			expected := math.Hypot(a.X-b.X, a.Y-b.Y)
			if got := a.Distance(b); math.Abs(got-expected) > 1e-9*math.Max(1, expected) {
				t.Errorf("Distance(%v, %v) = %v, hypot = %v", a, b, got, expected)
			}
		}
	}
}

func TestVector2D_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		expected Vector2D
	}{
		{"unit_vector_unchanged", Vector2D{X: 1, Y: 0}, Vector2D{X: 1, Y: 0}},
		{"pythagorean_triple", Vector2D{X: 3, Y: 4}, Vector2D{X: 0.6, Y: 0.8}},
		{"negative_components", Vector2D{X: -6, Y: -8}, Vector2D{X: -0.6, Y: -0.8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.vector.Normalize()
			if err != nil {
				t.Fatalf("Normalize() returned error: %v", err)
			}
			if !result.ApproxEquals(tt.expected, 1e-9) {
				t.Errorf("Normalize() = %v, expected %v", result, tt.expected)
			}
			if math.Abs(result.Length()-1) > 1e-9 {
				t.Errorf("Normalized vector length = %v, expected 1", result.Length())
			}
		})
	}
}

func TestVector2D_NormalizeZeroVector_ReturnsDegenerateError(t *testing.T) {
	zeroVector := Vector2D{X: 0, Y: 0}
	normalized, err := zeroVector.Normalize()

	if !errors.Is(err, ErrDegenerateVector) {
		t.Fatalf("Normalize() on zero vector error = %v, expected ErrDegenerateVector", err)
	}

	var degenerate *DegenerateVectorError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected *DegenerateVectorError, got %T", err)
	}
	if degenerate.Op != "normalize" {
		t.Errorf("expected op normalize, got %q", degenerate.Op)
	}

	// No NaN may leak out of a failed normalization
	if math.IsNaN(normalized.X) || math.IsNaN(normalized.Y) {
		t.Errorf("Normalize() on zero vector leaked NaN: %v", normalized)
	}
}

func TestVector2D_RotateAround(t *testing.T) {
	tests := []struct {
		name     string
		point    Vector2D
		pivot    Vector2D
		degrees  float64
		expected Vector2D
	}{
		{
			name:     "quarter_turn_about_origin",
			point:    Vector2D{X: 1, Y: 0},
			pivot:    Vector2D{},
			degrees:  90,
			expected: Vector2D{X: 0, Y: 1},
		},
		{
			name:     "half_turn_about_pivot",
			point:    Vector2D{X: 3, Y: 2},
			pivot:    Vector2D{X: 1, Y: 2},
			degrees:  180,
			expected: Vector2D{X: -1, Y: 2},
		},
		{
			name:     "full_turn_is_identity",
			point:    Vector2D{X: -4, Y: 7},
			pivot:    Vector2D{X: 2, Y: -2},
			degrees:  360,
			expected: Vector2D{X: -4, Y: 7},
		},
		{
			name:     "negative_angle",
			point:    Vector2D{X: 1, Y: 0},
			pivot:    Vector2D{},
			degrees:  -90,
			expected: Vector2D{X: 0, Y: -1},
		},
		{
			name:     "pivot_is_fixed_point",
			point:    Vector2D{X: 5, Y: 5},
			pivot:    Vector2D{X: 5, Y: 5},
			degrees:  33,
			expected: Vector2D{X: 5, Y: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.point.RotateAround(tt.pivot, tt.degrees)
			if !got.ApproxEquals(tt.expected, 1e-9) {
				t.Errorf("RotateAround() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestVector2D_RotateMatchesRotateAroundOrigin(t *testing.T) {
	v := Vector2D{X: 2, Y: 3}
	for _, deg := range []float64{0, 15, 45, 90, 135, 270} {
		byRadians := v.Rotate(deg * math.Pi / 180)
		byDegrees := v.RotateAround(Vector2D{}, deg)
		if !byRadians.ApproxEquals(byDegrees, 1e-9) {
			t.Errorf("%v degrees: Rotate() = %v, RotateAround() = %v", deg, byRadians, byDegrees)
		}
	}
}

func TestVector2D_Equals(t *testing.T) {
	// variables keep the sum out of exact constant arithmetic
	x, y := 0.1, 0.2
	a := Vector2D{X: x + y, Y: 1}
	b := Vector2D{X: 0.3, Y: 1}

	if a.Equals(b) {
		t.Error("Equals() must be exact, 0.1+0.2 != 0.3 in float64")
	}
	if !a.ApproxEquals(b, 1e-12) {
		t.Error("ApproxEquals() should tolerate float drift")
	}
	if !a.Equals(a) {
		t.Error("Equals() should be reflexive")
	}
}

func TestVector2D_AngleAndFromAngle(t *testing.T) {
	v := FromAngle(math.Pi/3, 2)
	if math.Abs(v.Length()-2) > 1e-9 {
		t.Errorf("FromAngle() magnitude = %v, expected 2", v.Length())
	}
	if math.Abs(v.Angle()-math.Pi/3) > 1e-9 {
		t.Errorf("Angle() = %v, expected %v", v.Angle(), math.Pi/3)
	}
}

func TestVector2D_IsFinite(t *testing.T) {
	if !(Vector2D{X: 1, Y: -1}).IsFinite() {
		t.Error("expected finite vector")
	}
	if (Vector2D{X: math.NaN()}).IsFinite() {
		t.Error("NaN component should not be finite")
	}
	if (Vector2D{Y: math.Inf(-1)}).IsFinite() {
		t.Error("Inf component should not be finite")
	}
}

// Benchmark tests for performance verification
func BenchmarkVector2D_Distance(b *testing.B) {
	v1 := Vector2D{X: 3, Y: 4}
	v2 := Vector2D{X: 1, Y: 2}

	for i := 0; i < b.N; i++ {
		_ = v1.Distance(v2)
	}
}

func BenchmarkVector2D_RotateAround(b *testing.B) {
	v := Vector2D{X: 3, Y: 4}
	pivot := Vector2D{X: 1, Y: 1}

	for i := 0; i < b.N; i++ {
		_ = v.RotateAround(pivot, 45)
	}
}
