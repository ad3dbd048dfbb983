package core

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-6)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"divide", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"multiply vec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"clamp", NewVec3(-1, 0.5, 7).Clamp(0, 1), NewVec3(0, 0.5, 1)},
		{"sqrt", NewVec3(4, 0.25, 0).Sqrt(), NewVec3(2, 0.5, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, tt.got, approx); diff != "" {
				t.Errorf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	v := NewVec3(3, 4, 12)
	if got := v.Length(); got != 13 {
		t.Errorf("Expected length 13, got %f", got)
	}
	if got := v.LengthSquared(); got != 169 {
		t.Errorf("Expected squared length 169, got %f", got)
	}
	if got := v.Dot(NewVec3(1, 1, 1)); got != 19 {
		t.Errorf("Expected dot 19, got %f", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(0, 3, 4).Normalize()
	if math32.Abs(n.Length()-1) > 1e-6 {
		t.Errorf("Expected unit length, got %f", n.Length())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector to normalize to zero, got %v", zero)
	}
}

func TestVec3_Axis(t *testing.T) {
	v := NewVec3(7, 8, 9)
	for axis, want := range []float32{7, 8, 9} {
		if got := v.Axis(axis); got != want {
			t.Errorf("Axis(%d) = %f, want %f", axis, got, want)
		}
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAtTime(NewVec3(1, 1, 1), NewVec3(0, 2, 0), 0.5)
	if diff := cmp.Diff(NewVec3(1, 4, 1), ray.At(1.5), approx); diff != "" {
		t.Errorf("unexpected point (-want +got):\n%s", diff)
	}
	if ray.Time != 0.5 {
		t.Errorf("Expected time 0.5, got %f", ray.Time)
	}
}
