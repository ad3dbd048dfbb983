package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

// boundaryEpsilon offsets the exit query past the entry crossing
const boundaryEpsilon = 0.0001

// ConstantMedium is a homogeneous participating medium filling the volume of
// a closed Boundary
type ConstantMedium struct {
	Boundary      Hitable
	Density       float32
	PhaseFunction material.Material
}

// NewConstantMedium creates a medium with an isotropic phase function colored by albedo
func NewConstantMedium(boundary Hitable, density float32, albedo material.ColorSource) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		Density:       density,
		PhaseFunction: material.NewIsotropic(albedo),
	}
}

// Hit samples a free-flight distance inside the boundary. The ray either
// scatters somewhere inside or passes through untouched.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float32, sampler core.Sampler) (*material.HitRecord, bool) {
	entry, ok := m.Boundary.Hit(ray, math32.Inf(-1), math32.Inf(1), sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+boundaryEpsilon, math32.Inf(1), sampler)
	if !ok {
		return nil, false
	}

	t0 := max(entry.T, tMin)
	t1 := min(exit.T, tMax)
	if t0 >= t1 {
		return nil, false
	}
	t0 = max(t0, 0)

	rayLength := ray.Direction.Length()
	distanceInside := (t1 - t0) * rayLength
	hitDistance := -(1 / m.Density) * math32.Log(sampler.Get1D())
	if !(hitDistance < distanceInside) {
		return nil, false
	}

	t := t0 + hitDistance/rayLength
	return &material.HitRecord{
		T:     t,
		Point: ray.At(t),
		// Arbitrary; the isotropic phase function ignores it
		Normal:   core.NewVec3(1, 0, 0),
		Material: m.PhaseFunction,
	}, true
}

// BoundingBox implements Hitable
func (m *ConstantMedium) BoundingBox() (core.AABB, bool) {
	return m.Boundary.BoundingBox()
}
