package geometry

import (
	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

// rectThickness pads the flat axis of a rectangle's bounding box so the BVH
// never sees a zero-width box
const rectThickness = 0.0001

// XYRect is an axis-aligned rectangle in the plane z = K
type XYRect struct {
	X0, X1, Y0, Y1, K float32
	Material          material.Material
}

// NewXYRect creates a rectangle spanning [x0,x1]×[y0,y1] at z = k
func NewXYRect(x0, x1, y0, y1, k float32, mat material.Material) *XYRect {
	return &XYRect{X0: x0, X1: x1, Y0: y0, Y1: y1, K: k, Material: mat}
}

// Hit implements Hitable. The normal is +z.
func (r *XYRect) Hit(ray core.Ray, tMin, tMax float32, sampler core.Sampler) (*material.HitRecord, bool) {
	return hitRect(ray, tMin, tMax, 0, 1, 2, r.X0, r.X1, r.Y0, r.Y1, r.K, core.NewVec3(0, 0, 1), r.Material)
}

// BoundingBox implements Hitable
func (r *XYRect) BoundingBox() (core.AABB, bool) {
	return core.NewAABB(
		core.NewVec3(r.X0, r.Y0, r.K-rectThickness),
		core.NewVec3(r.X1, r.Y1, r.K+rectThickness),
	), true
}

// XZRect is an axis-aligned rectangle in the plane y = K
type XZRect struct {
	X0, X1, Z0, Z1, K float32
	Material          material.Material
}

// NewXZRect creates a rectangle spanning [x0,x1]×[z0,z1] at y = k
func NewXZRect(x0, x1, z0, z1, k float32, mat material.Material) *XZRect {
	return &XZRect{X0: x0, X1: x1, Z0: z0, Z1: z1, K: k, Material: mat}
}

// Hit implements Hitable. The normal is +y.
func (r *XZRect) Hit(ray core.Ray, tMin, tMax float32, sampler core.Sampler) (*material.HitRecord, bool) {
	return hitRect(ray, tMin, tMax, 0, 2, 1, r.X0, r.X1, r.Z0, r.Z1, r.K, core.NewVec3(0, 1, 0), r.Material)
}

// BoundingBox implements Hitable
func (r *XZRect) BoundingBox() (core.AABB, bool) {
	return core.NewAABB(
		core.NewVec3(r.X0, r.K-rectThickness, r.Z0),
		core.NewVec3(r.X1, r.K+rectThickness, r.Z1),
	), true
}

// YZRect is an axis-aligned rectangle in the plane x = K
type YZRect struct {
	Y0, Y1, Z0, Z1, K float32
	Material          material.Material
}

// NewYZRect creates a rectangle spanning [y0,y1]×[z0,z1] at x = k
func NewYZRect(y0, y1, z0, z1, k float32, mat material.Material) *YZRect {
	return &YZRect{Y0: y0, Y1: y1, Z0: z0, Z1: z1, K: k, Material: mat}
}

// Hit implements Hitable. The normal is +x.
func (r *YZRect) Hit(ray core.Ray, tMin, tMax float32, sampler core.Sampler) (*material.HitRecord, bool) {
	return hitRect(ray, tMin, tMax, 1, 2, 0, r.Y0, r.Y1, r.Z0, r.Z1, r.K, core.NewVec3(1, 0, 0), r.Material)
}

// BoundingBox implements Hitable
func (r *YZRect) BoundingBox() (core.AABB, bool) {
	return core.NewAABB(
		core.NewVec3(r.K-rectThickness, r.Y0, r.Z0),
		core.NewVec3(r.K+rectThickness, r.Y1, r.Z1),
	), true
}

// hitRect intersects the plane axis(flat) = k and checks the in-plane
// coordinates a (along axisA) and b (along axisB) against the extent.
// (u, v) are the normalized in-plane coordinates.
func hitRect(ray core.Ray, tMin, tMax float32, axisA, axisB, flat int, a0, a1, b0, b1, k float32, normal core.Vec3, mat material.Material) (*material.HitRecord, bool) {
	t := (k - ray.Origin.Axis(flat)) / ray.Direction.Axis(flat)
	// Also rejects NaN from a parallel ray lying in the plane
	if !(t >= tMin && t <= tMax) {
		return nil, false
	}

	a := ray.Origin.Axis(axisA) + t*ray.Direction.Axis(axisA)
	b := ray.Origin.Axis(axisB) + t*ray.Direction.Axis(axisB)
	if a < a0 || a > a1 || b < b0 || b > b1 {
		return nil, false
	}

	return &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   normal,
		U:        extentFraction(a, a0, a1),
		V:        extentFraction(b, b0, b1),
		Material: mat,
	}, true
}

// extentFraction maps c in [c0, c1] to [0, 1]; a zero-width extent maps to 0
func extentFraction(c, c0, c1 float32) float32 {
	if c1 == c0 {
		return 0
	}
	return (c - c0) / (c1 - c0)
}
