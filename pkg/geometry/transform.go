package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

// FlipNormal reverses the normal reported by the wrapped object
type FlipNormal struct {
	Object Hitable
}

// NewFlipNormal wraps object
func NewFlipNormal(object Hitable) *FlipNormal {
	return &FlipNormal{Object: object}
}

// Hit implements Hitable
func (f *FlipNormal) Hit(ray core.Ray, tMin, tMax float32, sampler core.Sampler) (*material.HitRecord, bool) {
	hit, ok := f.Object.Hit(ray, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	hit.Normal = hit.Normal.Negate()
	return hit, true
}

// BoundingBox implements Hitable
func (f *FlipNormal) BoundingBox() (core.AABB, bool) {
	return f.Object.BoundingBox()
}

// Translate moves the wrapped object by Offset
type Translate struct {
	Object Hitable
	Offset core.Vec3
}

// NewTranslate wraps object with a fixed offset
func NewTranslate(object Hitable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space and the hit point back to world space
func (t *Translate) Hit(ray core.Ray, tMin, tMax float32, sampler core.Sampler) (*material.HitRecord, bool) {
	moved := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)
	hit, ok := t.Object.Hit(moved, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	hit.Point = hit.Point.Add(t.Offset)
	return hit, true
}

// BoundingBox implements Hitable
func (t *Translate) BoundingBox() (core.AABB, bool) {
	box, ok := t.Object.BoundingBox()
	if !ok {
		return core.AABB{}, false
	}
	return box.Translate(t.Offset), true
}

// RotateY rotates the wrapped object about the y axis
type RotateY struct {
	Object   Hitable
	sinTheta float32
	cosTheta float32
	box      core.AABB
	hasBox   bool
}

// NewRotateY wraps object with a rotation of angle degrees about the y axis.
// The world-space bounding box is computed once from the rotated corners of
// the inner box.
func NewRotateY(object Hitable, angle float32) *RotateY {
	radians := angle * math32.Pi / 180
	r := &RotateY{
		Object:   object,
		sinTheta: math32.Sin(radians),
		cosTheta: math32.Cos(radians),
	}

	inner, ok := object.BoundingBox()
	if !ok {
		return r
	}

	corners := inner.Corners()
	for i, corner := range corners {
		corners[i] = r.toWorld(corner)
	}
	r.box = core.NewAABBFromPoints(corners[:]...)
	r.hasBox = true
	return r
}

// toWorld applies the forward rotation
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toObject applies the inverse rotation
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit implements Hitable
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float32, sampler core.Sampler) (*material.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)
	hit, ok := r.Object.Hit(rotated, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox implements Hitable
func (r *RotateY) BoundingBox() (core.AABB, bool) {
	return r.box, r.hasBox
}
