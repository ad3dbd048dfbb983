package geometry

import (
	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

// Box is an axis-aligned box made of six rectangles sharing one material
type Box struct {
	Min, Max core.Vec3
	faces    *HitableList
}

// NewBox creates a box spanning the two opposite corners p0 and p1.
// The faces at the min corner are flipped so every normal points outward.
func NewBox(p0, p1 core.Vec3, mat material.Material) *Box {
	bounds := core.NewAABB(p0, p1)
	lo, hi := bounds.Min, bounds.Max

	faces := NewHitableList(
		NewXYRect(lo.X, hi.X, lo.Y, hi.Y, hi.Z, mat),
		NewFlipNormal(NewXYRect(lo.X, hi.X, lo.Y, hi.Y, lo.Z, mat)),
		NewXZRect(lo.X, hi.X, lo.Z, hi.Z, hi.Y, mat),
		NewFlipNormal(NewXZRect(lo.X, hi.X, lo.Z, hi.Z, lo.Y, mat)),
		NewYZRect(lo.Y, hi.Y, lo.Z, hi.Z, hi.X, mat),
		NewFlipNormal(NewYZRect(lo.Y, hi.Y, lo.Z, hi.Z, lo.X, mat)),
	)

	return &Box{Min: lo, Max: hi, faces: faces}
}

// Hit implements Hitable
func (b *Box) Hit(ray core.Ray, tMin, tMax float32, sampler core.Sampler) (*material.HitRecord, bool) {
	return b.faces.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox implements Hitable. It is the union of the face boxes, so a
// box that is flat along some axis still gets the rect padding.
func (b *Box) BoundingBox() (core.AABB, bool) {
	return b.faces.BoundingBox()
}
