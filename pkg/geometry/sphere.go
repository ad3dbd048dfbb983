package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float32
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float32, sampler core.Sampler) (*material.HitRecord, bool) {
	return hitSphere(ray, s.Center, s.Radius, s.Material, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() (core.AABB, bool) {
	return sphereBox(s.Center, s.Radius), true
}

// MovingSphere is a sphere whose center moves linearly from Center0 at Time0
// to Center1 at Time1
type MovingSphere struct {
	Center0, Center1 core.Vec3
	Time0, Time1     float32
	Radius           float32
	Material         material.Material
}

// NewMovingSphere creates a new moving sphere
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float32, mat material.Material) *MovingSphere {
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: mat,
	}
}

// Center returns the sphere center at the given time
func (s *MovingSphere) Center(time float32) core.Vec3 {
	if s.Time1 == s.Time0 {
		return s.Center0
	}
	fraction := (time - s.Time0) / (s.Time1 - s.Time0)
	return s.Center0.Add(s.Center1.Subtract(s.Center0).Multiply(fraction))
}

// Hit tests the ray against the sphere at the ray's time
func (s *MovingSphere) Hit(ray core.Ray, tMin, tMax float32, sampler core.Sampler) (*material.HitRecord, bool) {
	return hitSphere(ray, s.Center(ray.Time), s.Radius, s.Material, tMin, tMax)
}

// BoundingBox covers the whole swept volume between Time0 and Time1
func (s *MovingSphere) BoundingBox() (core.AABB, bool) {
	return sphereBox(s.Center0, s.Radius).Union(sphereBox(s.Center1, s.Radius)), true
}

func sphereBox(center core.Vec3, radius float32) core.AABB {
	r := math32.Abs(radius)
	extent := core.NewVec3(r, r, r)
	return core.NewAABB(center.Subtract(extent), center.Add(extent))
}

// hitSphere solves a·t² + 2b·t + c = 0 and returns the smaller root strictly
// inside (tMin, tMax), or the larger one if the smaller is out of range
func hitSphere(ray core.Ray, center core.Vec3, radius float32, mat material.Material, tMin, tMax float32) (*material.HitRecord, bool) {
	oc := ray.Origin.Subtract(center)
	a := ray.Direction.Dot(ray.Direction)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - a*c
	if !(discriminant > 0) {
		return nil, false
	}

	sqrtD := math32.Sqrt(discriminant)
	root := (-b - sqrtD) / a
	if !(root > tMin && root < tMax) {
		root = (-b + sqrtD) / a
		if !(root > tMin && root < tMax) {
			return nil, false
		}
	}

	point := ray.At(root)
	normal := point.Subtract(center).Divide(radius)
	u, v := sphereUV(normal)

	return &material.HitRecord{
		T:        root,
		Point:    point,
		Normal:   normal,
		U:        u,
		V:        v,
		Material: mat,
	}, true
}

// sphereUV maps a point on the unit sphere to (u, v) in [0,1]²:
// u wraps around the y axis starting from -x, v runs from the south pole to the north pole
func sphereUV(p core.Vec3) (float32, float32) {
	phi := math32.Atan2(p.Z, p.X)
	theta := math32.Asin(max(-1, min(1, p.Y)))
	u := 1 - (phi+math32.Pi)/(2*math32.Pi)
	v := (theta + math32.Pi/2) / math32.Pi
	return u, v
}
