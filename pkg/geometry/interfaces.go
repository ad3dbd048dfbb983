package geometry

import (
	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

// Hitable interface for objects that can be hit by rays.
// Implementations are immutable after construction and safe for concurrent queries.
type Hitable interface {
	// Hit returns the closest intersection with t in [tMin, tMax].
	// The sampler is only consulted by stochastic objects such as participating media.
	Hit(ray core.Ray, tMin, tMax float32, sampler core.Sampler) (*material.HitRecord, bool)

	// BoundingBox returns false for unbounded objects
	BoundingBox() (core.AABB, bool)
}
