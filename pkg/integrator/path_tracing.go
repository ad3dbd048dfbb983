package integrator

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/geometry"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

const (
	// DefaultMaxDepth is the recursion cap used when none is configured
	DefaultMaxDepth = 50

	// shadowEpsilon is the lower bound of every hit query, avoiding self-intersection
	shadowEpsilon = 0.001
)

// PathTracingIntegrator implements unidirectional path tracing with no
// explicit light sampling: radiance is emitted + attenuation * incoming,
// recursing until the path escapes, is absorbed or exceeds MaxDepth
type PathTracingIntegrator struct {
	MaxDepth   int
	Background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator. A nil
// background is black; a non-positive depth uses DefaultMaxDepth.
func NewPathTracingIntegrator(maxDepth int, background Background) *PathTracingIntegrator {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if background == nil {
		background = BackgroundBlack
	}
	return &PathTracingIntegrator{
		MaxDepth:   maxDepth,
		Background: background,
	}
}

// RayColor computes the color for a camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hitable, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, world, sampler, 0)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world geometry.Hitable, sampler core.Sampler, depth int) core.Vec3 {
	hit, isHit := world.Hit(ray, shadowEpsilon, math32.Inf(1), sampler)
	if !isHit {
		return pt.Background(ray)
	}

	// Hard depth cap; the path is cut off and contributes nothing
	if depth > pt.MaxDepth {
		return core.Vec3{}
	}

	emitted := material.Emitted(hit.Material, hit.U, hit.V, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return emitted
	}

	incoming := pt.rayColor(scatter.Scattered, world, sampler, depth+1)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}
