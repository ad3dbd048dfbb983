package integrator

import (
	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance arriving along ray. The sampler is owned by
	// the calling worker; world is shared read-only.
	RayColor(ray core.Ray, world geometry.Hitable, sampler core.Sampler) core.Vec3
}

// Background returns the radiance of rays that escape the scene
type Background func(ray core.Ray) core.Vec3

// BackgroundBlack is the background of scenes lit only by emissive materials
func BackgroundBlack(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}

// SkyGradient blends from white at the horizon to light blue overhead
func SkyGradient(ray core.Ray) core.Vec3 {
	return Gradient(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0))(ray)
}

// Gradient returns a background that interpolates between bottom and top
// by the y component of the ray direction
func Gradient(top, bottom core.Vec3) Background {
	return func(ray core.Ray) core.Vec3 {
		// Normalize the ray direction to get consistent results
		unitDirection := ray.Direction.Normalize()

		// Use the y-component to create a gradient (map from -1,1 to 0,1)
		t := 0.5 * (unitDirection.Y + 1.0)

		// Linear interpolation: (1-t)*bottom + t*top
		return bottom.Multiply(1.0 - t).Add(top.Multiply(t))
	}
}
