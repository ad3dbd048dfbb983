package material

import (
	"github.com/df07/go-offline-pathtracer/pkg/core"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter returns the attenuation at this vertex and, when the bool is
	// true, a continuation ray. A false result terminates the path here.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// Emitter interface for materials that emit light.
// Materials that do not implement it emit nothing.
type Emitter interface {
	Emitted(u, v float32, point core.Vec3) core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray, valid only when scattering occurred
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection.
// Material references scene-owned data shared by every concurrent query.
type HitRecord struct {
	T        float32   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit surface normal in the object's own convention (not forced to face the ray)
	U, V     float32   // Surface parameterization
	Material Material  // Material of the hit object
}

// Emitted returns the light emitted by m at the given surface coordinates,
// or black when m is not an Emitter.
func Emitted(m Material, u, v float32, point core.Vec3) core.Vec3 {
	if emitter, ok := m.(Emitter); ok {
		return emitter.Emitted(u, v, point)
	}
	return core.Vec3{}
}
