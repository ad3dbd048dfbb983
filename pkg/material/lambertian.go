package material

import (
	"github.com/df07/go-offline-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedoTexture ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedoTexture}
}

// Scatter implements the Material interface for lambertian scattering.
// The outgoing direction is normal + a random point in the unit sphere.
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	target := hit.Normal.Add(core.RandomInUnitSphere(sampler))

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, target, rayIn.Time),
		Attenuation: l.Albedo.Evaluate(hit.U, hit.V, hit.Point),
	}, true
}
