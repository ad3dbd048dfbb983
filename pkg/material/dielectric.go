package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-offline-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float32 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float32) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering.
// Reflection or refraction is chosen at random with the Schlick reflectance
// as the reflection probability.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Clear glass does not absorb
	attenuation := core.NewVec3(1.0, 1.0, 1.0)
	direction := rayIn.Direction

	var outwardNormal core.Vec3
	var niOverNt, cosine float32
	if direction.Dot(hit.Normal) > 0 {
		// Exiting the material
		outwardNormal = hit.Normal.Negate()
		niOverNt = d.RefractiveIndex
		cosine = d.RefractiveIndex * direction.Dot(hit.Normal) / direction.Length()
	} else {
		// Entering the material
		outwardNormal = hit.Normal
		niOverNt = 1.0 / d.RefractiveIndex
		cosine = -direction.Dot(hit.Normal) / direction.Length()
	}

	reflectProb := float32(1.0)
	refracted, canRefract := Refract(direction, outwardNormal, niOverNt)
	if canRefract {
		reflectProb = Schlick(cosine, d.RefractiveIndex)
	}

	out := refracted
	if sampler.Get1D() < reflectProb {
		out = Reflect(direction, hit.Normal)
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, out, rayIn.Time),
		Attenuation: attenuation,
	}, true
}

// Refract bends v through a surface with normal n by Snell's law. It returns
// false on total internal reflection.
func Refract(v, n core.Vec3, niOverNt float32) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}

	refracted := uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).
		Subtract(n.Multiply(math32.Sqrt(discriminant)))
	return refracted, true
}

// Schlick calculates the Fresnel reflectance using Schlick's approximation
func Schlick(cosine, refIdx float32) float32 {
	r0 := (1 - refIdx) / (1 + refIdx)
	r0 = r0 * r0
	return r0 + (1-r0)*math32.Pow(1-cosine, 5)
}
