package scene

import (
	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/geometry"
	"github.com/df07/go-offline-pathtracer/pkg/integrator"
	"github.com/df07/go-offline-pathtracer/pkg/loaders"
	"github.com/df07/go-offline-pathtracer/pkg/material"
	"github.com/df07/go-offline-pathtracer/pkg/renderer"
)

// outdoorCamera looks at the origin from a distance, as used by the sphere scenes
func outdoorCamera(lookFrom core.Vec3, aperture float32) renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:  lookFrom,
		LookAt:    core.NewVec3(0, 0, 0),
		Up:        core.NewVec3(0, 1, 0),
		VFov:      20,
		Aperture:  aperture,
		FocusDist: 10,
		Time0:     0,
		Time1:     1,
	}
}

func marbleGround(scale float32) geometry.Hitable {
	return geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(material.NewNoiseTexture(scale)))
}

// newRandomSpheresScene creates a checker ground covered in small spheres
// around three large ones. Diffuse spheres move upward during the shutter interval.
func newRandomSpheresScene(opts Options, sampler *core.RandomSampler) (*Scene, error) {
	checker := material.NewCheckerTexture(
		material.NewSolidColor(core.NewVec3(0.2, 0.3, 0.1)),
		material.NewSolidColor(core.NewVec3(0.9, 0.9, 0.9)),
	)
	objects := []geometry.Hitable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)),
	}

	keepClear := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			choose := sampler.Get1D()
			center := core.NewVec3(float32(a)+0.9*sampler.Get1D(), 0.2, float32(b)+0.9*sampler.Get1D())
			if center.Subtract(keepClear).Length() <= 0.9 {
				continue
			}

			switch {
			case choose < 0.8:
				albedo := randomVec3(sampler).MultiplyVec(randomVec3(sampler))
				end := center.Add(core.NewVec3(0, 0.5*sampler.Get1D(), 0))
				objects = append(objects, geometry.NewMovingSphere(center, end, 0, 1, 0.2, material.NewLambertian(albedo)))
			case choose < 0.95:
				albedo := randomVec3(sampler).Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, 0.5*sampler.Get1D())))
			default:
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)

	return &Scene{
		Objects:    objects,
		Camera:     outdoorCamera(core.NewVec3(13, 2, 3), 0.1),
		Background: integrator.SkyGradient,
	}, nil
}

// newTwoPerlinScene creates a marble sphere resting on marble ground
func newTwoPerlinScene(opts Options, sampler *core.RandomSampler) (*Scene, error) {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4))
	return &Scene{
		Objects: []geometry.Hitable{
			marbleGround(4),
			geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		},
		Camera:     outdoorCamera(core.NewVec3(13, 2, 3), 0),
		Background: integrator.SkyGradient,
	}, nil
}

// newEarthScene places an image-textured sphere between glass and metal spheres
func newEarthScene(opts Options, sampler *core.RandomSampler) (*Scene, error) {
	if opts.TexturePath == "" {
		return nil, ErrMissingTexture
	}
	texture, err := loaders.LoadImageTexture(opts.TexturePath)
	if err != nil {
		return nil, err
	}

	return &Scene{
		Objects: []geometry.Hitable{
			marbleGround(4),
			geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
			geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewTexturedLambertian(texture)),
			geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
		},
		Camera:     outdoorCamera(core.NewVec3(13, 2, 3), 0),
		Background: integrator.SkyGradient,
	}, nil
}

// newSimpleLightScene lights two marble objects with a sphere and a rectangle light
func newSimpleLightScene(opts Options, sampler *core.RandomSampler) (*Scene, error) {
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4))
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	camera := outdoorCamera(core.NewVec3(26, 3, 6), 0)
	camera.LookAt = core.NewVec3(0, 2, 0)

	return &Scene{
		Objects: []geometry.Hitable{
			marbleGround(4),
			geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
			geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light),
			geometry.NewXYRect(3, 5, 1, 3, -2, light),
		},
		Camera:     camera,
		Background: integrator.BackgroundBlack,
	}, nil
}
