package scene

import (
	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/geometry"
	"github.com/df07/go-offline-pathtracer/pkg/integrator"
	"github.com/df07/go-offline-pathtracer/pkg/material"
	"github.com/df07/go-offline-pathtracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555

func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:  core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:    core.NewVec3(278, 278, 0),
		Up:        core.NewVec3(0, 1, 0),
		VFov:      40,
		Aperture:  0, // No depth of field for Cornell box
		FocusDist: 10,
		Time0:     0,
		Time1:     1,
	}
}

// cornellRoom returns the walls of the box together with its ceiling light
func cornellRoom(light geometry.Hitable) []geometry.Hitable {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	return []geometry.Hitable{
		geometry.NewFlipNormal(geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green)), // left
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red),                                  // right
		light,
		geometry.NewFlipNormal(geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, white)), // ceiling
		geometry.NewXZRect(0, boxSize, 0, boxSize, 0, white),                               // floor
		geometry.NewFlipNormal(geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white)), // back
	}
}

// cornellBlocks returns the short and the tall block in their final positions
func cornellBlocks(short, tall material.Material) (geometry.Hitable, geometry.Hitable) {
	shortBox := geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), short), -18),
		core.NewVec3(130, 0, 65),
	)
	tallBox := geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), tall), 15),
		core.NewVec3(265, 0, 295),
	)
	return shortBox, tallBox
}

// newCornellScene creates a classic Cornell box scene with a rectangular ceiling light
func newCornellScene(opts Options, sampler *core.RandomSampler) (*Scene, error) {
	light := geometry.NewXZRect(213, 343, 227, 332, boxSize-1, material.NewDiffuseLight(core.NewVec3(15, 15, 15)))
	objects := cornellRoom(light)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	shortBox, tallBox := cornellBlocks(white, white)
	objects = append(objects, shortBox, tallBox)

	return &Scene{
		Objects:    objects,
		Camera:     cornellCamera(),
		Background: integrator.BackgroundBlack,
	}, nil
}

// newCornellSmokeScene replaces the blocks with constant-density media and
// widens the light to compensate for its lower strength
func newCornellSmokeScene(opts Options, sampler *core.RandomSampler) (*Scene, error) {
	light := geometry.NewXZRect(113, 443, 127, 432, boxSize-1, material.NewDiffuseLight(core.NewVec3(7, 7, 7)))
	objects := cornellRoom(light)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	shortBox, tallBox := cornellBlocks(white, white)
	objects = append(objects,
		geometry.NewConstantMedium(shortBox, 0.01, material.NewSolidColor(core.NewVec3(1, 1, 1))),
		geometry.NewConstantMedium(tallBox, 0.01, material.NewSolidColor(core.NewVec3(0, 0, 0))),
	)

	return &Scene{
		Objects:    objects,
		Camera:     cornellCamera(),
		Background: integrator.BackgroundBlack,
	}, nil
}
