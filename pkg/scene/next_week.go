package scene

import (
	"golang.org/x/xerrors"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/geometry"
	"github.com/df07/go-offline-pathtracer/pkg/integrator"
	"github.com/df07/go-offline-pathtracer/pkg/loaders"
	"github.com/df07/go-offline-pathtracer/pkg/material"
	"github.com/df07/go-offline-pathtracer/pkg/renderer"
)

const (
	floorBoxesPerSide = 20
	floorBoxWidth     = 100
	clusterSpheres    = 1000
)

// newNextWeekScene exercises every feature at once: a floor of boxes and a
// cluster of spheres each in their own BVH, motion blur, glass, metal,
// subsurface-like and global media, and image and noise textures.
func newNextWeekScene(opts Options, sampler *core.RandomSampler) (*Scene, error) {
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	floor := make([]geometry.Hitable, 0, floorBoxesPerSide*floorBoxesPerSide)
	for i := 0; i < floorBoxesPerSide; i++ {
		for j := 0; j < floorBoxesPerSide; j++ {
			x0 := float32(-1000 + i*floorBoxWidth)
			z0 := float32(-1000 + j*floorBoxWidth)
			y1 := 100 * (sampler.Get1D() + 0.01)
			floor = append(floor, geometry.NewBox(
				core.NewVec3(x0, 0, z0),
				core.NewVec3(x0+floorBoxWidth, y1, z0+floorBoxWidth),
				ground,
			))
		}
	}
	floorBVH, err := geometry.NewBVH(floor, sampler)
	if err != nil {
		return nil, xerrors.Errorf("while building floor BVH: %w", err)
	}

	earth, err := nextWeekEarth(opts)
	if err != nil {
		return nil, err
	}

	objects := []geometry.Hitable{
		floorBVH,
		geometry.NewXZRect(123, 423, 147, 412, boxSize-1, material.NewDiffuseLight(core.NewVec3(7, 7, 7))),
	}

	center := core.NewVec3(400, 400, 200)
	objects = append(objects,
		geometry.NewMovingSphere(center, center.Add(core.NewVec3(30, 0, 0)), 0, 1, 50,
			material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))),
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1)),
	)

	// Glass shell filled with blue medium
	shell := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	objects = append(objects,
		shell,
		geometry.NewConstantMedium(shell, 0.2, material.NewSolidColor(core.NewVec3(0.2, 0.4, 0.9))),
	)

	// Thin fog over the whole scene
	fog := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	objects = append(objects, geometry.NewConstantMedium(fog, 0.0001, material.NewSolidColor(core.NewVec3(1, 1, 1))))

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earth)),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(material.NewNoiseTexture(0.1))),
	)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	cluster := make([]geometry.Hitable, clusterSpheres)
	for i := range cluster {
		cluster[i] = geometry.NewSphere(randomVec3(sampler).Multiply(165), 10, white)
	}
	clusterBVH, err := geometry.NewBVH(cluster, sampler)
	if err != nil {
		return nil, xerrors.Errorf("while building sphere cluster BVH: %w", err)
	}
	objects = append(objects,
		geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15), core.NewVec3(-100, 270, 395)))

	return &Scene{
		Objects: objects,
		Camera: renderer.CameraConfig{
			LookFrom:  core.NewVec3(478, 278, -600),
			LookAt:    core.NewVec3(278, 278, 0),
			Up:        core.NewVec3(0, 1, 0),
			VFov:      40,
			FocusDist: 10,
			Time0:     0,
			Time1:     1,
		},
		Background: integrator.BackgroundBlack,
	}, nil
}

// nextWeekEarth loads the texture if one was given and falls back to a UV debug pattern
func nextWeekEarth(opts Options) (material.ColorSource, error) {
	if opts.TexturePath == "" {
		return material.NewUVDebugTexture(64, 32), nil
	}
	texture, err := loaders.LoadImageTexture(opts.TexturePath)
	if err != nil {
		return nil, err
	}
	return texture, nil
}
