package scene

import (
	"sort"

	"golang.org/x/xerrors"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/geometry"
	"github.com/df07/go-offline-pathtracer/pkg/integrator"
	"github.com/df07/go-offline-pathtracer/pkg/renderer"
)

var (
	// ErrUnknownScene is returned by Build for a name that is not registered
	ErrUnknownScene = xerrors.New("unknown scene")
	// ErrMissingTexture is returned by scenes that need an image texture when none was given
	ErrMissingTexture = xerrors.New("scene needs an image texture")
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name       string
	Objects    []geometry.Hitable    // Top-level objects, wrapped in a BVH by World
	Camera     renderer.CameraConfig // AspectRatio is taken from Options
	Background integrator.Background // Default background for this scene
}

// Options parameterize scene construction
type Options struct {
	AspectRatio float32 // Image width over height
	Seed        int64   // Seed for object placement and BVH axis choice
	TexturePath string  // Image used by textured spheres
}

// World builds the acceleration structure over the scene's objects
func (s *Scene) World(sampler core.Sampler) (*geometry.BVH, error) {
	bvh, err := geometry.NewBVH(s.Objects, sampler)
	if err != nil {
		return nil, xerrors.Errorf("while building BVH for scene %q: %w", s.Name, err)
	}
	return bvh, nil
}

type builder func(opts Options, sampler *core.RandomSampler) (*Scene, error)

type preset struct {
	description string
	build       builder
}

var presets = map[string]preset{
	"random-spheres": {"ground checker with a field of small moving, metal and glass spheres", newRandomSpheresScene},
	"two-perlin":     {"marble ground and a marble sphere under a sky", newTwoPerlinScene},
	"earth":          {"image-textured sphere next to glass and metal spheres (needs --texture)", newEarthScene},
	"simple-light":   {"marble spheres lit by a spherical and a rectangular light", newSimpleLightScene},
	"cornell":        {"Cornell box with two rotated boxes", newCornellScene},
	"cornell-smoke":  {"Cornell box with smoke and fog blocks", newCornellSmokeScene},
	"next-week":      {"box floor, media, motion blur and a nested sphere cluster", newNextWeekScene},
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line description of a registered scene
func Describe(name string) string {
	return presets[name].description
}

// Build creates the named scene. Object placement is a pure function of opts.Seed.
func Build(name string, opts Options) (*Scene, error) {
	p, ok := presets[name]
	if !ok {
		return nil, xerrors.Errorf("scene %q: %w", name, ErrUnknownScene)
	}
	if opts.AspectRatio <= 0 {
		opts.AspectRatio = 1
	}

	s, err := p.build(opts, core.NewSeededSampler(opts.Seed))
	if err != nil {
		return nil, xerrors.Errorf("while building scene %q: %w", name, err)
	}
	s.Name = name
	s.Camera.AspectRatio = opts.AspectRatio
	if s.Background == nil {
		s.Background = integrator.BackgroundBlack
	}
	return s, nil
}

// randomVec3 returns a vector with each component uniform in [0, 1)
func randomVec3(sampler core.Sampler) core.Vec3 {
	return core.NewVec3(sampler.Get1D(), sampler.Get1D(), sampler.Get1D())
}
