package renderer

import (
	"image"
	"image/color"
	"time"

	"github.com/golang/glog"
	"golang.org/x/xerrors"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/geometry"
	"github.com/df07/go-offline-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray recursion depth
	NumWorkers      int   // Worker goroutines; 0 means one per CPU
	Seed            int64 // Base seed; equal seeds give identical images
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           640,
		Height:          320,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		Seed:            1,
	}
}

// Validate checks that every dimension and count is usable
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return xerrors.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return xerrors.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return xerrors.Errorf("max depth must be positive, got %d", c.MaxDepth)
	case c.NumWorkers < 0:
		return xerrors.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	return nil
}

// progressInterval bounds how often render progress is logged
const progressInterval = time.Second

// Raytracer renders a world through a camera. The world, camera and
// integrator are shared read-only by every worker.
type Raytracer struct {
	world      geometry.Hitable
	camera     *Camera
	integrator integrator.Integrator
	config     SamplingConfig
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world geometry.Hitable, camera *Camera, integ integrator.Integrator, config SamplingConfig) *Raytracer {
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integ,
		config:     config,
	}
}

// Render samples every pixel in parallel and returns the gamma-encoded image
func (rt *Raytracer) Render() (*image.RGBA, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, xerrors.Errorf("while validating sampling config: %w", err)
	}

	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))
	pixels := make([]PixelStats, rt.config.Width*rt.config.Height)

	pool := NewWorkerPool(rt, rt.config.NumWorkers)
	glog.Infof("Rendering %dx%d at %d samples per pixel with %d workers",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, pool.GetNumWorkers())

	progress := newProgressLogger(len(pixels), progressInterval)
	if err := pool.Render(img, pixels, progress); err != nil {
		return nil, RenderStats{}, xerrors.Errorf("while rendering pixels: %w", err)
	}

	stats := RenderStats{
		TotalPixels: len(pixels),
		Workers:     pool.GetNumWorkers(),
		Duration:    time.Since(start),
	}
	for i := range pixels {
		stats.TotalSamples += pixels[i].SampleCount
	}
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	stats.AverageLuminance = CalculateAverageLuminance(img)

	glog.Infof("Rendered %d pixels (%d samples) in %v", stats.TotalPixels, stats.TotalSamples, stats.Duration)
	return img, stats, nil
}

// RenderPixel averages SamplesPerPixel jittered samples for the pixel at
// column x and image row (row 0 is the top of the image)
func (rt *Raytracer) RenderPixel(x, row int, sampler core.Sampler, ps *PixelStats) core.Vec3 {
	// Camera coordinates grow upwards
	y := rt.config.Height - 1 - row

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		s := (float32(x) + sampler.Get1D()) / float32(rt.config.Width)
		t := (float32(y) + sampler.Get1D()) / float32(rt.config.Height)

		ray := rt.camera.GetRay(s, t, sampler)
		ps.AddSample(rt.integrator.RayColor(ray, rt.world, sampler))
	}

	return ps.GetColor()
}

// toRGBA applies gamma 2 (square root), clamps to [0,1] and quantizes with
// 255.99 so that 1.0 maps to 255
func toRGBA(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Sqrt()

	return color.RGBA{
		R: quantize(colorVec.X),
		G: quantize(colorVec.Y),
		B: quantize(colorVec.Z),
		A: 255,
	}
}

// quantize maps [0,1] to [0,255]; NaN becomes 0
func quantize(c float32) uint8 {
	if !(c > 0) {
		return 0
	}
	return uint8(255.99 * min(c, 1))
}
