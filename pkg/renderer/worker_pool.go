package renderer

import (
	"context"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-offline-pathtracer/pkg/core"
)

// WorkerPool renders pixels in parallel. Pixels are handed out by index so
// every worker writes disjoint slots of the output.
type WorkerPool struct {
	workers    []*Worker
	numWorkers int
}

// Worker owns the sampler used for every pixel it renders
type Worker struct {
	ID        int
	raytracer *Raytracer
	sampler   *core.RandomSampler
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(raytracer *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{numWorkers: numWorkers}
	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:        i,
			raytracer: raytracer,
			sampler:   core.NewSeededSampler(raytracer.config.Seed),
		})
	}
	return wp
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Render fills img and pixels, one task per pixel, and returns when every
// pixel is done
func (wp *WorkerPool) Render(img *image.RGBA, pixels []PixelStats, progress *progressLogger) error {
	g, ctx := errgroup.WithContext(context.Background())
	tasks := make(chan int, 2*wp.numWorkers)

	for _, worker := range wp.workers {
		worker := worker
		g.Go(func() error {
			return worker.run(tasks, img, pixels, progress)
		})
	}

	g.Go(func() error {
		defer close(tasks)
		for index := range pixels {
			select {
			case tasks <- index:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	return g.Wait()
}

// run is the main worker loop
func (w *Worker) run(tasks <-chan int, img *image.RGBA, pixels []PixelStats, progress *progressLogger) error {
	width := w.raytracer.config.Width
	for index := range tasks {
		// A pixel's samples depend only on the seed and its index, not on
		// which worker picks it up
		w.sampler.Reseed(pixelSeed(w.raytracer.config.Seed, index))

		x, row := index%width, index/width
		color := w.raytracer.RenderPixel(x, row, w.sampler, &pixels[index])
		img.SetRGBA(x, row, toRGBA(color))

		if progress != nil {
			progress.pixelDone()
		}
	}
	return nil
}

// pixelSeed mixes the render seed and pixel index (splitmix64 finalizer)
func pixelSeed(seed int64, index int) int64 {
	z := uint64(seed) + uint64(index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
