package renderer

import (
	"image"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"golang.org/x/time/rate"

	"github.com/df07/go-offline-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	AverageSamples   float64       // Average samples per pixel
	Workers          int           // Number of worker goroutines used
	Duration         time.Duration // Wall time of the render
	AverageLuminance float64       // Mean luminance of the encoded image
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	LuminanceAccum   float64   // Luminance accumulator
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := float64(color.Luminance())
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float32(ps.SampleCount))
}

// LuminanceVariance returns the sample variance of the luminance
func (ps *PixelStats) LuminanceVariance() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	return max(0, (ps.LuminanceSqAccum-n*mean*mean)/(n-1))
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of the image
// with channels scaled to [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	count := bounds.Dx() * bounds.Dy()
	if count == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
		}
	}
	return total / float64(count)
}

// progressLogger reports completed pixels at most once per interval.
// It is shared by all workers.
type progressLogger struct {
	total   int64
	done    atomic.Int64
	limiter *rate.Limiter
}

func newProgressLogger(total int, interval time.Duration) *progressLogger {
	return &progressLogger{
		total:   int64(total),
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

func (p *progressLogger) pixelDone() {
	done := p.done.Add(1)
	if done == p.total || p.limiter.Allow() {
		glog.V(1).Infof("Rendered %d/%d pixels (%.1f%%)", done, p.total, 100*float64(done)/float64(p.total))
	}
}
