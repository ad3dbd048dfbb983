package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/noise"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(u, v float32, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(u, v float32, point core.Vec3) core.Vec3 {
	return s.Color
}

// DefaultCheckerFrequency is the spatial frequency used by NewCheckerTexture
const DefaultCheckerFrequency = 10

// CheckerTexture alternates between two sources in a 3D checkerboard: the
// sign of sin(fx)·sin(fy)·sin(fz) selects Odd when negative and Even otherwise.
type CheckerTexture struct {
	Odd       ColorSource
	Even      ColorSource
	Frequency float32
}

// NewCheckerTexture creates a checker with the default frequency
func NewCheckerTexture(odd, even ColorSource) *CheckerTexture {
	return &CheckerTexture{Odd: odd, Even: even, Frequency: DefaultCheckerFrequency}
}

// Evaluate implements ColorSource
func (c *CheckerTexture) Evaluate(u, v float32, point core.Vec3) core.Vec3 {
	sines := math32.Sin(c.Frequency*point.X) *
		math32.Sin(c.Frequency*point.Y) *
		math32.Sin(c.Frequency*point.Z)

	if sines < 0 {
		return c.Odd.Evaluate(u, v, point)
	}
	return c.Even.Evaluate(u, v, point)
}

const turbulenceDepth = 7

// NoiseTexture produces marble-like banding: a sine along z phase-shifted by turbulence
type NoiseTexture struct {
	Scale float32
	noise *noise.Perlin
}

// NewNoiseTexture creates a marble texture using the process-wide noise generator
func NewNoiseTexture(scale float32) *NoiseTexture {
	return NewNoiseTextureWith(noise.Default(), scale)
}

// NewNoiseTextureWith creates a marble texture using a specific noise generator
func NewNoiseTextureWith(perlin *noise.Perlin, scale float32) *NoiseTexture {
	return &NoiseTexture{Scale: scale, noise: perlin}
}

// Evaluate implements ColorSource
func (n *NoiseTexture) Evaluate(u, v float32, point core.Vec3) core.Vec3 {
	turb := n.noise.Turbulence(point, turbulenceDepth)
	gray := 0.5 * (1 + math32.Sin(n.Scale*point.Z+10*turb))
	return core.NewVec3(gray, gray, gray)
}
