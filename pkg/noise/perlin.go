// Package noise provides lattice gradient noise and turbulence for procedural textures.
package noise

import (
	"math/rand"
	"sync"

	"github.com/chewxy/math32"

	"github.com/df07/go-offline-pathtracer/pkg/core"
)

const pointCount = 256

// DefaultSeed seeds the process-wide generator returned by Default
const DefaultSeed = 1

// Perlin holds a fixed random lattice of unit gradient vectors and three
// permutation tables. It is immutable after construction and safe for
// concurrent use.
type Perlin struct {
	ranvec [pointCount]core.Vec3
	permX  [pointCount]int
	permY  [pointCount]int
	permZ  [pointCount]int
}

// NewPerlin creates a noise generator whose lattice is drawn from random
func NewPerlin(random *rand.Rand) *Perlin {
	p := &Perlin{}
	for i := range p.ranvec {
		p.ranvec[i] = core.NewVec3(
			-1+2*random.Float32(),
			-1+2*random.Float32(),
			-1+2*random.Float32(),
		).Normalize()
	}
	generatePerm(&p.permX, random)
	generatePerm(&p.permY, random)
	generatePerm(&p.permZ, random)
	return p
}

var (
	defaultOnce   sync.Once
	defaultPerlin *Perlin
)

// Default returns the process-wide generator, built on first use
func Default() *Perlin {
	defaultOnce.Do(func() {
		defaultPerlin = NewPerlin(rand.New(rand.NewSource(DefaultSeed)))
	})
	return defaultPerlin
}

// Noise returns smoothly interpolated gradient noise at p, in roughly [-1, 1]
func (p *Perlin) Noise(point core.Vec3) float32 {
	fx := math32.Floor(point.X)
	fy := math32.Floor(point.Y)
	fz := math32.Floor(point.Z)

	u := point.X - fx
	v := point.Y - fy
	w := point.Z - fz

	i := int(fx)
	j := int(fy)
	k := int(fz)

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = p.ranvec[p.permX[(i+di)&255]^p.permY[(j+dj)&255]^p.permZ[(k+dk)&255]]
			}
		}
	}

	return interpolate(&c, u, v, w)
}

// Turbulence sums depth octaves of noise with halving weight and doubling
// frequency and returns the absolute value of the sum.
func (p *Perlin) Turbulence(point core.Vec3, depth int) float32 {
	var accum float32
	weight := float32(1.0)

	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(point)
		weight *= 0.5
		point = point.Multiply(2)
	}

	return math32.Abs(accum)
}

// interpolate blends the eight corner gradients with Hermite smoothing
func interpolate(c *[2][2][2]core.Vec3, u, v, w float32) float32 {
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	var accum float32
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float32(i), float32(j), float32(k)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) * c[i][j][k].Dot(weight)
			}
		}
	}

	return accum
}

// generatePerm fills perm with a Fisher-Yates shuffle of 0..n-1
func generatePerm(perm *[pointCount]int, random *rand.Rand) {
	for i := range perm {
		perm[i] = i
	}
	for i := pointCount - 1; i > 0; i-- {
		target := random.Intn(i + 1)
		perm[i], perm[target] = perm[target], perm[i]
	}
}
