package material

import (
	"github.com/df07/go-offline-pathtracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 is the top of the image: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering.
// UV is clamped into the image; v=0 is the bottom row.
func (t *ImageTexture) Evaluate(u, v float32, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.NewVec3(0, 1, 1)
	}

	i := u * float32(t.Width)
	j := (1-v)*float32(t.Height) - 0.001

	// The comparisons are written so that NaN clamps to 0
	if !(i > 0) {
		i = 0
	}
	if !(j > 0) {
		j = 0
	}
	i = min(i, float32(t.Width-1))
	j = min(j, float32(t.Height-1))

	return t.Pixels[int(j)*t.Width+int(i)]
}

// NewUVDebugTexture builds a raster whose red and green channels are the u and
// v coordinate of each texel, for checking surface parameterizations
func NewUVDebugTexture(width, height int) *ImageTexture {
	pixels := make([]core.Vec3, 0, width*height)
	for row := 0; row < height; row++ {
		v := 1 - float32(row)/float32(max(height-1, 1))
		for col := 0; col < width; col++ {
			u := float32(col) / float32(max(width-1, 1))
			pixels = append(pixels, core.NewVec3(u, v, 0))
		}
	}
	return NewImageTexture(width, height, pixels)
}
