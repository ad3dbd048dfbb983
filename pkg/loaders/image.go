package loaders

import (
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // WebP decoder
	"golang.org/x/xerrors"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

// ErrUnsupportedFormat is returned when an output file extension has no encoder
var ErrUnsupportedFormat = xerrors.New("unsupported image format")

// jpegQuality is used for .jpg/.jpeg output
const jpegQuality = 95

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 is the top of the image
}

// Texture wraps the pixels in an image texture
func (d *ImageData) Texture() *material.ImageTexture {
	return material.NewImageTexture(d.Width, d.Height, d.Pixels)
}

// LoadImage loads a PNG, JPEG, BMP, TIFF or WebP image and converts it to a
// Vec3 color array with channels in [0, 1]
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, xerrors.Errorf("while opening image %q: %w", filename, err)
	}
	defer file.Close()

	// Format is detected from the file header
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, xerrors.Errorf("while decoding image %q: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, xerrors.Errorf("image %q is empty", filename)
	}
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float32(r)/65535.0,
				float32(g)/65535.0,
				float32(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// LoadImageTexture loads an image file as an image texture
func LoadImageTexture(filename string) (*material.ImageTexture, error) {
	data, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	return data.Texture(), nil
}

// SaveImage encodes img to filename, choosing the format from the extension:
// .png, .jpg/.jpeg, .bmp or .tif/.tiff
func SaveImage(filename string, img image.Image) error {
	encode, err := encoderFor(filename)
	if err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return xerrors.Errorf("while creating output file %q: %w", filename, err)
	}

	if err := encode(file, img); err != nil {
		file.Close()
		return xerrors.Errorf("while encoding %q: %w", filename, err)
	}
	if err := file.Close(); err != nil {
		return xerrors.Errorf("while closing %q: %w", filename, err)
	}
	return nil
}

type encoderFunc func(file *os.File, img image.Image) error

func encoderFor(filename string) (encoderFunc, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".png":
		return func(f *os.File, img image.Image) error { return png.Encode(f, img) }, nil
	case ".jpg", ".jpeg":
		return func(f *os.File, img image.Image) error {
			return jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
		}, nil
	case ".bmp":
		return func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }, nil
	case ".tif", ".tiff":
		return func(f *os.File, img image.Image) error {
			return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, xerrors.Errorf("output %q has extension %q: %w", filename, ext, ErrUnsupportedFormat)
	}
}

// SupportedOutputExtensions lists the extensions SaveImage can encode
func SupportedOutputExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"}
}
