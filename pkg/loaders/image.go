package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/imgio"
	_ "golang.org/x/image/bmp"  // BMP decoder, the format of the classic block texture atlases
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/df07/go-cube-raytracer/pkg/core"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads a PNG, JPEG, BMP, TIFF or WebP image and converts it to a Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	return LoadImageAdjusted(filename, 0)
}

// LoadImageAdjusted loads an image and shifts its brightness by a factor in [-1, 1]
// before conversion. A zero brightness leaves the pixels untouched.
func LoadImageAdjusted(filename string, brightness float64) (*ImageData, error) {
	img, err := imgio.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
	}

	if brightness != 0 {
		img = adjust.Brightness(img, brightness)
	}

	return FromImage(img), nil
}

// FromImage converts a decoded image into a Vec3 color array with (0, 0) at the top-left
func FromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}
