package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-cube-raytracer/pkg/core"
)

// PixelSink receives one color per framebuffer cell per frame. Colors may exceed
// [0,1]; sinks clamp when converting to their own format.
type PixelSink interface {
	SetPixel(x, y int, c core.Vec3)
}

// ImageSink writes pixels into an in-memory RGBA image
type ImageSink struct {
	Image *image.RGBA
}

// NewImageSink creates a sink backed by a new width x height image
func NewImageSink(width, height int) *ImageSink {
	return &ImageSink{Image: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (s *ImageSink) SetPixel(x, y int, c core.Vec3) {
	s.Image.SetRGBA(x, y, ToRGBA(c))
}

// ToRGBA converts a linear color to 8-bit RGBA, clamping each channel to [0,1]
func ToRGBA(c core.Vec3) color.RGBA {
	clamped := c.Clamp(0, 1)
	return color.RGBA{
		R: uint8(clamped.X*255 + 0.5),
		G: uint8(clamped.Y*255 + 0.5),
		B: uint8(clamped.Z*255 + 0.5),
		A: 255,
	}
}
