package renderer

import (
	"image"

	"github.com/df07/go-cube-raytracer/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// FrameBuffer holds one frame's colors in row-major order. Workers write disjoint
// tiles, so no locking is needed.
type FrameBuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrameBuffer creates a black frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// SetPixel implements PixelSink
func (fb *FrameBuffer) SetPixel(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// At returns the color at (x, y)
func (fb *FrameBuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// WriteTo copies every pixel to sink in row-major order
func (fb *FrameBuffer) WriteTo(sink PixelSink) {
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			sink.SetPixel(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
}

// TileImage extracts the pixels under bounds as an RGBA image
func (fb *FrameBuffer) TileImage(bounds image.Rectangle) *image.RGBA {
	tileImage := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			tileImage.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, ToRGBA(fb.At(x, y)))
		}
	}
	return tileImage
}
