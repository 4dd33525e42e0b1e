// Package output writes rendered frames to disk.
package output

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// RenderPath returns output/<scene>/render_<timestamp>.png under baseDir
func RenderPath(baseDir, sceneName string, t time.Time) string {
	timestamp := t.Format("20060102_150405")
	return filepath.Join(baseDir, sceneName, fmt.Sprintf("render_%s.png", timestamp))
}

// FramePath returns the path of frame number n of a sequence saved next to RenderPath
func FramePath(baseDir, sceneName string, t time.Time, n int) string {
	timestamp := t.Format("20060102_150405")
	return filepath.Join(baseDir, sceneName, fmt.Sprintf("render_%s_%03d.png", timestamp, n))
}

// SavePNG encodes img as PNG at filename, creating parent directories as needed
func SavePNG(filename string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imgio.Save(filename, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return nil
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling so every
// rendered pixel becomes a factor x factor block. A factor below 2 returns img unchanged.
func Upscale(img *image.RGBA, factor int) *image.RGBA {
	if factor < 2 {
		return img
	}
	bounds := img.Bounds()
	return transform.Resize(img, bounds.Dx()*factor, bounds.Dy()*factor, transform.NearestNeighbor)
}
