package material

import (
	"math"

	"github.com/df07/go-cube-raytracer/pkg/core"
)

// NewCheckerboardTexture creates a procedural checkerboard pattern texture
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *Texture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			checkX := x / checkSize
			checkY := y / checkSize

			var color core.Vec3
			if (checkX+checkY)%2 == 0 {
				color = color1
			} else {
				color = color2
			}

			pixels[y*width+x] = color
		}
	}

	return NewTexture(width, height, pixels)
}

// NewUVDebugTexture creates a texture showing UV coordinates as colors
// U maps to red channel, V maps to green channel
func NewUVDebugTexture(width, height int) *Texture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := float64(x) / float64(width-1)
			v := float64(y) / float64(height-1)
			pixels[y*width+x] = core.NewVec3(u, v, 0.0)
		}
	}

	return NewTexture(width, height, pixels)
}

// NewGradientTexture creates a vertical gradient from color1 (top) to color2 (bottom)
func NewGradientTexture(width, height int, color1, color2 core.Vec3) *Texture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		t := float64(y) / float64(height-1)
		color := color1.Multiply(1.0 - t).Add(color2.Multiply(t))

		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}

	return NewTexture(width, height, pixels)
}

// NewPlankTexture creates horizontal boards separated by dark seams, with a faint grain
func NewPlankTexture(size, boards int, wood core.Vec3) *Texture {
	pixels := make([]core.Vec3, size*size)
	boardHeight := max(1, size/boards)
	seam := wood.Multiply(0.45)

	for y := 0; y < size; y++ {
		board := y / boardHeight
		for x := 0; x < size; x++ {
			if y%boardHeight == 0 || (x+board*size/3)%size == 0 {
				pixels[y*size+x] = seam
				continue
			}
			grain := 0.9 + 0.1*math.Sin(float64(x)*0.35+float64(board)*1.7)
			pixels[y*size+x] = wood.Multiply(grain)
		}
	}

	return NewTexture(size, size, pixels)
}

// NewSpeckleTexture creates a deterministic speckled pattern between two colors,
// used as a stand-in for leaves, stone and similar noisy blocks
func NewSpeckleTexture(size, cell int, base, speck core.Vec3, seed uint32) *Texture {
	pixels := make([]core.Vec3, size*size)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			h := hashCell(uint32(x/cell), uint32(y/cell), seed)
			t := float64(h%1000) / 999.0
			pixels[y*size+x] = base.Multiply(1 - t).Add(speck.Multiply(t))
		}
	}

	return NewTexture(size, size, pixels)
}

// hashCell is a small integer hash giving stable per-cell noise
func hashCell(x, y, seed uint32) uint32 {
	h := x*374761393 + y*668265263 + seed*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}
