package skybox

import (
	"math"

	"github.com/df07/go-cube-raytracer/pkg/core"
)

// Skybox supplies the color seen by rays that escape the scene or exhaust their recursion budget
type Skybox interface {
	ColorForDirection(dir core.Vec3) core.Vec3
}

// Solid returns the same color in every direction
type Solid struct {
	Color core.Vec3
}

// NewSolid creates a single-color skybox
func NewSolid(color core.Vec3) *Solid {
	return &Solid{Color: color}
}

func (s *Solid) ColorForDirection(dir core.Vec3) core.Vec3 {
	return s.Color
}

// Gradient blends from Bottom (looking straight down) to Top (looking straight up)
type Gradient struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradient creates a vertical gradient skybox
func NewGradient(top, bottom core.Vec3) *Gradient {
	return &Gradient{Top: top, Bottom: bottom}
}

func (g *Gradient) ColorForDirection(dir core.Vec3) core.Vec3 {
	direction := dir.Normalize()
	t := 0.5 * (direction.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return g.Bottom.Multiply(1.0 - t).Add(g.Top.Multiply(t))
}

// Image is an equirectangular (latitude/longitude) environment map
type Image struct {
	width  int
	height int
	pixels []core.Vec3
}

// NewImage wraps row-major pixels as an equirectangular skybox
func NewImage(width, height int, pixels []core.Vec3) *Image {
	return &Image{width: width, height: height, pixels: pixels}
}

func (im *Image) ColorForDirection(dir core.Vec3) core.Vec3 {
	if im.width == 0 || im.height == 0 {
		return core.Vec3{}
	}
	d := dir.Normalize()
	if d.IsZero() {
		return im.pixels[0]
	}

	u := 0.5 + math.Atan2(d.Z, d.X)/(2*math.Pi)
	v := 0.5 - math.Asin(max(-1, min(1, d.Y)))/math.Pi

	x := min(int(u*float64(im.width)), im.width-1)
	y := min(int(v*float64(im.height)), im.height-1)
	return im.pixels[max(0, y)*im.width+max(0, x)]
}
