package scene

import (
	"math"

	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/geometry"
	"github.com/df07/go-cube-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewCubeGridScene creates a gridSize x gridSize field of small cubes on a checkered
// floor. Hue varies along x and saturation along z; every seventh cube is a mirror.
func NewCubeGridScene(gridSize int) *Scene {
	if gridSize < 2 {
		gridSize = 2
	}

	s := newScene("cube-grid")
	s.Camera = *geometry.NewCamera(core.NewVec3(0, 6, 12), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 10)
	s.Light.Position = core.NewVec3(4, 8, 6)

	s.Textures.Add("floor", material.NewCheckerboardTexture(32, 32, 4,
		core.NewVec3(0.6, 0.6, 0.6), core.NewVec3(0.4, 0.4, 0.4)))
	floor := material.NewTexturedMaterial("floor", 32)
	mirror := material.NewMirrorMaterial()

	// Scale cubes so the grid covers the same area at any size
	const targetArea = 9.0
	spacing := targetArea / float64(gridSize-1)
	side := math.Max(0.05, math.Min(0.7, spacing*0.6))

	const baseLightness = 0.65
	const minChroma, maxChroma = 0.05, 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2
			z := float64(j)*spacing - targetArea/2
			position := core.NewVec3(x, side/2, z)

			if (i*gridSize+j)%7 == 3 {
				s.AddCube(position, side, mirror)
				continue
			}

			hue := float64(i) / float64(gridSize-1) * 360.0
			chroma := minChroma + float64(j)/float64(gridSize-1)*(maxChroma-minChroma)
			s.AddCube(position, side, material.NewSolidMaterial(oklchToRGB(baseLightness, chroma, hue)))
		}
	}

	// Floor tiles just below the grid
	for x := -5; x <= 5; x++ {
		for z := -5; z <= 5; z++ {
			s.AddCube(core.NewVec3(float64(x), -0.5, float64(z)), 1, floor)
		}
	}

	return s
}
