package scene

import (
	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/geometry"
	"github.com/df07/go-cube-raytracer/pkg/material"
)

// NewTextureTestScene creates a row of cubes showing the face texture mapping: a UV
// debug cube, a checkerboard, a gradient, a fine brick pattern and a cube sampling
// only the top-left quarter of the UV texture
func NewTextureTestScene() *Scene {
	s := newScene("texture-test")
	s.Camera = *geometry.NewCamera(core.NewVec3(1.5, 2.5, 7), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 10)
	s.Light.Position = core.NewVec3(2, 4, 6)
	s.Config.Width = 800
	s.Config.Height = 450

	s.Textures.Add("uv", material.NewUVDebugTexture(256, 256))
	s.Textures.Add("checker", material.NewCheckerboardTexture(256, 256, 32,
		core.NewVec3(0.9, 0.9, 0.9), // White
		core.NewVec3(0.2, 0.2, 0.8), // Blue
	))
	s.Textures.Add("gradient", material.NewGradientTexture(256, 256,
		core.NewVec3(1.0, 0.2, 0.2), // Red (top)
		core.NewVec3(0.2, 1.0, 0.2), // Green (bottom)
	))
	s.Textures.Add("brick", material.NewCheckerboardTexture(512, 512, 16,
		core.NewVec3(0.7, 0.3, 0.1),  // Orange
		core.NewVec3(0.5, 0.2, 0.05), // Dark brown
	))

	keys := []string{"uv", "checker", "gradient", "brick"}
	for i, key := range keys {
		x := float64(i)*1.5 - 3
		s.AddCube(core.NewVec3(x, 0, 0), 1, material.NewTexturedMaterial(key, s.Textures.Width(key)))
	}
	s.AddCube(core.NewVec3(3, 0, 0), 1, material.NewTexturedMaterial("uv", 128))

	return s
}
