package scene

import (
	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/material"
)

// NewDefaultScene creates a checkered cube at the origin seen from (0, 0, 5), lit
// from its left, with a mirror cube and a glass cube beside it
func NewDefaultScene() *Scene {
	s := newScene("default")

	s.Textures.Add("checker", material.NewCheckerboardTexture(64, 64, 16,
		core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.8, 0.2, 0.2)))
	s.Textures.Add("floor", material.NewCheckerboardTexture(64, 64, 8,
		core.NewVec3(0.7, 0.7, 0.7), core.NewVec3(0.3, 0.3, 0.3)))

	checker := material.NewTexturedMaterial("checker", 64)
	floor := material.NewTexturedMaterial("floor", 64)
	mirror := material.NewMirrorMaterial()
	glass := material.NewGlassMaterial(1.5)

	s.AddCube(core.NewVec3(0, 0, 0), 1.0, checker)
	s.AddCube(core.NewVec3(1.6, 0, -0.8), 1.0, mirror)
	s.AddCube(core.NewVec3(-1.3, -0.2, 0.8), 0.6, glass)

	// Floor slab under the cubes
	for x := -3; x <= 3; x++ {
		for z := -3; z <= 2; z++ {
			s.AddCube(core.NewVec3(float64(x), -1.5, float64(z)), 1.0, floor)
		}
	}

	return s
}
