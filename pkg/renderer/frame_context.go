package renderer

import (
	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/geometry"
	"github.com/df07/go-cube-raytracer/pkg/lights"
	"github.com/df07/go-cube-raytracer/pkg/skybox"
)

// TextureSampler looks up texture pixels by key
type TextureSampler interface {
	Sample(key string, x, y int) (core.Vec3, error)
	// Width returns the texture width, used as the tile size when a material sets none
	Width(key string) int
}

// FrameContext is everything one frame reads. It is captured by value before the
// frame starts and never written while workers use it.
type FrameContext struct {
	Objects  []geometry.Object
	Light    lights.PointLight
	Camera   geometry.Camera
	Skybox   skybox.Skybox
	Textures TextureSampler
	Config   Config
}
