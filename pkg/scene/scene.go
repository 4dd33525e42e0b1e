package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/geometry"
	"github.com/df07/go-cube-raytracer/pkg/lights"
	"github.com/df07/go-cube-raytracer/pkg/material"
	"github.com/df07/go-cube-raytracer/pkg/renderer"
	"github.com/df07/go-cube-raytracer/pkg/skybox"
)

var (
	// ErrUnknownScene is returned when a scene name matches no built-in scene or scene file
	ErrUnknownScene = errors.New("unknown scene")
	// ErrUnknownMaterial is returned when a cube references a material that was never defined
	ErrUnknownMaterial = errors.New("unknown material")
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name               string
	Objects            []geometry.Object // Cubes in the scene, in tie-break order
	Light              lights.PointLight
	LightFollowsCamera bool // Move the light to the camera before every interactive frame
	Camera             geometry.Camera
	Skybox             skybox.Skybox
	Textures           *material.TextureStore
	Config             renderer.Config // Render settings preferred by this scene
}

// newScene creates an empty scene with the default camera, light and sky
func newScene(name string) *Scene {
	return &Scene{
		Name:     name,
		Objects:  make([]geometry.Object, 0),
		Light:    lights.NewPointLight(core.NewVec3(-1, 0, 0), 1.5, core.NewVec3(1, 1, 1)),
		Camera:   *geometry.NewCamera(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 10),
		Skybox:   skybox.NewGradient(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1, 1, 1)),
		Textures: material.NewTextureStore(),
		Config:   renderer.DefaultConfig(),
	}
}

// AddCube adds an axis-aligned cube to the scene
func (s *Scene) AddCube(center core.Vec3, sideLength float64, mat *material.Material) *geometry.Cube {
	cube := geometry.NewCube(center, sideLength, mat)
	s.Objects = append(s.Objects, cube)
	return cube
}

// CubeCount returns the number of objects in the scene
func (s *Scene) CubeCount() int {
	return len(s.Objects)
}

// Bounds returns the box enclosing every object, or a zero box for an empty scene
func (s *Scene) Bounds() core.AABB {
	if len(s.Objects) == 0 {
		return core.AABB{}
	}
	bounds := s.Objects[0].Bounds()
	for _, object := range s.Objects[1:] {
		bounds = bounds.Union(object.Bounds())
	}
	return bounds
}

// CameraInside reports whether the camera sits inside one of the objects
func (s *Scene) CameraInside() bool {
	for _, object := range s.Objects {
		if object.Bounds().Contains(s.Camera.Position) {
			return true
		}
	}
	return false
}

// Validate checks every object's material against the texture store, so that a
// missing texture or an oversized tile is reported before the first frame
func (s *Scene) Validate() error {
	for i, object := range s.Objects {
		mat := object.Material()
		if mat == nil {
			return fmt.Errorf("scene %q: object %d: %w", s.Name, i, ErrUnknownMaterial)
		}
		if err := s.Textures.CheckMaterial(mat); err != nil {
			return fmt.Errorf("scene %q: object %d: %w", s.Name, i, err)
		}
	}
	if s.Skybox == nil {
		return fmt.Errorf("scene %q: no skybox", s.Name)
	}
	return nil
}

// FrameContext captures the scene as it stands for one frame rendered with config
func (s *Scene) FrameContext(config renderer.Config) renderer.FrameContext {
	light := s.Light
	if s.LightFollowsCamera {
		light = light.MovedTo(s.Camera.Position)
	}
	return renderer.FrameContext{
		Objects:  s.Objects,
		Light:    light,
		Camera:   s.Camera,
		Skybox:   s.Skybox,
		Textures: s.Textures,
		Config:   config,
	}
}
