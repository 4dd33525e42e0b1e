package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jinzhu/copier"

	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/geometry"
	"github.com/df07/go-cube-raytracer/pkg/lights"
	"github.com/df07/go-cube-raytracer/pkg/loaders"
	"github.com/df07/go-cube-raytracer/pkg/material"
	"github.com/df07/go-cube-raytracer/pkg/renderer"
	"github.com/df07/go-cube-raytracer/pkg/skybox"
)

// NewFileScene creates a scene from a YAML scene file
func NewFileScene(filename string) (*Scene, error) {
	sceneFile, err := loaders.LoadSceneFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}

	name := sceneFile.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	s := newScene(name)

	convertCamera(sceneFile, s)
	convertLight(sceneFile, s)

	if err := convertSkybox(sceneFile, s); err != nil {
		return nil, err
	}

	// Convert all textures first
	for key, spec := range sceneFile.Textures {
		texture, err := convertTexture(sceneFile, spec)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", key, err)
		}
		s.Textures.Add(key, texture)
	}

	materials := make(map[string]*material.Material, len(sceneFile.Materials))
	for key, spec := range sceneFile.Materials {
		mat, err := convertMaterial(spec)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", key, err)
		}
		materials[key] = mat
	}

	for i, cube := range sceneFile.Cubes {
		mat, ok := materials[cube.Material]
		if !ok {
			return nil, fmt.Errorf("cube %d: %w %q", i, ErrUnknownMaterial, cube.Material)
		}
		s.AddCube(cube.Center.Vec(), cube.Size, mat)
	}

	var overrides renderer.Config
	if err := copier.Copy(&overrides, &sceneFile.Render); err != nil {
		return nil, fmt.Errorf("failed to read render settings: %w", err)
	}
	if s.Config, err = renderer.MergeConfig(s.Config, overrides); err != nil {
		return nil, err
	}
	if err := s.Config.Validate(); err != nil {
		return nil, fmt.Errorf("render settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// convertCamera applies the file's camera, keeping defaults for unset fields
func convertCamera(sceneFile *loaders.SceneFile, s *Scene) {
	spec := sceneFile.Camera
	up := s.Camera.Up
	if spec.Up != nil {
		up = spec.Up.Vec()
	}
	speed := s.Camera.Speed
	if spec.Speed > 0 {
		speed = spec.Speed
	}

	position, target := spec.Position.Vec(), spec.Target.Vec()
	if position.Equals(target) {
		// No camera given, keep the default view
		position, target = s.Camera.Position, s.Camera.Target
	}
	s.Camera = *geometry.NewCamera(position, target, up, speed)
}

func convertLight(sceneFile *loaders.SceneFile, s *Scene) {
	spec := sceneFile.Light
	intensity := s.Light.Intensity
	if spec.Intensity > 0 {
		intensity = spec.Intensity
	}
	color := s.Light.Color
	if spec.Color != nil {
		color = spec.Color.Vec()
	}
	position := s.Light.Position
	if spec.Position != nil {
		position = spec.Position.Vec()
	}
	s.Light = lights.NewPointLight(position, intensity, color)
	s.LightFollowsCamera = spec.FollowCamera
}

func convertSkybox(sceneFile *loaders.SceneFile, s *Scene) error {
	spec := sceneFile.Skybox
	switch spec.Type {
	case "":
		// Keep the default gradient
	case "solid":
		s.Skybox = skybox.NewSolid(spec.Color.Vec())
	case "gradient":
		s.Skybox = skybox.NewGradient(spec.Top.Vec(), spec.Bottom.Vec())
	case "image":
		imageData, err := loaders.LoadImage(sceneFile.ResolvePath(spec.Path))
		if err != nil {
			return fmt.Errorf("failed to load skybox: %w", err)
		}
		s.Skybox = skybox.NewImage(imageData.Width, imageData.Height, imageData.Pixels)
	default:
		return fmt.Errorf("unknown skybox type %q", spec.Type)
	}
	return nil
}

// convertTexture loads an image texture, falling back to the spec's fallback when the
// file does not exist, or builds a procedural one
func convertTexture(sceneFile *loaders.SceneFile, spec loaders.TextureSpec) (*material.Texture, error) {
	if spec.Path != "" {
		imageData, err := loaders.LoadImageAdjusted(sceneFile.ResolvePath(spec.Path), spec.Brightness)
		if err == nil {
			return material.NewTexture(imageData.Width, imageData.Height, imageData.Pixels), nil
		}
		if !errors.Is(err, fs.ErrNotExist) || spec.Fallback == nil {
			return nil, err
		}
		return convertTexture(sceneFile, *spec.Fallback)
	}
	return proceduralTexture(spec)
}

func proceduralTexture(spec loaders.TextureSpec) (*material.Texture, error) {
	size := spec.Size
	if size <= 0 {
		size = 64
	}
	cell := spec.Cell
	if cell <= 0 {
		cell = max(1, size/8)
	}
	color := func(i int, fallback core.Vec3) core.Vec3 {
		if i < len(spec.Colors) {
			return spec.Colors[i].Vec()
		}
		return fallback
	}
	light := core.NewVec3(0.9, 0.9, 0.9)
	dark := core.NewVec3(0.2, 0.2, 0.2)

	switch spec.Procedural {
	case "checker":
		return material.NewCheckerboardTexture(size, size, cell, color(0, light), color(1, dark)), nil
	case "planks":
		return material.NewPlankTexture(size, cell, color(0, core.NewVec3(0.7, 0.5, 0.3))), nil
	case "speckle":
		return material.NewSpeckleTexture(size, cell, color(0, light), color(1, dark), spec.Seed), nil
	case "gradient":
		return material.NewGradientTexture(size, size, color(0, light), color(1, dark)), nil
	case "uv":
		return material.NewUVDebugTexture(size, size), nil
	default:
		return nil, fmt.Errorf("unknown procedural texture %q", spec.Procedural)
	}
}

// convertMaterial builds the preset named by spec.Type, then applies set fields
func convertMaterial(spec loaders.MaterialSpec) (*material.Material, error) {
	var mat *material.Material
	switch spec.Type {
	case "", "solid":
		mat = material.NewSolidMaterial(core.NewVec3(1, 1, 1))
	case "textured":
		if spec.Texture == "" {
			return nil, fmt.Errorf("textured material needs a texture")
		}
		mat = material.NewTexturedMaterial(spec.Texture, spec.TileSize)
	case "mirror":
		mat = material.NewMirrorMaterial()
	case "glass":
		mat = material.NewGlassMaterial(1.5)
	default:
		return nil, fmt.Errorf("unknown material type %q", spec.Type)
	}

	if spec.Type != "textured" && spec.Texture != "" {
		mat.TextureKey = spec.Texture
		mat.TileSize = spec.TileSize
	}
	if spec.Color != nil {
		mat.BaseColor = spec.Color.Vec()
	}
	setIf(&mat.Albedo, spec.Albedo)
	setIf(&mat.SpecularAlbedo, spec.SpecularAlbedo)
	setIf(&mat.SpecularExponent, spec.SpecularExponent)
	setIf(&mat.Reflectivity, spec.Reflectivity)
	setIf(&mat.Transparency, spec.Transparency)
	setIf(&mat.RefractiveIndex, spec.RefractiveIndex)
	return mat, nil
}

func setIf(dst *float64, value *float64) {
	if value != nil {
		*dst = *value
	}
}
