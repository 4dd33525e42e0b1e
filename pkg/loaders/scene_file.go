package loaders

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-cube-raytracer/pkg/core"
)

// Vec3 is a YAML triple such as [0, 1.5, -2]
type Vec3 [3]float64

// Vec converts the triple to a core.Vec3
func (v Vec3) Vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// SceneFile contains all data parsed from a YAML scene description
type SceneFile struct {
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Group       string                  `yaml:"group"`
	Camera      CameraSpec              `yaml:"camera"`
	Light       LightSpec               `yaml:"light"`
	Skybox      SkyboxSpec              `yaml:"skybox"`
	Textures    map[string]TextureSpec  `yaml:"textures"`
	Materials   map[string]MaterialSpec `yaml:"materials"`
	Cubes       []CubeSpec              `yaml:"cubes"`
	Render      RenderSpec              `yaml:"render"`

	// Dir is the directory the file was loaded from; relative paths resolve against it
	Dir string `yaml:"-"`
}

// CameraSpec places the camera
type CameraSpec struct {
	Position Vec3    `yaml:"position"`
	Target   Vec3    `yaml:"target"`
	Up       *Vec3   `yaml:"up"`
	Speed    float64 `yaml:"speed"`
}

// LightSpec describes the single point light
type LightSpec struct {
	Position     *Vec3   `yaml:"position"`
	Intensity    float64 `yaml:"intensity"`
	Color        *Vec3   `yaml:"color"`
	FollowCamera bool    `yaml:"follow_camera"`
}

// SkyboxSpec selects the background seen by rays that hit nothing
type SkyboxSpec struct {
	Type   string `yaml:"type"` // solid, gradient or image
	Color  Vec3   `yaml:"color"`
	Top    Vec3   `yaml:"top"`
	Bottom Vec3   `yaml:"bottom"`
	Path   string `yaml:"path"`
}

// TextureSpec is either an image on disk or a procedural pattern
type TextureSpec struct {
	Path       string  `yaml:"path"`
	Brightness float64 `yaml:"brightness"` // Shift in [-1, 1] applied on load

	Procedural string `yaml:"procedural"` // checker, planks, speckle, gradient or uv
	Size       int    `yaml:"size"`
	Cell       int    `yaml:"cell"` // Checker/speckle cell size, or plank count
	Colors     []Vec3 `yaml:"colors"`
	Seed       uint32 `yaml:"seed"`

	// Fallback is used in place of a missing image file
	Fallback *TextureSpec `yaml:"fallback"`
}

// MaterialSpec starts from a preset and overrides whichever fields are set
type MaterialSpec struct {
	Type             string   `yaml:"type"` // textured, solid, mirror or glass
	Texture          string   `yaml:"texture"`
	TileSize         int      `yaml:"tile_size"`
	Color            *Vec3    `yaml:"color"`
	Albedo           *float64 `yaml:"albedo"`
	SpecularAlbedo   *float64 `yaml:"specular_albedo"`
	SpecularExponent *float64 `yaml:"specular_exponent"`
	Reflectivity     *float64 `yaml:"reflectivity"`
	Transparency     *float64 `yaml:"transparency"`
	RefractiveIndex  *float64 `yaml:"refractive_index"`
}

// CubeSpec places one cube
type CubeSpec struct {
	Center   Vec3    `yaml:"center"`
	Size     float64 `yaml:"size"`
	Material string  `yaml:"material"`
}

// RenderSpec holds optional render settings. Field names match renderer.Config so
// the two can be copied onto each other.
type RenderSpec struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	FOV          float64 `yaml:"fov"`
	MaxRecursion int     `yaml:"max_recursion"`
	Bias         float64 `yaml:"bias"`
	DiffuseScale float64 `yaml:"diffuse_scale"`
	ShadowMode   string  `yaml:"shadow_mode"`
	Workers      int     `yaml:"workers"`
	TileSize     int     `yaml:"tile_size"`
}

// LoadSceneFile loads and parses a YAML scene file
func LoadSceneFile(filename string) (*SceneFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sceneFile, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	sceneFile.Dir = filepath.Dir(filename)
	return sceneFile, nil
}

// ParseSceneFile parses a YAML scene description. Unknown keys are rejected.
func ParseSceneFile(reader io.Reader) (*SceneFile, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var sceneFile SceneFile
	if err := decoder.Decode(&sceneFile); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("scene file is empty")
		}
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}

	if err := sceneFile.validate(); err != nil {
		return nil, err
	}
	return &sceneFile, nil
}

// ResolvePath returns path relative to the scene file's directory unless it is absolute
func (sf *SceneFile) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) || sf.Dir == "" {
		return path
	}
	return filepath.Join(sf.Dir, path)
}

func (sf *SceneFile) validate() error {
	for i, cube := range sf.Cubes {
		if cube.Size <= 0 {
			return fmt.Errorf("cube %d: size must be positive, got %g", i, cube.Size)
		}
		if cube.Material == "" {
			return fmt.Errorf("cube %d: missing material", i)
		}
	}

	for key, texture := range sf.Textures {
		if texture.Path == "" && texture.Procedural == "" {
			return fmt.Errorf("texture %q: needs a path or a procedural type", key)
		}
	}

	switch sf.Skybox.Type {
	case "", "solid", "gradient":
	case "image":
		if sf.Skybox.Path == "" {
			return fmt.Errorf("image skybox needs a path")
		}
	default:
		return fmt.Errorf("unknown skybox type %q", sf.Skybox.Type)
	}

	return nil
}
