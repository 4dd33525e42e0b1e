package renderer

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// Shadow test policies
const (
	// ShadowFirst stops at the first occluder in scene order
	ShadowFirst = "first"
	// ShadowNearest uses the occluder closest to the shading point
	ShadowNearest = "nearest"
)

// Config contains rendering configuration
type Config struct {
	Width        int     `yaml:"width"`         // Framebuffer width in pixels
	Height       int     `yaml:"height"`        // Framebuffer height in pixels
	FOV          float64 `yaml:"fov"`           // Vertical field of view in degrees
	MaxRecursion int     `yaml:"max_recursion"` // Reflection/refraction depth that returns the skybox
	Bias         float64 `yaml:"bias"`          // Offset along the normal for secondary ray origins
	DiffuseScale float64 `yaml:"diffuse_scale"` // Factor applied to every texture sample
	ShadowMode   string  `yaml:"shadow_mode"`   // ShadowFirst or ShadowNearest
	Workers      int     `yaml:"workers"`       // Parallel workers (0 = use CPU count, 1 = sequential)
	TileSize     int     `yaml:"tile_size"`     // Size of each tile handed to a worker
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:        800,
		Height:       600,
		FOV:          60,
		MaxRecursion: 3,
		Bias:         1e-4,
		DiffuseScale: 0.6,
		ShadowMode:   ShadowFirst,
		Workers:      0,
		TileSize:     32,
	}
}

// MergeConfig layers overrides onto base in order. Zero-valued fields in an
// override leave the value beneath them untouched.
func MergeConfig(base Config, overrides ...Config) (Config, error) {
	merged := base
	for _, override := range overrides {
		if err := copier.CopyWithOption(&merged, &override, copier.Option{IgnoreEmpty: true}); err != nil {
			return base, fmt.Errorf("failed to merge render config: %w", err)
		}
	}
	return merged, nil
}

// Validate checks that the configuration can drive a render
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("field of view must be in (0, 180) degrees, got %g", c.FOV)
	}
	if c.MaxRecursion < 1 {
		return fmt.Errorf("max recursion must be at least 1, got %d", c.MaxRecursion)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	switch c.ShadowMode {
	case ShadowFirst, ShadowNearest:
	default:
		return fmt.Errorf("unknown shadow mode %q", c.ShadowMode)
	}
	return nil
}
