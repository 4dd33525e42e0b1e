package material

import (
	"github.com/df07/go-cube-raytracer/pkg/core"
)

// DefaultDiffuseScale darkens every texture sample before lighting
const DefaultDiffuseScale = 0.6

// Material describes how a surface responds to the point light and how much of its
// color comes from reflected and refracted rays.
//
// Reflectivity and Transparency are expected to sum to at most 1; the remainder is
// the weight of local (diffuse + specular) shading. Larger sums are not rejected.
type Material struct {
	BaseColor        core.Vec3 // Diffuse color for untextured materials and texture-miss fallback
	Albedo           float64   // Diffuse weight
	SpecularAlbedo   float64   // Specular weight
	SpecularExponent float64   // Phong exponent
	Reflectivity     float64   // Weight of the mirror-reflected color, [0,1]
	Transparency     float64   // Weight of the refracted color, [0,1]
	RefractiveIndex  float64   // Index of refraction used for transmitted rays
	TileSize         int       // Texture pixels spanned by one cube face (0 = texture width)
	TextureKey       string    // Key into the texture store, empty for untextured
}

// NewTexturedMaterial creates a matte material sampled from the texture stored under key
func NewTexturedMaterial(key string, tileSize int) *Material {
	return &Material{
		BaseColor:        core.NewVec3(1, 1, 1),
		Albedo:           0.9,
		SpecularAlbedo:   0.1,
		SpecularExponent: 10,
		TileSize:         tileSize,
		TextureKey:       key,
	}
}

// NewSolidMaterial creates an untextured matte material
func NewSolidMaterial(color core.Vec3) *Material {
	return &Material{
		BaseColor:        color,
		Albedo:           0.9,
		SpecularAlbedo:   0.1,
		SpecularExponent: 10,
	}
}

// NewMirrorMaterial creates a perfect mirror
func NewMirrorMaterial() *Material {
	return &Material{
		BaseColor:        core.NewVec3(1, 1, 1),
		SpecularAlbedo:   0.5,
		SpecularExponent: 50,
		Reflectivity:     1,
	}
}

// NewGlassMaterial creates a mostly transparent material with a faint reflection
func NewGlassMaterial(refractiveIndex float64) *Material {
	return &Material{
		BaseColor:        core.NewVec3(1, 1, 1),
		Albedo:           0.1,
		SpecularAlbedo:   0.8,
		SpecularExponent: 100,
		Reflectivity:     0.1,
		Transparency:     0.8,
		RefractiveIndex:  refractiveIndex,
	}
}

// LocalWeight is the share of the final color produced by direct lighting
func (m *Material) LocalWeight() float64 {
	return 1.0 - m.Reflectivity - m.Transparency
}

// IsTextured reports whether the material samples a texture
func (m *Material) IsTextured() bool {
	return m.TextureKey != ""
}

// TexelFor maps a face texture coordinate to integer texture pixel coordinates.
// V is flipped (image rows grow downward) and the result is clamped to the tile so
// that u == 1 and v == 0 land on the last row/column instead of one past it.
func (m *Material) TexelFor(uv core.Vec2, textureWidth int) (int, int) {
	tile := m.TileSize
	if tile <= 0 {
		tile = textureWidth
	}
	if tile <= 0 {
		return 0, 0
	}
	size := float64(tile)
	x := int(uv.X * size)
	y := int(size - size*uv.Y)
	return clampInt(x, 0, tile-1), clampInt(y, 0, tile-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
