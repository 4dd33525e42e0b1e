package material

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-cube-raytracer/pkg/core"
)

var (
	// ErrUnknownTexture is returned when no texture is stored under a key
	ErrUnknownTexture = errors.New("unknown texture key")
	// ErrOutOfBounds is returned when a pixel lookup falls outside a texture
	ErrOutOfBounds = errors.New("texture coordinate out of bounds")
)

// Texture is a decoded image held as linear colors
type Texture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewTexture creates a new texture
func NewTexture(width, height int, pixels []core.Vec3) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// At returns the pixel at (x, y), where (0, 0) is the top-left corner
func (t *Texture) At(x, y int) (core.Vec3, error) {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return core.Vec3{}, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, x, y, t.Width, t.Height)
	}
	return t.Pixels[y*t.Width+x], nil
}

// TextureStore owns every texture used by a scene. It is filled during setup and
// only read while rendering, so lookups need no locking.
type TextureStore struct {
	textures map[string]*Texture
}

// NewTextureStore creates an empty texture store
func NewTextureStore() *TextureStore {
	return &TextureStore{textures: make(map[string]*Texture)}
}

// Add stores a texture under key, replacing any previous texture with that key
func (s *TextureStore) Add(key string, texture *Texture) {
	s.textures[key] = texture
}

// Get returns the texture stored under key
func (s *TextureStore) Get(key string) (*Texture, bool) {
	texture, ok := s.textures[key]
	return texture, ok
}

// Keys returns the stored keys in sorted order
func (s *TextureStore) Keys() []string {
	keys := make([]string, 0, len(s.textures))
	for key := range s.textures {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Width returns the width of the texture stored under key, or 0 when missing
func (s *TextureStore) Width(key string) int {
	if texture, ok := s.textures[key]; ok {
		return texture.Width
	}
	return 0
}

// Sample returns the color of pixel (x, y) of the texture stored under key
func (s *TextureStore) Sample(key string, x, y int) (core.Vec3, error) {
	texture, ok := s.textures[key]
	if !ok {
		return core.Vec3{}, fmt.Errorf("%w: %q", ErrUnknownTexture, key)
	}
	color, err := texture.At(x, y)
	if err != nil {
		return core.Vec3{}, fmt.Errorf("texture %q: %w", key, err)
	}
	return color, nil
}

// CheckMaterial verifies that a material's texture exists and is large enough for its tile size
func (s *TextureStore) CheckMaterial(m *Material) error {
	if !m.IsTextured() {
		return nil
	}
	texture, ok := s.textures[m.TextureKey]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTexture, m.TextureKey)
	}
	if m.TileSize > texture.Width || m.TileSize > texture.Height {
		return fmt.Errorf("%w: tile size %d exceeds %dx%d texture %q",
			ErrOutOfBounds, m.TileSize, texture.Width, texture.Height, m.TextureKey)
	}
	if m.TileSize <= 0 && texture.Width > texture.Height {
		return fmt.Errorf("%w: texture %q is %dx%d, set an explicit tile size",
			ErrOutOfBounds, m.TextureKey, texture.Width, texture.Height)
	}
	return nil
}
