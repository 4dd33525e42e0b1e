package skybox

import (
	"testing"

	"github.com/df07/go-cube-raytracer/pkg/core"
)

func TestSolid(t *testing.T) {
	sky := NewSolid(core.NewVec3(0.2, 0.7, 0.8))
	for _, dir := range []core.Vec3{{X: 1}, {Y: -1}, {Z: 0.3, X: -2}} {
		if got := sky.ColorForDirection(dir); !got.Equals(sky.Color) {
			t.Errorf("Direction %v: expected %v, got %v", dir, sky.Color, got)
		}
	}
}

func TestGradient(t *testing.T) {
	top := core.NewVec3(0.5, 0.7, 1.0)
	bottom := core.NewVec3(1, 1, 1)
	sky := NewGradient(top, bottom)

	tests := []struct {
		name     string
		dir      core.Vec3
		expected core.Vec3
	}{
		{"straight up", core.NewVec3(0, 5, 0), top},
		{"straight down", core.NewVec3(0, -1, 0), bottom},
		{"horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sky.ColorForDirection(tt.dir); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestImage(t *testing.T) {
	// 2x2 map: top row sky blue, bottom row ground brown
	blue := core.NewVec3(0.2, 0.4, 1)
	brown := core.NewVec3(0.4, 0.3, 0.1)
	sky := NewImage(2, 2, []core.Vec3{blue, blue, brown, brown})

	if got := sky.ColorForDirection(core.NewVec3(0, 1, 0)); !got.Equals(blue) {
		t.Errorf("Up: expected %v, got %v", blue, got)
	}
	if got := sky.ColorForDirection(core.NewVec3(0, -1, 0)); !got.Equals(brown) {
		t.Errorf("Down: expected %v, got %v", brown, got)
	}
	if got := sky.ColorForDirection(core.NewVec3(-1, 0.2, 0)); !got.Equals(blue) {
		t.Errorf("Slightly up along -x: expected %v, got %v", blue, got)
	}
}
