package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/df07/go-cube-raytracer/pkg/renderer"
	"github.com/df07/go-cube-raytracer/pkg/scene"
)

const testSceneFile = `name: tiny
camera:
  position: [0, 0, 4]
  target: [0, 0, 0]
materials:
  red:
    type: solid
    color: [1, 0, 0]
cubes:
  - center: [0, 0, 0]
    size: 1
    material: red
render:
  width: 24
  height: 16
`

func writeSceneFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "tiny.yaml")
	if err := os.WriteFile(path, []byte(testSceneFile), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}
	return path
}

func TestCreateScene(t *testing.T) {
	scenesDir := t.TempDir()
	scenePath := writeSceneFile(t, scenesDir)

	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"house scene", "house", false},
		{"cube-grid scene", "cube-grid", false},
		{"texture-test scene", "texture-test", false},

		// Scene files
		{"scene file by name", "tiny", false},
		{"scene file by id", "file:tiny", false},
		{"scene file by path", scenePath, false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid scene path", filepath.Join(scenesDir, "nonexistent.yaml"), true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, scenesDir, "")

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if !errors.Is(err, scene.ErrUnknownScene) {
					t.Errorf("Expected ErrUnknownScene, got %v", err)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.CubeCount() == 0 {
				t.Errorf("Scene '%s' should contain cubes", tt.sceneType)
			}
			if err := s.Config.Validate(); err != nil {
				t.Errorf("Scene '%s' has invalid render settings: %v", tt.sceneType, err)
			}
		})
	}
}

func TestBuildConfig(t *testing.T) {
	s, err := createScene("default", "", "")
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}

	config, err := buildConfig(s, renderer.Config{Width: 320, Workers: 2, ShadowMode: renderer.ShadowNearest})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config.Width != 320 || config.Height != s.Config.Height {
		t.Errorf("Expected 320x%d, got %dx%d", s.Config.Height, config.Width, config.Height)
	}
	if config.Workers != 2 || config.ShadowMode != renderer.ShadowNearest {
		t.Errorf("Flags not applied: %+v", config)
	}

	if _, err := buildConfig(s, renderer.Config{ShadowMode: "soft"}); err == nil {
		t.Error("Expected error for unknown shadow mode")
	}
}

func TestRun(t *testing.T) {
	scenesDir := t.TempDir()
	writeSceneFile(t, scenesDir)

	tests := []struct {
		name   string
		frames int
		scale  int
		hud    bool
		files  int
		width  int
	}{
		{"single frame", 1, 1, false, 1, 24},
		{"upscaled with hud", 1, 2, true, 1, 48},
		{"turntable", 3, 1, false, 3, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputDir := t.TempDir()
			opts := options{
				sceneName: "tiny",
				scenesDir: scenesDir,
				outputDir: outputDir,
				frames:    tt.frames,
				scale:     tt.scale,
				hud:       tt.hud,
			}
			if err := run(opts, renderer.Config{Workers: 2, TileSize: 8}); err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			files, err := filepath.Glob(filepath.Join(outputDir, "tiny", "render_*.png"))
			if err != nil {
				t.Fatalf("Glob failed: %v", err)
			}
			if len(files) != tt.files {
				t.Fatalf("Expected %d files, got %d: %v", tt.files, len(files), files)
			}

			img, err := imgio.Open(files[0])
			if err != nil {
				t.Fatalf("Failed to open render: %v", err)
			}
			if got := img.Bounds().Dx(); got != tt.width {
				t.Errorf("Expected width %d, got %d", tt.width, got)
			}
		})
	}
}
