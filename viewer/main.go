package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/df07/go-cube-raytracer/pkg/controls"
	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/display"
	"github.com/df07/go-cube-raytracer/pkg/renderer"
	"github.com/df07/go-cube-raytracer/pkg/scene"
)

const windowTitle = "Cube Raytracer"

func init() {
	// SDL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	sceneName := flag.String("scene", "house", "Scene to show: a built-in name, a scene file name or a .yaml path")
	scenesDir := flag.String("scenes", scene.FindScenesDir(), "Directory holding scene files")
	assetDir := flag.String("assets", "assets", "Directory holding textures/ and BG/ for the house scene")
	workers := flag.Int("workers", 0, "Render workers (0 = CPU count, 1 = sequential)")
	shadows := flag.String("shadows", "", "Shadow test: 'first' or 'nearest'")
	flag.Parse()

	if err := run(*sceneName, *scenesDir, *assetDir, renderer.Config{Workers: *workers, ShadowMode: *shadows}); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run(sceneName, scenesDir, assetDir string, flags renderer.Config) error {
	s, err := scene.Load(sceneName, scenesDir, assetDir)
	if err != nil {
		return err
	}

	config, err := renderer.MergeConfig(s.Config, flags)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	log.Printf("Showing %s: %d cubes at %dx%d", s.Name, s.CubeCount(), config.Width, config.Height)
	if s.CameraInside() {
		log.Printf("Warning: camera starts inside a cube")
	}

	window, err := display.NewWindow(windowTitle, config.Width, config.Height)
	if err != nil {
		return err
	}
	defer window.Close()

	fr := renderer.NewFrameRenderer(config, core.NewDefaultLogger())
	fr.Start()
	defer fr.Stop()

	fps := renderer.NewFPSCounter(time.Second, time.Now())
	ctx := context.Background()

	for {
		running, _ := controls.ApplyAll(&s.Camera, window.PollInput())
		if !running {
			return nil
		}

		if _, err := fr.Render(ctx, s.FrameContext(config), window, nil); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if err := window.Present(); err != nil {
			return err
		}

		if _, updated := fps.Tick(time.Now()); updated {
			window.SetTitle(fmt.Sprintf("%s - FPS: %.0f", windowTitle, fps.FPS()))
		}
	}
}
