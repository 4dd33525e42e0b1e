package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/output"
	"github.com/df07/go-cube-raytracer/pkg/renderer"
	"github.com/df07/go-cube-raytracer/pkg/scene"
)

// options holds the command line settings that are not render config
type options struct {
	sceneName string
	scenesDir string
	assetDir  string
	outputDir string
	frames    int
	scale     int
	hud       bool
}

func main() {
	// Parse command line flags
	sceneName := flag.String("scene", "default", "Scene: a built-in name, a scene file name or a .yaml path")
	scenesDir := flag.String("scenes", scene.FindScenesDir(), "Directory holding scene files")
	assetDir := flag.String("assets", "assets", "Directory holding textures/ and BG/ for the house scene")
	outputDir := flag.String("output", "output", "Directory renders are written under")
	width := flag.Int("width", 0, "Image width (0 = scene setting)")
	height := flag.Int("height", 0, "Image height (0 = scene setting)")
	workers := flag.Int("workers", 0, "Render workers (0 = CPU count, 1 = sequential)")
	shadows := flag.String("shadows", "", "Shadow test: 'first' or 'nearest'")
	frames := flag.Int("frames", 1, "Frames to render; more than one renders a turntable")
	scale := flag.Int("scale", 1, "Integer upscale factor for saved images")
	hud := flag.Bool("hud", false, "Draw frame statistics onto saved images")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp(*scenesDir)
		return
	}

	opts := options{
		sceneName: *sceneName,
		scenesDir: *scenesDir,
		assetDir:  *assetDir,
		outputDir: *outputDir,
		frames:    *frames,
		scale:     *scale,
		hud:       *hud,
	}
	flags := renderer.Config{Width: *width, Height: *height, Workers: *workers, ShadowMode: *shadows}

	if err := run(opts, flags); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp(scenesDir string) {
	fmt.Println("Cube Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		fmt.Printf("  (failed to list scenes: %v)\n", err)
	}
	for _, group := range scenes.Groups {
		for _, info := range group.Scenes {
			fmt.Printf("  %-14s - %s\n", info.ID, info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// createScene loads the named scene
func createScene(name, scenesDir, assetDir string) (*scene.Scene, error) {
	s, err := scene.Load(name, scenesDir, assetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene %q: %w", name, err)
	}
	return s, nil
}

// buildConfig layers the command line settings over the scene's render settings
func buildConfig(s *scene.Scene, flags renderer.Config) (renderer.Config, error) {
	config, err := renderer.MergeConfig(s.Config, flags)
	if err != nil {
		return renderer.Config{}, err
	}
	if err := config.Validate(); err != nil {
		return renderer.Config{}, err
	}
	return config, nil
}

func run(opts options, flags renderer.Config) error {
	fmt.Println("Starting Cube Raytracer...")

	s, err := createScene(opts.sceneName, opts.scenesDir, opts.assetDir)
	if err != nil {
		return err
	}
	config, err := buildConfig(s, flags)
	if err != nil {
		return err
	}

	fmt.Printf("Rendering %s: %d cubes at %dx%d\n", s.Name, s.CubeCount(), config.Width, config.Height)
	if s.CameraInside() {
		fmt.Println("Warning: camera starts inside a cube")
	}

	logger := core.NewDefaultLogger()
	fr := renderer.NewFrameRenderer(config, logger)
	fr.Start()
	defer fr.Stop()

	started := time.Now()
	ctx := context.Background()

	if opts.frames <= 1 {
		sink := renderer.NewImageSink(config.Width, config.Height)
		stats, err := fr.Render(ctx, s.FrameContext(config), sink, nil)
		if err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Printf("Render completed: %v\n", stats)

		filename := output.RenderPath(opts.outputDir, s.Name, started)
		return saveFrame(filename, sink.Image, s.Name, stats, opts)
	}

	source := renderer.Turntable(s.FrameContext(config), opts.frames, s.LightFollowsCamera)
	frameChan, _, errChan := renderer.RenderSequence(ctx, fr, source,
		renderer.SequenceOptions{Frames: opts.frames}, logger)

	for result := range frameChan {
		filename := output.FramePath(opts.outputDir, s.Name, started, result.FrameNumber)
		if err := saveFrame(filename, result.Image, s.Name, result.Stats, opts); err != nil {
			return err
		}
	}
	if err := <-errChan; err != nil {
		return fmt.Errorf("sequence failed: %w", err)
	}

	fmt.Printf("Sequence of %d frames completed in %v\n", opts.frames, time.Since(started).Round(time.Millisecond))
	return nil
}

// saveFrame applies the HUD and upscale options and writes img as PNG
func saveFrame(filename string, img *image.RGBA, sceneName string, stats renderer.FrameStats, opts options) error {
	if opts.hud {
		img = output.DrawHUD(img, output.HUDLines(sceneName, stats, 0))
	}
	img = output.Upscale(img, opts.scale)

	if err := output.SavePNG(filename, img); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)
	return nil
}
