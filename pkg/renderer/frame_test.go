package renderer

import (
	"context"
	"errors"
	"testing"

	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/geometry"
	"github.com/df07/go-cube-raytracer/pkg/lights"
	"github.com/df07/go-cube-raytracer/pkg/material"
	"github.com/df07/go-cube-raytracer/pkg/skybox"
)

// recordingSink remembers every write in order
type recordingSink struct {
	writes []pixelWrite
}

type pixelWrite struct {
	x, y  int
	color core.Vec3
}

func (s *recordingSink) SetPixel(x, y int, c core.Vec3) {
	s.writes = append(s.writes, pixelWrite{x, y, c})
}

func newSingleCubeFrame(width, height int) FrameContext {
	store := material.NewTextureStore()
	store.Add("checker", material.NewCheckerboardTexture(16, 16, 4,
		core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.2)))

	frame := newTestFrame(
		geometry.NewCube(core.NewVec3(0, 0, 0), 1, material.NewTexturedMaterial("checker", 16)),
		geometry.NewCube(core.NewVec3(1.2, 0.3, -0.5), 0.8, material.NewMirrorMaterial()),
		geometry.NewCube(core.NewVec3(-1.1, -0.2, 0.4), 0.6, material.NewGlassMaterial(1.5)),
	)
	frame.Light = lights.NewPointLight(core.NewVec3(-1, 0, 0), 1.5, core.NewVec3(1, 1, 1))
	frame.Textures = store
	frame.Config.Width = width
	frame.Config.Height = height
	return frame
}

func TestFrame_CenterPixelHitsFrontFace(t *testing.T) {
	frame := newTestFrame(geometry.NewCube(core.NewVec3(0, 0, 0), 1, material.NewSolidMaterial(core.NewVec3(1, 1, 1))))
	frame.Light = lights.NewPointLight(core.NewVec3(-1, 0, 0), 1.5, core.NewVec3(1, 1, 1))

	ray := frame.Camera.GetRay(400, 300, 801, 601, frame.Config.FOV)
	hit := frame.Objects[0].Intersect(ray)
	if !hit.Hit {
		t.Fatal("Expected the center pixel to hit the cube")
	}
	if !hit.Normal.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected +z face normal, got %v", hit.Normal)
	}
	if !hit.Point.Equals(core.NewVec3(0, 0, 0.5)) {
		t.Errorf("Expected hit at (0,0,0.5), got %v", hit.Point)
	}
}

func TestFrameRenderer_EmptySceneIsSkybox(t *testing.T) {
	frame := newTestFrame()
	frame.Skybox = skybox.NewGradient(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1, 1, 1))
	frame.Config.Width, frame.Config.Height = 16, 12

	config := frame.Config
	config.Workers = 1
	fr := NewFrameRenderer(config, nil)
	fr.Start()
	defer fr.Stop()

	sink := &recordingSink{}
	stats, err := fr.Render(context.Background(), frame, sink, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(sink.writes) != 16*12 {
		t.Fatalf("Expected %d writes, got %d", 16*12, len(sink.writes))
	}

	for _, w := range sink.writes {
		ray := frame.Camera.GetRay(w.x, w.y, 16, 12, frame.Config.FOV)
		if !w.color.Equals(frame.Skybox.ColorForDirection(ray.Direction)) {
			t.Fatalf("Pixel (%d,%d): expected skybox color, got %v", w.x, w.y, w.color)
		}
	}
	if stats.PrimaryRays != 16*12 || stats.ShadowRays != 0 {
		t.Errorf("Unexpected stats for empty scene: %+v", stats.TraceStats)
	}
}

func TestFrameRenderer_SequentialIsRowMajor(t *testing.T) {
	frame := newSingleCubeFrame(7, 5)
	config := frame.Config
	config.Workers = 1
	fr := NewFrameRenderer(config, nil)
	fr.Start()
	defer fr.Stop()

	sink := &recordingSink{}
	if _, err := fr.Render(context.Background(), frame, sink, nil); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for i, w := range sink.writes {
		if w.x != i%7 || w.y != i/7 {
			t.Fatalf("Write %d went to (%d,%d), expected (%d,%d)", i, w.x, w.y, i%7, i/7)
		}
	}
}

func TestFrameRenderer_ParallelMatchesSequential(t *testing.T) {
	const width, height = 40, 30
	frame := newSingleCubeFrame(width, height)

	render := func(workers, tileSize int) (*FrameBuffer, FrameStats) {
		config := frame.Config
		config.Workers = workers
		config.TileSize = tileSize
		fr := NewFrameRenderer(config, nil)
		fr.Start()
		defer fr.Stop()

		buffer := NewFrameBuffer(width, height)
		stats, err := fr.Render(context.Background(), frame, buffer, nil)
		if err != nil {
			t.Fatalf("Render with %d workers failed: %v", workers, err)
		}
		return buffer, stats
	}

	sequential, seqStats := render(1, 8)
	parallel, parStats := render(4, 7)

	for i := range sequential.Pixels {
		if !sequential.Pixels[i].Equals(parallel.Pixels[i]) {
			t.Fatalf("Pixel %d differs: sequential %v, parallel %v", i, sequential.Pixels[i], parallel.Pixels[i])
		}
	}
	if seqStats.TraceStats != parStats.TraceStats {
		t.Errorf("Ray counts differ: sequential %+v, parallel %+v", seqStats.TraceStats, parStats.TraceStats)
	}
	if parStats.Tiles != 6*5 {
		t.Errorf("Expected 30 tiles, got %d", parStats.Tiles)
	}
}

func TestFrameRenderer_PoolReusedAcrossFrames(t *testing.T) {
	frame := newSingleCubeFrame(20, 10)
	config := frame.Config
	config.Workers = 3
	config.TileSize = 5
	fr := NewFrameRenderer(config, nil)
	fr.Start()
	defer fr.Stop()

	var tiles int
	for i := 0; i < 3; i++ {
		frame.Camera.Rotate(1, 0)
		tiles = 0
		_, err := fr.Render(context.Background(), frame, NewFrameBuffer(20, 10), func(TileCompletionResult) {
			tiles++
		})
		if err != nil {
			t.Fatalf("Frame %d failed: %v", i, err)
		}
		if tiles != 8 {
			t.Errorf("Frame %d: expected 8 tile callbacks, got %d", i, tiles)
		}
	}
}

func TestFrameRenderer_Cancelled(t *testing.T) {
	for _, workers := range []int{1, 2} {
		frame := newSingleCubeFrame(16, 16)
		config := frame.Config
		config.Workers = workers
		config.TileSize = 4
		fr := NewFrameRenderer(config, nil)
		fr.Start()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		sink := &recordingSink{}
		_, err := fr.Render(ctx, frame, sink, nil)
		fr.Stop()

		if !errors.Is(err, context.Canceled) {
			t.Errorf("Workers %d: expected context.Canceled, got %v", workers, err)
		}
		if len(sink.writes) != 0 {
			t.Errorf("Workers %d: cancelled frame wrote %d pixels", workers, len(sink.writes))
		}
	}
}

func TestFrameRenderer_InvalidConfig(t *testing.T) {
	frame := newSingleCubeFrame(0, 10)
	fr := NewFrameRenderer(Config{Workers: 1}, nil)
	if _, err := fr.Render(context.Background(), frame, &recordingSink{}, nil); err == nil {
		t.Error("Expected an error for a zero-width frame")
	}
}

func TestNewTileGrid(t *testing.T) {
	tiles := NewTileGrid(10, 7, 4)
	if len(tiles) != 3*2 {
		t.Fatalf("Expected 6 tiles, got %d", len(tiles))
	}

	covered := make(map[[2]int]int)
	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[[2]int{x, y}]++
			}
		}
	}
	if len(covered) != 70 {
		t.Errorf("Expected 70 covered pixels, got %d", len(covered))
	}
	for p, n := range covered {
		if n != 1 {
			t.Errorf("Pixel %v covered %d times", p, n)
		}
	}

	last := tiles[len(tiles)-1].Bounds
	if last.Max.X != 10 || last.Max.Y != 7 {
		t.Errorf("Last tile should be clipped to the image, got %v", last)
	}
}
