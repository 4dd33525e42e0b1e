package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"
	"time"
)

func TestTraceStats_Add(t *testing.T) {
	total := TraceStats{PrimaryRays: 10, SecondaryRays: 2}
	total.Add(TraceStats{PrimaryRays: 5, ShadowRays: 7, TextureMisses: 1})

	want := TraceStats{PrimaryRays: 15, SecondaryRays: 2, ShadowRays: 7, TextureMisses: 1}
	if total != want {
		t.Errorf("Expected %+v, got %+v", want, total)
	}
	if total.TotalRays() != 24 {
		t.Errorf("Expected 24 total rays, got %d", total.TotalRays())
	}
}

func TestFrameStats_RaysPerSecond(t *testing.T) {
	stats := FrameStats{
		TraceStats: TraceStats{PrimaryRays: 1000, ShadowRays: 1000},
		Width:      40,
		Height:     25,
		Duration:   2 * time.Second,
	}
	if stats.TotalPixels() != 1000 {
		t.Errorf("Expected 1000 pixels, got %d", stats.TotalPixels())
	}
	if stats.RaysPerSecond() != 1000 {
		t.Errorf("Expected 1000 rays/s, got %g", stats.RaysPerSecond())
	}
	if (FrameStats{}).RaysPerSecond() != 0 {
		t.Error("Zero duration should report zero throughput")
	}
}

func TestFPSCounter(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	counter := NewFPSCounter(time.Second, start)

	for i := 1; i < 30; i++ {
		if _, updated := counter.Tick(start.Add(time.Duration(i) * 20 * time.Millisecond)); updated {
			t.Fatalf("Counter updated early at frame %d", i)
		}
	}

	fps, updated := counter.Tick(start.Add(1500 * time.Millisecond))
	if !updated {
		t.Fatal("Expected an update once the interval elapsed")
	}
	if math.Abs(fps-20) > 1e-9 {
		t.Errorf("Expected 20 fps, got %g", fps)
	}
	if counter.FPS() != fps {
		t.Errorf("FPS() should return the last average, got %g", counter.FPS())
	}

	// The next interval starts fresh
	if _, updated := counter.Tick(start.Add(1600 * time.Millisecond)); updated {
		t.Error("Counter should not update right after a reset")
	}
}

func TestCalculateAverageLuminance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 0, 255})

	if got := CalculateAverageLuminance(img); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected 0.5, got %g", got)
	}

	green := image.NewRGBA(image.Rect(0, 0, 1, 1))
	green.SetRGBA(0, 0, color.RGBA{0, 255, 0, 255})
	if got := CalculateAverageLuminance(green); math.Abs(got-0.7152) > 1e-9 {
		t.Errorf("Expected 0.7152 for pure green, got %g", got)
	}

	if CalculateAverageLuminance(image.NewRGBA(image.Rect(0, 0, 0, 0))) != 0 {
		t.Error("Empty image should have zero luminance")
	}
}
