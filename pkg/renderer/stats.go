package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/df07/go-cube-raytracer/pkg/core"
)

// TraceStats counts the rays one raytracer has cast
type TraceStats struct {
	PrimaryRays   int // Camera rays (depth 0)
	SecondaryRays int // Reflection and refraction rays
	ShadowRays    int // Shadow tests
	TextureMisses int // Texture lookups replaced by the base color
}

// Add accumulates another set of counters
func (ts *TraceStats) Add(other TraceStats) {
	ts.PrimaryRays += other.PrimaryRays
	ts.SecondaryRays += other.SecondaryRays
	ts.ShadowRays += other.ShadowRays
	ts.TextureMisses += other.TextureMisses
}

// TotalRays returns every ray cast, shadow rays included
func (ts TraceStats) TotalRays() int {
	return ts.PrimaryRays + ts.SecondaryRays + ts.ShadowRays
}

// FrameStats contains statistics about one rendered frame
type FrameStats struct {
	TraceStats
	Width    int
	Height   int
	Tiles    int           // Tiles rendered (0 for a sequential frame)
	Workers  int           // Workers that shared the frame
	Duration time.Duration // Wall time from first ray to last pixel written
}

// TotalPixels returns the number of pixels in the frame
func (fs FrameStats) TotalPixels() int {
	return fs.Width * fs.Height
}

// RaysPerSecond returns the total ray throughput of the frame
func (fs FrameStats) RaysPerSecond() float64 {
	if fs.Duration <= 0 {
		return 0
	}
	return float64(fs.TotalRays()) / fs.Duration.Seconds()
}

func (fs FrameStats) String() string {
	return fmt.Sprintf("%dx%d in %v (%d rays, %.0f rays/s, %d texture misses)",
		fs.Width, fs.Height, fs.Duration.Round(time.Millisecond), fs.TotalRays(), fs.RaysPerSecond(), fs.TextureMisses)
}

// FPSCounter averages frame rate over a reporting interval
type FPSCounter struct {
	interval time.Duration
	start    time.Time
	frames   int
	fps      float64
}

// NewFPSCounter creates a counter that reports once per interval
func NewFPSCounter(interval time.Duration, now time.Time) *FPSCounter {
	return &FPSCounter{interval: interval, start: now}
}

// Tick records a finished frame. updated is true when a new average was computed.
func (c *FPSCounter) Tick(now time.Time) (fps float64, updated bool) {
	c.frames++
	elapsed := now.Sub(c.start)
	if elapsed < c.interval {
		return c.fps, false
	}

	c.fps = float64(c.frames) / elapsed.Seconds()
	c.frames = 0
	c.start = now
	return c.fps, true
}

// FPS returns the most recent average
func (c *FPSCounter) FPS() float64 {
	return c.fps
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0,1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Multiply(1.0 / 255).Luminance()
		}
	}
	return total / float64(pixels)
}
