package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-cube-raytracer/pkg/core"
)

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	TileImage *image.RGBA // Image data for just this tile
	Frame     int         // Frame number within a sequence (0 for a single render)

	// Progress information
	TileNumber int // Completed tiles so far in this frame (1-based)
	TotalTiles int // Total number of tiles in the image
}

// FrameRenderer drives one full frame at a time: one camera ray per pixel, shaded
// and written to a sink. With a single worker it writes straight to the sink in
// row-major order; otherwise tiles are shared across a long-lived worker pool.
type FrameRenderer struct {
	workers  int
	tileSize int
	pool     *WorkerPool
	logger   core.Logger
}

// NewFrameRenderer creates a frame renderer sized for config. Call Start before the
// first frame and Stop when done.
func NewFrameRenderer(config Config, logger core.Logger) *FrameRenderer {
	if logger == nil {
		logger = core.NopLogger{}
	}

	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}

	fr := &FrameRenderer{
		workers:  config.Workers,
		tileSize: config.TileSize,
		logger:   logger,
	}

	if config.Workers != 1 {
		tiles := len(NewTileGrid(config.Width, config.Height, config.TileSize))
		fr.pool = NewWorkerPool(config.Workers, tiles)
		fr.workers = fr.pool.GetNumWorkers()
	}

	return fr
}

// Start launches the worker pool, if any
func (fr *FrameRenderer) Start() {
	if fr.pool != nil {
		fr.pool.Start()
	}
}

// Stop shuts down the worker pool, if any
func (fr *FrameRenderer) Stop() {
	if fr.pool != nil {
		fr.pool.Stop()
	}
}

// Workers returns the number of goroutines rendering each frame
func (fr *FrameRenderer) Workers() int {
	return fr.workers
}

// Render draws one frame of fc into sink. A frame is either written completely or,
// when ctx is cancelled, not written at all and ctx.Err() is returned.
// tileCallback, if not nil, is called from the calling goroutine as tiles finish.
func (fr *FrameRenderer) Render(ctx context.Context, fc FrameContext, sink PixelSink, tileCallback func(TileCompletionResult)) (FrameStats, error) {
	if err := fc.Config.Validate(); err != nil {
		return FrameStats{}, err
	}

	startTime := time.Now()
	stats := FrameStats{
		Width:   fc.Config.Width,
		Height:  fc.Config.Height,
		Workers: fr.workers,
	}

	var err error
	if fr.pool == nil {
		stats.TraceStats, err = fr.renderSequential(ctx, fc, sink)
	} else {
		stats.TraceStats, stats.Tiles, err = fr.renderTiles(ctx, fc, sink, tileCallback)
	}
	if err != nil {
		return FrameStats{}, err
	}

	stats.Duration = time.Since(startTime)
	return stats, nil
}

// renderSequential shades every pixel in row-major order, writing each straight to the sink
func (fr *FrameRenderer) renderSequential(ctx context.Context, fc FrameContext, sink PixelSink) (TraceStats, error) {
	width, height := fc.Config.Width, fc.Config.Height
	raytracer := NewRaytracer(fc)
	rayFor := fc.Camera.RayGenerator(width, height, fc.Config.FOV)

	for y := 0; y < height; y++ {
		if err := ctx.Err(); err != nil {
			return TraceStats{}, err
		}
		for x := 0; x < width; x++ {
			sink.SetPixel(x, y, raytracer.CastRay(rayFor(x, y), 0))
		}
	}

	return raytracer.Stats(), nil
}

// renderTiles hands every tile to the worker pool, then copies the finished frame
// buffer to the sink in one row-major pass
func (fr *FrameRenderer) renderTiles(ctx context.Context, fc FrameContext, sink PixelSink, tileCallback func(TileCompletionResult)) (TraceStats, int, error) {
	width, height := fc.Config.Width, fc.Config.Height
	tiles := NewTileGrid(width, height, fr.tileSize)
	buffer := NewFrameBuffer(width, height)
	frame := &fc

	// Submit from a separate goroutine so a frame larger than the queue cannot block
	go func() {
		for taskID, tile := range tiles {
			fr.pool.SubmitTask(TileTask{
				Ctx:    ctx,
				Tile:   tile,
				TaskID: taskID,
				Frame:  frame,
				Buffer: buffer,
			})
		}
	}()

	var total TraceStats
	var firstErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := fr.pool.GetResult()
		if !ok {
			return TraceStats{}, 0, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		total.Add(result.Stats)

		if tileCallback != nil && firstErr == nil {
			tile := tiles[result.TaskID]
			tileCallback(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / fr.tileSize,
				TileY:      tile.Bounds.Min.Y / fr.tileSize,
				TileImage:  buffer.TileImage(tile.Bounds),
				TileNumber: i + 1,
				TotalTiles: len(tiles),
			})
		}
	}

	if firstErr != nil {
		fr.logger.Printf("Frame cancelled: %v\n", firstErr)
		return TraceStats{}, 0, firstErr
	}

	buffer.WriteTo(sink)
	return total, len(tiles), nil
}

// renderBounds shades the pixels of one tile into the frame buffer
func renderBounds(raytracer *Raytracer, frame *FrameContext, tile *Tile, buffer *FrameBuffer) {
	rayFor := frame.Camera.RayGenerator(frame.Config.Width, frame.Config.Height, frame.Config.FOV)
	bounds := tile.Bounds

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			buffer.SetPixel(x, y, raytracer.CastRay(rayFor(x, y), 0))
		}
	}
}
