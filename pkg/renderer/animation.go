package renderer

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/df07/go-cube-raytracer/pkg/core"
)

// FrameResult contains one finished frame of a sequence
type FrameResult struct {
	FrameNumber int
	Image       *image.RGBA
	Stats       FrameStats
	IsLast      bool
}

// SequenceOptions configures sequence rendering behavior
type SequenceOptions struct {
	Frames      int  // Number of frames to render
	TileUpdates bool // Whether to generate tile completion events
}

// FrameSource returns the snapshot to render for a frame number
type FrameSource func(frame int) FrameContext

// RenderSequence renders frames one after another with channel-based communication.
// The caller should read from these channels in separate goroutines. If
// options.TileUpdates is false, the tile channel is closed immediately.
// The frame renderer must already be started; it is not stopped here.
func RenderSequence(ctx context.Context, fr *FrameRenderer, source FrameSource, options SequenceOptions, logger core.Logger) (<-chan FrameResult, <-chan TileCompletionResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	tileChan := make(chan TileCompletionResult, 100) // Buffer for tiles
	errChan := make(chan error, 1)

	if logger == nil {
		logger = core.NopLogger{}
	}

	if !options.TileUpdates {
		close(tileChan)
	}

	go func() {
		defer close(frameChan)
		if options.TileUpdates {
			defer close(tileChan)
		}
		defer close(errChan)

		if options.Frames <= 0 {
			errChan <- fmt.Errorf("sequence needs at least one frame, got %d", options.Frames)
			return
		}

		logger.Printf("Starting sequence of %d frames...\n", options.Frames)

		for frame := 0; frame < options.Frames; frame++ {
			// Check if client disconnected before starting this frame
			select {
			case <-ctx.Done():
				logger.Printf("Rendering cancelled before frame %d\n", frame)
				errChan <- ctx.Err()
				return
			default:
			}

			var tileCallback func(TileCompletionResult)
			if options.TileUpdates {
				frameNumber := frame
				tileCallback = func(result TileCompletionResult) {
					result.Frame = frameNumber
					select {
					case tileChan <- result:
					case <-ctx.Done():
					default:
						// Channel full; the frame event still carries the whole image
					}
				}
			}

			fc := source(frame)
			sink := NewImageSink(fc.Config.Width, fc.Config.Height)
			stats, err := fr.Render(ctx, fc, sink, tileCallback)
			if err != nil {
				errChan <- err
				return
			}

			logger.Printf("Frame %d completed: %v\n", frame, stats)

			result := FrameResult{
				FrameNumber: frame,
				Image:       sink.Image,
				Stats:       stats,
				IsLast:      frame == options.Frames-1,
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return frameChan, tileChan, errChan
}

// Turntable returns a frame source that orbits the camera once around its target
// over the given number of frames. With lightFollows the light is placed at the
// camera for every frame.
func Turntable(base FrameContext, frames int, lightFollows bool) FrameSource {
	return func(frame int) FrameContext {
		fc := base
		if frames > 0 {
			fc.Camera.Orbit(2*math.Pi*float64(frame)/float64(frames), 0)
		}
		if lightFollows {
			fc.Light = fc.Light.MovedTo(fc.Camera.Position)
		}
		return fc
	}
}
