package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/renderer"
	"github.com/df07/go-cube-raytracer/pkg/scene"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX       int    `json:"tileX"`
	TileY       int    `json:"tileY"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG of just this tile
	FrameNumber int    `json:"frameNumber"`
	TileNumber  int    `json:"tileNumber"`  // Current tile number in this frame (1-based)
	TotalTiles  int    `json:"totalTiles"`  // Total number of tiles in the image
	TotalFrames int    `json:"totalFrames"` // Total number of frames planned
}

// FrameUpdate represents a finished frame sent via SSE
type FrameUpdate struct {
	Event         string  `json:"event"`
	FrameNumber   int     `json:"frameNumber"`
	TotalFrames   int     `json:"totalFrames"`
	ImageData     string  `json:"imageData"` // Base64 encoded PNG of the whole frame
	ElapsedMs     int64   `json:"elapsedMs"`
	FrameMs       int64   `json:"frameMs"`
	TotalPixels   int     `json:"totalPixels"`
	PrimaryRays   int     `json:"primaryRays"`
	SecondaryRays int     `json:"secondaryRays"`
	ShadowRays    int     `json:"shadowRays"`
	TextureMisses int     `json:"textureMisses"`
	RaysPerSecond float64 `json:"raysPerSecond"`
	CubeCount     int     `json:"cubeCount"`
	IsLast        bool    `json:"isLast"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "frameComplete", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// RenderingPipeline contains the configured scene, frame renderer and frame source
type RenderingPipeline struct {
	Scene    *scene.Scene
	Config   renderer.Config
	Renderer *renderer.FrameRenderer
	Source   renderer.FrameSource
}

// handleRender streams a turntable of the requested scene, tile by tile, via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})

	// Start single SSE writer goroutine
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	// Parse and validate request
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Setup console logging and streaming
	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()
	defer func() {
		cancel()
		<-consoleDone
	}()

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}
	pipeline.Renderer.Start()
	defer pipeline.Renderer.Stop()

	// Start rendering and stream events
	startTime := time.Now()
	options := renderer.SequenceOptions{Frames: req.Frames, TileUpdates: true}
	frameChan, tileChan, errChan := renderer.RenderSequence(ctx, pipeline.Renderer, pipeline.Source, options, webLogger)

	// Handle rendering events and send to unified channel
	s.handleRenderingEvents(ctx, sseEventChan, frameChan, tileChan, errChan, pipeline, req, startTime)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe).
// Events queued before the channel closes are still written.
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for event := range sseEventChan {
		// Check if client is still connected before writing
		if ctx.Err() != nil && event.Type != "error" && event.Type != "complete" {
			continue
		}

		// Write SSE event
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			// Client disconnected during write; drain so senders never block
			for range sseEventChan {
			}
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages until ctx is done
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			// Send to unified SSE channel
			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// setupRenderingPipeline creates the scene, the frame renderer and the turntable source
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	// Create scene (logging will now go through WebLogger)
	sceneObj, config, err := s.createScene(req, logger)
	if err != nil {
		return nil, err
	}

	base := sceneObj.FrameContext(config)
	return &RenderingPipeline{
		Scene:    sceneObj,
		Config:   config,
		Renderer: renderer.NewFrameRenderer(config, logger),
		Source:   renderer.Turntable(base, req.Frames, sceneObj.LightFollowsCamera),
	}, nil
}

// handleRenderingEvents processes the main rendering event loop. It returns once the
// sequence has closed its channels, so the frame renderer is idle afterwards.
func (s *Server) handleRenderingEvents(ctx context.Context, sseEventChan chan SSEEvent,
	frameChan <-chan renderer.FrameResult, tileChan <-chan renderer.TileCompletionResult, errChan <-chan error,
	pipeline *RenderingPipeline, req *RenderRequest, startTime time.Time) {

	for frameChan != nil || tileChan != nil {
		select {
		case frameResult, ok := <-frameChan:
			if !ok {
				frameChan = nil // Channel closed
				continue
			}
			s.handleFrameComplete(ctx, sseEventChan, frameResult, pipeline, req, startTime)

		case tileResult, ok := <-tileChan:
			if !ok {
				tileChan = nil // Channel closed
				continue
			}
			s.handleTileUpdate(ctx, sseEventChan, tileResult, req)
		}
	}

	if err := <-errChan; err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	// Send completion event
	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
	case <-ctx.Done():
	}
}

// handleFrameComplete processes and sends frame completion events
func (s *Server) handleFrameComplete(ctx context.Context, sseEventChan chan SSEEvent, frameResult renderer.FrameResult, pipeline *RenderingPipeline, req *RenderRequest, startTime time.Time) {
	imageData, err := s.imageToBase64PNG(frameResult.Image)
	if err != nil {
		log.Printf("Error encoding frame %d: %v", frameResult.FrameNumber, err)
		return
	}

	stats := frameResult.Stats
	update := FrameUpdate{
		Event:         "frameComplete",
		FrameNumber:   frameResult.FrameNumber,
		TotalFrames:   req.Frames,
		ImageData:     imageData,
		ElapsedMs:     time.Since(startTime).Milliseconds(),
		FrameMs:       stats.Duration.Milliseconds(),
		TotalPixels:   stats.TotalPixels(),
		PrimaryRays:   stats.PrimaryRays,
		SecondaryRays: stats.SecondaryRays,
		ShadowRays:    stats.ShadowRays,
		TextureMisses: stats.TextureMisses,
		RaysPerSecond: stats.RaysPerSecond(),
		CubeCount:     pipeline.Scene.CubeCount(),
		IsLast:        frameResult.IsLast,
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling frame update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "frameComplete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleTileUpdate processes and sends tile update events
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan SSEEvent, tileResult renderer.TileCompletionResult, req *RenderRequest) {
	// Convert tile image to base64 PNG
	tileData, err := s.imageToBase64PNG(tileResult.TileImage)
	if err != nil {
		log.Printf("Error encoding tile image (%d, %d): %v", tileResult.TileX, tileResult.TileY, err)
		return
	}

	// Create and send tile update
	update := TileUpdate{
		TileX:       tileResult.TileX,
		TileY:       tileResult.TileY,
		ImageData:   tileData,
		FrameNumber: tileResult.Frame,
		TileNumber:  tileResult.TileNumber,
		TotalTiles:  tileResult.TotalTiles,
		TotalFrames: req.Frames,
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling tile update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "tile", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
