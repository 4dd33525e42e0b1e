package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jinzhu/copier"

	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/renderer"
	"github.com/df07/go-cube-raytracer/pkg/scene"
)

// Request limits
const (
	minImageSize = 16
	maxImageSize = 2000
	maxFrames    = 360
	maxWorkers   = 256
)

// Server handles web requests for the cube raytracer
type Server struct {
	port      int
	scenesDir string
	assetDir  string
	staticDir string
}

// NewServer creates a new web server. scenesDir holds scene files, assetDir the
// house textures and staticDir the browser client.
func NewServer(port int, scenesDir, assetDir, staticDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir, assetDir: assetDir, staticDir: staticDir}
}

// RenderRequest represents a render request from the client. Zero values leave the
// scene's own render settings in place.
type RenderRequest struct {
	Scene        string `json:"scene"`        // Scene ID (e.g., "house" or "file:glass-row")
	Width        int    `json:"width"`        // Image width
	Height       int    `json:"height"`       // Image height
	Frames       int    `json:"frames"`       // Turntable frames to stream
	Workers      int    `json:"workers"`      // Render workers
	TileSize     int    `json:"tileSize"`     // Tile edge in pixels
	MaxRecursion int    `json:"maxRecursion"` // Reflection/refraction depth
	ShadowMode   string `json:"shadowMode"`   // "first" or "nearest"
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleSceneConfig returns the render settings a scene uses by default
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default" // Default scene
	}

	sceneObj, err := scene.Load(sceneName, s.scenesDir, s.assetDir)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.Config
	bounds := sceneObj.Bounds()
	response := map[string]interface{}{
		"scene":     sceneName,
		"cubeCount": sceneObj.CubeCount(),
		"textures":  sceneObj.Textures.Keys(),
		"bounds": map[string]interface{}{
			"center": [3]float64{bounds.Center().X, bounds.Center().Y, bounds.Center().Z},
			"size":   [3]float64{bounds.Size().X, bounds.Size().Y, bounds.Size().Z},
		},
		"defaults": map[string]interface{}{
			"width":        config.Width,
			"height":       config.Height,
			"fov":          config.FOV,
			"maxRecursion": config.MaxRecursion,
			"shadowMode":   config.ShadowMode,
			"tileSize":     config.TileSize,
			"lightFollows": sceneObj.LightFollowsCamera,
		},
		"limits": map[string]interface{}{
			"width":        map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":       map[string]int{"min": minImageSize, "max": maxImageSize},
			"frames":       map[string]int{"min": 1, "max": maxFrames},
			"workers":      map[string]int{"min": 0, "max": maxWorkers},
			"maxRecursion": map[string]int{"min": 1, "max": 16},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	query := r.URL.Query()

	if err := s.parseCommonSceneParams(query, req); err != nil {
		return nil, err
	}

	var err error
	if req.Frames, err = parseIntParam(query, "frames", 1, 1, maxFrames); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, maxWorkers); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(query, "tileSize", 0, 4, 512); err != nil {
		return nil, err
	}
	if req.MaxRecursion, err = parseIntParam(query, "maxRecursion", 0, 1, 16); err != nil {
		return nil, err
	}
	switch req.ShadowMode = query.Get("shadowMode"); req.ShadowMode {
	case "", renderer.ShadowFirst, renderer.ShadowNearest:
	default:
		return nil, fmt.Errorf("invalid shadowMode: %s", req.ShadowMode)
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Frames > 60 {
		log.Printf("Render warning: Large image with many frames may render slowly")
	}

	return req, nil
}

// parseCommonSceneParams parses the scene and image size shared by render and inspect requests
func (s *Server) parseCommonSceneParams(query url.Values, req *RenderRequest) error {
	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	} else {
		req.Scene = "default" // Default scene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minImageSize, maxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 0, minImageSize, maxImageSize); err != nil {
		return err
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene loads the requested scene and layers the request's settings over its
// render config
func (s *Server) createScene(req *RenderRequest, logger core.Logger) (*scene.Scene, renderer.Config, error) {
	if logger != nil {
		logger.Printf("Loading scene %s...\n", req.Scene)
	}

	sceneObj, err := scene.Load(req.Scene, s.scenesDir, s.assetDir)
	if err != nil {
		return nil, renderer.Config{}, err
	}

	var overrides renderer.Config
	if err := copier.Copy(&overrides, req); err != nil {
		return nil, renderer.Config{}, fmt.Errorf("failed to read request settings: %w", err)
	}
	config, err := renderer.MergeConfig(sceneObj.Config, overrides)
	if err != nil {
		return nil, renderer.Config{}, err
	}
	if err := config.Validate(); err != nil {
		return nil, renderer.Config{}, err
	}

	if logger != nil {
		logger.Printf("Scene %s: %d cubes at %dx%d\n", sceneObj.Name, sceneObj.CubeCount(), config.Width, config.Height)
	}
	return sceneObj, config, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
