package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-cube-raytracer/pkg/geometry"
	"github.com/df07/go-cube-raytracer/pkg/material"
	"github.com/df07/go-cube-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	UV           [2]float64             `json:"uv"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// materialType names the preset a material most resembles
func materialType(mat *material.Material) string {
	switch {
	case mat.Transparency > 0:
		return "glass"
	case mat.Reflectivity > 0:
		return "mirror"
	case mat.TextureKey != "":
		return "textured"
	default:
		return "solid"
	}
}

// extractMaterialInfo extracts the shading parameters of a material
func extractMaterialInfo(mat *material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"albedo":           mat.Albedo,
		"specularAlbedo":   mat.SpecularAlbedo,
		"specularExponent": mat.SpecularExponent,
		"reflectivity":     mat.Reflectivity,
		"transparency":     mat.Transparency,
		"refractiveIndex":  mat.RefractiveIndex,
		"color": fmt.Sprintf("#%02x%02x%02x",
			renderer.ToRGBA(mat.BaseColor).R, renderer.ToRGBA(mat.BaseColor).G, renderer.ToRGBA(mat.BaseColor).B),
	}
	if mat.TextureKey != "" {
		properties["texture"] = mat.TextureKey
		properties["tileSize"] = mat.TileSize
	}
	return materialType(mat), properties
}

// extractGeometryInfo extracts the placement of a hit object
func extractGeometryInfo(object geometry.Object) map[string]interface{} {
	properties := make(map[string]interface{})
	if cube, ok := object.(*geometry.Cube); ok {
		bounds := cube.Bounds()
		properties["center"] = [3]float64{cube.Center.X, cube.Center.Y, cube.Center.Z}
		properties["sideLength"] = cube.SideLength
		properties["min"] = [3]float64{bounds.Min.X, bounds.Min.Y, bounds.Min.Z}
		properties["max"] = [3]float64{bounds.Max.X, bounds.Max.Y, bounds.Max.Z}
	}
	return properties
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	// Create request object for parameter parsing
	inspectReq := &RenderRequest{}

	// Parse common scene parameters using shared function
	if err := s.parseCommonSceneParams(r.URL.Query(), inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}

	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sceneObj, config, err := s.createScene(inspectReq, nil)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// Validate pixel coordinates
	if pixelX < 0 || pixelX >= config.Width || pixelY < 0 || pixelY >= config.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	// Perform the inspection on the first frame of the turntable
	raytracer := renderer.NewRaytracer(sceneObj.FrameContext(config))
	hit, object := raytracer.Inspect(pixelX, pixelY)
	if object == nil {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	// Extract detailed information
	kind, materialProps := extractMaterialInfo(object.Material())

	response := InspectResponse{
		Hit:          true,
		MaterialType: kind,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		UV:           [2]float64{hit.UV.X, hit.UV.Y},
		Distance:     hit.Distance,
		FrontFace:    hit.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": extractGeometryInfo(object),
		},
	}

	writeJSON(w, http.StatusOK, response)
}
