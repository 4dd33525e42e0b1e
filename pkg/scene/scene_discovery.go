package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the YAML file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtInGroup = "Built-in Scenes"

// builtInScenes lists the scenes constructed in code
var builtInScenes = []SceneInfo{
	{
		ID:          "default",
		Name:        "Default Scene",
		DisplayName: "Default Scene",
		Description: "Checkered cube beside a mirror cube and a glass cube",
		Group:       builtInGroup,
		Type:        "builtin",
	},
	{
		ID:          "house",
		Name:        "Cube House",
		DisplayName: "Cube House",
		Description: "Block-built cherry wood house with a leaf roof",
		Group:       builtInGroup,
		Type:        "builtin",
	},
	{
		ID:          "cube-grid",
		Name:        "Cube Grid",
		DisplayName: "Cube Grid",
		Description: "10x10 grid of colored cubes with scattered mirrors",
		Group:       builtInGroup,
		Type:        "builtin",
	},
	{
		ID:          "texture-test",
		Name:        "Texture Test",
		DisplayName: "Texture Test",
		Description: "Row of cubes showing face texture mapping",
		Group:       builtInGroup,
		Type:        "builtin",
	},
}

// FindScenesDir returns the first scenes directory found from the working directory,
// or "" when there is none
func FindScenesDir() string {
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListFileScenes scans dir for YAML scene files. A missing directory yields an empty list.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	scenes := []SceneInfo{}
	if dir == "" {
		return scenes, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// sceneMetadata is the subset of a scene file read for listings
type sceneMetadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Group       string `yaml:"group"`
}

// ParseSceneMetadata reads the name, description and group of a scene file,
// falling back to values derived from the filename
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          fmt.Sprintf("file:%s", nameWithoutExt),
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        "file",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		// If we can't read the file, return with fallback values
		return sceneInfo, nil
	}

	var meta sceneMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return sceneInfo, fmt.Errorf("invalid scene file: %w", err)
	}

	if meta.Name != "" {
		sceneInfo.Name = meta.Name
		sceneInfo.DisplayName = meta.Name
	}
	sceneInfo.Description = meta.Description
	if meta.Group != "" {
		sceneInfo.Group = meta.Group
	}

	return sceneInfo, nil
}

// ListAllScenes returns built-in scenes and the scene files in dir, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(append([]SceneInfo{}, builtInScenes...), fileScenes...)

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Create ordered groups (Built-in first, then alphabetical)
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtInGroup,
		Scenes: groupMap[builtInGroup],
	})

	// Add other groups alphabetically
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// Load creates a scene by name: a built-in scene ID such as "default" or "house", a scene
// file ID ("file:<name>"), a bare scene file name looked up in scenesDir, or a path
// to a YAML file. assetDir is passed to scenes that read textures from disk.
func Load(name, scenesDir, assetDir string) (*Scene, error) {
	switch name {
	case "default":
		return NewDefaultScene(), nil
	case "house":
		return NewHouseScene(assetDir)
	case "cube-grid":
		return NewCubeGridScene(10), nil
	case "texture-test":
		return NewTextureTestScene(), nil
	case "":
		return nil, fmt.Errorf("%w: empty name", ErrUnknownScene)
	}

	if ext := filepath.Ext(name); ext == ".yaml" || ext == ".yml" {
		if _, err := os.Stat(name); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
		}
		return NewFileScene(name)
	}

	base := strings.TrimPrefix(name, "file:")
	if scenesDir != "" {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(scenesDir, base+ext)
			if _, err := os.Stat(path); err == nil {
				return NewFileScene(path)
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
}

// titleCase converts a filename-style string to title case
// e.g., "glass-row" -> "Glass Row"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
