package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/loaders"
	"github.com/df07/go-cube-raytracer/pkg/material"
	"github.com/df07/go-cube-raytracer/pkg/skybox"
)

// houseTextureSize is the side of the procedural stand-ins for missing block textures
const houseTextureSize = 128

// blockTexture names a texture file and the procedural stand-in used when it is missing
type blockTexture struct {
	key      string
	file     string
	fallback func() *material.Texture
}

var houseTextures = []blockTexture{
	{"cherryLeaves", "cherry_leaves.png", func() *material.Texture {
		return material.NewSpeckleTexture(houseTextureSize, 8, core.NewVec3(0.93, 0.62, 0.75), core.NewVec3(0.75, 0.38, 0.55), 1)
	}},
	{"cherryPlanks", "cherry_planks.png", func() *material.Texture {
		return material.NewPlankTexture(houseTextureSize, 4, core.NewVec3(0.89, 0.70, 0.68))
	}},
	{"oakLog", "oak_log_s.png", func() *material.Texture {
		return material.NewPlankTexture(houseTextureSize, 16, core.NewVec3(0.42, 0.33, 0.20))
	}},
	{"cherryDoorB", "cherry_door_bottom.png", func() *material.Texture {
		return material.NewPlankTexture(houseTextureSize, 2, core.NewVec3(0.85, 0.62, 0.60))
	}},
	{"cherryDoorT", "cherry_door_top.png", func() *material.Texture {
		return material.NewCheckerboardTexture(houseTextureSize, houseTextureSize, 32, core.NewVec3(0.85, 0.62, 0.60), core.NewVec3(0.95, 0.90, 0.85))
	}},
	{"acaciaLeaves", "azalea_leaves.png", func() *material.Texture {
		return material.NewSpeckleTexture(houseTextureSize, 8, core.NewVec3(0.35, 0.55, 0.20), core.NewVec3(0.20, 0.38, 0.12), 2)
	}},
	{"redStoneLamp", "redstone_lamp.png", func() *material.Texture {
		return material.NewSpeckleTexture(houseTextureSize, 16, core.NewVec3(0.95, 0.75, 0.45), core.NewVec3(0.55, 0.30, 0.15), 3)
	}},
	{"basalt", "basalt.png", func() *material.Texture {
		return material.NewSpeckleTexture(houseTextureSize, 4, core.NewVec3(0.32, 0.32, 0.35), core.NewVec3(0.18, 0.18, 0.20), 4)
	}},
}

// NewHouseScene creates the cube house: plank floor with oak pillars, a double door,
// leaf hedges, redstone lamps, a leaf roof and a basalt path. Block textures are read
// from assetDir/textures and the sky from assetDir/BG/skybox01.jpg; anything missing
// is replaced by a procedural stand-in. An empty assetDir uses stand-ins only.
func NewHouseScene(assetDir string) (*Scene, error) {
	s := newScene("house")
	s.LightFollowsCamera = true

	for _, block := range houseTextures {
		texture, err := loadOrFallback(assetDir, filepath.Join("textures", block.file), block.fallback)
		if err != nil {
			return nil, err
		}
		s.Textures.Add(block.key, texture)
	}

	sky, err := loadHouseSkybox(assetDir)
	if err != nil {
		return nil, err
	}
	if sky != nil {
		s.Skybox = sky
	}

	mat := func(key string) *material.Material {
		return material.NewTexturedMaterial(key, s.Textures.Width(key))
	}
	cherryLeaves := mat("cherryLeaves")
	cherryPlanks := mat("cherryPlanks")
	oakLog := mat("oakLog")
	cherryDoorT := mat("cherryDoorT")
	cherryDoorB := mat("cherryDoorB")
	acaciaLeaves := mat("acaciaLeaves")
	redStoneLamp := mat("redStoneLamp")
	basalt := mat("basalt")
	// Stairs show the top-left quarter of the plank texture
	cherryPlankStair := material.NewTexturedMaterial("cherryPlanks", s.Textures.Width("cherryPlanks")/2)

	const gridWidth = 6
	const y = 1.0

	// Plank floor with oak pillars in the corners
	for i := -gridWidth / 2; i < gridWidth/2; i++ {
		for j := -gridWidth / 2; j < gridWidth/2; j++ {
			x, z := float64(i), float64(j)
			corner := (i == -gridWidth/2 || i == gridWidth/2-1) && (j == -gridWidth/2 || j == gridWidth/2-1)
			if corner {
				for level := 0; level < 4; level++ {
					s.AddCube(core.NewVec3(x, y*float64(level), z), 1, oakLog)
				}
			} else {
				s.AddCube(core.NewVec3(x, 0, z), 1, cherryPlanks)
			}
		}
	}

	// Doors
	for _, x := range []float64{0, -1} {
		s.AddCube(core.NewVec3(x, y, 2), 1, cherryDoorB)
		s.AddCube(core.NewVec3(x, y*2, 2), 1, cherryDoorT)
	}

	// Front planks
	for _, x := range []float64{0, -1, 1, -2} {
		s.AddCube(core.NewVec3(x, 0, 3), 1, cherryPlanks)
	}

	// Stairs
	s.AddCube(core.NewVec3(-0.2, 0, 4), 0.7, cherryPlankStair)
	s.AddCube(core.NewVec3(-0.8, 0, 4), 0.7, cherryPlankStair)

	// Front hedges
	for _, pos := range [][3]float64{
		{1, y, 3}, {-2, y, 3},
		{1, y * 2, 3}, {-2, y * 2, 3},
		{1, 0, 4}, {-2, 0, 4},
		{2, 0, 3}, {-3, 0, 3},
	} {
		s.AddCube(core.NewVec3(pos[0], pos[1], pos[2]), 1, acaciaLeaves)
	}
	for z := 2; z >= -3; z-- {
		s.AddCube(core.NewVec3(3, 0, float64(z)), 1, acaciaLeaves)
		s.AddCube(core.NewVec3(-4, 0, float64(z)), 1, acaciaLeaves)
	}

	// Redstone lamps
	s.AddCube(core.NewVec3(2, y*2, 3), 0.5, redStoneLamp)
	s.AddCube(core.NewVec3(-3, y*2, 3), 0.5, redStoneLamp)

	// Planks above the door
	for _, pos := range [][3]float64{
		{0, y * 3, 2}, {-1, y * 3, 2},
		{0, y * 4, 2}, {-1, y * 4, 2},
		{1, y * 3, 2}, {-2, y * 3, 2},
	} {
		s.AddCube(core.NewVec3(pos[0], pos[1], pos[2]), 1, cherryPlanks)
	}

	// Roof
	for z := 3; z >= -4; z-- {
		s.AddCube(core.NewVec3(0, y*5, float64(z)), 1, cherryLeaves)
		s.AddCube(core.NewVec3(-1, y*5, float64(z)), 1, cherryLeaves)
	}
	for z := 3; z >= -4; z-- {
		s.AddCube(core.NewVec3(1, y*4, float64(z)), 1, cherryLeaves)
		s.AddCube(core.NewVec3(-2, y*4, float64(z)), 1, cherryLeaves)
	}
	for z := 1; z >= -2; z-- {
		s.AddCube(core.NewVec3(2, y*3, float64(z)), 1, cherryLeaves)
		s.AddCube(core.NewVec3(-3, y*3, float64(z)), 1, cherryLeaves)
	}
	for _, z := range []float64{3, -4} {
		s.AddCube(core.NewVec3(2, y*3, z), 1, cherryLeaves)
		s.AddCube(core.NewVec3(-3, y*3, z), 1, cherryLeaves)
	}

	// Window walls
	for _, z := range []float64{1, -2} {
		for _, level := range []float64{1, 2} {
			s.AddCube(core.NewVec3(2, y*level, z), 1, cherryPlanks)
			s.AddCube(core.NewVec3(-3, y*level, z), 1, cherryPlanks)
		}
	}

	// Path
	for z := 3; z <= 5; z++ {
		for x := 0; x < 2; x++ {
			s.AddCube(core.NewVec3(float64(-x), -y, float64(z)), 1, basalt)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadOrFallback loads assetDir/name, or builds the fallback when there is no such file
func loadOrFallback(assetDir, name string, fallback func() *material.Texture) (*material.Texture, error) {
	if assetDir == "" {
		return fallback(), nil
	}

	imageData, err := loaders.LoadImage(filepath.Join(assetDir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fallback(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load house texture: %w", err)
	}
	return material.NewTexture(imageData.Width, imageData.Height, imageData.Pixels), nil
}

// loadHouseSkybox returns the image skybox when present, or nil to keep the default sky
func loadHouseSkybox(assetDir string) (skybox.Skybox, error) {
	if assetDir == "" {
		return nil, nil
	}

	imageData, err := loaders.LoadImage(filepath.Join(assetDir, "BG", "skybox01.jpg"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load house skybox: %w", err)
	}
	return skybox.NewImage(imageData.Width, imageData.Height, imageData.Pixels), nil
}
