package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/geometry"
	"github.com/df07/go-cube-raytracer/pkg/lights"
	"github.com/df07/go-cube-raytracer/pkg/material"
	"github.com/df07/go-cube-raytracer/pkg/skybox"
)

// directionSky encodes the ray direction as a color so tests can tell directions apart
type directionSky struct{}

func (directionSky) ColorForDirection(dir core.Vec3) core.Vec3 {
	return dir.Normalize().Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}

// newTestFrame builds a frame with the camera at (0,0,5) looking at the origin and
// the light at the camera
func newTestFrame(objects ...geometry.Object) FrameContext {
	return FrameContext{
		Objects:  objects,
		Light:    lights.NewPointLight(core.NewVec3(0, 0, 5), 1, core.NewVec3(1, 1, 1)),
		Camera:   *geometry.NewCamera(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 10),
		Skybox:   directionSky{},
		Textures: material.NewTextureStore(),
		Config:   DefaultConfig(),
	}
}

func forwardRay() core.Ray {
	return core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
}

func assertColor(t *testing.T, expected, got core.Vec3) {
	t.Helper()
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected color %v, got %v", expected, got)
	}
}

func TestCastRay_EmptySceneReturnsSkybox(t *testing.T) {
	frame := newTestFrame()
	frame.Skybox = skybox.NewGradient(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1, 1, 1))
	rt := NewRaytracer(frame)

	for _, dir := range []core.Vec3{
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0.3, -0.8, 0.1).Normalize(),
	} {
		got := rt.CastRay(core.NewRay(core.NewVec3(0, 0, 5), dir), 0)
		assertColor(t, frame.Skybox.ColorForDirection(dir), got)
	}
}

func TestCastRay_DepthLimitReturnsSkybox(t *testing.T) {
	cube := geometry.NewCube(core.NewVec3(0, 0, 0), 1, material.NewSolidMaterial(core.NewVec3(1, 0, 0)))
	frame := newTestFrame(cube)
	rt := NewRaytracer(frame)

	got := rt.CastRay(forwardRay(), frame.Config.MaxRecursion)
	assertColor(t, directionSky{}.ColorForDirection(core.NewVec3(0, 0, -1)), got)

	// One level shallower the cube is shaded
	shaded := rt.CastRay(forwardRay(), frame.Config.MaxRecursion-1)
	if shaded.Equals(got) {
		t.Error("Expected the cube to be shaded below the recursion limit")
	}
}

func TestDiffuseTerm(t *testing.T) {
	tests := []struct {
		name     string
		normal   core.Vec3
		lightDir core.Vec3
		expected float64
	}{
		{"light along normal", core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), 1},
		{"light behind surface", core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), 0},
		{"grazing 60 degrees", core.NewVec3(0, 1, 0), core.NewVec3(math.Sin(math.Pi/3), 0.5, 0), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiffuseTerm(tt.normal, tt.lightDir); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestSpecularTerm(t *testing.T) {
	view := core.NewVec3(0, 0, 1)
	if got := SpecularTerm(view, view, 50); math.Abs(got-1) > 1e-12 {
		t.Errorf("Aligned highlight: expected 1, got %f", got)
	}
	if got := SpecularTerm(view, view.Negate(), 10); got != 0 {
		t.Errorf("Opposed highlight: expected 0, got %f", got)
	}
}

func TestCastRay_LocalShading(t *testing.T) {
	// Light, camera and ray are all on the +z axis, so diffuse, specular and shadow are 1
	red := material.NewSolidMaterial(core.NewVec3(1, 0, 0))
	cube := geometry.NewCube(core.NewVec3(0, 0, 0), 1, red)
	rt := NewRaytracer(newTestFrame(cube))

	got := rt.CastRay(forwardRay(), 0)
	// base*albedo + white*specAlbedo
	assertColor(t, core.NewVec3(0.9+0.1, 0.1, 0.1), got)
}

func TestCastRay_TexturedSurface(t *testing.T) {
	frame := newTestFrame()
	store := material.NewTextureStore()
	grey := core.NewVec3(0.5, 0.5, 0.5)
	store.Add("grey", material.NewTexture(2, 2, []core.Vec3{grey, grey, grey, grey}))
	frame.Textures = store
	frame.Objects = []geometry.Object{
		geometry.NewCube(core.NewVec3(0, 0, 0), 1, material.NewTexturedMaterial("grey", 2)),
	}
	rt := NewRaytracer(frame)

	got := rt.CastRay(forwardRay(), 0)
	// 0.5 * DiffuseScale * albedo + specular
	expected := 0.5*0.6*0.9 + 0.1
	assertColor(t, core.NewVec3(expected, expected, expected), got)
	if rt.Stats().TextureMisses != 0 {
		t.Errorf("Expected no texture misses, got %d", rt.Stats().TextureMisses)
	}
}

func TestCastRay_TextureMissUsesBaseColor(t *testing.T) {
	mat := material.NewTexturedMaterial("missing", 16)
	mat.BaseColor = core.NewVec3(0, 1, 0)
	cube := geometry.NewCube(core.NewVec3(0, 0, 0), 1, mat)
	rt := NewRaytracer(newTestFrame(cube))

	got := rt.CastRay(forwardRay(), 0)
	assertColor(t, core.NewVec3(0.1, 1.0, 0.1), got)
	if rt.Stats().TextureMisses != 1 {
		t.Errorf("Expected 1 texture miss, got %d", rt.Stats().TextureMisses)
	}
}

func TestCastRay_PerfectMirrorEqualsReflectedColor(t *testing.T) {
	mirror := geometry.NewCube(core.NewVec3(0, 0, 0), 1, material.NewMirrorMaterial())
	rt := NewRaytracer(newTestFrame(mirror))

	// Off-axis ray so the reflection is not simply back at the camera
	dir := core.NewVec3(0.05, 0.02, -1).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 5), dir)
	got := rt.CastRay(ray, 0)

	reflectedDir := core.NewVec3(dir.X, dir.Y, -dir.Z)
	assertColor(t, directionSky{}.ColorForDirection(reflectedDir), got)
}

func TestCastRay_ClearGlassPassesStraightThrough(t *testing.T) {
	glass := &material.Material{
		BaseColor:       core.NewVec3(1, 1, 1),
		Transparency:    1,
		RefractiveIndex: 1,
	}
	cube := geometry.NewCube(core.NewVec3(0, 0, 0), 1, glass)
	rt := NewRaytracer(newTestFrame(cube))

	got := rt.CastRay(forwardRay(), 0)
	assertColor(t, directionSky{}.ColorForDirection(core.NewVec3(0, 0, -1)), got)

	// Primary ray, then one refraction in and one out
	stats := rt.Stats()
	if stats.PrimaryRays != 1 || stats.SecondaryRays != 2 {
		t.Errorf("Expected 1 primary and 2 secondary rays, got %+v", stats)
	}
}

func TestCastRay_ZeroIORTreatedAsOne(t *testing.T) {
	glass := &material.Material{Transparency: 1}
	cube := geometry.NewCube(core.NewVec3(0, 0, 0), 1, glass)
	rt := NewRaytracer(newTestFrame(cube))

	got := rt.CastRay(forwardRay(), 0)
	assertColor(t, directionSky{}.ColorForDirection(core.NewVec3(0, 0, -1)), got)
}

func TestRefractedRay_TotalInternalReflection(t *testing.T) {
	rt := NewRaytracer(newTestFrame())
	hit := geometry.Intersect{
		Hit:       true,
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: false, // Leaving a dense medium
	}
	incident := core.NewRay(core.NewVec3(-1, 0, -0.2), core.NewVec3(math.Sin(1.3), 0, -math.Cos(1.3)))

	got := rt.refractedRay(incident, hit, 1.5)
	want := rt.reflectedRay(incident, hit)
	if !got.Direction.Equals(want.Direction) || !got.Origin.Equals(want.Origin) {
		t.Errorf("Expected reflected ray %v, got %v", want, got)
	}
	if got.Origin.Z <= 0 {
		t.Errorf("Reflected origin should be above the surface, got %v", got.Origin)
	}
}

func TestRefractedRay_OriginBelowSurface(t *testing.T) {
	rt := NewRaytracer(newTestFrame())
	hit := geometry.Intersect{
		Hit:       true,
		Point:     core.NewVec3(0, 0, 0.5),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	got := rt.refractedRay(forwardRay(), hit, 1.5)
	if got.Origin.Z >= 0.5 {
		t.Errorf("Expected refracted origin below the surface, got %v", got.Origin)
	}
	if !got.Direction.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("Normal incidence should not bend, got %v", got.Direction)
	}
}

func TestCastRay_EqualDistanceFirstObjectWins(t *testing.T) {
	red := geometry.NewCube(core.NewVec3(0, 0, 0), 1, material.NewSolidMaterial(core.NewVec3(1, 0, 0)))
	green := geometry.NewCube(core.NewVec3(0, 0, 0), 1, material.NewSolidMaterial(core.NewVec3(0, 1, 0)))

	got := NewRaytracer(newTestFrame(red, green)).CastRay(forwardRay(), 0)
	if got.X <= got.Y {
		t.Errorf("Expected the first (red) cube to win, got %v", got)
	}

	got = NewRaytracer(newTestFrame(green, red)).CastRay(forwardRay(), 0)
	if got.Y <= got.X {
		t.Errorf("Expected the first (green) cube to win, got %v", got)
	}
}

func TestCastShadow(t *testing.T) {
	shaded := geometry.NewCube(core.NewVec3(0, 0, 0), 1, material.NewSolidMaterial(core.NewVec3(1, 1, 1)))
	near := geometry.NewCube(core.NewVec3(0, 0, 2), 1, material.NewSolidMaterial(core.NewVec3(1, 1, 1)))
	far := geometry.NewCube(core.NewVec3(0, 0, 3.5), 1, material.NewSolidMaterial(core.NewVec3(1, 1, 1)))
	behind := geometry.NewCube(core.NewVec3(0, 0, -3), 1, material.NewSolidMaterial(core.NewVec3(1, 1, 1)))

	origin := core.NewVec3(0, 0, 0.5)
	lightDir := core.NewVec3(0, 0, 1)
	lightDistance := 4.5

	tests := []struct {
		name     string
		objects  []geometry.Object
		mode     string
		expected float64
	}{
		{"no occluder", []geometry.Object{shaded}, ShadowFirst, 1},
		{"occluder behind origin", []geometry.Object{shaded, behind}, ShadowFirst, 1},
		{"single occluder", []geometry.Object{shaded, near}, ShadowFirst, 1 - 1.0/lightDistance},
		{"first found wins", []geometry.Object{shaded, far, near}, ShadowFirst, 1 - 2.5/lightDistance},
		{"nearest mode", []geometry.Object{shaded, far, near}, ShadowNearest, 1 - 1.0/lightDistance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := newTestFrame(tt.objects...)
			frame.Config.ShadowMode = tt.mode
			rt := NewRaytracer(frame)

			got := rt.castShadow(origin, lightDir, shaded)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestCastShadow_OccluderPastLightIsFullShadow(t *testing.T) {
	shaded := geometry.NewCube(core.NewVec3(0, 0, 0), 1, material.NewSolidMaterial(core.NewVec3(1, 1, 1)))
	past := geometry.NewCube(core.NewVec3(0, 0, 20), 1, material.NewSolidMaterial(core.NewVec3(1, 1, 1)))
	rt := NewRaytracer(newTestFrame(shaded, past))

	if got := rt.castShadow(core.NewVec3(0, 0, 0.5), core.NewVec3(0, 0, 1), shaded); got != 0 {
		t.Errorf("Expected 0 for an occluder beyond the light, got %f", got)
	}
}

func TestInspect(t *testing.T) {
	cube := geometry.NewCube(core.NewVec3(0, 0, 0), 1, material.NewSolidMaterial(core.NewVec3(1, 0, 0)))
	frame := newTestFrame(cube)
	frame.Config.Width, frame.Config.Height = 801, 601
	rt := NewRaytracer(frame)

	hit, object := rt.Inspect(400, 300)
	if object != cube {
		t.Fatalf("Expected the center pixel to hit the cube, got %v", object)
	}
	if !hit.Normal.Equals(core.NewVec3(0, 0, 1)) || math.Abs(hit.Distance-4.5) > 1e-9 {
		t.Errorf("Expected front face at distance 4.5, got normal %v distance %g", hit.Normal, hit.Distance)
	}

	if _, object := rt.Inspect(0, 0); object != nil {
		t.Errorf("Expected the corner pixel to miss, got %v", object)
	}
	if rt.Stats().PrimaryRays != 0 {
		t.Error("Inspect should not count rays")
	}
}
