package renderer

import (
	"math"

	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/geometry"
	"github.com/df07/go-cube-raytracer/pkg/material"
)

// Raytracer shades rays against one frame's scene. A Raytracer keeps its own ray
// counters and must not be shared between goroutines; create one per worker.
type Raytracer struct {
	frame FrameContext
	stats TraceStats
}

// NewRaytracer creates a new raytracer
func NewRaytracer(frame FrameContext) *Raytracer {
	return &Raytracer{frame: frame}
}

// Stats returns the ray counts accumulated since creation or the last ResetStats
func (rt *Raytracer) Stats() TraceStats {
	return rt.stats
}

// ResetStats clears the ray counters
func (rt *Raytracer) ResetStats() {
	rt.stats = TraceStats{}
}

// closestHit returns the nearest forward hit; on equal distances the earlier object wins
func (rt *Raytracer) closestHit(ray core.Ray) (geometry.Intersect, geometry.Object) {
	var closest geometry.Intersect
	var hitObject geometry.Object
	closestSoFar := math.Inf(1)

	for _, object := range rt.frame.Objects {
		hit := object.Intersect(ray)
		if hit.Hit && hit.Distance > 0 && hit.Distance < closestSoFar {
			closestSoFar = hit.Distance
			closest = hit
			hitObject = object
		}
	}

	return closest, hitObject
}

// Inspect returns the hit seen by the camera ray through pixel (x, y) and the object
// it belongs to, or a nil object on a miss
func (rt *Raytracer) Inspect(x, y int) (geometry.Intersect, geometry.Object) {
	config := rt.frame.Config
	ray := rt.frame.Camera.GetRay(x, y, config.Width, config.Height, config.FOV)
	return rt.closestHit(ray)
}

// CastRay returns the color seen along ray. Rays that hit nothing, or that reach
// the configured recursion depth, see the skybox.
func (rt *Raytracer) CastRay(ray core.Ray, depth int) core.Vec3 {
	if depth == 0 {
		rt.stats.PrimaryRays++
	} else {
		rt.stats.SecondaryRays++
	}

	hit, hitObject := rt.closestHit(ray)
	if hitObject == nil || depth >= rt.frame.Config.MaxRecursion {
		return rt.frame.Skybox.ColorForDirection(ray.Direction)
	}

	mat := hitObject.Material()
	light := rt.frame.Light
	bias := rt.frame.Config.Bias
	normal := hit.Normal

	lightDir := light.DirectionFrom(hit.Point)
	viewDir := ray.Origin.Subtract(hit.Point).Normalize()
	specDir := core.Reflect(lightDir.Negate(), normal)

	shadowOrigin := hit.Point.Add(normal.Multiply(bias))
	shadow := rt.castShadow(shadowOrigin, lightDir, hitObject)

	diffuse := DiffuseTerm(normal, lightDir)
	specular := SpecularTerm(viewDir, specDir, mat.SpecularExponent)

	var reflected core.Vec3
	if mat.Reflectivity > 0 {
		reflected = rt.CastRay(rt.reflectedRay(ray, hit), depth+1)
	}

	var refracted core.Vec3
	if mat.Transparency > 0 {
		refracted = rt.CastRay(rt.refractedRay(ray, hit, mat.RefractiveIndex), depth+1)
	}

	surface := rt.surfaceColor(mat, hit.UV)

	diffuseLight := surface.Multiply(light.Intensity * diffuse * mat.Albedo * shadow)
	specularLight := light.Color.Multiply(light.Intensity * specular * mat.SpecularAlbedo * shadow)

	return diffuseLight.Add(specularLight).Multiply(mat.LocalWeight()).
		Add(reflected.Multiply(mat.Reflectivity)).
		Add(refracted.Multiply(mat.Transparency))
}

// reflectedRay mirrors the incoming ray about the hit normal, starting just above the surface
func (rt *Raytracer) reflectedRay(ray core.Ray, hit geometry.Intersect) core.Ray {
	origin := hit.Point.Add(hit.Normal.Multiply(rt.frame.Config.Bias))
	return core.NewRay(origin, core.Reflect(ray.Direction, hit.Normal).Normalize())
}

// refractedRay bends the incoming ray into (or out of) the surface, starting just
// below it. Total internal reflection turns it into a reflected ray.
func (rt *Raytracer) refractedRay(ray core.Ray, hit geometry.Intersect, ior float64) core.Ray {
	if ior <= 0 {
		ior = 1
	}
	eta := ior
	if hit.FrontFace {
		eta = 1.0 / ior
	}

	direction, ok := core.Refract(ray.Direction.Normalize(), hit.Normal, eta)
	if !ok {
		return rt.reflectedRay(ray, hit)
	}

	origin := hit.Point.Subtract(hit.Normal.Multiply(rt.frame.Config.Bias))
	return core.NewRay(origin, direction.Normalize())
}

// surfaceColor returns the material's diffuse color at uv. Texture lookups that fail
// fall back to the base color and are counted.
func (rt *Raytracer) surfaceColor(mat *material.Material, uv core.Vec2) core.Vec3 {
	if !mat.IsTextured() || rt.frame.Textures == nil {
		if mat.IsTextured() {
			rt.stats.TextureMisses++
		}
		return mat.BaseColor
	}

	x, y := mat.TexelFor(uv, rt.frame.Textures.Width(mat.TextureKey))
	texel, err := rt.frame.Textures.Sample(mat.TextureKey, x, y)
	if err != nil {
		rt.stats.TextureMisses++
		return mat.BaseColor
	}

	return texel.Multiply(rt.frame.Config.DiffuseScale)
}

// DiffuseTerm is the Lambertian factor, zero for light behind the surface
func DiffuseTerm(normal, lightDir core.Vec3) float64 {
	return math.Max(0, normal.Dot(lightDir))
}

// SpecularTerm is the Phong highlight factor
func SpecularTerm(viewDir, specDir core.Vec3, exponent float64) float64 {
	return math.Pow(math.Max(0, viewDir.Dot(specDir)), exponent)
}
