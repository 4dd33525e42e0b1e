package renderer

import (
	"math"

	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/geometry"
)

// castShadow returns how much light reaches origin, from 1 (unoccluded) down to 0.
// An occluder at distance d scales the light by 1 - min(1, d/distanceToLight).
// The object being shaded is skipped so a surface never shadows itself.
func (rt *Raytracer) castShadow(origin, lightDir core.Vec3, exclude geometry.Object) float64 {
	rt.stats.ShadowRays++

	lightDistance := rt.frame.Light.DistanceFrom(origin)
	if lightDistance == 0 {
		return 1
	}

	ray := core.NewRay(origin, lightDir)
	nearest := math.Inf(1)

	for _, object := range rt.frame.Objects {
		if object == exclude {
			continue
		}
		hit := object.Intersect(ray)
		if !hit.Hit || hit.Distance <= 0 {
			continue
		}
		if rt.frame.Config.ShadowMode != ShadowNearest {
			return shadowRatio(hit.Distance, lightDistance)
		}
		nearest = math.Min(nearest, hit.Distance)
	}

	if math.IsInf(nearest, 1) {
		return 1
	}
	return shadowRatio(nearest, lightDistance)
}

func shadowRatio(occluderDistance, lightDistance float64) float64 {
	return 1 - math.Min(1, occluderDistance/lightDistance)
}
