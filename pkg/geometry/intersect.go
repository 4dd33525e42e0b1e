package geometry

import (
	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/material"
)

// Intersect is the result of testing a ray against an object. When Hit is false
// no other field is meaningful.
type Intersect struct {
	Hit       bool
	Distance  float64   // Ray parameter t of the hit; only t > 0 is a forward hit
	Point     core.Vec3 // World-space hit point
	Normal    core.Vec3 // Unit normal, always facing against the ray
	UV        core.Vec2 // Face texture coordinate in [0,1]
	FrontFace bool      // False when the normal was flipped (ray leaving the object)
}

// Object is anything a ray can hit. Scenes hold an ordered slice of objects and
// scan it linearly.
type Object interface {
	Intersect(ray core.Ray) Intersect
	Material() *material.Material
	Bounds() core.AABB
}
