package geometry

import (
	"math"

	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/material"
)

// faceEpsilon is how close a hit point must be to a face plane to claim its normal
const faceEpsilon = 1e-3

// Cube represents an axis-aligned cube
type Cube struct {
	Center     core.Vec3          // Center point of the cube
	SideLength float64            // Edge length
	material   *material.Material // Material for all faces
}

// NewCube creates a new axis-aligned cube
func NewCube(center core.Vec3, sideLength float64, mat *material.Material) *Cube {
	return &Cube{
		Center:     center,
		SideLength: sideLength,
		material:   mat,
	}
}

// Material returns the material shared by all six faces
func (c *Cube) Material() *material.Material {
	return c.material
}

// Bounds returns the cube's min and max corners
func (c *Cube) Bounds() core.AABB {
	half := c.SideLength * 0.5
	extent := core.NewVec3(half, half, half)
	return core.NewAABB(c.Center.Subtract(extent), c.Center.Add(extent))
}

// Intersect tests a ray against the cube. If the origin is inside the cube the exit
// point is reported.
func (c *Cube) Intersect(ray core.Ray) Intersect {
	bounds := c.Bounds()
	slabs, ok := bounds.Slabs(ray)
	if !ok {
		return Intersect{}
	}

	t, axis := slabs.Near, slabs.NearAxis
	if t <= 0 {
		t, axis = slabs.Far, slabs.FarAxis
	}
	// Zero direction vector: every axis was parallel
	if math.IsInf(t, 0) {
		return Intersect{}
	}

	point := ray.At(t)
	normal := faceNormal(point, bounds)
	if normal.IsZero() {
		normal = slabNormal(point, bounds, axis)
	}

	frontFace := true
	if ray.Direction.Dot(normal) > 0 {
		normal = normal.Negate()
		frontFace = false
	}
	normal = normal.Normalize()

	return Intersect{
		Hit:       true,
		Distance:  t,
		Point:     point,
		Normal:    normal,
		UV:        c.faceUV(point, normal, bounds.Min),
		FrontFace: frontFace,
	}
}

// faceNormal marks every face plane the point lies on. Edge and corner hits get
// a diagonal normal. The max test runs second and wins on cubes smaller than the epsilon.
func faceNormal(point core.Vec3, bounds core.AABB) core.Vec3 {
	var normal core.Vec3
	for axis := 0; axis < 3; axis++ {
		p := point.Axis(axis)
		if math.Abs(p-bounds.Min.Axis(axis)) < faceEpsilon {
			normal = normal.SetAxis(axis, -1)
		}
		if math.Abs(p-bounds.Max.Axis(axis)) < faceEpsilon {
			normal = normal.SetAxis(axis, 1)
		}
	}
	return normal
}

// slabNormal recovers a normal from the slab that produced the hit, for points that
// drifted outside the epsilon at large coordinates
func slabNormal(point core.Vec3, bounds core.AABB, axis int) core.Vec3 {
	if axis < 0 {
		return core.Vec3{}
	}
	p := point.Axis(axis)
	if math.Abs(p-bounds.Max.Axis(axis)) < math.Abs(p-bounds.Min.Axis(axis)) {
		return core.Vec3{}.SetAxis(axis, 1)
	}
	return core.Vec3{}.SetAxis(axis, -1)
}

// faceUV projects the hit onto the face picked by the dominant normal component
// (ties go to the lower axis). Faces whose normal has a negative component are
// mirrored so opposite faces read the same way round.
func (c *Cube) faceUV(point, normal, corner core.Vec3) core.Vec2 {
	if c.SideLength <= 0 {
		return core.Vec2{}
	}

	local := point.Subtract(corner)
	var uv core.Vec2
	switch dominantAxis(normal) {
	case 0:
		uv = core.NewVec2(local.Z, local.Y)
	case 1:
		uv = core.NewVec2(local.X, local.Z)
	default:
		uv = core.NewVec2(local.X, local.Y)
	}
	uv.X /= c.SideLength
	uv.Y /= c.SideLength

	if normal.X < 0 || normal.Y < 0 || normal.Z < 0 {
		uv = core.NewVec2(1-uv.X, 1-uv.Y)
	}

	return core.NewVec2(clampUnit(uv.X), clampUnit(uv.Y))
}

func dominantAxis(v core.Vec3) int {
	axis := 0
	for i := 1; i < 3; i++ {
		if math.Abs(v.Axis(i)) > math.Abs(v.Axis(axis)) {
			axis = i
		}
	}
	return axis
}

func clampUnit(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
