package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// SlabHit is the entry/exit interval of a ray through an AABB
type SlabHit struct {
	Near     float64 // Largest per-axis entry distance
	Far      float64 // Smallest per-axis exit distance
	NearAxis int     // Axis that produced Near (-1 when every axis was parallel)
	FarAxis  int     // Axis that produced Far (-1 when every axis was parallel)
}

// Slabs intersects a ray with the box using the slab method. A direction
// component of exactly zero contributes (-Inf, +Inf) when the origin lies inside
// that slab and a miss otherwise, so no NaN is ever produced. ok is false when the
// ray misses or the box is entirely behind the origin.
func (aabb AABB) Slabs(ray Ray) (SlabHit, bool) {
	hit := SlabHit{
		Near:     math.Inf(-1),
		Far:      math.Inf(1),
		NearAxis: -1,
		FarAxis:  -1,
	}

	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Axis(axis)
		max := aabb.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		if direction == 0 {
			if origin < min || origin > max {
				return hit, false
			}
			continue
		}

		t1 := (min - origin) / direction
		t2 := (max - origin) / direction
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > hit.Near {
			hit.Near = t1
			hit.NearAxis = axis
		}
		if t2 < hit.Far {
			hit.Far = t2
			hit.FarAxis = axis
		}
	}

	if hit.Near > hit.Far || hit.Far < 0 {
		return hit, false
	}
	return hit, true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Contains reports whether p lies inside or on the box
func (aabb AABB) Contains(p Vec3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}
