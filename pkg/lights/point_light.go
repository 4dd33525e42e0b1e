package lights

import "github.com/df07/go-cube-raytracer/pkg/core"

// PointLight is an infinitely small light with no falloff
type PointLight struct {
	Position  core.Vec3
	Intensity float64
	Color     core.Vec3 // Tints the specular highlight
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, intensity float64, color core.Vec3) PointLight {
	return PointLight{
		Position:  position,
		Intensity: intensity,
		Color:     color,
	}
}

// DirectionFrom returns the unit vector from point toward the light
func (l PointLight) DirectionFrom(point core.Vec3) core.Vec3 {
	return l.Position.Subtract(point).Normalize()
}

// DistanceFrom returns the distance between point and the light
func (l PointLight) DistanceFrom(point core.Vec3) float64 {
	return l.Position.Subtract(point).Length()
}

// MovedTo returns a copy of the light at a new position
func (l PointLight) MovedTo(position core.Vec3) PointLight {
	l.Position = position
	return l
}
