package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-cube-raytracer/pkg/core"
)

const (
	// moveStep is the distance covered by Move(1) at Speed 1
	moveStep = 0.01
	// rotateStep is the angle in radians covered by Rotate(1, 0) at Speed 1
	rotateStep = 0.01
	// minTargetDistance keeps Move from pushing the camera through its target
	minTargetDistance = 0.1
	// maxPitchCos keeps Rotate away from looking straight along Up
	maxPitchCos = 0.99
)

// Camera is a pinhole camera looking from Position toward Target
type Camera struct {
	Position core.Vec3
	Target   core.Vec3
	Up       core.Vec3
	Speed    float64 // Scales Move and Rotate steps
}

// NewCamera creates a new camera
func NewCamera(position, target, up core.Vec3, speed float64) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Up:       up,
		Speed:    speed,
	}
}

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 {
	return c.Target.Subtract(c.Position).Normalize()
}

// Basis returns the orthonormal forward, right and up vectors of the view. When
// the view direction is parallel to Up another world axis stands in for it.
func (c *Camera) Basis() (forward, right, up core.Vec3) {
	forward = c.Forward()
	if forward.IsZero() {
		forward = core.NewVec3(0, 0, -1)
	}

	worldUp := c.Up.Normalize()
	if worldUp.IsZero() || math.Abs(forward.Dot(worldUp)) > 1-1e-9 {
		worldUp = fallbackUp(forward)
	}

	right = forward.Cross(worldUp).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// fallbackUp picks the world axis least aligned with forward
func fallbackUp(forward core.Vec3) core.Vec3 {
	if math.Abs(forward.Y) < 0.9 {
		return core.NewVec3(0, 1, 0)
	}
	return core.NewVec3(0, 0, 1)
}

// GetRay returns the primary ray through the center of pixel (x, y), where (0, 0)
// is the top-left pixel and vfovDegrees is the vertical field of view.
func (c *Camera) GetRay(x, y, width, height int, vfovDegrees float64) core.Ray {
	forward, right, up := c.Basis()
	return c.rayFromBasis(forward, right, up, x, y, width, height, vfovDegrees)
}

// RayGenerator returns a function producing the same rays as GetRay with the view
// basis computed once, for per-pixel use within a frame
func (c *Camera) RayGenerator(width, height int, vfovDegrees float64) func(x, y int) core.Ray {
	forward, right, up := c.Basis()
	return func(x, y int) core.Ray {
		return c.rayFromBasis(forward, right, up, x, y, width, height, vfovDegrees)
	}
}

func (c *Camera) rayFromBasis(forward, right, up core.Vec3, x, y, width, height int, vfovDegrees float64) core.Ray {
	w := float64(width)
	h := float64(height)
	scale := math.Tan(vfovDegrees * math.Pi / 360.0)

	screenX := 2.0*(float64(x)+0.5)/w - 1.0
	screenY := -(2.0 * (float64(y) + 0.5) / h) + 1.0
	screenX *= (w / h) * scale
	screenY *= scale

	direction := forward.Add(right.Multiply(screenX)).Add(up.Multiply(screenY)).Normalize()
	return core.NewRay(c.Position, direction)
}

// Move slides the camera along its view axis. Negative deltas move toward the target.
func (c *Camera) Move(delta float64) {
	offset := c.Position.Subtract(c.Target)
	distance := offset.Length()
	if distance == 0 {
		return
	}

	newDistance := math.Max(minTargetDistance, distance+delta*c.Speed*moveStep)
	c.Position = c.Target.Add(offset.Multiply(newDistance / distance))
}

// Rotate orbits the camera around its target in Speed-scaled steps. Positive yaw
// turns counter-clockwise about Up; positive pitch tilts about the view's right axis.
func (c *Camera) Rotate(yaw, pitch float64) {
	c.Orbit(yaw*c.Speed*rotateStep, pitch*c.Speed*rotateStep)
}

// Orbit rotates the camera position around its target by the given angles in
// radians. Pitch that would bring the view parallel to Up is dropped so the basis
// stays well defined.
func (c *Camera) Orbit(yawRadians, pitchRadians float64) {
	offset := toMgl(c.Position.Subtract(c.Target))
	if offset.Len() == 0 {
		return
	}

	_, right, _ := c.Basis()
	upAxis := toMgl(c.Up.Normalize())
	if upAxis.Len() == 0 {
		upAxis = mgl64.Vec3{0, 1, 0}
	}

	if yawRadians != 0 {
		offset = mgl64.QuatRotate(yawRadians, upAxis).Rotate(offset)
	}

	if pitchRadians != 0 {
		pitched := mgl64.QuatRotate(pitchRadians, toMgl(right)).Rotate(offset)
		if math.Abs(pitched.Normalize().Dot(upAxis)) < maxPitchCos {
			offset = pitched
		}
	}

	c.Position = c.Target.Add(fromMgl(offset))
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
