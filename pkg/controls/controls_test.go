package controls

import (
	"math"
	"testing"

	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/geometry"
)

func newCamera() *geometry.Camera {
	return geometry.NewCamera(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 10)
}

func TestApply(t *testing.T) {
	tests := []struct {
		action Action
		check  func(t *testing.T, before, after core.Vec3)
	}{
		{MoveCloser, func(t *testing.T, before, after core.Vec3) {
			if math.Abs(after.Length()-4.9) > 1e-9 {
				t.Errorf("Expected distance 4.9, got %g", after.Length())
			}
		}},
		{MoveAway, func(t *testing.T, before, after core.Vec3) {
			if math.Abs(after.Length()-5.1) > 1e-9 {
				t.Errorf("Expected distance 5.1, got %g", after.Length())
			}
		}},
		{YawLeft, func(t *testing.T, before, after core.Vec3) {
			if after.X >= 0 || math.Abs(after.Y) > 1e-9 {
				t.Errorf("Yaw left should swing toward -x in the horizontal plane, got %v", after)
			}
		}},
		{YawRight, func(t *testing.T, before, after core.Vec3) {
			if after.X <= 0 || math.Abs(after.Y) > 1e-9 {
				t.Errorf("Yaw right should swing toward +x in the horizontal plane, got %v", after)
			}
		}},
		{PitchUp, func(t *testing.T, before, after core.Vec3) {
			if math.Abs(after.Y) < 1e-3 || math.Abs(after.Length()-5) > 1e-9 {
				t.Errorf("Pitch should tilt the camera at constant distance, got %v", after)
			}
		}},
		{PitchDown, func(t *testing.T, before, after core.Vec3) {
			if math.Abs(after.Y) < 1e-3 || math.Abs(after.Length()-5) > 1e-9 {
				t.Errorf("Pitch should tilt the camera at constant distance, got %v", after)
			}
		}},
		{None, func(t *testing.T, before, after core.Vec3) {
			if !after.Equals(before) {
				t.Errorf("None should not move the camera, got %v", after)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			camera := newCamera()
			before := camera.Position
			if !Apply(camera, tt.action) {
				t.Fatal("Only Quit should stop the viewer")
			}
			tt.check(t, before, camera.Position)
		})
	}
}

func TestPitchDirectionsOppose(t *testing.T) {
	up, down := newCamera(), newCamera()
	Apply(up, PitchUp)
	Apply(down, PitchDown)
	if up.Position.Y*down.Position.Y >= 0 {
		t.Errorf("Pitch up and down should tilt opposite ways, got %v and %v", up.Position, down.Position)
	}
}

func TestApplyAll(t *testing.T) {
	camera := newCamera()

	running, moved := ApplyAll(camera, nil)
	if !running || moved {
		t.Errorf("No actions: running=%v moved=%v", running, moved)
	}

	running, moved = ApplyAll(camera, []Action{None, YawRight, MoveCloser})
	if !running || !moved {
		t.Errorf("Expected running and moved, got running=%v moved=%v", running, moved)
	}

	running, _ = ApplyAll(camera, []Action{YawLeft, Quit})
	if running {
		t.Error("Quit should stop the viewer")
	}
}

func TestAction_String(t *testing.T) {
	if Quit.String() != "quit" || Action(99).String() != "unknown" {
		t.Errorf("Unexpected names %q, %q", Quit.String(), Action(99).String())
	}
}
