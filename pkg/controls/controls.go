// Package controls maps viewer input to camera motion.
package controls

import (
	"github.com/df07/go-cube-raytracer/pkg/geometry"
)

// Action is one discrete viewer command
type Action int

const (
	None Action = iota
	MoveCloser
	MoveAway
	YawLeft
	YawRight
	PitchUp
	PitchDown
	Quit
)

var actionNames = map[Action]string{
	None:       "none",
	MoveCloser: "move-closer",
	MoveAway:   "move-away",
	YawLeft:    "yaw-left",
	YawRight:   "yaw-right",
	PitchUp:    "pitch-up",
	PitchDown:  "pitch-down",
	Quit:       "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Apply moves the camera for one action. It reports false for Quit.
func Apply(camera *geometry.Camera, action Action) bool {
	switch action {
	case MoveCloser:
		camera.Move(-1)
	case MoveAway:
		camera.Move(1)
	case YawLeft:
		camera.Rotate(-1, 0)
	case YawRight:
		camera.Rotate(1, 0)
	case PitchUp:
		camera.Rotate(0, -1)
	case PitchDown:
		camera.Rotate(0, 1)
	case Quit:
		return false
	}
	return true
}

// ApplyAll applies actions in order and reports whether the viewer should keep running
// and whether the camera changed
func ApplyAll(camera *geometry.Camera, actions []Action) (running, moved bool) {
	running = true
	for _, action := range actions {
		if action == None {
			continue
		}
		if !Apply(camera, action) {
			running = false
			continue
		}
		moved = true
	}
	return running, moved
}
