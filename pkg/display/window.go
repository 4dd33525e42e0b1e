// Package display shows frames in an SDL window and turns keyboard events into
// viewer actions.
package display

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/df07/go-cube-raytracer/pkg/controls"
	"github.com/df07/go-cube-raytracer/pkg/core"
	"github.com/df07/go-cube-raytracer/pkg/renderer"
)

// Window is an SDL window whose surface receives rendered pixels. All methods must
// be called from the goroutine that created it.
type Window struct {
	window  *sdl.Window
	surface *sdl.Surface
	width   int
	height  int
}

// NewWindow initializes SDL video and opens a width x height window
func NewWindow(title string, width, height int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	surface, err := window.GetSurface()
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to get window surface: %w", err)
	}

	return &Window{window: window, surface: surface, width: width, height: height}, nil
}

// Size returns the framebuffer dimensions
func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// SetPixel writes one pixel to the window surface, implementing renderer.PixelSink
func (w *Window) SetPixel(x, y int, c core.Vec3) {
	w.surface.Set(x, y, renderer.ToRGBA(c))
}

// Present copies the surface to the screen
func (w *Window) Present() error {
	if err := w.window.UpdateSurface(); err != nil {
		return fmt.Errorf("failed to update window: %w", err)
	}
	return nil
}

// SetTitle replaces the window title
func (w *Window) SetTitle(title string) {
	w.window.SetTitle(title)
}

// PollInput drains pending events and returns the actions they map to
func (w *Window) PollInput() []controls.Action {
	var actions []controls.Action
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			actions = append(actions, controls.Quit)
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			if action := actionForKey(e.Keysym.Sym); action != controls.None {
				actions = append(actions, action)
			}
		}
	}
	return actions
}

// Close destroys the window and shuts SDL down
func (w *Window) Close() {
	w.window.Destroy()
	sdl.Quit()
}

func actionForKey(sym sdl.Keycode) controls.Action {
	switch sym {
	case sdl.K_ESCAPE:
		return controls.Quit
	case sdl.K_UP:
		return controls.MoveCloser
	case sdl.K_DOWN:
		return controls.MoveAway
	case sdl.K_a:
		return controls.YawLeft
	case sdl.K_d:
		return controls.YawRight
	case sdl.K_w:
		return controls.PitchUp
	case sdl.K_s:
		return controls.PitchDown
	}
	return controls.None
}
