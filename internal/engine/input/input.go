// Package input polls SDL2 events and keyboard state for the frame loop.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/orrery/internal/engine/camera"
)

// Bindings maps actions to scancodes.
type Bindings struct {
	RotateLeft  sdl.Scancode
	RotateRight sdl.Scancode
	RotateUp    sdl.Scancode
	RotateDown  sdl.Scancode
	ZoomIn      sdl.Scancode
	ZoomOut     sdl.Scancode
	Pause       sdl.Scancode
	Screenshot  sdl.Scancode
	Quit        sdl.Scancode
}

// DefaultBindings: arrows rotate, W/S zoom, P pauses, F12 captures, Esc quits.
func DefaultBindings() Bindings {
	return Bindings{
		RotateLeft:  sdl.SCANCODE_LEFT,
		RotateRight: sdl.SCANCODE_RIGHT,
		RotateUp:    sdl.SCANCODE_UP,
		RotateDown:  sdl.SCANCODE_DOWN,
		ZoomIn:      sdl.SCANCODE_W,
		ZoomOut:     sdl.SCANCODE_S,
		Pause:       sdl.SCANCODE_P,
		Screenshot:  sdl.SCANCODE_F12,
		Quit:        sdl.SCANCODE_ESCAPE,
	}
}

// FrameInput is everything the frame loop needs from one poll.
// The Pressed fields are raw held state; edge detection belongs to the caller.
type FrameInput struct {
	Camera            camera.Input
	PausePressed      bool
	ScreenshotPressed bool
	Quit              bool

	// Resized is set when the window size changed this frame. The new
	// drawable size comes from the window, which accounts for HiDPI scaling.
	Resized bool
}

// Input handles all input processing.
type Input struct {
	bindings Bindings
}

// New creates a new input handler.
func New(b Bindings) *Input {
	return &Input{bindings: b}
}

// Poll drains SDL events and samples the keyboard.
func (i *Input) Poll() FrameInput {
	var f FrameInput

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			f.Quit = true
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				f.Resized = true
			}
		}
	}

	keys := sdl.GetKeyboardState()
	down := func(sc sdl.Scancode) bool {
		return int(sc) < len(keys) && keys[sc] != 0
	}

	b := i.bindings
	f.Camera = camera.Input{
		Left:    down(b.RotateLeft),
		Right:   down(b.RotateRight),
		Up:      down(b.RotateUp),
		Down:    down(b.RotateDown),
		ZoomIn:  down(b.ZoomIn),
		ZoomOut: down(b.ZoomOut),
	}
	f.PausePressed = down(b.Pause)
	f.ScreenshotPressed = down(b.Screenshot)
	if down(b.Quit) {
		f.Quit = true
	}

	return f
}
