// Package input translates SDL2 events into per-frame viewer commands.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Frame aggregates all input for a single frame.
// Movement axes are in [-1, 1]; look deltas are in degrees.
type Frame struct {
	Forward float32 // W / S
	Right   float32 // D / A
	Up      float32 // Space / Left Ctrl
	Yaw     float32
	Pitch   float32

	Quit       bool
	Screenshot bool

	Resized bool
	Width   int
	Height  int
}

// Handler polls SDL events and tracks held keys between frames.
type Handler struct {
	sensitivity float32
	held        map[sdl.Scancode]bool
}

// New creates an input handler. sensitivity scales mouse deltas
// into degrees of camera rotation per pixel.
func New(sensitivity float32) *Handler {
	return &Handler{
		sensitivity: sensitivity,
		held:        make(map[sdl.Scancode]bool),
	}
}

// Poll drains the SDL event queue and returns the aggregated frame input.
func (h *Handler) Poll() Frame {
	var f Frame

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			f.Quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				f.Resized = true
				f.Width = int(e.Data1)
				f.Height = int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				h.held[e.Keysym.Scancode] = true
				switch e.Keysym.Scancode {
				case sdl.SCANCODE_ESCAPE:
					f.Quit = true
				case sdl.SCANCODE_F12:
					f.Screenshot = true
				}
			} else if e.Type == sdl.KEYUP {
				delete(h.held, e.Keysym.Scancode)
			}

		case *sdl.MouseMotionEvent:
			// Relative mode: XRel/YRel are deltas since the last event.
			// Moving the mouse up (negative YRel) pitches the camera up.
			f.Yaw += float32(e.XRel) * h.sensitivity
			f.Pitch -= float32(e.YRel) * h.sensitivity
		}
	}

	f.Forward = h.axis(sdl.SCANCODE_W, sdl.SCANCODE_S)
	f.Right = h.axis(sdl.SCANCODE_D, sdl.SCANCODE_A)
	f.Up = h.axis(sdl.SCANCODE_SPACE, sdl.SCANCODE_LCTRL)

	return f
}

// IsHeld reports whether a key is currently held down.
func (h *Handler) IsHeld(scancode sdl.Scancode) bool {
	return h.held[scancode]
}

func (h *Handler) axis(pos, neg sdl.Scancode) float32 {
	var v float32
	if h.held[pos] {
		v++
	}
	if h.held[neg] {
		v--
	}
	return v
}
