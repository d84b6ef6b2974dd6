// Package protocol defines the client-facing side of the seat: the keyboard
// and pointer handles the input router delivers events through, and the
// event values it delivers.
//
// The router depends only on the Keyboard and Pointer interfaces. Backends
// supply implementations; Journal is the in-process implementation used by
// the terminal and headless backends and by tests.
package protocol

import (
	"github.com/dshills/holo/internal/geometry"
	"github.com/dshills/holo/internal/input/key"
)

// SurfaceID identifies a client surface.
type SurfaceID uint64

// NoSurface is the zero SurfaceID: nothing has focus.
const NoSurface SurfaceID = 0

// Target is a surface together with the global position of its origin.
type Target struct {
	Surface SurfaceID
	Origin  geometry.Point
}

// Keyboard is the seat's keyboard handle.
type Keyboard interface {
	// Update applies a key transition to the keyboard state and returns the
	// resulting modifier state and the key's raw symbols.
	Update(code key.Keycode, state key.State) (key.Modifier, []key.Sym)

	// Forward delivers a key transition unmodified to the focused surface.
	Forward(code key.Keycode, state key.State, serial Serial, time uint32)

	// SetFocus moves keyboard focus to surface.
	SetFocus(surface SurfaceID, serial Serial)

	// Focus returns the surface holding keyboard focus.
	Focus() SurfaceID
}

// Pointer is the seat's pointer handle.
type Pointer interface {
	// Motion updates pointer focus to under (nil for no surface) and
	// delivers the motion to it.
	Motion(under *Target, ev MotionEvent)

	// Button delivers a button transition to the pointer focus.
	Button(ev ButtonEvent)

	// Axis delivers a scroll frame to the pointer focus.
	Axis(frame AxisFrame)

	// Focus returns the surface holding pointer focus.
	Focus() SurfaceID
}

// Toplevel is the shell role of a window's root surface.
type Toplevel interface {
	// SendClose asks the client to close the window. The client may ignore it.
	SendClose()
}
