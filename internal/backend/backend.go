// Package backend defines the sources of raw input and outputs that drive
// the compositor, and provides a scripted backend that reads no devices.
//
// A backend owns the protocol handles of its seat. Its Run method reads
// devices on its own goroutine and hands events to the event loop over a
// channel; the loop processes them one at a time.
package backend

import (
	"context"
	"fmt"

	"github.com/dshills/holo/internal/geometry"
	"github.com/dshills/holo/internal/protocol"
	"github.com/dshills/holo/internal/seat"
)

// Backend supplies input events and output changes.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Keyboard and Pointer return the seat's protocol handles.
	Keyboard() protocol.Keyboard
	Pointer() protocol.Pointer

	// Toplevel returns the close handle of a client surface.
	Toplevel(surface protocol.SurfaceID) protocol.Toplevel

	// Run sends events until ctx is done or the backend has no more input.
	// It never sends after returning.
	Run(ctx context.Context, events chan<- Event) error

	// Close releases backend resources.
	Close() error
}

// Renderer is implemented by backends that draw the compositor state.
type Renderer interface {
	Render(scene Scene)
}

// Event is either an input event or an output change.
type Event struct {
	Input  seat.Event
	Output *OutputChange
}

// InputEvent wraps a raw input event.
func InputEvent(ev seat.Event) Event {
	return Event{Input: ev}
}

// OutputEvent wraps an output change.
func OutputEvent(c OutputChange) Event {
	return Event{Output: &c}
}

// String returns a short description for logs.
func (e Event) String() string {
	switch {
	case e.Output != nil:
		return e.Output.String()
	case e.Input != nil:
		return e.Input.Kind().String()
	default:
		return "empty"
	}
}

// OutputChange adds, resizes or removes an output.
type OutputChange struct {
	Name     string
	Geometry geometry.Rect
	Removed  bool
}

func (c OutputChange) String() string {
	if c.Removed {
		return fmt.Sprintf("output %s removed", c.Name)
	}
	return fmt.Sprintf("output %s %s", c.Name, c.Geometry)
}

// Scene is the compositor state a Renderer draws.
type Scene struct {
	ActiveWorkspace int
	Workspaces      int
	Outputs         []geometry.Rect
	Windows         []WindowView
	Pointer         geometry.Point
	Focus           protocol.SurfaceID
	Status          string
}

// WindowView is a mapped window on the active workspace.
type WindowView struct {
	Surface  protocol.SurfaceID
	Title    string
	Geometry geometry.Rect
}
