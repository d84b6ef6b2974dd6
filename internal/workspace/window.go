package workspace

import (
	"fmt"

	"github.com/dshills/holo/internal/geometry"
	"github.com/dshills/holo/internal/protocol"
)

// Window is a mapped toplevel identified by its root surface.
type Window struct {
	surface  protocol.SurfaceID
	title    string
	toplevel protocol.Toplevel
	geometry geometry.Rect
}

// NewWindow creates an unplaced window. toplevel may be nil for windows
// that cannot be asked to close.
func NewWindow(surface protocol.SurfaceID, title string, toplevel protocol.Toplevel) *Window {
	return &Window{
		surface:  surface,
		title:    title,
		toplevel: toplevel,
	}
}

// Surface returns the window's root surface.
func (w *Window) Surface() protocol.SurfaceID {
	return w.surface
}

// Title returns the window title.
func (w *Window) Title() string {
	return w.title
}

// Geometry returns the window's rectangle in global coordinates.
func (w *Window) Geometry() geometry.Rect {
	return w.geometry
}

// SendClose asks the client to close the window.
func (w *Window) SendClose() {
	if w.toplevel != nil {
		w.toplevel.SendClose()
	}
}

// String returns the title and surface.
func (w *Window) String() string {
	return fmt.Sprintf("%q#%d", w.title, w.surface)
}

// Output is a display region in global coordinates.
type Output struct {
	Name     string
	Geometry geometry.Rect
}
