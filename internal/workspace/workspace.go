// Package workspace is the reference window and workspace model.
//
// A Set holds a fixed number of workspaces that share one list of outputs.
// Exactly one workspace is current. Windows on a workspace are tiled in
// equal-width columns across the first output, separated by a gap.
//
// The model is not safe for concurrent use; it is owned by the compositor's
// event loop.
package workspace

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dshills/holo/internal/geometry"
	"github.com/dshills/holo/internal/protocol"
)

// Errors returned by the workspace model.
var (
	// ErrInvalidWorkspace indicates a workspace id outside [1, count].
	ErrInvalidWorkspace = errors.New("workspace: invalid workspace id")

	// ErrUnknownWindow indicates the window is not mapped on any workspace.
	ErrUnknownWindow = errors.New("workspace: window not mapped")

	// ErrNoWorkspaces indicates a set was requested with no workspaces.
	ErrNoWorkspaces = errors.New("workspace: count must be positive")

	// ErrDuplicateOutput indicates an output name is already in use.
	ErrDuplicateOutput = errors.New("workspace: duplicate output")
)

// Workspace is an ordered stack of windows. The last window is on top.
type Workspace struct {
	id      int
	windows []*Window
}

// ID returns the 1-based workspace id.
func (ws *Workspace) ID() int {
	return ws.id
}

// Windows returns the windows bottom to top.
func (ws *Workspace) Windows() []*Window {
	return slices.Clone(ws.windows)
}

// Len returns the number of windows.
func (ws *Workspace) Len() int {
	return len(ws.windows)
}

func (ws *Workspace) remove(w *Window) bool {
	i := slices.Index(ws.windows, w)
	if i < 0 {
		return false
	}
	ws.windows = slices.Delete(ws.windows, i, i+1)
	return true
}

// Set is a fixed collection of workspaces sharing a list of outputs.
type Set struct {
	workspaces []*Workspace
	current    int
	outputs    []Output
	gaps       int
}

// NewSet creates count workspaces with workspace 1 current.
func NewSet(count, gaps int) (*Set, error) {
	if count < 1 {
		return nil, ErrNoWorkspaces
	}
	s := &Set{
		workspaces: make([]*Workspace, count),
		gaps:       max(gaps, 0),
	}
	for i := range s.workspaces {
		s.workspaces[i] = &Workspace{id: i + 1}
	}
	return s, nil
}

// Count returns the number of workspaces.
func (s *Set) Count() int {
	return len(s.workspaces)
}

// Current returns the current workspace.
func (s *Set) Current() *Workspace {
	return s.workspaces[s.current]
}

// ActiveID returns the id of the current workspace.
func (s *Set) ActiveID() int {
	return s.current + 1
}

// Workspace returns the workspace with the given id.
func (s *Set) Workspace(id int) (*Workspace, error) {
	if id < 1 || id > len(s.workspaces) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkspace, id)
	}
	return s.workspaces[id-1], nil
}

// Activate makes workspace id current. Activating the current workspace
// changes nothing.
func (s *Set) Activate(id int) error {
	if _, err := s.Workspace(id); err != nil {
		return err
	}
	s.current = id - 1
	return nil
}

// Gaps returns the layout gap used when mapping windows.
func (s *Set) Gaps() int {
	return s.gaps
}

// SetGaps changes the layout gap and re-tiles every workspace.
func (s *Set) SetGaps(gaps int) {
	s.gaps = max(gaps, 0)
	s.relayout()
}

// Map places w on top of the current workspace.
func (s *Set) Map(w *Window) {
	ws := s.Current()
	ws.windows = append(ws.windows, w)
	s.tile(ws, s.gaps)
}

// Unmap removes w from whichever workspace holds it.
func (s *Set) Unmap(w *Window) bool {
	for _, ws := range s.workspaces {
		if ws.remove(w) {
			s.tile(ws, s.gaps)
			return true
		}
	}
	return false
}

// Find returns the window with the given surface and its workspace id.
func (s *Set) Find(surface protocol.SurfaceID) (*Window, int, bool) {
	for _, ws := range s.workspaces {
		for _, w := range ws.windows {
			if w.surface == surface {
				return w, ws.id, true
			}
		}
	}
	return nil, 0, false
}

// MoveWindowToWorkspace moves w onto workspace id and re-tiles both the
// source and destination with the given gap. Moving a window to the
// workspace it is already on changes nothing.
func (s *Set) MoveWindowToWorkspace(w *Window, id, gaps int) error {
	dst, err := s.Workspace(id)
	if err != nil {
		return err
	}

	var src *Workspace
	for _, ws := range s.workspaces {
		if slices.Contains(ws.windows, w) {
			src = ws
			break
		}
	}
	if src == nil {
		return ErrUnknownWindow
	}
	if src == dst {
		return nil
	}

	src.remove(w)
	dst.windows = append(dst.windows, w)
	s.tile(src, gaps)
	s.tile(dst, gaps)
	return nil
}

// WindowUnder returns the topmost window of the current workspace whose
// rectangle contains p, together with the window's origin.
func (s *Set) WindowUnder(p geometry.Point) (*Window, geometry.Point, bool) {
	ws := s.Current()
	for i := len(ws.windows) - 1; i >= 0; i-- {
		w := ws.windows[i]
		if w.geometry.Contains(p) {
			return w, w.geometry.Origin(), true
		}
	}
	return nil, geometry.Point{}, false
}

// AddOutput appends an output and re-tiles.
func (s *Set) AddOutput(o Output) error {
	if _, ok := s.OutputGeometry(o.Name); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateOutput, o.Name)
	}
	s.outputs = append(s.outputs, o)
	s.relayout()
	return nil
}

// RemoveOutput removes the named output and re-tiles.
func (s *Set) RemoveOutput(name string) bool {
	i := slices.IndexFunc(s.outputs, func(o Output) bool { return o.Name == name })
	if i < 0 {
		return false
	}
	s.outputs = slices.Delete(s.outputs, i, i+1)
	s.relayout()
	return true
}

// SetOutputGeometry updates the named output, adding it if needed.
func (s *Set) SetOutputGeometry(name string, r geometry.Rect) {
	for i := range s.outputs {
		if s.outputs[i].Name == name {
			s.outputs[i].Geometry = r
			s.relayout()
			return
		}
	}
	s.outputs = append(s.outputs, Output{Name: name, Geometry: r})
	s.relayout()
}

// Outputs returns the outputs in order.
func (s *Set) Outputs() []Output {
	return slices.Clone(s.outputs)
}

// OutputGeometry returns the rectangle of the named output.
func (s *Set) OutputGeometry(name string) (geometry.Rect, bool) {
	for _, o := range s.outputs {
		if o.Name == name {
			return o.Geometry, true
		}
	}
	return geometry.Rect{}, false
}

// OutputGeometries returns the output rectangles in order.
func (s *Set) OutputGeometries() []geometry.Rect {
	rects := make([]geometry.Rect, len(s.outputs))
	for i, o := range s.outputs {
		rects[i] = o.Geometry
	}
	return rects
}

func (s *Set) relayout() {
	for _, ws := range s.workspaces {
		s.tile(ws, s.gaps)
	}
}

// tile lays the workspace's windows out in equal columns on the first
// output. Without outputs window geometry is left alone.
func (s *Set) tile(ws *Workspace, gaps int) {
	n := len(ws.windows)
	if n == 0 || len(s.outputs) == 0 {
		return
	}
	area := s.outputs[0].Geometry

	width := max((area.W-gaps*(n+1))/n, 1)
	height := max(area.H-2*gaps, 1)
	for i, w := range ws.windows {
		w.geometry = geometry.Rect{
			X: area.X + gaps + i*(width+gaps),
			Y: area.Y + gaps,
			W: width,
			H: height,
		}
	}
}
