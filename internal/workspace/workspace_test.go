package workspace

import (
	"errors"
	"testing"

	"github.com/dshills/holo/internal/geometry"
	"github.com/dshills/holo/internal/protocol"
)

type closeRecorder struct {
	closed int
}

func (c *closeRecorder) SendClose() { c.closed++ }

func newTestSet(t *testing.T) *Set {
	t.Helper()
	s, err := NewSet(3, 10)
	if err != nil {
		t.Fatalf("NewSet error = %v", err)
	}
	if err := s.AddOutput(Output{Name: "A", Geometry: geometry.Rect{W: 1920, H: 1080}}); err != nil {
		t.Fatalf("AddOutput error = %v", err)
	}
	return s
}

func TestNewSet(t *testing.T) {
	if _, err := NewSet(0, 0); !errors.Is(err, ErrNoWorkspaces) {
		t.Errorf("NewSet(0) error = %v, want ErrNoWorkspaces", err)
	}

	s, err := NewSet(4, -5)
	if err != nil {
		t.Fatal(err)
	}
	if s.Count() != 4 || s.ActiveID() != 1 || s.Gaps() != 0 {
		t.Errorf("Count=%d ActiveID=%d Gaps=%d", s.Count(), s.ActiveID(), s.Gaps())
	}
}

func TestActivate(t *testing.T) {
	s := newTestSet(t)

	if err := s.Activate(2); err != nil {
		t.Fatalf("Activate(2) error = %v", err)
	}
	if err := s.Activate(2); err != nil {
		t.Fatalf("second Activate(2) error = %v", err)
	}
	if s.ActiveID() != 2 || s.Current().ID() != 2 {
		t.Errorf("ActiveID = %d, want 2", s.ActiveID())
	}

	for _, id := range []int{0, 4, -1} {
		if err := s.Activate(id); !errors.Is(err, ErrInvalidWorkspace) {
			t.Errorf("Activate(%d) error = %v, want ErrInvalidWorkspace", id, err)
		}
	}
	if s.ActiveID() != 2 {
		t.Errorf("failed Activate changed current to %d", s.ActiveID())
	}
}

func TestMapTiles(t *testing.T) {
	s := newTestSet(t)
	a := NewWindow(1, "a", nil)
	b := NewWindow(2, "b", nil)
	s.Map(a)

	want := geometry.Rect{X: 10, Y: 10, W: 1900, H: 1060}
	if a.Geometry() != want {
		t.Errorf("single window = %v, want %v", a.Geometry(), want)
	}

	s.Map(b)
	// (1920 - 30) / 2 = 945
	if a.Geometry() != (geometry.Rect{X: 10, Y: 10, W: 945, H: 1060}) {
		t.Errorf("left = %v", a.Geometry())
	}
	if b.Geometry() != (geometry.Rect{X: 965, Y: 10, W: 945, H: 1060}) {
		t.Errorf("right = %v", b.Geometry())
	}
}

func TestWindowUnder(t *testing.T) {
	s := newTestSet(t)
	a := NewWindow(1, "a", nil)
	b := NewWindow(2, "b", nil)
	s.Map(a)
	s.Map(b)

	w, origin, ok := s.WindowUnder(geometry.Point{X: 1000, Y: 500})
	if !ok || w != b {
		t.Fatalf("WindowUnder = %v, %v; want b", w, ok)
	}
	if origin != (geometry.Point{X: 965, Y: 10}) {
		t.Errorf("origin = %v", origin)
	}

	if _, _, ok := s.WindowUnder(geometry.Point{X: 5, Y: 5}); ok {
		t.Error("gap should have no window")
	}

	s.Activate(2)
	if _, _, ok := s.WindowUnder(geometry.Point{X: 1000, Y: 500}); ok {
		t.Error("windows on other workspaces should not be found")
	}
}

func TestWindowUnderTopmostFirst(t *testing.T) {
	s, _ := NewSet(1, 0)
	a := NewWindow(1, "a", nil)
	b := NewWindow(2, "b", nil)
	s.Map(a)
	s.Map(b)
	// No outputs: place the windows by hand so they overlap.
	a.geometry = geometry.Rect{W: 100, H: 100}
	b.geometry = geometry.Rect{X: 50, Y: 50, W: 100, H: 100}

	w, _, ok := s.WindowUnder(geometry.Point{X: 75, Y: 75})
	if !ok || w != b {
		t.Errorf("WindowUnder overlap = %v, want b", w)
	}
}

func TestMoveWindowToWorkspace(t *testing.T) {
	s := newTestSet(t)
	a := NewWindow(1, "a", nil)
	b := NewWindow(2, "b", nil)
	s.Map(a)
	s.Map(b)

	if err := s.MoveWindowToWorkspace(b, 3, 20); err != nil {
		t.Fatalf("MoveWindowToWorkspace error = %v", err)
	}

	if got := s.Current().Windows(); len(got) != 1 || got[0] != a {
		t.Errorf("source windows = %v, want [a]", got)
	}
	if a.Geometry() != (geometry.Rect{X: 20, Y: 20, W: 1880, H: 1040}) {
		t.Errorf("source reflow = %v", a.Geometry())
	}

	dst, _ := s.Workspace(3)
	if got := dst.Windows(); len(got) != 1 || got[0] != b {
		t.Errorf("destination windows = %v, want [b]", got)
	}
	if b.Geometry() != (geometry.Rect{X: 20, Y: 20, W: 1880, H: 1040}) {
		t.Errorf("destination reflow = %v", b.Geometry())
	}

	if _, id, ok := s.Find(2); !ok || id != 3 {
		t.Errorf("Find(2) = %d, %v; want workspace 3", id, ok)
	}
}

func TestMoveWindowErrors(t *testing.T) {
	s := newTestSet(t)
	a := NewWindow(1, "a", nil)

	if err := s.MoveWindowToWorkspace(a, 2, 0); !errors.Is(err, ErrUnknownWindow) {
		t.Errorf("unmapped window error = %v", err)
	}

	s.Map(a)
	if err := s.MoveWindowToWorkspace(a, 9, 0); !errors.Is(err, ErrInvalidWorkspace) {
		t.Errorf("bad id error = %v", err)
	}
	if err := s.MoveWindowToWorkspace(a, 1, 0); err != nil {
		t.Errorf("same workspace error = %v", err)
	}
	if s.Current().Len() != 1 {
		t.Error("move to same workspace should keep the window")
	}
}

func TestUnmap(t *testing.T) {
	s := newTestSet(t)
	a := NewWindow(1, "a", nil)
	b := NewWindow(2, "b", nil)
	s.Map(a)
	s.Map(b)

	if !s.Unmap(a) {
		t.Fatal("Unmap(a) = false")
	}
	if s.Unmap(a) {
		t.Error("second Unmap(a) = true")
	}
	if b.Geometry().X != 10 || b.Geometry().W != 1900 {
		t.Errorf("remaining window not re-tiled: %v", b.Geometry())
	}
}

func TestOutputs(t *testing.T) {
	s := newTestSet(t)

	if err := s.AddOutput(Output{Name: "A"}); !errors.Is(err, ErrDuplicateOutput) {
		t.Errorf("duplicate AddOutput error = %v", err)
	}

	s.SetOutputGeometry("B", geometry.Rect{X: 1920, W: 1280, H: 1024})
	rects := s.OutputGeometries()
	if len(rects) != 2 || rects[1].W != 1280 {
		t.Fatalf("OutputGeometries = %v", rects)
	}

	a := NewWindow(1, "a", nil)
	s.Map(a)
	s.SetOutputGeometry("A", geometry.Rect{W: 800, H: 600})
	if a.Geometry() != (geometry.Rect{X: 10, Y: 10, W: 780, H: 580}) {
		t.Errorf("resize did not re-tile: %v", a.Geometry())
	}

	if r, ok := s.OutputGeometry("B"); !ok || r.X != 1920 {
		t.Errorf("OutputGeometry(B) = %v, %v", r, ok)
	}
	if !s.RemoveOutput("B") || s.RemoveOutput("B") {
		t.Error("RemoveOutput should succeed once")
	}
	if len(s.Outputs()) != 1 {
		t.Errorf("Outputs = %v", s.Outputs())
	}
}

func TestWindowSendClose(t *testing.T) {
	rec := &closeRecorder{}
	w := NewWindow(protocol.SurfaceID(5), "term", rec)
	w.SendClose()
	if rec.closed != 1 {
		t.Errorf("closed = %d, want 1", rec.closed)
	}

	NewWindow(6, "bare", nil).SendClose()
	if w.Surface() != 5 || w.Title() != "term" {
		t.Errorf("Surface/Title = %d/%q", w.Surface(), w.Title())
	}
}
