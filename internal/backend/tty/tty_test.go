package tty

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/holo/internal/backend"
	"github.com/dshills/holo/internal/geometry"
	"github.com/dshills/holo/internal/input/key"
	"github.com/dshills/holo/internal/protocol"
	"github.com/dshills/holo/internal/seat"
)

func keyCodes(events []seat.Event) []string {
	var out []string
	for _, ev := range events {
		k := ev.(seat.KeyboardKeyEvent)
		s := "+"
		if k.State == key.Released {
			s = "-"
		}
		out = append(out, s+key.RawSyms(k.Code)[0].String())
	}
	return out
}

func TestKeyEvents(t *testing.T) {
	tests := []struct {
		name       string
		key        tcell.Key
		r          rune
		mod        tcell.ModMask
		altAsSuper bool
		want       string
	}{
		{"plain letter", tcell.KeyRune, 'q', tcell.ModNone, true, "+q -q"},
		{"uppercase adds shift", tcell.KeyRune, 'Q', tcell.ModNone, true, "+Shift_L +q -q -Shift_L"},
		{"alt as super", tcell.KeyRune, 'q', tcell.ModAlt, true, "+Super_L +q -q -Super_L"},
		{"alt kept", tcell.KeyRune, 'q', tcell.ModAlt, false, "+Alt_L +q -q -Alt_L"},
		{"meta is super", tcell.KeyRune, '1', tcell.ModMeta, false, "+Super_L +1 -1 -Super_L"},
		{"shifted digit", tcell.KeyRune, '!', tcell.ModAlt, true, "+Shift_L +Super_L +1 -1 -Super_L -Shift_L"},
		{"enter", tcell.KeyEnter, 0, tcell.ModAlt, true, "+Super_L +Return -Return -Super_L"},
		{"ctrl letter", tcell.KeyCtrlQ, 0, tcell.ModCtrl, true, "+Control_L +q -q -Control_L"},
		{"function key", tcell.KeyF5, 0, tcell.ModNone, true, "+F5 -F5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := tcell.NewEventKey(tt.key, tt.r, tt.mod)
			got := strings.Join(keyCodes(KeyEvents(ev, tt.altAsSuper, 7)), " ")
			if got != tt.want {
				t.Errorf("KeyEvents = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyEventsUnmapped(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone)
	if got := KeyEvents(ev, true, 0); got != nil {
		t.Errorf("KeyEvents(é) = %v, want nil", got)
	}
}

func TestMouseEvents(t *testing.T) {
	cells := Cells{Width: 10, Height: 20}
	output := geometry.Size{W: 800, H: 480}
	var m mouseState

	got := m.MouseEvents(3, 2, tcell.Button1, cells, output, 1)
	if len(got) != 2 {
		t.Fatalf("first report produced %d events, want 2: %v", len(got), got)
	}
	motion := got[0].(seat.PointerMotionAbsoluteEvent)
	if motion.X != 35.0/800 || motion.Y != 50.0/480 {
		t.Errorf("motion = (%v, %v)", motion.X, motion.Y)
	}
	press := got[1].(seat.PointerButtonEvent)
	if press.Button != protocol.BtnLeft || press.State != protocol.ButtonPressed {
		t.Errorf("button = %+v", press)
	}

	// Same cell, button still held: nothing new.
	if got := m.MouseEvents(3, 2, tcell.Button1, cells, output, 2); len(got) != 0 {
		t.Errorf("repeat report produced %v", got)
	}

	got = m.MouseEvents(3, 2, tcell.ButtonNone, cells, output, 3)
	if len(got) != 1 {
		t.Fatalf("release produced %v", got)
	}
	if rel := got[0].(seat.PointerButtonEvent); rel.State != protocol.ButtonReleased {
		t.Errorf("release = %+v", rel)
	}
}

func TestMouseWheel(t *testing.T) {
	var m mouseState
	m.valid = true
	got := m.MouseEvents(0, 0, tcell.WheelDown, Cells{Width: 8, Height: 16}, geometry.Size{W: 80, H: 160}, 0)
	if len(got) != 1 {
		t.Fatalf("wheel produced %v", got)
	}
	ax := got[0].(seat.PointerAxisEvent)
	if ax.Source != protocol.SourceWheel || !ax.HasDiscrete[protocol.Vertical] || ax.Discrete[protocol.Vertical] != 1 {
		t.Errorf("axis = %+v", ax)
	}
	if ax.HasAmount[protocol.Vertical] {
		t.Error("wheel should report only discrete steps")
	}
}

func TestCells(t *testing.T) {
	c := Cells{Width: 8, Height: 16}
	if p := c.Center(1, 1); p != (geometry.Point{X: 12, Y: 24}) {
		t.Errorf("Center = %v", p)
	}
	if x, y := c.Cell(geometry.Point{X: 15.9, Y: 16}); x != 1 || y != 1 {
		t.Errorf("Cell = %d,%d", x, y)
	}
}

func TestStatusLine(t *testing.T) {
	got := StatusLine(backend.Scene{ActiveWorkspace: 2, Workspaces: 3, Status: "spawned foot"})
	want := " 1 [2] 3  | 0 window(s) | spawned foot"
	if got != want {
		t.Errorf("StatusLine = %q, want %q", got, want)
	}
}

func newSimBackend(t *testing.T) (*Backend, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	b, err := New(nil, WithScreen(sim), WithCellSize(10, 20))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { b.Close() })
	sim.SetSize(80, 25)
	return b, sim
}

func TestRunWithSimulationScreen(t *testing.T) {
	b, sim := newSimBackend(t)

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan backend.Event, 16)
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx, events) }()

	next := func() backend.Event {
		select {
		case ev := <-events:
			return ev
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for event")
			return backend.Event{}
		}
	}

	first := next()
	if first.Output == nil || first.Output.Name != OutputName {
		t.Fatalf("first event = %v, want output", first)
	}

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	var keys []seat.Event
	for len(keys) < 2 {
		ev := next()
		if ev.Input != nil && ev.Input.Kind() == seat.KindKeyboardKey {
			keys = append(keys, ev.Input)
		}
	}
	if got := strings.Join(keyCodes(keys), " "); got != "+q -q" {
		t.Errorf("keys = %q", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRender(t *testing.T) {
	b, sim := newSimBackend(t)

	b.Render(backend.Scene{
		ActiveWorkspace: 1,
		Workspaces:      2,
		Windows: []backend.WindowView{
			{Surface: 1, Title: "term", Geometry: geometry.Rect{X: 10, Y: 20, W: 200, H: 100}},
		},
		Focus: 1,
	})

	cells, cols, rows := sim.GetContents()
	cell := func(x, y int) rune {
		c := cells[y*cols+x]
		if len(c.Runes) == 0 {
			return ' '
		}
		return c.Runes[0]
	}
	if got := cell(1, 1); got != tcell.RuneULCorner {
		t.Errorf("corner = %q", got)
	}

	var status strings.Builder
	for x := 0; x < cols; x++ {
		status.WriteRune(cell(x, rows-1))
	}
	if !strings.HasPrefix(status.String(), "[1] 2  | 1 window(s)") {
		t.Errorf("status = %q", status.String())
	}
}
