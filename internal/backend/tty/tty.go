// Package tty implements a nested backend inside a terminal using tcell.
//
// The terminal is one output whose pixel size is the cell grid times the
// configured cell size, minus the bottom row, which holds a status line.
// Key reports are expanded into press and release sequences, mouse reports
// into absolute motion, button transitions and wheel scrolls. Windows are
// drawn as outlined boxes.
package tty

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/holo/internal/backend"
	"github.com/dshills/holo/internal/geometry"
	"github.com/dshills/holo/internal/protocol"
)

// OutputName is the name of the terminal output.
const OutputName = "TTY-1"

// Backend is a terminal backend.
type Backend struct {
	mu sync.Mutex

	screen  tcell.Screen
	journal *protocol.Journal
	logger  *slog.Logger

	cells      Cells
	altAsSuper bool
	output     geometry.Size
	mouse      mouseState
	start      time.Time

	closed bool
}

// Option configures a Backend.
type Option func(*Backend)

// WithCellSize sets the pixel size of one cell.
func WithCellSize(w, h int) Option {
	return func(b *Backend) {
		if w > 0 && h > 0 {
			b.cells = Cells{Width: w, Height: h}
		}
	}
}

// WithAltAsSuper controls whether Alt is reported as Super. It is on by
// default.
func WithAltAsSuper(on bool) Option {
	return func(b *Backend) {
		b.altAsSuper = on
	}
}

// WithScreen uses screen instead of the controlling terminal.
func WithScreen(screen tcell.Screen) Option {
	return func(b *Backend) {
		b.screen = screen
	}
}

// New initializes the terminal. A nil logger discards output.
func New(logger *slog.Logger, opts ...Option) (*Backend, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &Backend{
		logger:     logger,
		cells:      Cells{Width: 8, Height: 16},
		altAsSuper: true,
		start:      time.Now(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("tty: %w", err)
		}
		b.screen = screen
	}
	if err := b.screen.Init(); err != nil {
		return nil, fmt.Errorf("tty: %w", err)
	}
	b.screen.EnableMouse()
	b.screen.HideCursor()

	b.journal = protocol.NewJournal(logger)
	b.output = b.outputSize(b.screen.Size())
	return b, nil
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return "tty" }

// Keyboard implements backend.Backend.
func (b *Backend) Keyboard() protocol.Keyboard { return b.journal }

// Pointer implements backend.Backend.
func (b *Backend) Pointer() protocol.Pointer { return b.journal.Pointer() }

// Toplevel implements backend.Backend.
func (b *Backend) Toplevel(surface protocol.SurfaceID) protocol.Toplevel {
	return b.journal.Toplevel(surface)
}

// Journal returns the journal receiving deliveries.
func (b *Backend) Journal() *protocol.Journal {
	return b.journal
}

// outputSize returns the output size for a cols x rows terminal. The last
// row is reserved for the status line.
func (b *Backend) outputSize(cols, rows int) geometry.Size {
	rows = max(rows-1, 1)
	return geometry.Size{W: max(cols, 1) * b.cells.Width, H: rows * b.cells.Height}
}

func (b *Backend) now() uint32 {
	return uint32(time.Since(b.start).Milliseconds())
}

// Run polls terminal events until ctx is done or the screen is finalized.
func (b *Backend) Run(ctx context.Context, events chan<- backend.Event) error {
	stop := context.AfterFunc(ctx, func() {
		_ = b.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	send := func(ev backend.Event) bool {
		select {
		case <-ctx.Done():
			return false
		case events <- ev:
			return true
		}
	}

	b.mu.Lock()
	initial := backend.OutputChange{Name: OutputName, Geometry: geometry.Rect{W: b.output.W, H: b.output.H}}
	b.mu.Unlock()
	if !send(backend.OutputEvent(initial)) {
		return nil
	}

	for {
		ev := b.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}
		for _, out := range b.convert(ev) {
			if !send(out) {
				return nil
			}
		}
	}
}

// convert turns one terminal event into backend events.
func (b *Backend) convert(ev tcell.Event) []backend.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch e := ev.(type) {
	case *tcell.EventKey:
		var out []backend.Event
		for _, in := range KeyEvents(e, b.altAsSuper, b.now()) {
			out = append(out, backend.InputEvent(in))
		}
		if out == nil {
			b.logger.Debug("unmapped key", "key", e.Name())
		}
		return out

	case *tcell.EventMouse:
		x, y := e.Position()
		var out []backend.Event
		for _, in := range b.mouse.MouseEvents(x, y, e.Buttons(), b.cells, b.output, b.now()) {
			out = append(out, backend.InputEvent(in))
		}
		return out

	case *tcell.EventResize:
		b.output = b.outputSize(e.Size())
		b.screen.Sync()
		return []backend.Event{backend.OutputEvent(backend.OutputChange{
			Name:     OutputName,
			Geometry: geometry.Rect{W: b.output.W, H: b.output.H},
		})}

	default:
		return nil
	}
}

var (
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFocused = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStatus  = tcell.StyleDefault.Reverse(true)
)

// Render draws the scene.
func (b *Backend) Render(scene backend.Scene) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	b.screen.Clear()
	for _, w := range scene.Windows {
		style := styleBorder
		if w.Surface == scene.Focus {
			style = styleFocused
		}
		b.drawWindow(w, style)
	}

	cols, rows := b.screen.Size()
	drawText(b.screen, 0, rows-1, cols, StatusLine(scene), styleStatus)
	b.screen.Show()
}

func (b *Backend) drawWindow(w backend.WindowView, style tcell.Style) {
	x0, y0 := b.cells.Cell(w.Geometry.Origin())
	x1, y1 := b.cells.Cell(geometry.Point{X: float64(w.Geometry.Right() - 1), Y: float64(w.Geometry.Bottom() - 1)})
	if x1 <= x0 || y1 <= y0 {
		return
	}

	for x := x0 + 1; x < x1; x++ {
		b.screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
		b.screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		b.screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
		b.screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	b.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	b.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	b.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	b.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)

	title := fmt.Sprintf(" %s ", w.Title)
	drawText(b.screen, x0+2, y0, x1-x0-3, title, style)
}

func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	i := 0
	for _, r := range text {
		if i >= width {
			return
		}
		s.SetContent(x+i, y, r, nil, style)
		i++
	}
}

// StatusLine formats the status row: workspace indicators followed by the
// scene status text.
func StatusLine(scene backend.Scene) string {
	var sb strings.Builder
	for i := 1; i <= scene.Workspaces; i++ {
		if i == scene.ActiveWorkspace {
			fmt.Fprintf(&sb, "[%d]", i)
		} else {
			fmt.Fprintf(&sb, " %d ", i)
		}
	}
	fmt.Fprintf(&sb, " | %d window(s)", len(scene.Windows))
	if scene.Status != "" {
		sb.WriteString(" | ")
		sb.WriteString(scene.Status)
	}
	return sb.String()
}

// Close restores the terminal.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	b.screen.Fini()
	return nil
}
