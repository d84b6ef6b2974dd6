package tty

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/holo/internal/geometry"
	"github.com/dshills/holo/internal/input/key"
	"github.com/dshills/holo/internal/protocol"
	"github.com/dshills/holo/internal/seat"
)

// modifierKeys lists the keycodes pressed to synthesize each modifier, in
// press order.
var modifierKeys = []struct {
	mod  key.Modifier
	code key.Keycode
}{
	{key.ModShift, key.CodeLeftShift},
	{key.ModCtrl, key.CodeLeftCtrl},
	{key.ModAlt, key.CodeLeftAlt},
	{key.ModSuper, key.CodeLeftMeta},
}

var namedKeys = map[tcell.Key]key.Sym{
	tcell.KeyEnter:      key.SymReturn,
	tcell.KeyTab:        key.SymTab,
	tcell.KeyBackspace:  key.SymBackSpace,
	tcell.KeyBackspace2: key.SymBackSpace,
	tcell.KeyEscape:     key.SymEscape,
	tcell.KeyDelete:     key.SymDelete,
	tcell.KeyInsert:     key.SymInsert,
	tcell.KeyHome:       key.SymHome,
	tcell.KeyEnd:        key.SymEnd,
	tcell.KeyPgUp:       key.SymPageUp,
	tcell.KeyPgDn:       key.SymPageDown,
	tcell.KeyUp:         key.SymUp,
	tcell.KeyDown:       key.SymDown,
	tcell.KeyLeft:       key.SymLeft,
	tcell.KeyRight:      key.SymRight,
}

// convertMods maps terminal modifiers to seat modifiers. Meta is reported
// as Super; with altAsSuper Alt is too, since most terminals cannot see the
// Super key.
func convertMods(m tcell.ModMask, altAsSuper bool) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		if altAsSuper {
			mods = mods.With(key.ModSuper)
		} else {
			mods = mods.With(key.ModAlt)
		}
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModSuper)
	}
	return mods
}

// keySym resolves the symbol of a terminal key. Control letters are
// reported by the terminal as their own keys and carry Ctrl implicitly.
func keySym(k tcell.Key, r rune) (key.Sym, key.Modifier, bool) {
	if s, ok := namedKeys[k]; ok {
		return s, 0, true
	}
	switch {
	case k == tcell.KeyRune:
		s, ok := key.SymFromRune(r)
		return s, 0, ok
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		return key.SymF1 + key.Sym(k-tcell.KeyF1), 0, true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.Sym('a' + rune(k-tcell.KeyCtrlA)), key.ModCtrl, true
	}
	return key.SymNone, 0, false
}

// KeyEvents converts a terminal key event into raw keyboard events.
//
// Terminals report a key once, with no release, so the full sequence is
// synthesized: modifier presses, key press, key release, modifier releases
// in reverse. A shifted symbol such as "Q" or "!" adds Shift. Keys outside
// the built-in layout produce nothing.
func KeyEvents(ev *tcell.EventKey, altAsSuper bool, time uint32) []seat.Event {
	sym, extra, ok := keySym(ev.Key(), ev.Rune())
	if !ok {
		return nil
	}
	mods := convertMods(ev.Modifiers(), altAsSuper).With(extra)

	code, shifted, ok := key.CodeForSym(sym)
	if !ok {
		return nil
	}
	if shifted {
		mods = mods.With(key.ModShift)
	}
	return keySequence(mods, code, time)
}

func keySequence(mods key.Modifier, code key.Keycode, time uint32) []seat.Event {
	var pressed []key.Keycode
	for _, mk := range modifierKeys {
		if mods.Has(mk.mod) {
			pressed = append(pressed, mk.code)
		}
	}

	out := make([]seat.Event, 0, 2*len(pressed)+2)
	for _, c := range pressed {
		out = append(out, seat.KeyboardKeyEvent{Code: c, State: key.Pressed, Time: time})
	}
	out = append(out,
		seat.KeyboardKeyEvent{Code: code, State: key.Pressed, Time: time},
		seat.KeyboardKeyEvent{Code: code, State: key.Released, Time: time},
	)
	for i := len(pressed) - 1; i >= 0; i-- {
		out = append(out, seat.KeyboardKeyEvent{Code: pressed[i], State: key.Released, Time: time})
	}
	return out
}

// buttonCodes maps terminal mouse buttons to evdev button codes.
var buttonCodes = []struct {
	mask tcell.ButtonMask
	code uint32
}{
	{tcell.Button1, protocol.BtnLeft},
	{tcell.Button2, protocol.BtnRight},
	{tcell.Button3, protocol.BtnMiddle},
}

var wheelSteps = []struct {
	mask  tcell.ButtonMask
	axis  protocol.Axis
	steps float64
}{
	{tcell.WheelUp, protocol.Vertical, -1},
	{tcell.WheelDown, protocol.Vertical, 1},
	{tcell.WheelLeft, protocol.Horizontal, -1},
	{tcell.WheelRight, protocol.Horizontal, 1},
}

// mouseState tracks the last reported cell and held buttons so that
// terminal mouse reports can be turned into transitions.
type mouseState struct {
	x, y    int
	valid   bool
	buttons tcell.ButtonMask
}

// Cells converts between terminal cells and output pixels.
type Cells struct {
	Width  int
	Height int
}

// Center returns the pixel position of the center of cell (cx, cy).
func (c Cells) Center(cx, cy int) geometry.Point {
	return geometry.Point{
		X: float64(cx*c.Width) + float64(c.Width)/2,
		Y: float64(cy*c.Height) + float64(c.Height)/2,
	}
}

// Cell returns the cell containing pixel p.
func (c Cells) Cell(p geometry.Point) (int, int) {
	return int(p.X) / c.Width, int(p.Y) / c.Height
}

// MouseEvents converts a terminal mouse report into raw pointer events.
// Position changes become absolute motion normalized to the output size;
// button mask changes become presses and releases; wheel bits become
// discrete wheel scrolls.
func (m *mouseState) MouseEvents(x, y int, buttons tcell.ButtonMask, cells Cells, output geometry.Size, time uint32) []seat.Event {
	var out []seat.Event

	if output.W > 0 && output.H > 0 && (!m.valid || x != m.x || y != m.y) {
		p := cells.Center(x, y)
		out = append(out, seat.PointerMotionAbsoluteEvent{
			X:    p.X / float64(output.W),
			Y:    p.Y / float64(output.H),
			Time: time,
		})
		m.x, m.y, m.valid = x, y, true
	}

	for _, b := range buttonCodes {
		was := m.buttons&b.mask != 0
		is := buttons&b.mask != 0
		switch {
		case is && !was:
			out = append(out, seat.PointerButtonEvent{Button: b.code, State: protocol.ButtonPressed, Time: time})
		case was && !is:
			out = append(out, seat.PointerButtonEvent{Button: b.code, State: protocol.ButtonReleased, Time: time})
		}
	}
	m.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	for _, w := range wheelSteps {
		if buttons&w.mask == 0 {
			continue
		}
		ev := seat.PointerAxisEvent{Source: protocol.SourceWheel, Time: time}
		out = append(out, ev.WithDiscrete(w.axis, w.steps))
	}
	return out
}
