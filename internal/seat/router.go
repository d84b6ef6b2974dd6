package seat

import (
	"log/slog"

	"github.com/dshills/holo/internal/action"
	"github.com/dshills/holo/internal/geometry"
	"github.com/dshills/holo/internal/input/keymap"
	"github.com/dshills/holo/internal/protocol"
	"github.com/dshills/holo/internal/workspace"
)

// DiscreteScrollStep is the scroll amount of one discrete wheel step.
const DiscreteScrollStep = 3.0

// WorkspaceModel is the part of the workspace model the router reads.
type WorkspaceModel interface {
	WindowUnder(p geometry.Point) (*workspace.Window, geometry.Point, bool)
	OutputGeometries() []geometry.Rect
}

// ActionDispatcher executes intercepted actions.
type ActionDispatcher interface {
	Dispatch(a action.Action) error
}

// Router translates raw input events into seat deliveries and actions.
type Router struct {
	seat       *Seat
	workspaces WorkspaceModel
	dispatcher ActionDispatcher
	serials    *protocol.SerialCounter
	table      *keymap.Table
	logger     *slog.Logger

	location geometry.Point
}

// NewRouter creates a router. serials may be shared with other producers of
// serials; a nil counter gets a private one.
func NewRouter(s *Seat, ws WorkspaceModel, d ActionDispatcher, table *keymap.Table, serials *protocol.SerialCounter, logger *slog.Logger) *Router {
	if serials == nil {
		serials = protocol.NewSerialCounter()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Router{
		seat:       s,
		workspaces: ws,
		dispatcher: d,
		serials:    serials,
		table:      table,
		logger:     logger,
	}
}

// PointerLocation returns the clamped pointer location.
func (r *Router) PointerLocation() geometry.Point {
	return r.location
}

// Table returns the active keybinding table.
func (r *Router) Table() *keymap.Table {
	return r.table
}

// SetTable replaces the keybinding table. Call between events only.
func (r *Router) SetTable(t *keymap.Table) {
	r.table = t
}

// Process handles one raw input event. The returned error comes from the
// dispatcher for an intercepted key; every other event returns nil.
func (r *Router) Process(ev Event) error {
	if ev == nil {
		return nil
	}
	switch e := ev.(type) {
	case KeyboardKeyEvent:
		return r.key(e)
	case PointerMotionEvent:
		// Relative motion is not used for positioning.
	case PointerMotionAbsoluteEvent:
		r.motionAbsolute(e)
	case PointerButtonEvent:
		r.button(e)
	case PointerAxisEvent:
		r.axis(e)
	default:
		r.logger.Debug("ignoring event", "kind", ev.Kind().String())
	}
	return nil
}

func (r *Router) key(e KeyboardKeyEvent) error {
	serial := r.serials.Next()
	kb := r.seat.Keyboard()

	mods, syms := kb.Update(e.Code, e.State)
	decision := keymap.Classify(e.State, mods, syms, r.table)
	if decision.Intercept {
		r.logger.Debug("key intercepted",
			"code", uint32(e.Code),
			"modifiers", mods.String(),
			"action", decision.Action.String(),
		)
		return r.dispatcher.Dispatch(decision.Action)
	}

	kb.Forward(e.Code, e.State, serial, e.Time)
	return nil
}

// motionAbsolute maps the device position onto the first output, clamps it
// and updates focus. Without outputs the raw position is used unclamped.
func (r *Router) motionAbsolute(e PointerMotionAbsoluteEvent) {
	outputs := r.workspaces.OutputGeometries()

	pos := geometry.Point{X: e.X, Y: e.Y}
	if len(outputs) > 0 {
		first := outputs[0]
		pos = geometry.Transform(e.X, e.Y, first.Size()).Add(first.Origin())
	}

	serial := r.serials.Next()
	r.location = geometry.Clamp(pos, outputs)

	var under *protocol.Target
	if w, origin, ok := r.workspaces.WindowUnder(r.location); ok {
		under = &protocol.Target{Surface: w.Surface(), Origin: origin}
		r.seat.Keyboard().SetFocus(w.Surface(), serial)
	}

	r.seat.Pointer().Motion(under, protocol.MotionEvent{
		Location: r.location,
		Serial:   serial,
		Time:     e.Time,
	})
}

func (r *Router) button(e PointerButtonEvent) {
	r.seat.Pointer().Button(protocol.ButtonEvent{
		Button: e.Button,
		State:  e.State,
		Serial: r.serials.Next(),
		Time:   e.Time,
	})
}

func (r *Router) axis(e PointerAxisEvent) {
	r.seat.Pointer().Axis(AxisFrame(e))
}

// AxisFrame builds the scroll frame for an axis event.
//
// Each axis uses its continuous amount, or its discrete steps times
// DiscreteScrollStep. A non-zero amount is sent with the discrete count when
// the device reported one. A zero amount from a finger source ends the
// scroll on that axis.
func AxisFrame(e PointerAxisEvent) protocol.AxisFrame {
	frame := protocol.NewAxisFrame(e.Time).WithSource(e.Source)

	for _, a := range protocol.Axes {
		amount := 0.0
		switch {
		case e.HasAmount[a]:
			amount = e.Amount[a]
		case e.HasDiscrete[a]:
			amount = e.Discrete[a] * DiscreteScrollStep
		}

		if amount != 0 {
			frame = frame.WithValue(a, amount)
			if e.HasDiscrete[a] {
				frame = frame.WithDiscrete(a, int32(e.Discrete[a]))
			}
		} else if e.Source == protocol.SourceFinger {
			frame = frame.WithStop(a)
		}
	}
	return frame
}
