package seat

import (
	"github.com/dshills/holo/internal/input/key"
	"github.com/dshills/holo/internal/protocol"
)

// EventKind identifies a raw input event type.
type EventKind uint8

const (
	KindKeyboardKey EventKind = iota + 1
	KindPointerMotion
	KindPointerMotionAbsolute
	KindPointerButton
	KindPointerAxis
	KindOther
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case KindKeyboardKey:
		return "keyboard.key"
	case KindPointerMotion:
		return "pointer.motion"
	case KindPointerMotionAbsolute:
		return "pointer.motion_absolute"
	case KindPointerButton:
		return "pointer.button"
	case KindPointerAxis:
		return "pointer.axis"
	default:
		return "other"
	}
}

// Event is a raw event from an input backend.
type Event interface {
	Kind() EventKind
}

// KeyboardKeyEvent is a key transition.
type KeyboardKeyEvent struct {
	Code  key.Keycode
	State key.State
	Time  uint32
}

// Kind implements Event.
func (KeyboardKeyEvent) Kind() EventKind { return KindKeyboardKey }

// PointerMotionEvent is relative pointer motion.
type PointerMotionEvent struct {
	DX   float64
	DY   float64
	Time uint32
}

// Kind implements Event.
func (PointerMotionEvent) Kind() EventKind { return KindPointerMotion }

// PointerMotionAbsoluteEvent is an absolute pointer position. X and Y are
// device-relative in [0, 1].
type PointerMotionAbsoluteEvent struct {
	X    float64
	Y    float64
	Time uint32
}

// Kind implements Event.
func (PointerMotionAbsoluteEvent) Kind() EventKind { return KindPointerMotionAbsolute }

// PointerButtonEvent is a pointer button transition.
type PointerButtonEvent struct {
	Button uint32
	State  protocol.ButtonState
	Time   uint32
}

// Kind implements Event.
func (PointerButtonEvent) Kind() EventKind { return KindPointerButton }

// PointerAxisEvent is a scroll event. Each axis may report a continuous
// amount, a discrete step count, both, or neither.
type PointerAxisEvent struct {
	Source      protocol.AxisSource
	Amount      [2]float64
	HasAmount   [2]bool
	Discrete    [2]float64
	HasDiscrete [2]bool
	Time        uint32
}

// Kind implements Event.
func (PointerAxisEvent) Kind() EventKind { return KindPointerAxis }

// WithAmount returns a copy with a continuous amount set on axis a.
func (e PointerAxisEvent) WithAmount(a protocol.Axis, v float64) PointerAxisEvent {
	e.Amount[a] = v
	e.HasAmount[a] = true
	return e
}

// WithDiscrete returns a copy with a discrete step count set on axis a.
func (e PointerAxisEvent) WithDiscrete(a protocol.Axis, steps float64) PointerAxisEvent {
	e.Discrete[a] = steps
	e.HasDiscrete[a] = true
	return e
}

// OtherEvent is any event the router does not handle, such as touch or
// tablet input.
type OtherEvent struct {
	Name string
}

// Kind implements Event.
func (OtherEvent) Kind() EventKind { return KindOther }
