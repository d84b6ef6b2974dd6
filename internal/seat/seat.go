// Package seat routes raw input events to the seat's keyboard and pointer.
//
// The Router is a state machine driven one event at a time by the event
// loop. Key presses are classified against the keybinding table and either
// consumed as actions or forwarded to the focused client. Absolute pointer
// motion is mapped onto the outputs, clamped, and used to update keyboard
// focus and pointer focus. Buttons and scroll frames go to the pointer
// focus.
package seat

import (
	"errors"

	"github.com/dshills/holo/internal/protocol"
)

// Startup errors.
var (
	// ErrMissingKeyboard indicates the seat has no keyboard.
	ErrMissingKeyboard = errors.New("seat: no keyboard")

	// ErrMissingPointer indicates the seat has no pointer.
	ErrMissingPointer = errors.New("seat: no pointer")
)

// Seat is a named pair of keyboard and pointer handles.
type Seat struct {
	name     string
	keyboard protocol.Keyboard
	pointer  protocol.Pointer
}

// New creates a seat. Both handles are required.
func New(name string, kb protocol.Keyboard, ptr protocol.Pointer) (*Seat, error) {
	if kb == nil {
		return nil, ErrMissingKeyboard
	}
	if ptr == nil {
		return nil, ErrMissingPointer
	}
	return &Seat{name: name, keyboard: kb, pointer: ptr}, nil
}

// Name returns the seat name.
func (s *Seat) Name() string {
	return s.name
}

// Keyboard returns the keyboard handle.
func (s *Seat) Keyboard() protocol.Keyboard {
	return s.keyboard
}

// Pointer returns the pointer handle.
func (s *Seat) Pointer() protocol.Pointer {
	return s.pointer
}
