package key

import "sync"

// State is the transition reported for a key.
type State uint8

const (
	// Released indicates the key went up.
	Released State = iota
	// Pressed indicates the key went down.
	Pressed
)

// String returns a string representation of the key state.
func (s State) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// Tracker maintains keyboard state across key transitions.
//
// Hold modifiers (Shift, Ctrl, Alt, Super) are active while any key producing
// them is down. Lock modifiers (Caps Lock, Num Lock) toggle on press.
type Tracker struct {
	mu      sync.Mutex
	held    map[Keycode]Modifier
	latched Modifier
}

// NewTracker creates a keyboard state tracker with nothing pressed.
func NewTracker() *Tracker {
	return &Tracker{
		held: make(map[Keycode]Modifier),
	}
}

// modifierForSym maps modifier key symbols to the modifier they hold.
func modifierForSym(s Sym) Modifier {
	switch s {
	case SymShiftL, SymShiftR:
		return ModShift
	case SymControlL, SymControlR:
		return ModCtrl
	case SymAltL, SymAltR:
		return ModAlt
	case SymSuperL, SymSuperR:
		return ModSuper
	case SymCapsLock:
		return ModCapsLock
	case SymNumLock:
		return ModNumLock
	}
	return ModNone
}

// Update applies a key transition and returns the modifier state after the
// transition together with the raw symbols of the key.
func (t *Tracker) Update(code Keycode, state State) (Modifier, []Sym) {
	t.mu.Lock()
	defer t.mu.Unlock()

	syms := RawSyms(code)
	for _, s := range syms {
		mod := modifierForSym(s)
		if mod == ModNone {
			continue
		}
		switch {
		case mod == ModCapsLock || mod == ModNumLock:
			if state == Pressed {
				t.latched ^= mod
			}
		case state == Pressed:
			t.held[code] = mod
		default:
			delete(t.held, code)
		}
	}

	return t.modifiersLocked(), syms
}

// Modifiers returns the current modifier state.
func (t *Tracker) Modifiers() Modifier {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.modifiersLocked()
}

func (t *Tracker) modifiersLocked() Modifier {
	mods := t.latched
	for _, m := range t.held {
		mods = mods.With(m)
	}
	return mods
}

// Reset releases every held key and clears latched locks.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.held = make(map[Keycode]Modifier)
	t.latched = ModNone
}
