package keymap

import (
	"fmt"

	"github.com/dshills/holo/internal/action"
	"github.com/dshills/holo/internal/input/key"
)

// Binding maps an exact modifier set and a raw key symbol to an action.
type Binding struct {
	Modifiers key.Modifier
	Sym       key.Sym
	Action    action.Action
}

// NewBinding parses spec and pairs it with a.
func NewBinding(spec string, a action.Action) (Binding, error) {
	combo, err := key.Parse(spec)
	if err != nil {
		return Binding{}, err
	}
	if err := a.Validate(); err != nil {
		return Binding{}, fmt.Errorf("binding %q: %w", spec, err)
	}
	return Binding{Modifiers: combo.Modifiers, Sym: combo.Sym, Action: a}, nil
}

// MustBinding is like NewBinding but panics on error.
func MustBinding(spec string, a action.Action) Binding {
	b, err := NewBinding(spec, a)
	if err != nil {
		panic(err)
	}
	return b
}

// Combo returns the binding's key combination.
func (b Binding) Combo() key.Combo {
	return key.Combo{Modifiers: b.Modifiers, Sym: b.Sym}
}

// Matches reports whether a key with the given modifier state and raw
// symbols triggers this binding.
func (b Binding) Matches(mods key.Modifier, syms []key.Sym) bool {
	if b.Modifiers != mods {
		return false
	}
	for _, s := range syms {
		if s == b.Sym {
			return true
		}
	}
	return false
}

// String returns "Super+q -> quit".
func (b Binding) String() string {
	return b.Combo().String() + " -> " + b.Action.String()
}
