package keymap

import (
	"github.com/dshills/holo/internal/action"
	"github.com/dshills/holo/internal/input/key"
)

// Table is an ordered, immutable set of bindings.
//
// A nil *Table behaves as an empty table.
type Table struct {
	bindings []Binding
}

// NewTable returns a table holding a copy of bindings in the given order.
func NewTable(bindings ...Binding) *Table {
	b := make([]Binding, len(bindings))
	copy(b, bindings)
	return &Table{bindings: b}
}

// Len returns the number of bindings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.bindings)
}

// Bindings returns a copy of the bindings in table order.
func (t *Table) Bindings() []Binding {
	if t == nil {
		return nil
	}
	b := make([]Binding, len(t.bindings))
	copy(b, t.bindings)
	return b
}

// Lookup returns the action of the first binding matching the modifier state
// and raw symbols.
func (t *Table) Lookup(mods key.Modifier, syms []key.Sym) (action.Action, bool) {
	if t == nil {
		return action.Action{}, false
	}
	for _, b := range t.bindings {
		if b.Matches(mods, syms) {
			return b.Action, true
		}
	}
	return action.Action{}, false
}

// Decision is the outcome of classifying one key transition.
type Decision struct {
	// Intercept is true when the key is consumed by a binding and must not
	// reach the client.
	Intercept bool

	// Action is the bound action. Only set when Intercept is true.
	Action action.Action
}

// Forward is the decision to pass a key through to the focused client.
var Forward = Decision{}

// Intercept returns the decision to consume a key and run a.
func Intercept(a action.Action) Decision {
	return Decision{Intercept: true, Action: a}
}

// Classify decides whether a key transition triggers a binding.
//
// mods is the modifier state at the time of the event and syms are the raw
// symbols the key produces. Releases are always forwarded.
func Classify(state key.State, mods key.Modifier, syms []key.Sym, t *Table) Decision {
	if state != key.Pressed {
		return Forward
	}
	if a, ok := t.Lookup(mods, syms); ok {
		return Intercept(a)
	}
	return Forward
}
