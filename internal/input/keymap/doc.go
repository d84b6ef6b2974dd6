// Package keymap provides the compositor's keybinding table.
//
// A Table is an ordered list of bindings. Each binding pairs an exact
// modifier set and a raw key symbol with an Action. Tables are immutable once
// built: configuration reload builds a new Table and swaps it in whole.
//
// # Classification
//
// Key interception is split in two steps. Classify is a pure function that
// inspects one key transition and returns a Decision:
//
//	d := keymap.Classify(key.Pressed, mods, syms, table)
//	if d.Intercept {
//	    dispatch(d.Action)
//	} else {
//	    forward()
//	}
//
// Only presses are ever intercepted. Modifiers must equal the binding's set
// exactly, so Super+Shift+Q does not trigger a Super+Q binding. When several
// bindings match, the first one in table order wins.
//
// # Specification Format
//
// Bindings are written as modifier names followed by a key name, joined by
// "+", for example "Super+Return" or "Super+Shift+1". See key.Parse.
package keymap
