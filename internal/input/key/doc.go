// Package key provides keyboard primitives for the seat input path.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Keycode: A raw evdev scancode as reported by the input device
//   - Sym: A logical keysym (X11-compatible values) resolved from a keycode
//   - Modifier: A set of modifier keys (Shift, Ctrl, Alt, Super, locks)
//   - Tracker: Keyboard state that turns key transitions into modifiers and symbols
//
// # Key Specifications
//
// Binding specifications are written as modifier names joined with '+'
// followed by a key name:
//
//   - Simple keys: "q", "1", "Return", "Escape", "F1"
//   - With modifiers: "Super+Q", "Super+Shift+1", "Ctrl+Alt+Delete"
//
// Letter keys are case-insensitive: "Super+Q" and "Super+q" both bind the
// base-level symbol "q". Shift must be spelled out explicitly.
//
// # Raw Symbols
//
// Bindings match against raw symbols, the symbols a key produces with no
// modifiers applied. This keeps "Super+Shift+1" matching the physical "1" key
// rather than "exclam".
package key
