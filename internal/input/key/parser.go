package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Combo is a parsed binding specification: an exact modifier set and a
// raw symbol.
type Combo struct {
	Modifiers Modifier
	Sym       Sym
}

// String returns the canonical specification, e.g. "Super+Shift+q".
func (c Combo) String() string {
	if c.Modifiers.IsEmpty() {
		return c.Sym.String()
	}
	return c.Modifiers.String() + "+" + c.Sym.String()
}

// Parse parses a key specification string into a Combo.
//
// Supported formats:
//   - Single key: "q", "1", "Return", "F4"
//   - With modifiers: "Super+Q", "Super+Shift+1", "Ctrl+Alt+Delete"
func Parse(spec string) (Combo, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Combo{}, ErrEmptySpec
	}

	parts := strings.Split(spec, "+")
	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Combo{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Combo{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods = mods.With(mod)
	}

	sym := SymFromName(keyPart)
	if sym == SymNone {
		return Combo{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}

	return Combo{Modifiers: mods, Sym: sym}, nil
}

// MustParse is like Parse but panics on error. Intended for built-in tables.
func MustParse(spec string) Combo {
	c, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return c
}
