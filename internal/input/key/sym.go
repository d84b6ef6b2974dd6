package key

import (
	"fmt"
	"strings"
)

// Sym is a logical keysym. Values follow the X11 keysym encoding so that
// printable ASCII symbols equal their character code.
type Sym uint32

// SymNone represents no symbol.
const SymNone Sym = 0

// Named keysyms outside the printable ASCII range.
const (
	SymBackSpace Sym = 0xff08
	SymTab       Sym = 0xff09
	SymReturn    Sym = 0xff0d
	SymEscape    Sym = 0xff1b
	SymHome      Sym = 0xff50
	SymLeft      Sym = 0xff51
	SymUp        Sym = 0xff52
	SymRight     Sym = 0xff53
	SymDown      Sym = 0xff54
	SymPageUp    Sym = 0xff55
	SymPageDown  Sym = 0xff56
	SymEnd       Sym = 0xff57
	SymInsert    Sym = 0xff63
	SymNumLock   Sym = 0xff7f
	SymF1        Sym = 0xffbe
	SymF12       Sym = 0xffc9
	SymShiftL    Sym = 0xffe1
	SymShiftR    Sym = 0xffe2
	SymControlL  Sym = 0xffe3
	SymControlR  Sym = 0xffe4
	SymCapsLock  Sym = 0xffe5
	SymAltL      Sym = 0xffe9
	SymAltR      Sym = 0xffea
	SymSuperL    Sym = 0xffeb
	SymSuperR    Sym = 0xffec
	SymDelete    Sym = 0xffff
)

// symNames maps canonical names to symbols. Lookup is case-insensitive for
// everything except single letters, which are normalized to lowercase.
var symNames = map[string]Sym{
	"backspace":    SymBackSpace,
	"tab":          SymTab,
	"return":       SymReturn,
	"enter":        SymReturn,
	"escape":       SymEscape,
	"esc":          SymEscape,
	"home":         SymHome,
	"left":         SymLeft,
	"up":           SymUp,
	"right":        SymRight,
	"down":         SymDown,
	"page_up":      SymPageUp,
	"pageup":       SymPageUp,
	"prior":        SymPageUp,
	"page_down":    SymPageDown,
	"pagedown":     SymPageDown,
	"next":         SymPageDown,
	"end":          SymEnd,
	"insert":       SymInsert,
	"delete":       SymDelete,
	"num_lock":     SymNumLock,
	"shift_l":      SymShiftL,
	"shift_r":      SymShiftR,
	"control_l":    SymControlL,
	"control_r":    SymControlR,
	"caps_lock":    SymCapsLock,
	"alt_l":        SymAltL,
	"alt_r":        SymAltR,
	"super_l":      SymSuperL,
	"super_r":      SymSuperR,
	"space":        ' ',
	"exclam":       '!',
	"quotedbl":     '"',
	"numbersign":   '#',
	"dollar":       '$',
	"percent":      '%',
	"ampersand":    '&',
	"apostrophe":   '\'',
	"parenleft":    '(',
	"parenright":   ')',
	"asterisk":     '*',
	"plus":         '+',
	"comma":        ',',
	"minus":        '-',
	"period":       '.',
	"slash":        '/',
	"colon":        ':',
	"semicolon":    ';',
	"less":         '<',
	"equal":        '=',
	"greater":      '>',
	"question":     '?',
	"at":           '@',
	"bracketleft":  '[',
	"backslash":    '\\',
	"bracketright": ']',
	"asciicircum":  '^',
	"underscore":   '_',
	"grave":        '`',
	"braceleft":    '{',
	"bar":          '|',
	"braceright":   '}',
	"asciitilde":   '~',
}

// displayNames holds the preferred name for each named symbol.
var displayNames = map[Sym]string{
	SymBackSpace: "BackSpace",
	SymTab:       "Tab",
	SymReturn:    "Return",
	SymEscape:    "Escape",
	SymHome:      "Home",
	SymLeft:      "Left",
	SymUp:        "Up",
	SymRight:     "Right",
	SymDown:      "Down",
	SymPageUp:    "Page_Up",
	SymPageDown:  "Page_Down",
	SymEnd:       "End",
	SymInsert:    "Insert",
	SymDelete:    "Delete",
	SymNumLock:   "Num_Lock",
	SymShiftL:    "Shift_L",
	SymShiftR:    "Shift_R",
	SymControlL:  "Control_L",
	SymControlR:  "Control_R",
	SymCapsLock:  "Caps_Lock",
	SymAltL:      "Alt_L",
	SymAltR:      "Alt_R",
	SymSuperL:    "Super_L",
	SymSuperR:    "Super_R",
	' ':          "space",
}

// SymFromRune returns the symbol for a printable ASCII character.
func SymFromRune(r rune) (Sym, bool) {
	if r < 0x20 || r > 0x7e {
		return SymNone, false
	}
	return Sym(r), true
}

// SymFromName resolves a key name such as "q", "Return" or "F5".
// Returns SymNone if the name is not recognized.
func SymFromName(name string) Sym {
	name = strings.TrimSpace(name)
	if name == "" {
		return SymNone
	}

	runes := []rune(name)
	if len(runes) == 1 {
		r := runes[0]
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if s, ok := SymFromRune(r); ok {
			return s
		}
		return SymNone
	}

	lower := strings.ToLower(name)
	if s, ok := symNames[lower]; ok {
		return s
	}

	var n int
	if _, err := fmt.Sscanf(lower, "f%d", &n); err == nil && n >= 1 && n <= 12 && lower == fmt.Sprintf("f%d", n) {
		return SymF1 + Sym(n-1)
	}
	return SymNone
}

// IsModifier returns true if the symbol belongs to a modifier key.
func (s Sym) IsModifier() bool {
	switch s {
	case SymShiftL, SymShiftR, SymControlL, SymControlR, SymAltL, SymAltR,
		SymSuperL, SymSuperR, SymCapsLock, SymNumLock:
		return true
	}
	return false
}

// String returns the keysym name.
func (s Sym) String() string {
	if name, ok := displayNames[s]; ok {
		return name
	}
	if s >= SymF1 && s <= SymF12 {
		return fmt.Sprintf("F%d", s-SymF1+1)
	}
	if s > 0x20 && s <= 0x7e {
		return string(rune(s))
	}
	return fmt.Sprintf("0x%04x", uint32(s))
}
