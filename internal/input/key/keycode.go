package key

// Keycode is a raw evdev scancode.
type Keycode uint32

// Evdev keycodes used by the built-in layout.
const (
	CodeEsc        Keycode = 1
	Code1          Keycode = 2
	Code0          Keycode = 11
	CodeMinus      Keycode = 12
	CodeEqual      Keycode = 13
	CodeBackspace  Keycode = 14
	CodeTab        Keycode = 15
	CodeQ          Keycode = 16
	CodeLeftBrace  Keycode = 26
	CodeRightBrace Keycode = 27
	CodeEnter      Keycode = 28
	CodeLeftCtrl   Keycode = 29
	CodeA          Keycode = 30
	CodeSemicolon  Keycode = 39
	CodeApostrophe Keycode = 40
	CodeGrave      Keycode = 41
	CodeLeftShift  Keycode = 42
	CodeBackslash  Keycode = 43
	CodeZ          Keycode = 44
	CodeComma      Keycode = 51
	CodeDot        Keycode = 52
	CodeSlash      Keycode = 53
	CodeRightShift Keycode = 54
	CodeLeftAlt    Keycode = 56
	CodeSpace      Keycode = 57
	CodeCapsLock   Keycode = 58
	CodeF1         Keycode = 59
	CodeF10        Keycode = 68
	CodeNumLock    Keycode = 69
	CodeF11        Keycode = 87
	CodeF12        Keycode = 88
	CodeRightCtrl  Keycode = 97
	CodeRightAlt   Keycode = 100
	CodeHome       Keycode = 102
	CodeUp         Keycode = 103
	CodePageUp     Keycode = 104
	CodeLeft       Keycode = 105
	CodeRight      Keycode = 106
	CodeEnd        Keycode = 107
	CodeDown       Keycode = 108
	CodePageDown   Keycode = 109
	CodeInsert     Keycode = 110
	CodeDelete     Keycode = 111
	CodeLeftMeta   Keycode = 125
	CodeRightMeta  Keycode = 126
)

// level holds the symbols a key produces without and with Shift.
type level struct {
	base    Sym
	shifted Sym
}

// usLayout is the built-in US QWERTY layout.
var usLayout = buildUSLayout()

// codesBySym is the reverse of usLayout for both levels.
var codesBySym = buildReverse()

func buildUSLayout() map[Keycode]level {
	l := make(map[Keycode]level, 96)

	row := func(start Keycode, base, shifted string) {
		s := []rune(shifted)
		for i, r := range base {
			l[start+Keycode(i)] = level{base: Sym(r), shifted: Sym(s[i])}
		}
	}
	row(Code1, "1234567890-=", "!@#$%^&*()_+")
	row(CodeQ, "qwertyuiop[]", "QWERTYUIOP{}")
	row(CodeA, "asdfghjkl;'`", "ASDFGHJKL:\"~")
	row(CodeBackslash, "\\zxcvbnm,./", "|ZXCVBNM<>?")

	single := func(code Keycode, s Sym) {
		l[code] = level{base: s, shifted: s}
	}
	single(CodeEsc, SymEscape)
	single(CodeBackspace, SymBackSpace)
	single(CodeTab, SymTab)
	single(CodeEnter, SymReturn)
	single(CodeSpace, ' ')
	single(CodeLeftCtrl, SymControlL)
	single(CodeRightCtrl, SymControlR)
	single(CodeLeftShift, SymShiftL)
	single(CodeRightShift, SymShiftR)
	single(CodeLeftAlt, SymAltL)
	single(CodeRightAlt, SymAltR)
	single(CodeLeftMeta, SymSuperL)
	single(CodeRightMeta, SymSuperR)
	single(CodeCapsLock, SymCapsLock)
	single(CodeNumLock, SymNumLock)
	single(CodeHome, SymHome)
	single(CodeUp, SymUp)
	single(CodePageUp, SymPageUp)
	single(CodeLeft, SymLeft)
	single(CodeRight, SymRight)
	single(CodeEnd, SymEnd)
	single(CodeDown, SymDown)
	single(CodePageDown, SymPageDown)
	single(CodeInsert, SymInsert)
	single(CodeDelete, SymDelete)
	for i := Keycode(0); i < 10; i++ {
		single(CodeF1+i, SymF1+Sym(i))
	}
	single(CodeF11, SymF1+10)
	single(CodeF12, SymF12)

	return l
}

// codeLookup records the key producing a symbol and whether Shift is needed.
type codeLookup struct {
	code  Keycode
	shift bool
}

func buildReverse() map[Sym]codeLookup {
	r := make(map[Sym]codeLookup, len(usLayout)*2)
	for code, lv := range usLayout {
		if prev, ok := r[lv.base]; !ok || code < prev.code {
			r[lv.base] = codeLookup{code: code}
		}
	}
	for code, lv := range usLayout {
		if _, ok := r[lv.shifted]; !ok {
			r[lv.shifted] = codeLookup{code: code, shift: true}
		}
	}
	return r
}

// RawSyms returns the base-level symbols produced by a keycode.
// Unknown keycodes produce no symbols.
func RawSyms(code Keycode) []Sym {
	lv, ok := usLayout[code]
	if !ok {
		return nil
	}
	return []Sym{lv.base}
}

// CodeForSym returns the keycode producing s and whether Shift is required
// to produce it.
func CodeForSym(s Sym) (Keycode, bool, bool) {
	lk, ok := codesBySym[s]
	if !ok {
		return 0, false, false
	}
	return lk.code, lk.shift, true
}
