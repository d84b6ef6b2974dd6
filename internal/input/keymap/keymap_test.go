package keymap

import (
	"testing"

	"github.com/dshills/holo/internal/action"
	"github.com/dshills/holo/internal/input/key"
)

func TestClassifySuperQ(t *testing.T) {
	table := NewTable(MustBinding("Super+Q", action.NewQuit()))
	q := key.RawSyms(key.CodeQ)

	d := Classify(key.Pressed, key.ModSuper, q, table)
	if !d.Intercept {
		t.Fatal("Super+Q press should be intercepted")
	}
	if d.Action != action.NewQuit() {
		t.Errorf("Action = %v, want quit", d.Action)
	}

	if d := Classify(key.Pressed, key.ModNone, q, table); d != Forward {
		t.Errorf("unmodified Q = %+v, want Forward", d)
	}
}

func TestClassifyReleaseAlwaysForwarded(t *testing.T) {
	table := NewTable(MustBinding("Super+Q", action.NewQuit()))

	d := Classify(key.Released, key.ModSuper, key.RawSyms(key.CodeQ), table)
	if d != Forward {
		t.Errorf("release = %+v, want Forward", d)
	}
}

func TestClassifyExactModifiers(t *testing.T) {
	table := NewTable(MustBinding("Super+Q", action.NewClose()))
	q := key.RawSyms(key.CodeQ)

	tests := []struct {
		name string
		mods key.Modifier
		want bool
	}{
		{"exact", key.ModSuper, true},
		{"superset", key.ModSuper | key.ModShift, false},
		{"with caps lock", key.ModSuper | key.ModCapsLock, false},
		{"other", key.ModCtrl, false},
		{"none", key.ModNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(key.Pressed, tt.mods, q, table)
			if d.Intercept != tt.want {
				t.Errorf("Intercept = %v, want %v", d.Intercept, tt.want)
			}
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	table := NewTable(
		MustBinding("Super+Return", action.NewSpawn("first")),
		MustBinding("Super+j", action.NewWorkspace(1)),
		MustBinding("Super+Return", action.NewSpawn("second")),
	)

	d := Classify(key.Pressed, key.ModSuper, []key.Sym{key.SymReturn}, table)
	if d.Action != action.NewSpawn("first") {
		t.Errorf("Action = %v, want spawn(first)", d.Action)
	}

	// A key producing several symbols still yields the earliest binding.
	d = Classify(key.Pressed, key.ModSuper, []key.Sym{key.SymReturn, 'j'}, table)
	if d.Action != action.NewSpawn("first") {
		t.Errorf("multi-symbol Action = %v, want spawn(first)", d.Action)
	}
	d = Classify(key.Pressed, key.ModSuper, []key.Sym{'j', key.SymReturn}, table)
	if d.Action != action.NewSpawn("first") {
		t.Errorf("table order should win over symbol order, got %v", d.Action)
	}
}

func TestClassifyNilTable(t *testing.T) {
	var table *Table
	if d := Classify(key.Pressed, key.ModSuper, []key.Sym{'q'}, table); d != Forward {
		t.Errorf("nil table = %+v, want Forward", d)
	}
	if table.Len() != 0 {
		t.Errorf("nil table Len = %d", table.Len())
	}
}

func TestTableIsImmutable(t *testing.T) {
	src := []Binding{MustBinding("Super+1", action.NewWorkspace(1))}
	table := NewTable(src...)

	src[0] = MustBinding("Super+2", action.NewWorkspace(2))
	got := table.Bindings()
	got[0].Action = action.NewQuit()

	a, ok := table.Lookup(key.ModSuper, []key.Sym{'1'})
	if !ok || a != action.NewWorkspace(1) {
		t.Errorf("Lookup = %v, %v; table changed through caller slices", a, ok)
	}
}

func TestNewBindingErrors(t *testing.T) {
	tests := []struct {
		name   string
		spec   string
		action action.Action
	}{
		{"bad spec", "Hyper+q", action.NewQuit()},
		{"empty spec", "", action.NewQuit()},
		{"bad workspace", "Super+1", action.NewWorkspace(0)},
		{"empty command", "Super+Return", action.NewSpawn("")},
	}

	for _, tt := range tests {
		if _, err := NewBinding(tt.spec, tt.action); err == nil {
			t.Errorf("%s: NewBinding(%q) expected error", tt.name, tt.spec)
		}
	}
}

func TestBindingString(t *testing.T) {
	b := MustBinding("Super+Shift+3", action.NewMoveWindowAndSwitchToWorkspace(3))
	want := "Super+Shift+3 -> move_window_and_switch_to_workspace(3)"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDefaultBindings(t *testing.T) {
	table := DefaultTable(9)
	if table.Len() != 3+9*3 {
		t.Errorf("Len = %d, want %d", table.Len(), 3+9*3)
	}

	tests := []struct {
		mods key.Modifier
		code key.Keycode
		want action.Action
	}{
		{key.ModSuper | key.ModShift, key.CodeQ, action.NewQuit()},
		{key.ModSuper, key.CodeQ, action.NewClose()},
		{key.ModSuper, key.CodeEnter, action.NewSpawn(DefaultTerminal)},
		{key.ModSuper, key.Code1, action.NewWorkspace(1)},
		{key.ModSuper | key.ModShift, key.Code1 + 2, action.NewMoveWindowAndSwitchToWorkspace(3)},
		{key.ModSuper | key.ModCtrl, key.Code1 + 8, action.NewMoveWindowToWorkspace(9)},
	}

	for _, tt := range tests {
		a, ok := table.Lookup(tt.mods, key.RawSyms(tt.code))
		if !ok {
			t.Errorf("Lookup(%v, %d) found nothing", tt.mods, tt.code)
			continue
		}
		if a != tt.want {
			t.Errorf("Lookup(%v, %d) = %v, want %v", tt.mods, tt.code, a, tt.want)
		}
	}

	if got := len(DefaultBindings(3, "")); got != 3+3*3 {
		t.Errorf("DefaultBindings(3) len = %d", got)
	}
}
