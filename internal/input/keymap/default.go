package keymap

import (
	"fmt"

	"github.com/dshills/holo/internal/action"
)

// DefaultTerminal is the command bound to Super+Return by default.
const DefaultTerminal = "foot"

// DefaultBindings returns the built-in bindings for the given number of
// workspaces. Only the first nine workspaces get number keys.
func DefaultBindings(workspaces int, terminal string) []Binding {
	if terminal == "" {
		terminal = DefaultTerminal
	}

	bindings := []Binding{
		MustBinding("Super+Shift+Q", action.NewQuit()),
		MustBinding("Super+Q", action.NewClose()),
		MustBinding("Super+Return", action.NewSpawn(terminal)),
	}

	n := min(workspaces, 9)
	for i := 1; i <= n; i++ {
		bindings = append(bindings,
			MustBinding(fmt.Sprintf("Super+%d", i), action.NewWorkspace(i)),
			MustBinding(fmt.Sprintf("Super+Shift+%d", i), action.NewMoveWindowAndSwitchToWorkspace(i)),
			MustBinding(fmt.Sprintf("Super+Ctrl+%d", i), action.NewMoveWindowToWorkspace(i)),
		)
	}

	return bindings
}

// DefaultTable returns a table of DefaultBindings.
func DefaultTable(workspaces int) *Table {
	return NewTable(DefaultBindings(workspaces, DefaultTerminal)...)
}
