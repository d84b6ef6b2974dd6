package config

import (
	"fmt"

	"github.com/dshills/holo/internal/action"
	"github.com/dshills/holo/internal/input/keymap"
)

// binding converts a configured keybinding, checking the workspace id
// against the configured count.
func (kb KeybindingConfig) binding(workspaces int) (keymap.Binding, error) {
	kind, err := action.ParseKind(kb.Action)
	if err != nil {
		return keymap.Binding{}, err
	}

	a := action.Action{Kind: kind}
	switch {
	case kind.TakesWorkspace():
		if kb.Workspace < 1 || kb.Workspace > workspaces {
			return keymap.Binding{}, fmt.Errorf("%w: %d not in [1, %d]", ErrWorkspaceOutOfRange, kb.Workspace, workspaces)
		}
		a.Workspace = kb.Workspace
	case kind == action.Spawn:
		a.Command = kb.Command
	}

	return keymap.NewBinding(kb.Keys, a)
}

// Keymap builds the keybinding table. With no configured bindings the
// built-in defaults are used.
func (c *Config) Keymap() (*keymap.Table, error) {
	if len(c.Keybindings) == 0 {
		return keymap.NewTable(keymap.DefaultBindings(c.Workspaces, c.Terminal)...), nil
	}

	bindings := make([]keymap.Binding, 0, len(c.Keybindings))
	for i, kb := range c.Keybindings {
		b, err := kb.binding(c.Workspaces)
		if err != nil {
			return nil, &ValidationError{
				Path:    fmt.Sprintf("keybindings[%d]", i),
				Message: err.Error(),
				Value:   kb.Keys,
				Err:     err,
			}
		}
		bindings = append(bindings, b)
	}
	return keymap.NewTable(bindings...), nil
}
