// Package action defines the closed set of operations a user can bind to a
// key combination.
//
// Actions are small immutable values. They are produced from configuration,
// stored in keybinding tables, and executed by the dispatcher.
package action

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies an action variant.
type Kind uint8

const (
	// Quit stops the compositor after the current event.
	Quit Kind = iota + 1
	// Debug is reserved and not implemented.
	Debug
	// Close asks the window under the pointer to close.
	Close
	// Workspace switches to a workspace.
	Workspace
	// MoveWindowToWorkspace moves the window under the pointer to a workspace.
	MoveWindowToWorkspace
	// MoveWindowAndSwitchToWorkspace moves the window under the pointer to a
	// workspace and then switches to it.
	MoveWindowAndSwitchToWorkspace
	// ToggleWindowFloating is reserved and not implemented.
	ToggleWindowFloating
	// Spawn runs a shell command.
	Spawn
)

var kindNames = map[Kind]string{
	Quit:                           "quit",
	Debug:                          "debug",
	Close:                          "close",
	Workspace:                      "workspace",
	MoveWindowToWorkspace:          "move_window_to_workspace",
	MoveWindowAndSwitchToWorkspace: "move_window_and_switch_to_workspace",
	ToggleWindowFloating:           "toggle_window_floating",
	Spawn:                          "spawn",
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// TakesWorkspace reports whether actions of this kind carry a workspace id.
func (k Kind) TakesWorkspace() bool {
	switch k {
	case Workspace, MoveWindowToWorkspace, MoveWindowAndSwitchToWorkspace:
		return true
	}
	return false
}

// Errors returned when parsing or validating actions.
var (
	ErrUnknownKind      = errors.New("action: unknown action")
	ErrInvalidWorkspace = errors.New("action: workspace id must be positive")
	ErrEmptyCommand     = errors.New("action: spawn requires a command")
)

// ParseKind returns the kind for a configuration name. Names are matched
// case-insensitively and "-" is accepted in place of "_".
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", "_")
	for k, s := range kindNames {
		if s == n {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Action is a user-invocable operation.
//
// Workspace is set only for the workspace kinds, Command only for Spawn.
type Action struct {
	Kind      Kind
	Workspace int
	Command   string
}

// NewQuit returns a Quit action.
func NewQuit() Action { return Action{Kind: Quit} }

// NewDebug returns a Debug action.
func NewDebug() Action { return Action{Kind: Debug} }

// NewClose returns a Close action.
func NewClose() Action { return Action{Kind: Close} }

// NewWorkspace returns an action that switches to workspace id.
func NewWorkspace(id int) Action { return Action{Kind: Workspace, Workspace: id} }

// NewMoveWindowToWorkspace returns an action that moves the window under the
// pointer to workspace id.
func NewMoveWindowToWorkspace(id int) Action {
	return Action{Kind: MoveWindowToWorkspace, Workspace: id}
}

// NewMoveWindowAndSwitchToWorkspace returns an action that moves the window
// under the pointer to workspace id and then switches to it.
func NewMoveWindowAndSwitchToWorkspace(id int) Action {
	return Action{Kind: MoveWindowAndSwitchToWorkspace, Workspace: id}
}

// NewToggleWindowFloating returns a ToggleWindowFloating action.
func NewToggleWindowFloating() Action { return Action{Kind: ToggleWindowFloating} }

// NewSpawn returns an action that runs command through the shell.
func NewSpawn(command string) Action { return Action{Kind: Spawn, Command: command} }

// Validate checks that the action carries the payload its kind needs.
func (a Action) Validate() error {
	if _, ok := kindNames[a.Kind]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, a.Kind)
	}
	if a.Kind.TakesWorkspace() && a.Workspace < 1 {
		return fmt.Errorf("%w: %s(%d)", ErrInvalidWorkspace, a.Kind, a.Workspace)
	}
	if a.Kind == Spawn && strings.TrimSpace(a.Command) == "" {
		return ErrEmptyCommand
	}
	return nil
}

// String returns a readable form such as "workspace(3)" or "spawn(foot)".
func (a Action) String() string {
	switch {
	case a.Kind.TakesWorkspace():
		return fmt.Sprintf("%s(%d)", a.Kind, a.Workspace)
	case a.Kind == Spawn:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Command)
	default:
		return a.Kind.String()
	}
}
