package action

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"quit", Quit},
		{"QUIT", Quit},
		{" close ", Close},
		{"workspace", Workspace},
		{"move_window_to_workspace", MoveWindowToWorkspace},
		{"move-window-and-switch-to-workspace", MoveWindowAndSwitchToWorkspace},
		{"toggle_window_floating", ToggleWindowFloating},
		{"spawn", Spawn},
		{"debug", Debug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.name)
			if err != nil {
				t.Fatalf("ParseKind(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	if _, err := ParseKind("launch"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(launch) error = %v, want ErrUnknownKind", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		wantErr error
	}{
		{"quit", NewQuit(), nil},
		{"workspace", NewWorkspace(2), nil},
		{"workspace zero", NewWorkspace(0), ErrInvalidWorkspace},
		{"move negative", NewMoveWindowToWorkspace(-1), ErrInvalidWorkspace},
		{"spawn", NewSpawn("foot"), nil},
		{"spawn blank", NewSpawn("  "), ErrEmptyCommand},
		{"zero value", Action{}, ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.action.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{NewQuit(), "quit"},
		{NewWorkspace(3), "workspace(3)"},
		{NewMoveWindowAndSwitchToWorkspace(1), "move_window_and_switch_to_workspace(1)"},
		{NewSpawn("foot"), "spawn(foot)"},
		{Action{Kind: 99}, "Kind(99)"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestActionsAreComparable(t *testing.T) {
	if NewWorkspace(4) != NewWorkspace(4) {
		t.Error("equal actions should compare equal")
	}
	if NewSpawn("a") == NewSpawn("b") {
		t.Error("spawn actions with different commands should differ")
	}
}
