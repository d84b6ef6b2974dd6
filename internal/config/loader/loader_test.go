package loader

import (
	"errors"
	"io/fs"
	"testing"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

type sample struct {
	Gaps     int      `toml:"gaps" yaml:"gaps"`
	Terminal string   `toml:"terminal" yaml:"terminal"`
	Keys     []string `toml:"keys" yaml:"keys"`
	Log      struct {
		Level string `toml:"level" yaml:"level"`
	} `toml:"log" yaml:"log"`
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"config.toml", FormatTOML, false},
		{"/etc/holo/CONFIG.TOML", FormatTOML, false},
		{"config.yaml", FormatYAML, false},
		{"config.yml", FormatYAML, false},
		{"init.lua", FormatLua, false},
		{"config.json", 0, true},
		{"config", 0, true},
	}

	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFor(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("FormatFor(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFor(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoadFileFormats(t *testing.T) {
	fsys := memFS{
		"a.toml": `
gaps = 4
terminal = "alacritty"
keys = ["a", "b"]

[log]
level = "debug"
`,
		"a.yaml": `
gaps: 4
terminal: alacritty
keys: [a, b]
log:
  level: debug
`,
		"a.lua": `
return {
  gaps = 2 + 2,
  terminal = "alacritty",
  keys = { "a", "b" },
  log = { level = "debug" },
}
`,
	}

	for _, path := range []string{"a.toml", "a.yaml", "a.lua"} {
		var got sample
		found, err := LoadFile(fsys, path, &got)
		if err != nil || !found {
			t.Errorf("LoadFile(%s) = %v, %v", path, found, err)
			continue
		}
		if got.Gaps != 4 || got.Terminal != "alacritty" || got.Log.Level != "debug" {
			t.Errorf("LoadFile(%s) = %+v", path, got)
		}
		if len(got.Keys) != 2 || got.Keys[0] != "a" || got.Keys[1] != "b" {
			t.Errorf("LoadFile(%s) keys = %v", path, got.Keys)
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	v := sample{Gaps: 7}
	found, err := LoadFile(memFS{}, "missing.toml", &v)
	if err != nil || found {
		t.Errorf("LoadFile(missing) = %v, %v", found, err)
	}
	if v.Gaps != 7 {
		t.Errorf("target modified: %+v", v)
	}
}

func TestTOMLParseErrorPosition(t *testing.T) {
	fsys := memFS{"bad.toml": "gaps = 1\nterminal = \n"}
	var v sample
	found, err := LoadFile(fsys, "bad.toml", &v)
	if !found {
		t.Error("found = false for existing file")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Path != "bad.toml" || pe.Line != 2 {
		t.Errorf("ParseError = %+v", pe)
	}
}

func TestYAMLParseError(t *testing.T) {
	var v sample
	err := Decode(FormatYAML, "bad.yaml", []byte("gaps: [1\n"), &v)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
}

func TestLuaErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "return {"},
		{"runtime", "error('boom')"},
		{"not a table", "return 42"},
		{"no os library", "return { terminal = os.getenv('HOME') }"},
		{"no dofile", "return dofile('/etc/passwd')"},
		{"no loadfile", "return loadfile('/etc/passwd')()"},
	}

	for _, tt := range tests {
		var v sample
		err := Decode(FormatLua, "init.lua", []byte(tt.src), &v)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%s: error = %v, want *ParseError", tt.name, err)
		}
	}
}

func TestLuaSharedSubtables(t *testing.T) {
	type binding struct {
		Action  string `yaml:"action"`
		Command string `yaml:"command"`
	}
	var v struct {
		Bindings []binding `yaml:"bindings"`
		Again    binding   `yaml:"again"`
	}
	src := `
local term = { action = "spawn", command = "foot" }
return { bindings = { term, term }, again = term }
`
	if err := Decode(FormatLua, "init.lua", []byte(src), &v); err != nil {
		t.Fatal(err)
	}
	want := binding{Action: "spawn", Command: "foot"}
	if len(v.Bindings) != 2 || v.Bindings[0] != want || v.Bindings[1] != want || v.Again != want {
		t.Errorf("decoded = %+v", v)
	}
}

func TestLuaCycleIsDropped(t *testing.T) {
	var v struct {
		Gaps int `yaml:"gaps"`
	}
	src := `
local t = { gaps = 4 }
t.self = t
return t
`
	if err := Decode(FormatLua, "init.lua", []byte(src), &v); err != nil {
		t.Fatal(err)
	}
	if v.Gaps != 4 {
		t.Errorf("gaps = %d, want 4", v.Gaps)
	}
}

func TestLuaGetenv(t *testing.T) {
	t.Setenv("HOLO_TEST_TERM", "kitty")

	var v sample
	src := `return { terminal = getenv("HOLO_TEST_TERM"), log = { level = getenv("HOLO_UNSET_VAR", "warn") } }`
	if err := Decode(FormatLua, "init.lua", []byte(src), &v); err != nil {
		t.Fatal(err)
	}
	if v.Terminal != "kitty" || v.Log.Level != "warn" {
		t.Errorf("decoded = %+v", v)
	}
}

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a", Line: 1, Column: 2, Message: "m"}, "parse error in a at line 1, column 2: m"},
		{&ParseError{Path: "a", Line: 3, Message: "m"}, "parse error in a at line 3: m"},
		{&ParseError{Path: "a", Message: "m"}, "parse error in a: m"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
