package loader

import (
	"errors"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"
)

// errNoTable is returned when a Lua config does not return a table.
var errNoTable = errors.New("lua config must return a table")

// decodeLua runs the script in a state with only the base, table, string
// and math libraries and no file loading, converts the returned table to Go values and decodes
// those through YAML so field names match the YAML form.
func decodeLua(source string, data []byte, v any) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("getenv", L.NewFunction(luaGetenv))

	fn, err := L.LoadString(string(data))
	if err != nil {
		return &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	ret := L.Get(-1)
	L.Pop(1)
	table, ok := ret.(*lua.LTable)
	if !ok {
		return &ParseError{Path: source, Message: errNoTable.Error(), Err: errNoTable}
	}

	out, err := yaml.Marshal(luaToGo(table, make(map[*lua.LTable]bool)))
	if err != nil {
		return fmt.Errorf("converting %s: %w", source, err)
	}
	return decodeYAML(source, out, v)
}

// luaGetenv implements getenv(name [, default]).
func luaGetenv(L *lua.LState) int {
	name := L.CheckString(1)
	if val, ok := os.LookupEnv(name); ok {
		L.Push(lua.LString(val))
		return 1
	}
	if L.GetTop() >= 2 {
		L.Push(L.Get(2))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

func luaToGo(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		// Only tables on the current path are cycles; shared subtables
		// are converted each time they appear.
		if visited[v] {
			return nil
		}
		visited[v] = true
		defer delete(visited, v)
		return tableToGo(v, visited)
	default:
		return nil
	}
}

// tableToGo converts a sequence to a slice and anything else to a map.
func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	if n := t.Len(); n > 0 {
		count := 0
		t.ForEach(func(_, _ lua.LValue) { count++ })
		if count == n {
			arr := make([]any, n)
			for i := 1; i <= n; i++ {
				arr[i-1] = luaToGo(t.RawGetInt(i), visited)
			}
			return arr
		}
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = luaToGo(v, visited)
	})
	return m
}
