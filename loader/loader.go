package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/epicquest/types"
)

// collector accumulates Lua declarations during file execution.
type collector struct {
	tables  []*lua.LTable
	enemies []string
	items   []string
}

// Load reads a balance file, or every .lua file in a directory, and returns
// the validated balance table. Fields the files do not set keep their
// default values. The Lua VM is discarded after loading.
func Load(path string) (*types.Balance, error) {
	files, err := discover(path)
	if err != nil {
		return nil, err
	}

	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range files {
		if err := L.DoFile(f); err != nil {
			return nil, fmt.Errorf("executing %s: %w", filepath.Base(f), err)
		}
	}

	b, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling balance: %w", err)
	}
	if err := validate(b); err != nil {
		return nil, err
	}
	return b, nil
}

// discover returns the Lua files to execute, in execution order.
func discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading balance %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading balance directory %s: %w", path, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", path)
	}

	luaFiles = sortedLuaFiles(luaFiles)
	for i, f := range luaFiles {
		luaFiles[i] = filepath.Join(path, f)
	}
	return luaFiles, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Balance files must not reseed; sessions stay reproducible from their seed.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
			tbl.RawSetString("random", lua.LNil)
		}
	}
}
