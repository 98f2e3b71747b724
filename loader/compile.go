// Package loader loads Lua balance files into Go structs at startup.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"
	"math"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/epicquest/engine/balance"
	"github.com/nathoo/epicquest/types"
)

// fieldReader copies present Lua fields onto Go values, collecting type
// errors instead of stopping at the first one.
type fieldReader struct {
	errs []string
}

func (r *fieldReader) fail(path, format string, args ...any) {
	r.errs = append(r.errs, path+": "+fmt.Sprintf(format, args...))
}

// readInt sets *dst when key is present. Fractional values are rejected.
func (r *fieldReader) readInt(tbl *lua.LTable, path, key string, dst *int) {
	v := tbl.RawGetString(key)
	if v == lua.LNil {
		return
	}
	n, ok := v.(lua.LNumber)
	if !ok {
		r.fail(path+"."+key, "expected number, got %s", v.Type())
		return
	}
	f := float64(n)
	if f != math.Trunc(f) {
		r.fail(path+"."+key, "expected whole number, got %v", f)
		return
	}
	*dst = int(f)
}

// readFloat sets *dst when key is present.
func (r *fieldReader) readFloat(tbl *lua.LTable, path, key string, dst *float64) {
	v := tbl.RawGetString(key)
	if v == lua.LNil {
		return
	}
	n, ok := v.(lua.LNumber)
	if !ok {
		r.fail(path+"."+key, "expected number, got %s", v.Type())
		return
	}
	*dst = float64(n)
}

// readStrings replaces *dst with the array part of a table when key is present.
func (r *fieldReader) readStrings(tbl *lua.LTable, path, key string, dst *[]string) {
	v := tbl.RawGetString(key)
	if v == lua.LNil {
		return
	}
	list, ok := v.(*lua.LTable)
	if !ok {
		r.fail(path+"."+key, "expected list, got %s", v.Type())
		return
	}
	out := make([]string, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		s, ok := list.RawGetInt(i).(lua.LString)
		if !ok {
			r.fail(fmt.Sprintf("%s.%s[%d]", path, key, i), "expected string, got %s", list.RawGetInt(i).Type())
			continue
		}
		out = append(out, string(s))
	}
	*dst = out
}

// readTable returns a nested table, or nil if missing or mistyped.
func (r *fieldReader) readTable(tbl *lua.LTable, path, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if v == lua.LNil {
		return nil
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		r.fail(path+"."+key, "expected table, got %s", v.Type())
		return nil
	}
	return t
}

// compile applies the collected declarations on top of the default balance.
func compile(coll *collector) (*types.Balance, error) {
	b := balance.Default()
	r := &fieldReader{}

	for _, tbl := range coll.tables {
		compileBalance(r, tbl, b)
	}
	b.Enemies = append(b.Enemies, coll.enemies...)
	b.Items = append(b.Items, coll.items...)

	if len(r.errs) > 0 {
		return nil, &ValidationError{Errors: r.errs}
	}
	return b, nil
}

func compileBalance(r *fieldReader, tbl *lua.LTable, b *types.Balance) {
	const path = "Balance"

	if start := r.readTable(tbl, path, "start"); start != nil {
		r.readInt(start, path+".start", "level", &b.StartLevel)
		r.readInt(start, path+".start", "xp_to_next", &b.StartXPToNext)
		r.readInt(start, path+".start", "gold", &b.StartGold)
	}
	r.readFloat(tbl, path, "level_factor", &b.LevelFactor)

	if fight := r.readTable(tbl, path, "fight"); fight != nil {
		r.readInt(fight, path+".fight", "xp", &b.FightXP)
		r.readInt(fight, path+".fight", "gold", &b.FightGold)
	}
	r.readInt(tbl, path, "pool_size", &b.PoolSize)

	r.readStrings(tbl, path, "enemies", &b.Enemies)
	r.readStrings(tbl, path, "items", &b.Items)

	if hunt := r.readTable(tbl, path, "hunt"); hunt != nil {
		compileTemplate(r, hunt, path+".hunt", &b.Hunt)
	}
	if collect := r.readTable(tbl, path, "collect"); collect != nil {
		compileTemplate(r, collect, path+".collect", &b.Collect)
	}
}

func compileTemplate(r *fieldReader, tbl *lua.LTable, path string, tpl *types.QuestTemplate) {
	r.readInt(tbl, path, "min", &tpl.MinCount)
	r.readInt(tbl, path, "max", &tpl.MaxCount)
	r.readInt(tbl, path, "xp_base", &tpl.XPBase)
	r.readInt(tbl, path, "xp_per_level", &tpl.XPPerLevel)
	r.readInt(tbl, path, "gold_base", &tpl.GoldBase)
	r.readInt(tbl, path, "gold_per_level", &tpl.GoldPerLevel)
}

// sortedLuaFiles returns .lua files with balance.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var mainFile string
	var others []string
	for _, f := range files {
		if f == "balance.lua" {
			mainFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if mainFile != "" {
		return append([]string{mainFile}, others...)
	}
	return others
}
