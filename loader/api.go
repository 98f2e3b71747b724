package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the Lua constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Balance { ... } — may be called more than once; later calls win per field.
	L.SetGlobal("Balance", L.NewFunction(func(L *lua.LState) int {
		coll.tables = append(coll.tables, L.CheckTable(1))
		return 0
	}))

	// Enemy "troll" — adds an enemy kind to the roster.
	L.SetGlobal("Enemy", L.NewFunction(func(L *lua.LState) int {
		coll.enemies = append(coll.enemies, L.CheckString(1))
		return 0
	}))

	// Item "amulet" — adds an item kind to the loot table.
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		coll.items = append(coll.items, L.CheckString(1))
		return 0
	}))

	// scale(base, per_level, level) returns base + per_level*level.
	L.SetGlobal("scale", L.NewFunction(func(L *lua.LState) int {
		base := L.CheckNumber(1)
		per := L.CheckNumber(2)
		level := L.CheckNumber(3)
		L.Push(base + per*level)
		return 1
	}))
}
