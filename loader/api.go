package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Item "id" { ... } is curried: Item("id") returns a function that takes a table.
	L.SetGlobal("Item", curried(L, &coll.items))
	L.SetGlobal("Recipe", curried(L, &coll.recipes))
	// Monsters are keyed by display name.
	L.SetGlobal("Monster", curried(L, &coll.monsters))
	L.SetGlobal("NPC", curried(L, &coll.npcs))
	L.SetGlobal("Layer", curried(L, &coll.layers))
	L.SetGlobal("Machine", curried(L, &coll.machines))

	// Atmosphere { "line", "line", ... } may be called more than once.
	L.SetGlobal("Atmosphere", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		for i := 1; i <= tbl.MaxN(); i++ {
			if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
				coll.atmosphere = append(coll.atmosphere, string(s))
			}
		}
		return 0
	}))
}

// curried returns a constructor that records (id, table) pairs into dst
// in call order.
func curried(L *lua.LState, dst *[]rawDef) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		line := L.Where(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			*dst = append(*dst, rawDef{id: id, where: line, table: tbl})
			return 0
		}))
		return 1
	})
}
