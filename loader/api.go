package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the catalog constructors as Lua globals. All
// constructors except Game are curried on a numeric id:
//
//	Verb(1) { names = {"quit", "q"}, verb_function = "quit" }
//	Room(1) { name = "kitchen", narrative = 1, exits = {...} }
func registerAPI(L *lua.LState, coll *collector) {
	// Game { intro = "...", prepositions = {...}, ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	curried := func(sink *[]rawDef) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			id := int(L.CheckNumber(1))
			L.Push(L.NewFunction(func(L *lua.LState) int {
				tbl := L.CheckTable(1)
				*sink = append(*sink, rawDef{id: id, table: tbl})
				return 0
			}))
			return 1
		})
	}

	L.SetGlobal("Verb", curried(&coll.verbs))
	L.SetGlobal("Item", curried(&coll.items))
	L.SetGlobal("Subject", curried(&coll.subjects))
	L.SetGlobal("Narrative", curried(&coll.narratives))
	L.SetGlobal("Room", curried(&coll.rooms))
	L.SetGlobal("Event", curried(&coll.events))
}
