package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the world constructors as globals.
//
// Table constructors take one table: World, Branch, Guard, Convergence, Band.
// Named constructors are curried, Region "Name" { ... }: Region, Location,
// Item, Milestone, FinalQuest.
func registerAPI(L *lua.LState, coll *collector) {
	L.SetGlobal("World", L.NewFunction(func(L *lua.LState) int {
		coll.world = L.CheckTable(1)
		return 0
	}))

	table := func(dst *[]*lua.LTable) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			*dst = append(*dst, L.CheckTable(1))
			return 0
		})
	}
	L.SetGlobal("Branch", table(&coll.branches))
	L.SetGlobal("Guard", table(&coll.guards))
	L.SetGlobal("Convergence", table(&coll.convergence))
	L.SetGlobal("Band", table(&coll.bands))

	curried := func(dst *[]named) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			name := L.CheckString(1)
			L.Push(L.NewFunction(func(L *lua.LState) int {
				*dst = append(*dst, named{name: name, table: L.CheckTable(1)})
				return 0
			}))
			return 1
		})
	}
	L.SetGlobal("Region", curried(&coll.regions))
	L.SetGlobal("Location", curried(&coll.locations))
	L.SetGlobal("Item", curried(&coll.items))
	L.SetGlobal("Milestone", curried(&coll.milestones))
	L.SetGlobal("FinalQuest", curried(&coll.finalQuests))
}
