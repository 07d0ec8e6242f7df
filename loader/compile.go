// Package loader loads Lua world definitions into Go structs. The Lua VM is
// discarded after loading; nothing Lua survives into generation.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/apworld/types"
	lua "github.com/yuin/gopher-lua"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// stringList converts a Lua array of strings. Non-strings are skipped.
func stringList(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// intMap converts a Lua table of string -> number.
func intMap(tbl *lua.LTable) map[string]int {
	if tbl == nil {
		return nil
	}
	m := map[string]int{}
	tbl.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		if n, ok := v.(lua.LNumber); ok {
			m[string(ks)] = int(n)
		}
	})
	return m
}

// branchMap converts a Lua table of branch id -> region list. Branch ids
// start at 0, so the table is read as a hash, not an array.
func branchMap(tbl *lua.LTable) (map[int][]string, error) {
	if tbl == nil {
		return nil, nil
	}
	m := map[int][]string{}
	var err error
	tbl.ForEach(func(k, v lua.LValue) {
		n, ok := k.(lua.LNumber)
		if !ok {
			err = fmt.Errorf("branch key %v is not a number", k)
			return
		}
		list, ok := v.(*lua.LTable)
		if !ok {
			err = fmt.Errorf("branch %d regions must be a list", int(n))
			return
		}
		m[int(n)] = stringList(list)
	})
	return m, err
}

// compile converts all collected Lua data into a world definition.
func compile(coll *collector) (types.WorldDef, error) {
	var w types.WorldDef

	if coll.world == nil {
		return w, fmt.Errorf("no World{} definition found")
	}
	w.Game = compileGame(coll.world)

	for _, tbl := range coll.branches {
		w.Branches = append(w.Branches, types.BranchDef{
			ID:    getInt(tbl, "id"),
			Name:  getString(tbl, "name"),
			Start: getString(tbl, "start"),
		})
	}

	for _, raw := range coll.regions {
		w.Regions = append(w.Regions, compileRegion(raw))
	}
	for _, raw := range coll.locations {
		w.Locations = append(w.Locations, compileLocation(raw))
	}
	for _, raw := range coll.items {
		w.Items = append(w.Items, compileItem(raw))
	}

	for i, raw := range coll.milestones {
		regions, err := branchMap(getTable(raw.table, "regions"))
		if err != nil {
			return w, fmt.Errorf("compiling milestone %s: %w", raw.name, err)
		}
		index := i
		if v := raw.table.RawGetString("index"); v != lua.LNil {
			index = getInt(raw.table, "index")
		}
		w.Ladder = append(w.Ladder, types.MilestoneDef{Location: raw.name, Regions: regions, Index: index})
	}

	for _, raw := range coll.finalQuests {
		loc := getString(raw.table, "location")
		if loc == "" {
			return w, fmt.Errorf("final quest of region %s has no location", raw.name)
		}
		if w.FinalQuests == nil {
			w.FinalQuests = map[string]string{}
		}
		w.FinalQuests[raw.name] = loc
		if prereqs := stringList(getTable(raw.table, "prereqs")); len(prereqs) > 0 {
			if w.QuestPrereqs == nil {
				w.QuestPrereqs = map[string][]string{}
			}
			w.QuestPrereqs[raw.name] = prereqs
		}
	}

	for _, tbl := range coll.guards {
		w.Guards = append(w.Guards, types.EdgeGuard{
			From:     getString(tbl, "from"),
			To:       getString(tbl, "to"),
			Branch:   getInt(tbl, "branch"),
			WithItem: getBool(tbl, "with_item", false),
		})
	}
	for _, tbl := range coll.convergence {
		w.Convergence = append(w.Convergence, types.Convergence{
			Region:        getString(tbl, "region"),
			Progress:      getInt(tbl, "progress"),
			BranchRegions: getBool(tbl, "branch_regions", false),
		})
	}
	for _, tbl := range coll.bands {
		w.Bands = append(w.Bands, types.IDBand{
			Name:  getString(tbl, "name"),
			Kinds: stringList(getTable(tbl, "kinds")),
			Min:   getInt(tbl, "min"),
			Max:   getInt(tbl, "max"),
		})
	}

	return w, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:        getString(tbl, "title"),
		Root:         getString(tbl, "root"),
		Hub:          getString(tbl, "hub"),
		ProgressItem: getString(tbl, "progress_item"),
		VictoryItem:  getString(tbl, "victory_item"),
		Victory:      getString(tbl, "victory"),
	}
}

// compileRegion defaults the category to the region's own name.
func compileRegion(raw named) types.RegionDef {
	category := getString(raw.table, "category")
	if category == "" {
		category = raw.name
	}
	return types.RegionDef{
		Name:       raw.name,
		Category:   category,
		Exits:      stringList(getTable(raw.table, "exits")),
		Requires:   getString(raw.table, "requires"),
		Structural: getBool(raw.table, "structural", false),
	}
}

func compileLocation(raw named) types.LocationDef {
	return types.LocationDef{
		Name:     raw.name,
		Category: getString(raw.table, "category"),
		Code:     getInt(raw.table, "code"),
		Kind:     getString(raw.table, "kind"),
		Skills:   intMap(getTable(raw.table, "skills")),
		Requires: stringList(getTable(raw.table, "requires")),
	}
}

// compileItem defaults the classification to filler.
func compileItem(raw named) types.ItemDef {
	class := getString(raw.table, "class")
	if class == "" {
		class = types.ClassFiller
	}
	return types.ItemDef{
		Name:           raw.name,
		Category:       getString(raw.table, "category"),
		Code:           getInt(raw.table, "code"),
		Classification: class,
		Quantity:       getInt(raw.table, "quantity"),
		Weight:         getInt(raw.table, "weight"),
	}
}

// sortedLuaFiles returns .lua files with world.lua first and the rest
// sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var worldFile string
	var others []string
	for _, f := range files {
		if f == "world.lua" {
			worldFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if worldFile != "" {
		return append([]string{worldFile}, others...)
	}
	return others
}
