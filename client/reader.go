// Package client bridges the ESO add-on and a multiworld session: it reads
// the add-on's SavedVariables, turns completions into location ids and
// writes received items back for the add-on to pick up.
package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nathoo/apworld/worlds/eso"
	lua "github.com/yuin/gopher-lua"
)

// Default file names under the game's "live" directory.
const (
	SavedVariablesFile = "SavedVariables/APESO.lua"
	ItemsFile          = "AddOns/APESO/Items.lua"
)

// LiveDir returns the default ESO user directory.
func LiveDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, "Documents", "Elder Scrolls Online", "live"), nil
}

// State is one snapshot of the add-on's SavedVariables.
type State struct {
	Version         int
	CharID          string
	NodeInfo        []bool // wayshrine discovery, 1-based in the file
	CompletedQuests []int  // quest indices completed by CharID, sorted
}

// LocationIDs converts the snapshot into location identifiers.
func (s *State) LocationIDs() []int {
	var ids []int
	for i, done := range s.NodeInfo {
		if done {
			ids = append(ids, eso.WayshrineBase+i)
		}
	}
	for _, q := range s.CompletedQuests {
		ids = append(ids, eso.QuestBase+q)
	}
	sort.Ints(ids)
	return ids
}

// ReadSavedVariables parses a SavedVariables file. The file is executed in a
// bare Lua VM; the fields are found by key wherever the add-on nests them.
func ReadSavedVariables(path string) (*State, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("reading saved variables %s: %w", path, err)
	}

	var roots []*lua.LTable
	L.G.Global.ForEach(func(_, v lua.LValue) {
		if t, ok := v.(*lua.LTable); ok && t != L.G.Global {
			roots = append(roots, t)
		}
	})
	roots = append(roots, L.G.Global)

	s := &State{}
	if v, ok := lookup(roots, "version").(lua.LNumber); ok {
		s.Version = int(v)
	}
	if v, ok := lookup(roots, "CharID").(lua.LString); ok {
		s.CharID = string(v)
	}
	if t, ok := lookup(roots, "NodeInfo").(*lua.LTable); ok {
		s.NodeInfo = boolList(t)
	}
	if t, ok := lookup(roots, "CompletedQuestsByChar").(*lua.LTable); ok && s.CharID != "" {
		if mine, ok := t.RawGetString(s.CharID).(*lua.LTable); ok {
			s.CompletedQuests = trueKeys(mine)
		}
	}
	return s, nil
}

const maxDepth = 6

// lookup returns the first value stored under key in any of the tables,
// searching breadth-first.
func lookup(roots []*lua.LTable, key string) lua.LValue {
	seen := map[*lua.LTable]bool{}
	level := roots
	for depth := 0; depth < maxDepth && len(level) > 0; depth++ {
		var next []*lua.LTable
		for _, t := range level {
			if seen[t] {
				continue
			}
			seen[t] = true
			if v := t.RawGetString(key); v != lua.LNil {
				return v
			}
			t.ForEach(func(_, v lua.LValue) {
				if child, ok := v.(*lua.LTable); ok {
					next = append(next, child)
				}
			})
		}
		level = next
	}
	return lua.LNil
}

// boolList reads a table keyed 1..n. Missing or non-true entries are false.
func boolList(t *lua.LTable) []bool {
	n := 0
	t.ForEach(func(k, _ lua.LValue) {
		if i, ok := k.(lua.LNumber); ok && int(i) > n {
			n = int(i)
		}
	})
	out := make([]bool, n)
	for i := 1; i <= n; i++ {
		out[i-1] = t.RawGet(lua.LNumber(i)) == lua.LTrue
	}
	return out
}

// trueKeys returns the numeric keys whose value is true, sorted.
func trueKeys(t *lua.LTable) []int {
	var out []int
	t.ForEach(func(k, v lua.LValue) {
		if i, ok := k.(lua.LNumber); ok && v == lua.LTrue {
			out = append(out, int(i))
		}
	})
	sort.Ints(out)
	return out
}
