package loader

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

// newTestVM creates a sandboxed Lua VM with the API registered and a fresh collector.
func newTestVM() (*lua.LState, *collector) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	coll := &collector{}
	registerAPI(L, coll)
	return L, coll
}

func TestCompile_Milestones(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		World { title = "Ladder", root = "Menu", progress_item = "Step" }
		Milestone "First" { regions = { [0] = { "A" }, [1] = { "B" } } }
		Milestone "Second" { regions = { [0] = { "A", "C" } } }
		Milestone "Skip" { index = 5 }
	`); err != nil {
		t.Fatal(err)
	}

	w, err := compile(coll)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(w.Ladder) != 3 {
		t.Fatalf("ladder = %d, want 3", len(w.Ladder))
	}
	first := w.Ladder[0]
	if first.Index != 0 || len(first.Regions[0]) != 1 || first.Regions[1][0] != "B" {
		t.Errorf("first = %+v", first)
	}
	if got := w.Ladder[1].Index; got != 1 {
		t.Errorf("second index = %d, want 1", got)
	}
	if got := w.Ladder[2].Index; got != 5 {
		t.Errorf("explicit index = %d, want 5", got)
	}
	if w.Game.ProgressItem != "Step" {
		t.Errorf("ProgressItem = %q", w.Game.ProgressItem)
	}
}

func TestCompile_MilestoneBadBranchKey(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		World { title = "Bad" }
		Milestone "First" { regions = { alpha = { "A" } } }
	`); err != nil {
		t.Fatal(err)
	}
	if _, err := compile(coll); err == nil {
		t.Error("expected error for non-numeric branch key")
	}
}

func TestCompile_GuardsAndConvergence(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		World { title = "Gates" }
		Guard { from = "Menu", to = "A", branch = 2 }
		Guard { from = "X", to = "Y", branch = 1, with_item = true }
		Convergence { region = "End", progress = 10, branch_regions = true }
	`); err != nil {
		t.Fatal(err)
	}

	w, err := compile(coll)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Guards) != 2 {
		t.Fatalf("guards = %d, want 2", len(w.Guards))
	}
	if g := w.Guards[0]; g.From != "Menu" || g.To != "A" || g.Branch != 2 || g.WithItem {
		t.Errorf("guard 0 = %+v", g)
	}
	if !w.Guards[1].WithItem {
		t.Error("guard 1 should carry the entry item")
	}
	if c := w.Convergence[0]; c.Region != "End" || c.Progress != 10 || !c.BranchRegions {
		t.Errorf("convergence = %+v", c)
	}
}

func TestCompile_FinalQuestNeedsLocation(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		World { title = "Quests" }
		FinalQuest "A" { prereqs = { "B" } }
	`); err != nil {
		t.Fatal(err)
	}
	if _, err := compile(coll); err == nil {
		t.Error("expected error for final quest without location")
	}
}

func TestCompileRegion_DefaultCategory(t *testing.T) {
	L, coll := newTestVM()
	defer L.Close()

	if err := L.DoString(`
		Region "Swamp" { exits = { "Hub" } }
		Region "Hub" { category = "Grasslands", structural = true }
	`); err != nil {
		t.Fatal(err)
	}

	swamp := compileRegion(coll.regions[0])
	if swamp.Category != "Swamp" {
		t.Errorf("Category = %q, want Swamp", swamp.Category)
	}
	hub := compileRegion(coll.regions[1])
	if hub.Category != "Grasslands" || !hub.Structural {
		t.Errorf("hub = %+v", hub)
	}
}
