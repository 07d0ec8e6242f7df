package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nathoo/apworld/engine/graph"
	"github.com/nathoo/apworld/types"
)

func TestLoad_TinyWorld(t *testing.T) {
	d, err := Load("testdata/tiny")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if d.Game.Title != "Tiny" {
		t.Errorf("Title = %q, want %q", d.Game.Title, "Tiny")
	}
	if d.Game.Root != "Menu" {
		t.Errorf("Root = %q, want Menu", d.Game.Root)
	}

	// Declaration order survives across files.
	want := []string{"Menu", "A", "B", "C"}
	if len(d.Regions) != len(want) {
		t.Fatalf("regions = %d, want %d", len(d.Regions), len(want))
	}
	for i, r := range d.Regions {
		if r.Name != want[i] {
			t.Errorf("region %d = %q, want %q", i, r.Name, want[i])
		}
	}

	b, _ := d.Region("B")
	if b.Requires != "B Access" || b.Category != "B" {
		t.Errorf("B = %+v", b)
	}
	if len(b.Exits) != 2 || b.Exits[1] != "C" {
		t.Errorf("B exits = %v", b.Exits)
	}

	summit, ok := d.Location("C - Summit")
	if !ok {
		t.Fatal("C - Summit missing")
	}
	if summit.Skills["Running Level"] != 40 {
		t.Errorf("Summit skills = %v", summit.Skills)
	}
	if len(summit.Requires) != 1 || summit.Requires[0] != "Summit Ticket" {
		t.Errorf("Summit requires = %v", summit.Requires)
	}

	if got := d.FinalQuests["B"]; got != "B - Sprint" {
		t.Errorf("final quest of B = %q", got)
	}
	if got := d.QuestPrereqs["B"]; len(got) != 1 || got[0] != "A" {
		t.Errorf("prereqs of B = %v", got)
	}

	coins, ok := d.Item("Coins")
	if !ok {
		t.Fatal("Coins missing")
	}
	if coins.Classification != types.ClassFiller || coins.Weight != 10 {
		t.Errorf("Coins = %+v", coins)
	}
	access, _ := d.Item("C Access")
	if access.Code != 102 {
		t.Errorf("C Access code = %d, want 102", access.Code)
	}
}

func TestLoad_InvalidWorld(t *testing.T) {
	_, err := Load("testdata/broken")
	if err == nil {
		t.Fatal("expected validation error")
	}
	var ve *graph.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %T, want *graph.ValidationError", err)
	}
	if len(ve.Errors) == 0 {
		t.Error("expected at least one validation error")
	}
}

func TestLoad_MissingDir(t *testing.T) {
	if _, err := Load("testdata/does-not-exist"); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestLoad_NoLuaFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected error when no .lua files exist")
	}
}

func TestLoad_NoWorld(t *testing.T) {
	dir := t.TempDir()
	src := `Region "A" { exits = {} }`
	if err := os.WriteFile(filepath.Join(dir, "a.lua"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected error without World{}")
	}
}

func TestLoad_Sandboxed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"dofile", `dofile("/etc/passwd")`},
		{"os", `os.exit(1)`},
		{"io", `io.open("x")`},
		{"random", `local x = math.random(1, 6)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "world.lua"), []byte(tt.src), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(dir); err == nil {
				t.Errorf("expected %s to fail inside the sandbox", tt.name)
			}
		})
	}
}

func TestSortedLuaFiles(t *testing.T) {
	got := sortedLuaFiles([]string{"regions.lua", "items.lua", "world.lua"})
	want := []string{"world.lua", "items.lua", "regions.lua"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sortedLuaFiles()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
