package state

import (
	"reflect"
	"testing"

	"github.com/nathoo/apworld/engine/rules"
	"github.com/nathoo/apworld/types"
)

// lineWorld is Menu -> A -> B with one location per zone. B's location
// needs two Running Level and holds the victory item.
func lineWorld() *types.World {
	warmup := &types.Location{Name: "A - Warmup", Region: "A", Rule: rules.Always()}
	sprint := &types.Location{
		Name:   "B - Sprint",
		Region: "B",
		Rule:   rules.SkillTier(map[string]int{"Running Level": 10}, 5),
		Locked: "Victory",
	}
	menuA := &types.Entrance{Name: "Menu -> A", From: "Menu", To: "A", Rule: rules.Has("A Access", 1)}
	ab := &types.Entrance{Name: "A -> B", From: "A", To: "B", Rule: rules.Has("B Access", 1)}

	return &types.World{
		Root:    "Menu",
		Victory: "B - Sprint",
		Regions: []*types.Region{
			{Name: "Menu", Exits: []*types.Entrance{menuA}},
			{Name: "A", Exits: []*types.Entrance{ab}, Locations: []*types.Location{warmup}},
			{Name: "B", Locations: []*types.Location{sprint}},
		},
		Entrances:     []*types.Entrance{ab, menuA},
		StartingItems: []string{"A Access"},
	}
}

func TestInventory(t *testing.T) {
	inv := NewInventory("A", "A", "B")

	if got := inv.Count("A"); got != 2 {
		t.Errorf("Count(A) = %d, want 2", got)
	}
	if !inv.Has("A", 2) || inv.Has("A", 3) {
		t.Error("Has(A, n) wrong around the held count")
	}

	inv.Give("C", 3)
	inv.Give("C", 0)
	if got := inv.Count("C"); got != 3 {
		t.Errorf("Count(C) = %d, want 3", got)
	}

	if got := inv.Take("C", 5); got != 3 {
		t.Errorf("Take(C, 5) = %d, want 3", got)
	}
	if _, ok := inv["C"]; ok {
		t.Error("emptied item still present")
	}
	if got := inv.Take("Z", 1); got != 0 {
		t.Errorf("Take(Z, 1) = %d, want 0", got)
	}

	if got := inv.Items(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("Items() = %v", got)
	}

	clone := inv.Clone()
	clone.Give("A", 1)
	if inv.Count("A") != 2 {
		t.Error("Clone shares storage with the original")
	}
}

func TestSweep(t *testing.T) {
	w := lineWorld()

	tests := []struct {
		name      string
		inv       Inventory
		regions   []string
		locations int
	}{
		{"empty", NewInventory(), []string{"Menu"}, 0},
		{"starting items", NewInventory("A Access"), []string{"Menu", "A"}, 1},
		{"entrance open, location closed", NewInventory("A Access", "B Access"), []string{"Menu", "A", "B"}, 1},
		{"everything", Inventory{"A Access": 1, "B Access": 1, "Running Level": 2}, []string{"Menu", "A", "B"}, 2},
		{"skips a gap", NewInventory("B Access"), []string{"Menu"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reach := Sweep(w, tt.inv)
			for _, r := range tt.regions {
				if !reach.CanReach(r) {
					t.Errorf("CanReach(%s) = false", r)
				}
			}
			if got := reach.Regions.Size(); got != len(tt.regions) {
				t.Errorf("reached %d regions, want %d", got, len(tt.regions))
			}
			if got := len(reach.Locations); got != tt.locations {
				t.Errorf("accessible locations = %d, want %d", got, tt.locations)
			}
		})
	}
}

func TestBeatable(t *testing.T) {
	w := lineWorld()

	if Beatable(w, NewInventory(w.StartingItems...)) {
		t.Error("beatable with only the starting items")
	}
	full := FullInventory(w)
	want := Inventory{"A Access": 1, "B Access": 1, "Running Level": 2}
	if !reflect.DeepEqual(full, want) {
		t.Errorf("FullInventory = %v, want %v", full, want)
	}
	if !Beatable(w, full) {
		t.Error("not beatable with the full inventory")
	}
}
