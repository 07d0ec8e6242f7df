// Package testworld provides small world definitions for tests.
package testworld

import (
	"fmt"

	"github.com/nathoo/apworld/engine/graph"
	"github.com/nathoo/apworld/types"
)

// Names used by the fixtures.
const (
	Menu    = "Menu"
	Running = "Running Level"
	Victory = "Victory"
	Summit  = "C - Summit"
)

// ABC is the line Menu -> A -> B -> C with A the start and C hosting the
// victory location. B and C have final quests; C's needs B.
func ABC() types.WorldDef {
	return types.WorldDef{
		Game: types.GameDef{
			Title:       "ABC",
			Root:        Menu,
			VictoryItem: Victory,
			Victory:     Summit,
		},
		Branches: []types.BranchDef{{ID: 0, Name: "Walker", Start: "A"}},
		Regions: []types.RegionDef{
			{Name: Menu, Category: Menu, Exits: []string{"A"}, Structural: true},
			{Name: "A", Category: "A", Exits: []string{"B"}, Requires: "A Access"},
			{Name: "B", Category: "B", Exits: []string{"C"}, Requires: "B Access"},
			{Name: "C", Category: "C", Requires: "C Access"},
		},
		Locations: []types.LocationDef{
			{Name: "A - Warmup", Category: "A", Code: 1, Kind: types.KindSideRace},
			{Name: "B - Sprint", Category: "B", Code: 2, Kind: types.KindZoneQuest},
			{Name: Summit, Category: "C", Code: 3, Kind: types.KindZoneQuest,
				Skills: map[string]int{Running: 69}, Requires: []string{"Summit Ticket"}},
		},
		Items: []types.ItemDef{
			{Name: "A Access", Code: 100, Classification: types.ClassProgression, Quantity: 1},
			{Name: "B Access", Code: 101, Classification: types.ClassProgression, Quantity: 1},
			{Name: "C Access", Code: 102, Classification: types.ClassProgression, Quantity: 1},
			{Name: Running, Code: 103, Classification: types.ClassProgression},
			{Name: "Summit Ticket", Code: 104, Classification: types.ClassProgression, Quantity: 1},
			{Name: Victory, Code: 105, Classification: types.ClassProgression},
		},
		FinalQuests:  map[string]string{"B": "B - Sprint", "C": Summit},
		QuestPrereqs: map[string][]string{"C": {"B"}},
	}
}

// StarZones lists the spokes of Star in declaration order.
var StarZones = []string{"B", "C", "D", "E", "F"}

// Star is Menu -> A with A linked both ways to each spoke. Every spoke has
// a final quest; the victory location sits in F.
func Star() types.WorldDef {
	w := types.WorldDef{
		Game: types.GameDef{
			Title:       "Star",
			Root:        Menu,
			VictoryItem: Victory,
			Victory:     "F - Quest",
		},
		Branches:    []types.BranchDef{{ID: 0, Name: "Walker", Start: "A"}},
		FinalQuests: map[string]string{},
		Items: []types.ItemDef{
			{Name: "A Access", Code: 100, Classification: types.ClassProgression, Quantity: 1},
			{Name: Victory, Code: 199, Classification: types.ClassProgression},
		},
	}
	w.Regions = append(w.Regions,
		types.RegionDef{Name: Menu, Category: Menu, Exits: []string{"A"}, Structural: true},
		types.RegionDef{Name: "A", Category: "A", Exits: StarZones, Requires: "A Access"},
	)
	for i, z := range StarZones {
		access := z + " Access"
		quest := z + " - Quest"
		w.Regions = append(w.Regions, types.RegionDef{Name: z, Category: z, Exits: []string{"A"}, Requires: access})
		w.Locations = append(w.Locations, types.LocationDef{Name: quest, Category: z, Code: i + 1, Kind: types.KindZoneQuest})
		w.Items = append(w.Items, types.ItemDef{Name: access, Code: 101 + i, Classification: types.ClassProgression, Quantity: 1})
		w.FinalQuests[z] = quest
	}
	return w
}

// MustNew compiles a fixture, panicking on validation errors.
func MustNew(w types.WorldDef) *graph.Defs {
	d, err := graph.New(w)
	if err != nil {
		panic(fmt.Sprintf("testworld %s: %v", w.Game.Title, err))
	}
	return d
}
