// Package duck defines the Duck Life 4 world: six fixed regions around the
// Grasslands hub with skill-tiered races and no zone selection to speak of.
package duck

import (
	"fmt"

	"github.com/nathoo/apworld/engine/graph"
	"github.com/nathoo/apworld/types"
)

// Title is the game name the host knows this world by.
const Title = "Duck Life 4"

// Well-known names.
const (
	Menu        = "Menu"
	Grasslands  = "Grasslands"
	VictoryItem = "Victory"
	Victory     = "Volcano - Tournament Won"
)

// Skill level items.
const (
	Energy   = "Energy Level"
	Running  = "Running Level"
	Swimming = "Swimming Level"
	Flying   = "Flying Level"
	Climbing = "Climbing Level"
	Jumping  = "Jumping Level"
)

type region struct {
	name   string
	access string   // entry item, "" for the hub
	base   int      // skill level the region's first race asks for
	skills []string // skills its races test
	races  []string // side race opponents
	unlock []string // tournament ticket or keys
}

var regions = []region{
	{Grasslands, "", 10, []string{Running},
		[]string{"Olive", "Brown"}, []string{"Grasslands Tournament Ticket"}},
	{"Swamp", "Swamp Access", 30, []string{Swimming, Running},
		[]string{"Grey", "Red", "Blue"}, []string{"Swamp Tournament Ticket"}},
	{"Mountains", "Mountains Access", 55, []string{Climbing, Running},
		[]string{"Green", "Yellow", "White"}, []string{"Mountains Tournament Ticket"}},
	{"Glacier", "Glacier Access", 80, []string{Flying, Swimming},
		[]string{"Black Spotted", "Grey", "White"}, []string{"Glacier Tournament Ticket"}},
	{"City", "City Access", 105, []string{Jumping, Running, Flying},
		[]string{"Purple", "Green", "Yellow"}, []string{"City Tournament Ticket"}},
	{"Volcano", "Volcano Access", 130, []string{Running, Swimming, Flying, Climbing, Jumping},
		[]string{"Black", "Lilac", "Light Blue"}, []string{"Red Key", "Orange Key", "Green Key"}},
}

// New compiles the world definition.
func New() (*graph.Defs, error) {
	return graph.New(Definition())
}

// Definition builds the raw world definition. Location and item ids are
// separate namespaces starting at 1.
func Definition() types.WorldDef {
	w := types.WorldDef{
		Game: types.GameDef{
			Title:       Title,
			Root:        Menu,
			VictoryItem: VictoryItem,
			Victory:     Victory,
		},
		Branches: []types.BranchDef{{ID: 0, Name: "Duck", Start: Grasslands}},
	}

	w.Regions = append(w.Regions, types.RegionDef{
		Name: Menu, Category: Menu, Exits: []string{Grasslands}, Structural: true,
	})
	hub := types.RegionDef{Name: Grasslands, Category: Grasslands}
	for _, r := range regions[1:] {
		hub.Exits = append(hub.Exits, r.name)
	}
	w.Regions = append(w.Regions, hub)
	for _, r := range regions[1:] {
		w.Regions = append(w.Regions, types.RegionDef{
			Name:     r.name,
			Category: r.name,
			Exits:    []string{Grasslands},
			Requires: r.access,
		})
	}

	code := 1
	for _, r := range regions {
		for i, opp := range r.races {
			w.Locations = append(w.Locations, types.LocationDef{
				Name:     fmt.Sprintf("%s - %s Duck Race Won", r.name, opp),
				Category: r.name,
				Code:     code,
				Kind:     types.KindSideRace,
				Skills:   levels(r.skills[:1], r.base+5*i),
			})
			code++
		}
	}
	// Tournament ids follow every side race.
	for _, r := range regions {
		for race := 1; race <= 3; race++ {
			skills := levels(r.skills, r.base+5*race)
			skills[Energy] = r.base
			w.Locations = append(w.Locations, types.LocationDef{
				Name:     fmt.Sprintf("%s - Tournament Race %d Won", r.name, race),
				Category: r.name,
				Code:     code,
				Kind:     types.KindTournament,
				Skills:   skills,
				Requires: r.unlock,
			})
			code++
		}
		skills := levels(r.skills, r.base+20)
		skills[Energy] = r.base + 20
		w.Locations = append(w.Locations, types.LocationDef{
			Name:     r.name + " - Tournament Won",
			Category: r.name,
			Code:     code,
			Kind:     types.KindTournament,
			Skills:   skills,
			Requires: r.unlock,
		})
		code++
	}

	item := 1
	add := func(name, category, class string, qty, weight int) {
		w.Items = append(w.Items, types.ItemDef{
			Name: name, Category: category, Code: item,
			Classification: class, Quantity: qty, Weight: weight,
		})
		item++
	}
	for _, r := range regions[1:] {
		add(r.access, "Region Access", types.ClassProgression, 1, 1)
	}
	for _, r := range regions[:5] {
		add(r.unlock[0], "Ticket", types.ClassProgression, 1, 1)
	}
	for _, k := range regions[5].unlock {
		add(k, "Key", types.ClassProgression, 1, 1)
	}
	for _, s := range []string{Energy, Running, Swimming, Flying, Climbing, Jumping} {
		add(s, "Level", types.ClassProgression, 0, 1)
	}
	add(VictoryItem, "Victory", types.ClassProgression, 0, 1)
	add("Coins", "Filler", types.ClassFiller, 0, 10)

	return w
}

func levels(skills []string, level int) map[string]int {
	m := make(map[string]int, len(skills)+1)
	for _, s := range skills {
		m[s] = level
	}
	return m
}
