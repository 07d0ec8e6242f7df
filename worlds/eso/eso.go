// Package eso defines the Elder Scrolls Online world: twenty-two zones
// across three alliances, a structural menu root and a main quest hub.
package eso

import (
	"github.com/nathoo/apworld/engine/graph"
	"github.com/nathoo/apworld/types"
)

// Title is the game name the host knows this world by.
const Title = "Elder Scrolls Online"

// Identifier bases. Wayshrine ids follow the client's discovery array,
// quest ids the add-on's quest index.
const (
	WayshrineBase = 150_000
	QuestBase     = 151_000
	MainQuestBase = QuestBase + 100
	ItemBase      = 152_000
)

// Item names used by rules.
const (
	ProgressItem = "Progressive Main Quest"
	VictoryItem  = "Victory"
	Victory      = "Main Quest - God of Schemes"
)

// AccessItem names the item that opens a zone.
func AccessItem(zone string) string {
	return zone + " Access"
}

// FinalQuest names a zone's final quest location.
func FinalQuest(zone string) string {
	for _, z := range zones {
		if z.name == zone {
			return zone + " - " + z.finalQuest + " Zone Quest"
		}
	}
	return ""
}

// New compiles the world definition.
func New() (*graph.Defs, error) {
	return graph.New(Definition())
}

// Definition builds the raw world definition.
func Definition() types.WorldDef {
	w := types.WorldDef{
		Game: types.GameDef{
			Title:        Title,
			Root:         Menu,
			Hub:          MainQuest,
			ProgressItem: ProgressItem,
			VictoryItem:  VictoryItem,
			Victory:      Victory,
		},
		FinalQuests:  map[string]string{},
		QuestPrereqs: questPrereqs,
		Convergence: []types.Convergence{
			{Region: Coldharbour, Progress: 10, BranchRegions: true},
		},
		Bands: []types.IDBand{
			{Name: "wayshrine", Kinds: []string{types.KindWayshrine}, Min: WayshrineBase, Max: WayshrineBase + 999},
			{Name: "quest", Kinds: []string{types.KindZoneQuest, types.KindMainQuest}, Min: QuestBase, Max: QuestBase + 999},
			{Name: "item", Kinds: []string{"item"}, Min: ItemBase, Max: ItemBase + 999},
		},
	}

	for _, s := range starts {
		w.Branches = append(w.Branches, types.BranchDef{ID: s.id, Name: s.name, Start: s.start})
		w.Guards = append(w.Guards, types.EdgeGuard{From: Menu, To: s.start, Branch: s.id})
	}
	for _, c := range craglornExits {
		w.Guards = append(w.Guards, types.EdgeGuard{From: Craglorn, To: c.to, Branch: c.branch, WithItem: true})
	}

	w.Regions = append(w.Regions, types.RegionDef{
		Name:       Menu,
		Category:   Menu,
		Exits:      []string{StrosMkai, BleakrockIsle, KhenarthisRoost, MainQuest},
		Structural: true,
	})

	nextItem := ItemBase
	wayshrine := WayshrineBase
	for i, z := range zones {
		w.Regions = append(w.Regions, types.RegionDef{
			Name:     z.name,
			Category: z.name,
			Exits:    z.exits,
			Requires: AccessItem(z.name),
		})
		w.Items = append(w.Items, types.ItemDef{
			Name:           AccessItem(z.name),
			Category:       "Region Access",
			Code:           nextItem,
			Classification: types.ClassProgression,
			Quantity:       1,
		})
		nextItem++

		for _, ws := range z.wayshrines {
			w.Locations = append(w.Locations, types.LocationDef{
				Name:     z.name + " - " + ws + " Wayshrine",
				Category: z.name,
				Code:     wayshrine,
				Kind:     types.KindWayshrine,
			})
			wayshrine++
		}

		quest := FinalQuest(z.name)
		w.Locations = append(w.Locations, types.LocationDef{
			Name:     quest,
			Category: z.name,
			Code:     QuestBase + i,
			Kind:     types.KindZoneQuest,
		})
		w.FinalQuests[z.name] = quest
	}

	w.Regions = append(w.Regions, types.RegionDef{
		Name:       MainQuest,
		Category:   MainQuest,
		Exits:      []string{Menu, Coldharbour},
		Structural: true,
	})

	for i, mq := range mainQuestLadder {
		name := MainQuest + " - " + mq.name
		w.Locations = append(w.Locations, types.LocationDef{
			Name:     name,
			Category: MainQuest,
			Code:     MainQuestBase + i,
			Kind:     types.KindMainQuest,
		})
		w.Ladder = append(w.Ladder, types.MilestoneDef{Location: name, Regions: mq.regions, Index: i})
	}

	w.Items = append(w.Items,
		types.ItemDef{Name: ProgressItem, Category: "Progression", Code: nextItem, Classification: types.ClassProgression, Quantity: len(mainQuestLadder) - 1},
		types.ItemDef{Name: VictoryItem, Category: "Victory", Code: nextItem + 1, Classification: types.ClassProgression},
		types.ItemDef{Name: "Gold", Category: "Filler", Code: nextItem + 2, Classification: types.ClassFiller, Weight: 10},
		types.ItemDef{Name: "Soul Gem", Category: "Filler", Code: nextItem + 3, Classification: types.ClassFiller, Weight: 3},
		types.ItemDef{Name: "Skyshard", Category: "Filler", Code: nextItem + 4, Classification: types.ClassUseful, Weight: 1},
	)

	return w
}
