// Package save implements JSON serialization of explorer sessions and of
// generated worlds.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/nathoo/apworld/engine/rules"
	"github.com/nathoo/apworld/types"
)

// FormatVersion is bumped when SaveData changes shape.
const FormatVersion = 1

// SaveData is the JSON-serializable session format. A world is regenerated
// from its options, so only the options and the inventory are stored.
type SaveData struct {
	Version    int            `json:"version"`
	Game       string         `json:"game"`
	RunID      string         `json:"run_id"`
	Options    types.Options  `json:"options"`
	Inventory  map[string]int `json:"inventory"`
	CommandLog []string       `json:"command_log"`
}

// Save serializes an explorer session to JSON bytes.
func Save(opts types.Options, runID string, inventory map[string]int, log []string) ([]byte, error) {
	data := SaveData{
		Version:    FormatVersion,
		Game:       opts.Game,
		RunID:      runID,
		Options:    opts,
		Inventory:  inventory,
		CommandLog: log,
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	if sd.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported save version %d", sd.Version)
	}
	// Ensure maps are never nil after load.
	if sd.Inventory == nil {
		sd.Inventory = map[string]int{}
	}
	if sd.CommandLog == nil {
		sd.CommandLog = []string{}
	}
	return &sd, nil
}

// Spoiler is the JSON export of a generated world handed to the host.
type Spoiler struct {
	Game          string            `json:"game"`
	RunID         string            `json:"run_id"`
	Seed          int64             `json:"seed"`
	Start         string            `json:"start"`
	Goal          string            `json:"goal,omitempty"`
	Victory       string            `json:"victory"`
	VictoryItem   string            `json:"victory_item"`
	ProgressItems int               `json:"progress_items"`
	StartingItems []string          `json:"starting_items"`
	Warnings      []string          `json:"warnings,omitempty"`
	Regions       []SpoilerRegion   `json:"regions"`
	Entrances     []SpoilerEntrance `json:"entrances"`
	LocationIDs   map[string]int    `json:"location_ids"`
	ItemIDs       map[string]int    `json:"item_ids"`
	SlotData      map[string]any    `json:"slot_data"`
}

// SpoilerRegion is one materialized region.
type SpoilerRegion struct {
	Name      string            `json:"name"`
	Locations []SpoilerLocation `json:"locations"`
}

// SpoilerLocation is one materialized location with its rule rendered.
type SpoilerLocation struct {
	Name   string `json:"name"`
	ID     int    `json:"id,omitempty"`
	Rule   string `json:"rule"`
	Locked string `json:"locked,omitempty"`
}

// SpoilerEntrance is one materialized entrance with its rule rendered.
type SpoilerEntrance struct {
	Name string `json:"name"`
	Rule string `json:"rule"`
}

// Export renders a generated world as indented JSON.
func Export(w *types.World) ([]byte, error) {
	sp := Spoiler{
		Game:          w.Game,
		RunID:         w.RunID,
		Seed:          w.Selection.Seed,
		Start:         w.Selection.Start,
		Goal:          w.Selection.Goal,
		Victory:       w.Victory,
		VictoryItem:   w.VictoryItem,
		ProgressItems: w.ProgressItems,
		StartingItems: w.StartingItems,
		Warnings:      w.Selection.Warnings,
		LocationIDs:   w.LocationIDs,
		ItemIDs:       w.ItemIDs,
		SlotData:      w.SlotData,
	}
	for _, r := range w.Regions {
		sr := SpoilerRegion{Name: r.Name, Locations: []SpoilerLocation{}}
		for _, loc := range r.Locations {
			sr.Locations = append(sr.Locations, SpoilerLocation{
				Name:   loc.Name,
				ID:     loc.Code,
				Rule:   rules.Describe(loc.Rule),
				Locked: loc.Locked,
			})
		}
		sp.Regions = append(sp.Regions, sr)
	}
	for _, e := range w.Entrances {
		sp.Entrances = append(sp.Entrances, SpoilerEntrance{Name: e.Name, Rule: rules.Describe(e.Rule)})
	}
	return json.MarshalIndent(sp, "", "  ")
}
