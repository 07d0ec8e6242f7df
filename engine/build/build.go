// Package build materializes the regions, locations and entrances of one
// zone selection. Access rules are attached afterwards by package rules.
package build

import (
	"github.com/nathoo/apworld/engine/graph"
	"github.com/nathoo/apworld/types"
	"github.com/zyedidia/generic/mapset"
)

// EntranceName is the deterministic name of the edge from -> to.
func EntranceName(from, to string) string {
	return from + " -> " + to
}

// Build instantiates every selected and structural region in declaration
// order, attaches the locations that survive filtering and wires one entrance
// per declared exit whose endpoints were both materialized.
func Build(d *graph.Defs, sel types.Selection, prog types.Progress, opts types.Options) *types.World {
	present := mapset.New[string]()
	for _, r := range sel.Structural {
		present.Put(r)
	}
	for _, r := range sel.Selected {
		present.Put(r)
	}
	milestones := graph.SetOf(prog.Milestones...)

	w := &types.World{
		Game:         d.Game.Title,
		Root:         d.Game.Root,
		Selection:    sel,
		Progress:     prog,
		Victory:      sel.TerminalLocation,
		VictoryItem:  d.Game.VictoryItem,
		ProgressItem: d.Game.ProgressItem,
	}

	byName := map[string]*types.Region{}
	for _, def := range d.Regions {
		if !present.Has(def.Name) {
			continue
		}
		region := &types.Region{Name: def.Name, Category: def.Category}
		for _, loc := range d.LocationsIn(def.Category) {
			if !keep(d, loc, sel, opts, present, milestones) {
				continue
			}
			region.Locations = append(region.Locations, &types.Location{
				Name:   loc.Name,
				Region: def.Name,
				Kind:   loc.Kind,
				Code:   loc.Code,
			})
		}
		byName[def.Name] = region
		w.Regions = append(w.Regions, region)
	}

	for _, def := range d.Regions {
		from, ok := byName[def.Name]
		if !ok {
			continue
		}
		for _, to := range def.Exits {
			if _, ok := byName[to]; !ok {
				continue
			}
			e := &types.Entrance{Name: EntranceName(def.Name, to), From: def.Name, To: to}
			from.Exits = append(from.Exits, e)
			w.Entrances = append(w.Entrances, e)
		}
	}

	return w
}

// keep applies the per-location filters. The terminal location always
// survives so the victory token has somewhere to go.
func keep(d *graph.Defs, loc types.LocationDef, sel types.Selection, opts types.Options, present, milestones mapset.Set[string]) bool {
	if loc.Name == sel.TerminalLocation {
		return true
	}
	switch loc.Kind {
	case types.KindWayshrine:
		if !opts.Wayshrines {
			return false
		}
	case types.KindZoneQuest:
		if !opts.ZoneQuests {
			return false
		}
	}
	if _, ok := d.Milestone(loc.Name); ok && !milestones.Has(loc.Name) {
		return false
	}
	if region, ok := d.IsFinalQuest(loc.Name); ok {
		for _, p := range d.QuestPrereqs[region] {
			if !present.Has(p) {
				return false
			}
		}
	}
	return true
}
