package rules

import (
	"github.com/nathoo/apworld/engine/graph"
	"github.com/nathoo/apworld/types"
	"github.com/zyedidia/generic/mapset"
)

// Apply attaches a requirement to every entrance and gated location of w and
// locks the victory item on the terminal location.
func Apply(d *graph.Defs, w *types.World, opts types.Options) {
	branch := w.Selection.Branch
	present := mapset.New[string]()
	for _, r := range w.Regions {
		present.Put(r.Name)
	}

	for _, e := range w.Entrances {
		e.Rule = entranceRule(d, w, branch, present, e.From, e.To)
	}

	for _, r := range w.Regions {
		for _, loc := range r.Locations {
			loc.Rule = locationRule(d, w, opts, branch, present, loc.Name)
			if loc.Name == w.Victory && w.VictoryItem != "" {
				loc.Locked = w.VictoryItem
			}
		}
	}
}

// entranceRule resolves an edge in order: branch guard, convergence gate,
// then the destination's own entry item.
func entranceRule(d *graph.Defs, w *types.World, branch int, present mapset.Set[string], from, to string) types.Requirement {
	entry := regionItem(d, to)

	if g, ok := d.Guard(from, to); ok {
		if g.WithItem {
			return AllOf(BranchIs(branch, g.Branch), entry)
		}
		return BranchIs(branch, g.Branch)
	}

	if c, ok := d.ConvergenceInto(to); ok {
		terms := []types.Requirement{entry}
		if c.BranchRegions && len(d.Ladder) > 0 {
			for _, r := range d.Ladder[0].Regions[branch] {
				if present.Has(r) {
					terms = append(terms, regionItem(d, r))
				}
			}
		}
		if n := min(c.Progress, w.Progress.Cap); n > 0 && w.ProgressItem != "" {
			terms = append(terms, Has(w.ProgressItem, n))
		}
		return AllOf(terms...)
	}

	return entry
}

// locationRule conjoins every gate that applies to one location.
func locationRule(d *graph.Defs, w *types.World, opts types.Options, branch int, present mapset.Set[string], name string) types.Requirement {
	def, ok := d.Location(name)
	if !ok {
		return Always()
	}
	var terms []types.Requirement

	if m, ok := d.Milestone(name); ok {
		for _, r := range m.Regions[branch] {
			if present.Has(r) {
				terms = append(terms, regionItem(d, r))
			}
		}
		if m.Index > 0 && w.ProgressItem != "" {
			terms = append(terms, Has(w.ProgressItem, m.Index))
		}
	}

	if region, ok := d.IsFinalQuest(name); ok {
		for _, p := range d.QuestPrereqs[region] {
			terms = append(terms, regionItem(d, p))
		}
	}

	if len(def.Skills) > 0 {
		terms = append(terms, SkillTier(def.Skills, opts.SkillSize))
	}

	if opts.AltUnlocks {
		for _, item := range def.Requires {
			terms = append(terms, Has(item, 1))
		}
	}

	return AllOf(terms...)
}

func regionItem(d *graph.Defs, region string) types.Requirement {
	r, ok := d.Region(region)
	if !ok || r.Requires == "" {
		return Always()
	}
	return Has(r.Requires, 1)
}
