// Package zones selects the subset of regions one generation run uses.
//
// The selector pins the starting zone, fixes or draws a goal, pulls in the
// goal's prerequisites and the shortest path to the objective, pads the
// selection with random extras up to the requested count and finally drops
// anything the start cannot reach. Any broken constraint aborts the run with
// a *ConfigError; soft shortfalls are returned as warnings.
package zones

import (
	"fmt"
	"log/slog"

	"github.com/nathoo/apworld/engine/graph"
	"github.com/nathoo/apworld/engine/pathfind"
	"github.com/nathoo/apworld/types"
	"github.com/zyedidia/generic/mapset"
)

// Random is the seeded source threaded through every randomized decision.
type Random interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Select runs the zone selection for one player.
func Select(d *graph.Defs, opts types.Options, rng Random, log *slog.Logger) (types.Selection, error) {
	if log == nil {
		log = slog.Default()
	}

	branch, ok := d.Branch(opts.Branch)
	if !ok {
		return types.Selection{}, configErr("alliance", fmt.Sprint(opts.Branch), ErrUnknownBranch)
	}
	view := d.ViewFor(branch.ID)

	pool, err := allowedPool(d, opts)
	if err != nil {
		return types.Selection{}, err
	}

	sel := types.Selection{
		Seed:      opts.Seed,
		Branch:    branch.ID,
		Objective: opts.Objective,
		Start:     branch.Start,
	}

	required := graph.SetOf(branch.Start)

	switch opts.Objective {
	case types.ObjectiveCampaign, "":
		sel.Objective = types.ObjectiveCampaign
		if d.Game.Victory == "" {
			return types.Selection{}, configErr("objective", string(types.ObjectiveCampaign), ErrUnsupported)
		}
		terminal, ok := d.RegionOf(d.Game.Victory)
		if !ok {
			return types.Selection{}, configErr("objective", string(types.ObjectiveCampaign), ErrUnsupported)
		}
		sel.Terminal = terminal
		sel.TerminalLocation = d.Game.Victory
		if m, ok := d.Milestone(d.Game.Victory); ok {
			for _, r := range m.Regions[branch.ID] {
				required.Put(r)
			}
		} else if len(d.Ladder) > 0 {
			for _, r := range d.Ladder[len(d.Ladder)-1].Regions[branch.ID] {
				required.Put(r)
			}
		}
		required.Put(terminal)

	case types.ObjectiveZoneQuest:
		if len(d.FinalQuests) == 0 {
			return types.Selection{}, configErr("objective", string(types.ObjectiveZoneQuest), ErrUnsupported)
		}
		goal, err := chooseGoal(d, opts, branch.Start, pool, rng)
		if err != nil {
			return types.Selection{}, err
		}
		sel.Goal = goal
		sel.Terminal = goal
		sel.TerminalLocation = d.FinalQuests[goal]
		required.Put(goal)
		for _, p := range d.QuestPrereqs[goal] {
			required.Put(p)
		}

	default:
		return types.Selection{}, configErr("objective", string(opts.Objective), ErrUnsupported)
	}

	allowed := mapset.New[string]()
	pool.Each(func(z string) { allowed.Put(z) })
	for _, s := range d.StructuralRegions() {
		allowed.Put(s)
	}

	for _, r := range d.Ordered(required) {
		if !allowed.Has(r) {
			return types.Selection{}, configErr("exclude_zones", r, ErrRequiredExcluded)
		}
	}

	// Terminal first, then every other required zone, each joined to the
	// start by a shortest path.
	targets := append([]string{sel.Terminal}, d.Ordered(required)...)
	for _, target := range targets {
		path, ok := pathfind.FindPath(view, branch.Start, target, allowed)
		if !ok {
			return types.Selection{}, configErr("goal_zone", target,
				fmt.Errorf("%w from %s", ErrNoPath, branch.Start))
		}
		for _, n := range path {
			required.Put(n)
		}
	}

	selected := mapset.New[string]()
	required.Each(func(r string) { selected.Put(r) })

	if opts.ZoneCount <= 0 {
		pool.Each(func(z string) { selected.Put(z) })
	} else {
		extend(d, opts.ZoneCount, pool, selected, rng, &sel, log)
	}

	for _, s := range d.StructuralRegions() {
		selected.Put(s)
	}

	reach := pathfind.ReachableFrom(view, branch.Start, selected)
	for _, z := range d.Ordered(selected) {
		if reach.Has(z) || view.Structural(z) {
			continue
		}
		switch {
		case z == sel.Goal:
			return types.Selection{}, configErr("goal_zone", z, ErrGoalUnreachable)
		case required.Has(z):
			return types.Selection{}, configErr("include_zones", z, ErrRequiredUnreachable)
		}
		selected.Remove(z)
		warn(&sel, log, fmt.Sprintf("dropped %s: unreachable from %s", z, branch.Start))
	}
	if sel.Goal != "" && !selected.Has(sel.Goal) {
		return types.Selection{}, configErr("goal_zone", sel.Goal, ErrGoalUnreachable)
	}

	for _, r := range d.Ordered(selected) {
		if view.Structural(r) {
			sel.Structural = append(sel.Structural, r)
		} else {
			sel.Selected = append(sel.Selected, r)
		}
	}
	sel.Required = d.Ordered(required)

	log.Info("zones selected",
		"start", sel.Start,
		"goal", sel.Goal,
		"terminal", sel.Terminal,
		"required", len(sel.Required),
		"selected", len(sel.Selected))

	return sel, nil
}

// allowedPool is the inclusion list (or every zone) minus exclusions.
func allowedPool(d *graph.Defs, opts types.Options) (mapset.Set[string], error) {
	known := graph.SetOf(d.Zones()...)

	pool := mapset.New[string]()
	if len(opts.IncludeZones) == 0 {
		for _, z := range d.Zones() {
			pool.Put(z)
		}
	}
	for _, z := range opts.IncludeZones {
		if !known.Has(z) {
			return pool, configErr("include_zones", z, ErrUnknownZone)
		}
		pool.Put(z)
	}
	for _, z := range opts.ExcludeZones {
		if !known.Has(z) {
			return pool, configErr("exclude_zones", z, ErrUnknownZone)
		}
		pool.Remove(z)
	}
	if pool.Size() == 0 {
		return pool, configErr("include_zones", "", ErrEmptyPool)
	}
	return pool, nil
}

// chooseGoal resolves the goal zone. The start check comes before any pool
// lookup, and a random draw never picks the start.
func chooseGoal(d *graph.Defs, opts types.Options, start string, pool mapset.Set[string], rng Random) (string, error) {
	goal := opts.GoalZone
	if goal != "" && goal != types.GoalRandom {
		if goal == start {
			return "", configErr("goal_zone", goal, ErrGoalIsStart)
		}
		if _, ok := d.FinalQuests[goal]; !ok {
			if _, known := d.Region(goal); !known {
				return "", configErr("goal_zone", goal, ErrUnknownZone)
			}
			return "", configErr("goal_zone", goal, ErrUnsupported)
		}
		if !pool.Has(goal) {
			return "", configErr("goal_zone", goal, ErrGoalNotInPool)
		}
		return goal, nil
	}

	var candidates []string
	for _, z := range d.Ordered(pool) {
		if _, ok := d.FinalQuests[z]; ok && z != start {
			candidates = append(candidates, z)
		}
	}
	if len(candidates) == 0 {
		return "", configErr("goal_zone", types.GoalRandom, ErrEmptyPool)
	}
	return candidates[rng.Intn(len(candidates))], nil
}

// extend pads selected with shuffled extras from pool until it holds target
// zones. It never removes anything, so a target below the required size is
// met by the required set alone.
func extend(d *graph.Defs, target int, pool, selected mapset.Set[string], rng Random, sel *types.Selection, log *slog.Logger) {
	count := 0
	selected.Each(func(z string) {
		if pool.Has(z) {
			count++
		}
	})
	if count >= target {
		return
	}

	var extras []string
	for _, z := range d.Ordered(pool) {
		if !selected.Has(z) {
			extras = append(extras, z)
		}
	}
	rng.Shuffle(len(extras), func(i, j int) { extras[i], extras[j] = extras[j], extras[i] })

	for _, z := range extras {
		if count >= target {
			break
		}
		selected.Put(z)
		count++
	}
	if count < target {
		warn(sel, log, fmt.Sprintf("zone_count %d exceeds the %d zones available", target, count))
	}
}

func warn(sel *types.Selection, log *slog.Logger, msg string) {
	sel.Warnings = append(sel.Warnings, msg)
	log.Warn("zone selection", "warning", msg)
}
