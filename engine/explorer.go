package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nathoo/apworld/engine/graph"
	"github.com/nathoo/apworld/engine/parser"
	"github.com/nathoo/apworld/engine/pathfind"
	"github.com/nathoo/apworld/engine/rules"
	"github.com/nathoo/apworld/engine/state"
	"github.com/nathoo/apworld/types"
)

// Engine holds one generated world and the explorer's inventory.
type Engine struct {
	Defs      *graph.Defs
	Options   types.Options
	World     *types.World
	Inventory state.Inventory
	RNG       *RNG
	Log       []string
}

// New generates a world and opens an explorer on it. The inventory starts
// with the world's starting items.
func New(defs *graph.Defs, opts types.Options, log *slog.Logger) (*Engine, error) {
	rng := NewRNG(opts.Seed)
	w, err := Generate(defs, opts, rng, log)
	if err != nil {
		return nil, err
	}
	return &Engine{
		Defs:      defs,
		Options:   opts,
		World:     w,
		Inventory: state.NewInventory(w.StartingItems...),
		RNG:       rng,
	}, nil
}

// Step processes one explorer command and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result

	// 1. Parse input.
	cmd := parser.Parse(input)

	// 2. Log the command.
	e.Log = append(e.Log, input)

	// 3. Empty input.
	if cmd.Verb == "" {
		result.Output = append(result.Output, "What do you want to know?")
		return result
	}

	// 4. Dispatch.
	switch cmd.Verb {
	case "regions":
		result.Output = e.cmdRegions()
	case "region":
		result.Output = e.cmdRegion(cmd.Object)
	case "rule":
		result.Output, result.Trace = e.cmdRule(cmd.Object)
	case "give":
		result.Output = e.cmdGive(cmd.Object, cmd.Count)
	case "take":
		result.Output = e.cmdTake(cmd.Object, cmd.Count)
	case "reset":
		e.Inventory = state.NewInventory(e.World.StartingItems...)
		result.Output = []string{"Inventory reset to the starting items."}
	case "inventory":
		result.Output = e.cmdInventory()
	case "reach":
		result.Output = e.cmdReach()
	case "checks":
		result.Output = e.cmdChecks()
	case "path":
		result.Output, result.Trace = e.cmdPath(cmd.Object, cmd.Target)
	case "goal":
		result.Output = e.cmdGoal()
	case "ids":
		result.Output = e.cmdIDs()
	default:
		result.Output = append(result.Output, fmt.Sprintf("I don't know how to %q.", cmd.Verb))
	}

	return result
}

// Restore replaces the inventory and command log, as after loading a save.
func (e *Engine) Restore(inv map[string]int, log []string) {
	e.Inventory = state.Inventory{}
	for item, n := range inv {
		e.Inventory.Give(item, n)
	}
	e.Log = append([]string(nil), log...)
}

func (e *Engine) cmdRegions() []string {
	reach := state.Sweep(e.World, e.Inventory)
	out := []string{fmt.Sprintf("%d regions:", len(e.World.Regions))}
	for _, r := range e.World.Regions {
		mark := " "
		if reach.CanReach(r.Name) {
			mark = "*"
		}
		out = append(out, fmt.Sprintf(" %s %s (%d locations)", mark, r.Name, len(r.Locations)))
	}
	out = append(out, "(* reachable with the current inventory)")
	return out
}

func (e *Engine) cmdRegion(name string) []string {
	r := e.findRegion(name)
	if r == nil {
		return []string{fmt.Sprintf("No region called %q in this world.", name)}
	}
	out := []string{r.Name}
	if len(r.Exits) == 0 {
		out = append(out, "  No exits.")
	}
	for _, x := range r.Exits {
		out = append(out, fmt.Sprintf("  -> %s [%s]", x.To, rules.Describe(x.Rule)))
	}
	for _, loc := range r.Locations {
		line := fmt.Sprintf("  * %s [%s]", loc.Name, rules.Describe(loc.Rule))
		if loc.Locked != "" {
			line += " holds " + loc.Locked
		}
		out = append(out, line)
	}
	return out
}

func (e *Engine) cmdRule(name string) ([]string, []string) {
	if name == "" {
		return []string{"Rule for what?"}, nil
	}
	var rule types.Requirement
	var label string
	found := false
	for _, x := range e.World.Entrances {
		if strings.EqualFold(x.Name, name) {
			rule, label, found = x.Rule, x.Name, true
			break
		}
	}
	if !found {
		if loc := e.findLocation(name); loc != nil {
			rule, label, found = loc.Rule, loc.Name, true
		}
	}
	if !found {
		return []string{fmt.Sprintf("No entrance or location called %q.", name)}, nil
	}

	verdict := "closed"
	if rules.Eval(rule, e.Inventory) {
		verdict = "open"
	}
	out := []string{fmt.Sprintf("%s: %s (%s)", label, rules.Describe(rule), verdict)}

	var trace []string
	for _, ic := range rules.Items(rule) {
		trace = append(trace, fmt.Sprintf("[trace] %s: have %d, need %d", ic.Item, e.Inventory.Count(ic.Item), ic.Count))
	}
	return out, trace
}

func (e *Engine) cmdGive(name string, n int) []string {
	item, ok := e.findItem(name)
	if !ok {
		return []string{fmt.Sprintf("No item called %q.", name)}
	}
	if n < 1 {
		n = 1
	}
	e.Inventory.Give(item, n)
	return []string{fmt.Sprintf("Added %d x %s (now %d).", n, item, e.Inventory.Count(item))}
}

func (e *Engine) cmdTake(name string, n int) []string {
	item, ok := e.findItem(name)
	if !ok {
		return []string{fmt.Sprintf("No item called %q.", name)}
	}
	if n < 1 {
		n = 1
	}
	removed := e.Inventory.Take(item, n)
	if removed == 0 {
		return []string{fmt.Sprintf("You don't have any %s.", item)}
	}
	return []string{fmt.Sprintf("Removed %d x %s (now %d).", removed, item, e.Inventory.Count(item))}
}

func (e *Engine) cmdInventory() []string {
	items := e.Inventory.Items()
	if len(items) == 0 {
		return []string{"The inventory is empty."}
	}
	out := []string{"Inventory:"}
	for _, it := range items {
		out = append(out, fmt.Sprintf("  %s x%d", it, e.Inventory.Count(it)))
	}
	return out
}

func (e *Engine) cmdReach() []string {
	reach := state.Sweep(e.World, e.Inventory)
	var names []string
	for _, r := range e.World.Regions {
		if reach.CanReach(r.Name) {
			names = append(names, r.Name)
		}
	}
	return []string{
		fmt.Sprintf("Reachable regions (%d/%d): %s", len(names), len(e.World.Regions), strings.Join(names, ", ")),
		fmt.Sprintf("Accessible locations: %d/%d", len(reach.Locations), e.locationCount()),
	}
}

func (e *Engine) cmdChecks() []string {
	reach := state.Sweep(e.World, e.Inventory)
	if len(reach.Locations) == 0 {
		return []string{"Nothing is accessible yet."}
	}
	out := []string{fmt.Sprintf("Accessible locations (%d):", len(reach.Locations))}
	for _, loc := range reach.Locations {
		out = append(out, fmt.Sprintf("  %s (%s)", loc.Name, loc.Region))
	}
	return out
}

func (e *Engine) cmdPath(from, to string) ([]string, []string) {
	if to == "" {
		to = from
		from = e.World.Selection.Start
	}
	a, b := e.findRegion(from), e.findRegion(to)
	if a == nil || b == nil {
		return []string{fmt.Sprintf("Can't route %q to %q: unknown region.", from, to)}, nil
	}

	allowed := graph.SetOf()
	for _, r := range e.World.Regions {
		allowed.Put(r.Name)
	}
	path, ok := pathfind.FindPath(e.Defs.ViewFor(e.World.Selection.Branch), a.Name, b.Name, allowed)
	if !ok {
		return []string{fmt.Sprintf("No route from %s to %s.", a.Name, b.Name)}, nil
	}

	var trace []string
	for i := 0; i+1 < len(path); i++ {
		for _, x := range e.World.Entrances {
			if x.From == path[i] && x.To == path[i+1] {
				trace = append(trace, fmt.Sprintf("[trace] %s [%s]", x.Name, rules.Describe(x.Rule)))
			}
		}
	}
	return []string{strings.Join(path, " -> ")}, trace
}

func (e *Engine) cmdGoal() []string {
	sel := e.World.Selection
	out := []string{
		fmt.Sprintf("Objective: %s", sel.Objective),
		fmt.Sprintf("Start: %s", sel.Start),
	}
	if sel.Goal != "" {
		out = append(out, fmt.Sprintf("Goal zone: %s", sel.Goal))
	}
	out = append(out, fmt.Sprintf("Victory: %s in %s", e.World.Victory, sel.Terminal))
	if e.World.ProgressItem != "" {
		out = append(out, fmt.Sprintf("%s needed: %d", e.World.ProgressItem, e.World.ProgressItems))
	}
	if state.Beatable(e.World, e.Inventory) {
		out = append(out, "Victory is reachable with the current inventory.")
	} else {
		out = append(out, "Victory is not reachable yet.")
	}
	for _, w := range sel.Warnings {
		out = append(out, "warning: "+w)
	}
	return out
}

func (e *Engine) cmdIDs() []string {
	type entry struct {
		name string
		id   int
	}
	var locs []entry
	for name, id := range e.World.LocationIDs {
		locs = append(locs, entry{name, id})
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i].id < locs[j].id })

	out := []string{fmt.Sprintf("%d location ids, %d item ids", len(e.World.LocationIDs), len(e.World.ItemIDs))}
	for _, l := range locs {
		out = append(out, fmt.Sprintf("  %d  %s", l.id, l.name))
	}
	return out
}

func (e *Engine) locationCount() int {
	n := 0
	for _, r := range e.World.Regions {
		n += len(r.Locations)
	}
	return n
}

func (e *Engine) findRegion(name string) *types.Region {
	for _, r := range e.World.Regions {
		if strings.EqualFold(r.Name, name) {
			return r
		}
	}
	return nil
}

func (e *Engine) findLocation(name string) *types.Location {
	for _, r := range e.World.Regions {
		for _, loc := range r.Locations {
			if strings.EqualFold(loc.Name, name) {
				return loc
			}
		}
	}
	return nil
}

func (e *Engine) findItem(name string) (string, bool) {
	for _, it := range e.Defs.Items {
		if strings.EqualFold(it.Name, name) {
			return it.Name, true
		}
	}
	return "", false
}
