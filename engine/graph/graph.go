// Package graph holds the immutable, indexed form of a world definition.
// Regions live in an arena in declaration order; everything else refers to
// them by name and resolves through the index.
package graph

import (
	"github.com/nathoo/apworld/types"
	"github.com/zyedidia/generic/mapset"
)

// Defs is a compiled world definition. Safe for concurrent readers.
type Defs struct {
	types.WorldDef

	index      map[string]int   // region name -> arena position
	byCategory map[string][]int // category -> location positions
	locIndex   map[string]int
	itemIndex  map[string]int
	guards     map[[2]string]types.EdgeGuard
	converge   map[string]types.Convergence
	ladder     map[string]int // milestone location -> ladder position
}

// New indexes and validates a world definition.
func New(w types.WorldDef) (*Defs, error) {
	d := &Defs{
		WorldDef:   w,
		index:      make(map[string]int, len(w.Regions)),
		byCategory: map[string][]int{},
		locIndex:   make(map[string]int, len(w.Locations)),
		itemIndex:  make(map[string]int, len(w.Items)),
		guards:     map[[2]string]types.EdgeGuard{},
		converge:   map[string]types.Convergence{},
		ladder:     map[string]int{},
	}
	for i, r := range w.Regions {
		if _, dup := d.index[r.Name]; !dup {
			d.index[r.Name] = i
		}
	}
	for i, l := range w.Locations {
		d.byCategory[l.Category] = append(d.byCategory[l.Category], i)
		if _, dup := d.locIndex[l.Name]; !dup {
			d.locIndex[l.Name] = i
		}
	}
	for i, it := range w.Items {
		if _, dup := d.itemIndex[it.Name]; !dup {
			d.itemIndex[it.Name] = i
		}
	}
	for _, g := range w.Guards {
		d.guards[[2]string{g.From, g.To}] = g
	}
	for _, c := range w.Convergence {
		d.converge[c.Region] = c
	}
	for i, m := range w.Ladder {
		d.ladder[m.Location] = i
	}

	if err := validate(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Region returns a region definition by name.
func (d *Defs) Region(name string) (types.RegionDef, bool) {
	i, ok := d.index[name]
	if !ok {
		return types.RegionDef{}, false
	}
	return d.Regions[i], true
}

// Index returns the arena position of a region, or -1.
func (d *Defs) Index(name string) int {
	if i, ok := d.index[name]; ok {
		return i
	}
	return -1
}

// Location returns a location definition by name.
func (d *Defs) Location(name string) (types.LocationDef, bool) {
	i, ok := d.locIndex[name]
	if !ok {
		return types.LocationDef{}, false
	}
	return d.Locations[i], true
}

// LocationsIn returns the locations of one category in declaration order.
func (d *Defs) LocationsIn(category string) []types.LocationDef {
	idx := d.byCategory[category]
	out := make([]types.LocationDef, 0, len(idx))
	for _, i := range idx {
		out = append(out, d.Locations[i])
	}
	return out
}

// RegionOf returns the first region hosting a location's category.
func (d *Defs) RegionOf(location string) (string, bool) {
	loc, ok := d.Location(location)
	if !ok {
		return "", false
	}
	for _, r := range d.Regions {
		if r.Category == loc.Category {
			return r.Name, true
		}
	}
	return "", false
}

// Item returns an item definition by name.
func (d *Defs) Item(name string) (types.ItemDef, bool) {
	i, ok := d.itemIndex[name]
	if !ok {
		return types.ItemDef{}, false
	}
	return d.Items[i], true
}

// Branch returns the branch definition with the given id.
func (d *Defs) Branch(id int) (types.BranchDef, bool) {
	for _, b := range d.Branches {
		if b.ID == id {
			return b, true
		}
	}
	return types.BranchDef{}, false
}

// Guard returns the branch guard on an exit, if any.
func (d *Defs) Guard(from, to string) (types.EdgeGuard, bool) {
	g, ok := d.guards[[2]string{from, to}]
	return g, ok
}

// ConvergenceInto returns the convergence gate on a region, if any.
func (d *Defs) ConvergenceInto(region string) (types.Convergence, bool) {
	c, ok := d.converge[region]
	return c, ok
}

// Milestone returns the ladder entry for a location, if it is one.
func (d *Defs) Milestone(location string) (types.MilestoneDef, bool) {
	i, ok := d.ladder[location]
	if !ok {
		return types.MilestoneDef{}, false
	}
	return d.Ladder[i], true
}

// IsFinalQuest reports whether a location is some region's final quest,
// returning that region.
func (d *Defs) IsFinalQuest(location string) (string, bool) {
	for region, loc := range d.FinalQuests {
		if loc == location {
			return region, true
		}
	}
	return "", false
}

// Zones returns every non-structural region name in declaration order.
func (d *Defs) Zones() []string {
	var out []string
	for _, r := range d.Regions {
		if !r.Structural {
			out = append(out, r.Name)
		}
	}
	return out
}

// StructuralRegions returns every structural region name in declaration order.
func (d *Defs) StructuralRegions() []string {
	var out []string
	for _, r := range d.Regions {
		if r.Structural {
			out = append(out, r.Name)
		}
	}
	return out
}

// Ordered returns the members of set in region declaration order.
func (d *Defs) Ordered(set mapset.Set[string]) []string {
	out := make([]string, 0, set.Size())
	for _, r := range d.Regions {
		if set.Has(r.Name) {
			out = append(out, r.Name)
		}
	}
	return out
}

// View is the traversal graph seen by one branch: exits guarded for other
// branches are hidden.
type View struct {
	defs   *Defs
	branch int
}

// ViewFor returns the traversal view for a branch.
func (d *Defs) ViewFor(branch int) View {
	return View{defs: d, branch: branch}
}

// Exits returns the traversable exits of a region in declaration order.
func (v View) Exits(name string) []string {
	r, ok := v.defs.Region(name)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(r.Exits))
	for _, to := range r.Exits {
		if g, ok := v.defs.Guard(name, to); ok && g.Branch != v.branch {
			continue
		}
		out = append(out, to)
	}
	return out
}

// Structural reports whether a region may not be used as a stepping stone.
func (v View) Structural(name string) bool {
	r, ok := v.defs.Region(name)
	return ok && r.Structural
}

// SetOf builds a set from names.
func SetOf(names ...string) mapset.Set[string] {
	s := mapset.New[string]()
	for _, n := range names {
		s.Put(n)
	}
	return s
}

// LocationIDs maps every location carrying an identifier to it.
func (d *Defs) LocationIDs() map[string]int {
	ids := make(map[string]int, len(d.Locations))
	for _, l := range d.Locations {
		if l.Code != 0 {
			ids[l.Name] = l.Code
		}
	}
	return ids
}

// ItemIDs maps every item carrying an identifier to it.
func (d *Defs) ItemIDs() map[string]int {
	ids := make(map[string]int, len(d.Items))
	for _, it := range d.Items {
		if it.Code != 0 {
			ids[it.Name] = it.Code
		}
	}
	return ids
}
