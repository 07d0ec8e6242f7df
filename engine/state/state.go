// Package state holds an explorer inventory and computes what it can reach
// in a generated world.
package state

import (
	"sort"

	"github.com/nathoo/apworld/engine/rules"
	"github.com/nathoo/apworld/types"
	"github.com/zyedidia/generic/mapset"
)

// Inventory counts held items. The zero value is not usable; use
// NewInventory.
type Inventory map[string]int

// NewInventory creates an inventory holding one of each given item.
func NewInventory(items ...string) Inventory {
	inv := Inventory{}
	for _, it := range items {
		inv[it]++
	}
	return inv
}

// Has reports whether at least count copies of item are held.
func (inv Inventory) Has(item string, count int) bool {
	return inv[item] >= count
}

// Give adds n copies of item.
func (inv Inventory) Give(item string, n int) {
	if n < 1 {
		return
	}
	inv[item] += n
}

// Take removes up to n copies of item and returns how many were removed.
func (inv Inventory) Take(item string, n int) int {
	held := inv[item]
	if n > held {
		n = held
	}
	if held-n == 0 {
		delete(inv, item)
	} else {
		inv[item] = held - n
	}
	return n
}

// Count returns how many copies of item are held.
func (inv Inventory) Count(item string) int {
	return inv[item]
}

// Items returns held item names sorted alphabetically.
func (inv Inventory) Items() []string {
	out := make([]string, 0, len(inv))
	for it := range inv {
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// Reach is the outcome of a sweep.
type Reach struct {
	Regions   mapset.Set[string]
	Locations []*types.Location // world order
}

// CanReach reports whether a region was reached.
func (r Reach) CanReach(region string) bool {
	return r.Regions.Has(region)
}

// Sweep finds every region reachable from the world root by repeatedly
// crossing entrances whose rule holds for inv, then lists the locations
// in those regions whose own rule holds.
func Sweep(w *types.World, inv rules.Inventory) Reach {
	reached := mapset.New[string]()
	reached.Put(w.Root)

	for changed := true; changed; {
		changed = false
		for _, e := range w.Entrances {
			if reached.Has(e.To) || !reached.Has(e.From) {
				continue
			}
			if rules.Eval(e.Rule, inv) {
				reached.Put(e.To)
				changed = true
			}
		}
	}

	reach := Reach{Regions: reached}
	for _, r := range w.Regions {
		if !reached.Has(r.Name) {
			continue
		}
		for _, loc := range r.Locations {
			if rules.Eval(loc.Rule, inv) {
				reach.Locations = append(reach.Locations, loc)
			}
		}
	}
	return reach
}

// Beatable reports whether the victory location is accessible with inv.
func Beatable(w *types.World, inv rules.Inventory) bool {
	for _, loc := range Sweep(w, inv).Locations {
		if loc.Name == w.Victory {
			return true
		}
	}
	return false
}

// FullInventory holds every item any rule in w mentions, at the highest
// count demanded anywhere, plus the starting items.
func FullInventory(w *types.World) Inventory {
	inv := NewInventory(w.StartingItems...)
	need := func(r types.Requirement) {
		for _, ic := range rules.Items(r) {
			if inv[ic.Item] < ic.Count {
				inv[ic.Item] = ic.Count
			}
		}
	}
	for _, e := range w.Entrances {
		need(e.Rule)
	}
	for _, r := range w.Regions {
		for _, loc := range r.Locations {
			need(loc.Rule)
		}
	}
	return inv
}
