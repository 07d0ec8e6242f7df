// Package progress works out which rungs of the progression ladder a zone
// selection can support.
package progress

import (
	"github.com/nathoo/apworld/types"
	"github.com/zyedidia/generic/mapset"
)

// Achievable returns the ladder locations whose region set for branch is
// contained in selected, in ladder order. Growing selected never removes an
// entry.
func Achievable(ladder []types.MilestoneDef, branch int, selected mapset.Set[string]) []string {
	var out []string
	for _, m := range ladder {
		if covered(m, branch, selected) {
			out = append(out, m.Location)
		}
	}
	return out
}

// MaxIndex returns the highest milestone index achievable, or 0.
func MaxIndex(ladder []types.MilestoneDef, branch int, selected mapset.Set[string]) int {
	highest := 0
	for _, m := range ladder {
		if covered(m, branch, selected) && m.Index > highest {
			highest = m.Index
		}
	}
	return highest
}

// Compute bundles Achievable and MaxIndex for one selection.
func Compute(ladder []types.MilestoneDef, sel types.Selection) types.Progress {
	selected := mapset.New[string]()
	for _, r := range sel.Selected {
		selected.Put(r)
	}
	for _, r := range sel.Structural {
		selected.Put(r)
	}
	return types.Progress{
		Milestones: Achievable(ladder, sel.Branch, selected),
		Cap:        MaxIndex(ladder, sel.Branch, selected),
	}
}

func covered(m types.MilestoneDef, branch int, selected mapset.Set[string]) bool {
	for _, r := range m.Regions[branch] {
		if !selected.Has(r) {
			return false
		}
	}
	return true
}
