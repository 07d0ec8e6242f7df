// Package rules derives access requirements for a materialized world and
// evaluates them against an inventory.
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/apworld/types"
)

// Inventory is the query interface requirements are evaluated against.
type Inventory interface {
	Has(item string, count int) bool
}

// Always is the requirement that is always met.
func Always() types.Requirement {
	return types.Requirement{Kind: types.ReqAlways}
}

// Has requires count copies of item.
func Has(item string, count int) types.Requirement {
	if count < 1 {
		count = 1
	}
	return types.Requirement{Kind: types.ReqItem, Item: item, Count: count}
}

// AllOf conjoins terms. Nested conjunctions are flattened and always-true
// terms dropped; a single remaining term is returned as is.
func AllOf(terms ...types.Requirement) types.Requirement {
	var flat []types.Requirement
	for _, t := range terms {
		switch t.Kind {
		case types.ReqAlways, "":
		case types.ReqAllOf:
			flat = append(flat, t.Terms...)
		default:
			flat = append(flat, t)
		}
	}
	switch len(flat) {
	case 0:
		return Always()
	case 1:
		return flat[0]
	}
	return types.Requirement{Kind: types.ReqAllOf, Terms: flat}
}

// SkillTier requires ceil(level/chunk) of each level item. The map is copied.
func SkillTier(skills map[string]int, chunk int) types.Requirement {
	own := make(map[string]int, len(skills))
	for item, level := range skills {
		own[item] = level
	}
	return types.Requirement{Kind: types.ReqSkillTier, Skills: own, Chunk: chunk}
}

// BranchIs opens only when the player's branch equals want.
func BranchIs(branch, want int) types.Requirement {
	return types.Requirement{Kind: types.ReqBranch, Branch: branch, Want: want}
}

// Ceil converts a level into level items at chunk levels per item.
func Ceil(level, chunk int) int {
	if chunk < 1 {
		chunk = 1
	}
	if level < 1 {
		return 0
	}
	return (level + chunk - 1) / chunk
}

// Eval evaluates a requirement against an inventory.
func Eval(r types.Requirement, inv Inventory) bool {
	switch r.Kind {
	case types.ReqAlways, "":
		return true

	case types.ReqItem:
		return inv.Has(r.Item, r.Count)

	case types.ReqAllOf:
		for _, t := range r.Terms {
			if !Eval(t, inv) {
				return false
			}
		}
		return true

	case types.ReqSkillTier:
		for item, level := range r.Skills {
			if !inv.Has(item, Ceil(level, r.Chunk)) {
				return false
			}
		}
		return true

	case types.ReqBranch:
		return r.Branch == r.Want

	default:
		return false
	}
}

// Items lists every item a requirement mentions with the count it needs,
// in a stable order. Branch guards contribute nothing.
func Items(r types.Requirement) []ItemCount {
	var out []ItemCount
	collectItems(r, &out)
	return out
}

// ItemCount is one item demand of a requirement.
type ItemCount struct {
	Item  string
	Count int
}

func collectItems(r types.Requirement, out *[]ItemCount) {
	switch r.Kind {
	case types.ReqItem:
		*out = append(*out, ItemCount{r.Item, r.Count})
	case types.ReqAllOf:
		for _, t := range r.Terms {
			collectItems(t, out)
		}
	case types.ReqSkillTier:
		for _, item := range sortedKeys(r.Skills) {
			*out = append(*out, ItemCount{item, Ceil(r.Skills[item], r.Chunk)})
		}
	}
}

// Describe renders a requirement for people.
func Describe(r types.Requirement) string {
	switch r.Kind {
	case types.ReqAlways, "":
		return "always"
	case types.ReqItem:
		if r.Count > 1 {
			return fmt.Sprintf("%s x%d", r.Item, r.Count)
		}
		return r.Item
	case types.ReqAllOf:
		parts := make([]string, len(r.Terms))
		for i, t := range r.Terms {
			parts[i] = Describe(t)
		}
		return strings.Join(parts, " and ")
	case types.ReqSkillTier:
		parts := make([]string, 0, len(r.Skills))
		for _, item := range sortedKeys(r.Skills) {
			parts = append(parts, fmt.Sprintf("%s x%d (level %d)", item, Ceil(r.Skills[item], r.Chunk), r.Skills[item]))
		}
		return strings.Join(parts, " and ")
	case types.ReqBranch:
		if r.Branch == r.Want {
			return fmt.Sprintf("alliance %d", r.Want)
		}
		return fmt.Sprintf("alliance %d (closed)", r.Want)
	default:
		return "never"
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
