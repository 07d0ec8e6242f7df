package graph

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nathoo/apworld/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// validate checks the compiled defs for referential integrity and consistency.
func validate(d *Defs) error {
	ve := &ValidationError{}

	if d.Game.Title == "" {
		ve.errorf("Game.Title is required")
	}

	// Root must exist and be structural.
	if d.Game.Root == "" {
		ve.errorf("Game.Root is required")
	} else if r, ok := d.Region(d.Game.Root); !ok {
		ve.errorf("root region %q not found in defined regions", d.Game.Root)
	} else if !r.Structural {
		ve.errorf("root region %q must be structural", d.Game.Root)
	}
	if d.Game.Hub != "" {
		if r, ok := d.Region(d.Game.Hub); !ok {
			ve.errorf("hub region %q not found in defined regions", d.Game.Hub)
		} else if !r.Structural {
			ve.errorf("hub region %q must be structural", d.Game.Hub)
		}
	}

	// Region names unique, exits resolve.
	seen := map[string]bool{}
	for _, r := range d.Regions {
		if seen[r.Name] {
			ve.errorf("duplicate region %q", r.Name)
		}
		seen[r.Name] = true
		for _, to := range r.Exits {
			if _, ok := d.Region(to); !ok {
				ve.errorf("region %q exit points to undefined region %q", r.Name, to)
			}
		}
		if r.Requires != "" && len(d.Items) > 0 {
			if _, ok := d.Item(r.Requires); !ok {
				ve.errorf("region %q requires undefined item %q", r.Name, r.Requires)
			}
		}
	}

	if len(d.Branches) == 0 {
		ve.errorf("at least one branch is required")
	}
	for _, b := range d.Branches {
		r, ok := d.Region(b.Start)
		switch {
		case !ok:
			ve.errorf("branch %d start region %q not found", b.ID, b.Start)
		case r.Structural:
			ve.errorf("branch %d start region %q is structural", b.ID, b.Start)
		}
	}

	// Location names unique; categories hosted somewhere.
	categories := map[string]bool{}
	for _, r := range d.Regions {
		categories[r.Category] = true
	}
	locSeen := map[string]bool{}
	for _, l := range d.Locations {
		if locSeen[l.Name] {
			ve.errorf("duplicate location %q", l.Name)
		}
		locSeen[l.Name] = true
		if !categories[l.Category] {
			ve.warnf("location %q category %q is not hosted by any region", l.Name, l.Category)
		}
		for _, it := range l.Requires {
			if _, ok := d.Item(it); !ok {
				ve.errorf("location %q requires undefined item %q", l.Name, it)
			}
		}
		for it, lvl := range l.Skills {
			if _, ok := d.Item(it); !ok {
				ve.errorf("location %q skill references undefined item %q", l.Name, it)
			}
			if lvl < 1 {
				ve.errorf("location %q skill %q level %d must be positive", l.Name, it, lvl)
			}
		}
	}

	if d.Game.Victory != "" {
		if _, ok := d.Location(d.Game.Victory); !ok {
			ve.errorf("victory location %q not found", d.Game.Victory)
		}
	}
	if d.Game.VictoryItem != "" && len(d.Items) > 0 {
		if _, ok := d.Item(d.Game.VictoryItem); !ok {
			ve.errorf("victory item %q not found", d.Game.VictoryItem)
		}
	}
	if len(d.Ladder) > 0 && d.Game.ProgressItem == "" {
		ve.errorf("a progression ladder needs Game.ProgressItem")
	}

	for _, m := range d.Ladder {
		if _, ok := d.Location(m.Location); !ok {
			ve.errorf("milestone %q not found in locations", m.Location)
		}
		for branch, regions := range m.Regions {
			for _, r := range regions {
				if _, ok := d.Region(r); !ok {
					ve.errorf("milestone %q branch %d references undefined region %q", m.Location, branch, r)
				}
			}
		}
	}

	for region, loc := range d.FinalQuests {
		if _, ok := d.Region(region); !ok {
			ve.errorf("final quest region %q not found", region)
		}
		if _, ok := d.Location(loc); !ok {
			ve.errorf("final quest %q of region %q not found in locations", loc, region)
		}
	}
	for region, prereqs := range d.QuestPrereqs {
		if _, ok := d.FinalQuests[region]; !ok {
			ve.warnf("region %q has quest prerequisites but no final quest", region)
		}
		for _, p := range prereqs {
			if _, ok := d.Region(p); !ok {
				ve.errorf("region %q quest prerequisite %q not found", region, p)
			}
		}
	}

	for _, g := range d.Guards {
		r, ok := d.Region(g.From)
		if !ok || !contains(r.Exits, g.To) {
			ve.errorf("guard %q -> %q does not match a declared exit", g.From, g.To)
		}
	}
	for _, c := range d.Convergence {
		if _, ok := d.Region(c.Region); !ok {
			ve.errorf("convergence region %q not found", c.Region)
		}
	}

	checkBands(d, ve)

	for _, w := range ve.Warnings {
		slog.Warn("world definition", "world", d.Game.Title, "warning", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// checkBands verifies identifiers are unique per namespace and fall inside
// their category's band, and that bands do not overlap.
func checkBands(d *Defs, ve *ValidationError) {
	for i, a := range d.Bands {
		if a.Min > a.Max {
			ve.errorf("band %q has min %d above max %d", a.Name, a.Min, a.Max)
		}
		for _, b := range d.Bands[i+1:] {
			if a.Min <= b.Max && b.Min <= a.Max {
				ve.errorf("bands %q and %q overlap", a.Name, b.Name)
			}
		}
	}

	locCodes := map[int]string{}
	for _, l := range d.Locations {
		if l.Code == 0 {
			continue
		}
		if prev, dup := locCodes[l.Code]; dup {
			ve.errorf("locations %q and %q share id %d", prev, l.Name, l.Code)
		}
		locCodes[l.Code] = l.Name
		if band, ok := bandFor(d.Bands, l.Kind); ok && (l.Code < band.Min || l.Code > band.Max) {
			ve.errorf("location %q id %d outside %q band [%d, %d]", l.Name, l.Code, band.Name, band.Min, band.Max)
		}
	}

	itemCodes := map[int]string{}
	for _, it := range d.Items {
		if it.Code == 0 {
			continue
		}
		if prev, dup := itemCodes[it.Code]; dup {
			ve.errorf("items %q and %q share id %d", prev, it.Name, it.Code)
		}
		itemCodes[it.Code] = it.Name
		if band, ok := bandFor(d.Bands, "item"); ok && (it.Code < band.Min || it.Code > band.Max) {
			ve.errorf("item %q id %d outside item band [%d, %d]", it.Name, it.Code, band.Min, band.Max)
		}
	}
}

func bandFor(bands []types.IDBand, kind string) (types.IDBand, bool) {
	for _, b := range bands {
		if contains(b.Kinds, kind) {
			return b, true
		}
	}
	return types.IDBand{}, false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
