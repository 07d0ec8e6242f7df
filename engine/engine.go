// Package engine runs world generation and provides the Step() explorer
// that answers questions about a generated world.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nathoo/apworld/engine/build"
	"github.com/nathoo/apworld/engine/graph"
	"github.com/nathoo/apworld/engine/progress"
	"github.com/nathoo/apworld/engine/rules"
	"github.com/nathoo/apworld/engine/zones"
	"github.com/nathoo/apworld/internal/logger"
	"github.com/nathoo/apworld/options"
	"github.com/nathoo/apworld/types"
)

// ErrInvalidOptions wraps option validation failures.
var ErrInvalidOptions = errors.New("invalid options")

// Generate runs the whole pipeline once: validate options, select zones,
// compute the progression cap, materialize the graph, attach rules and
// number the result. Any failure aborts the run; nothing is retried.
func Generate(d *graph.Defs, opts types.Options, rng *RNG, log *slog.Logger) (*types.World, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := options.Validate(opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if rng == nil {
		rng = NewRNG(opts.Seed)
	}

	runID := uuid.NewString()
	log = logger.WithRunID(log, runID).With("game", d.Game.Title, "seed", rng.Seed())

	sel, err := zones.Select(d, opts, rng, log)
	if err != nil {
		logger.WithError(log, err).Error("generation aborted")
		return nil, err
	}

	prog := progress.Compute(d.Ladder, sel)
	w := build.Build(d, sel, prog, opts)
	rules.Apply(d, w, opts)

	w.RunID = runID
	w.ProgressItems = prog.Cap
	if start, ok := d.Region(sel.Start); ok && start.Requires != "" {
		w.StartingItems = []string{start.Requires}
	}
	w.LocationIDs = map[string]int{}
	for _, r := range w.Regions {
		for _, loc := range r.Locations {
			if loc.Code != 0 {
				w.LocationIDs[loc.Name] = loc.Code
			}
		}
	}
	w.ItemIDs = d.ItemIDs()
	w.SlotData = slotData(sel, opts)

	if err := checkVictory(w); err != nil {
		logger.WithError(log, err).Error("generation aborted")
		return nil, err
	}

	log.Info("world generated",
		"regions", len(w.Regions),
		"entrances", len(w.Entrances),
		"locations", len(w.LocationIDs),
		"progress_items", w.ProgressItems)

	return w, nil
}

// checkVictory verifies the terminal location was materialized and holds the
// victory item.
func checkVictory(w *types.World) error {
	for _, r := range w.Regions {
		for _, loc := range r.Locations {
			if loc.Name == w.Victory {
				if w.VictoryItem != "" && loc.Locked != w.VictoryItem {
					return fmt.Errorf("victory location %q is not locked to %q", w.Victory, w.VictoryItem)
				}
				return nil
			}
		}
	}
	return fmt.Errorf("victory location %q was not materialized", w.Victory)
}

func slotData(sel types.Selection, opts types.Options) map[string]any {
	sd := map[string]any{
		"Alliance":               sel.Branch,
		"Objective":              string(sel.Objective),
		"ZoneQuestsEnabled":      opts.ZoneQuests,
		"WayshrineChecksEnabled": opts.Wayshrines,
		"AlternateUnlocks":       opts.AltUnlocks,
		"SkillSize":              opts.SkillSize,
		"SelectedZones":          sel.Selected,
	}
	if sel.Goal != "" {
		sd["GoalZone"] = sel.Goal
	}
	return sd
}

// IsConfigError reports whether err is a fatal configuration problem the
// player can fix by changing options.
func IsConfigError(err error) bool {
	var ce *zones.ConfigError
	return errors.As(err, &ce) || errors.Is(err, ErrInvalidOptions)
}
