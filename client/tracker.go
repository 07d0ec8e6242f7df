package client

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// ErrCharacterSwitched is returned once the SavedVariables belong to a
// different character than the one the tracker locked onto.
var ErrCharacterSwitched = errors.New("character switched; restart the client or unlock")

// Tracker turns successive snapshots into newly completed location ids. It
// locks onto the first character it sees and ignores all others.
type Tracker struct {
	charID  string
	paused  bool
	checked mapset.Set[int]
	log     *slog.Logger
}

// NewTracker creates a tracker that has seen nothing.
func NewTracker(log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{checked: mapset.New[int](), log: log}
}

// Character returns the locked character id, "" before the first snapshot.
func (t *Tracker) Character() string { return t.charID }

// Paused reports whether a character switch stopped the tracker.
func (t *Tracker) Paused() bool { return t.paused }

// Observe diffs a snapshot against everything already reported and returns
// the new location ids in ascending order.
func (t *Tracker) Observe(s *State) ([]int, error) {
	if t.charID == "" {
		t.charID = s.CharID
		t.log.Info("locked to character", "char_id", s.CharID)
	} else if s.CharID != t.charID {
		if !t.paused {
			t.paused = true
			t.log.Warn("character switched, client paused", "locked", t.charID, "seen", s.CharID)
		}
		return nil, ErrCharacterSwitched
	}

	var fresh []int
	for _, id := range s.LocationIDs() {
		if !t.checked.Has(id) {
			t.checked.Put(id)
			fresh = append(fresh, id)
		}
	}
	sort.Ints(fresh)
	return fresh, nil
}

// MarkChecked records ids the server already knows about.
func (t *Tracker) MarkChecked(ids ...int) {
	for _, id := range ids {
		t.checked.Put(id)
	}
}

// forget un-reports ids whose delivery failed so the next poll retries them.
func (t *Tracker) forget(ids []int) {
	for _, id := range ids {
		t.checked.Remove(id)
	}
}

// Unlock drops the character lock; the next snapshot locks again.
func (t *Tracker) Unlock() {
	t.charID = ""
	t.paused = false
}
