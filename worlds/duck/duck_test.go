package duck

import (
	"testing"

	"github.com/nathoo/apworld/types"
)

func TestNew_Validates(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if got := len(d.Zones()); got != 6 {
		t.Errorf("zones = %d, want 6", got)
	}
	if len(d.Ladder) != 0 || len(d.FinalQuests) != 0 {
		t.Error("expected no ladder and no final quests")
	}
}

func TestDefinition_IDs(t *testing.T) {
	w := Definition()
	if len(w.Locations) != 41 {
		t.Fatalf("locations = %d, want 41", len(w.Locations))
	}
	for i, l := range w.Locations {
		if l.Code != i+1 {
			t.Errorf("%s id = %d, want %d", l.Name, l.Code, i+1)
		}
	}
	if len(w.Items) != 21 {
		t.Fatalf("items = %d, want 21", len(w.Items))
	}
	for i, it := range w.Items {
		if it.Code != i+1 {
			t.Errorf("%s id = %d, want %d", it.Name, it.Code, i+1)
		}
	}
}

func TestDefinition_VolcanoNeedsKeys(t *testing.T) {
	w := Definition()
	for _, l := range w.Locations {
		if l.Name != Victory {
			continue
		}
		if l.Kind != types.KindTournament {
			t.Errorf("kind = %q", l.Kind)
		}
		if len(l.Requires) != 3 {
			t.Errorf("Requires = %v, want three keys", l.Requires)
		}
		if l.Skills[Running] != 150 || l.Skills[Energy] != 150 {
			t.Errorf("Skills = %v, want level 150", l.Skills)
		}
		return
	}
	t.Fatalf("victory location %q missing", Victory)
}
