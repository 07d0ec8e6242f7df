package worlds

import (
	"testing"

	"github.com/nathoo/apworld/worlds/duck"
	"github.com/nathoo/apworld/worlds/eso"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{"eso", eso.Title},
		{"ESO", eso.Title},
		{"Elder Scrolls Online", eso.Title},
		{"duck", duck.Title},
		{" duck life 4 ", duck.Title},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup(%q) error: %v", tt.name, err)
			}
			if d.Game.Title != tt.title {
				t.Errorf("Title = %q, want %q", d.Game.Title, tt.title)
			}
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, err := Lookup("zelda"); err == nil {
		t.Error("expected error for unknown world")
	}
}

func TestLookup_Cached(t *testing.T) {
	a, err := Lookup("eso")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Lookup("Elder Scrolls Online")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("expected the same compiled world for both names")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "duck" || names[1] != "eso" {
		t.Errorf("Names() = %v, want [duck eso]", names)
	}
}
