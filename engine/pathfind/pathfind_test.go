package pathfind

import (
	"reflect"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/zyedidia/generic/mapset"
)

type testGraph struct {
	exits      map[string][]string
	structural map[string]bool
}

func (g testGraph) Exits(n string) []string  { return g.exits[n] }
func (g testGraph) Structural(n string) bool { return g.structural[n] }

func set(names ...string) mapset.Set[string] {
	s := mapset.New[string]()
	for _, n := range names {
		s.Put(n)
	}
	return s
}

func members(s mapset.Set[string]) []string {
	var out []string
	s.Each(func(n string) { out = append(out, n) })
	sort.Strings(out)
	return out
}

// Menu -> A -> B -> C, A -> D -> C, Hub is a structural shortcut A <-> Hub <-> C.
func diamond() testGraph {
	return testGraph{
		exits: map[string][]string{
			"Menu": {"A"},
			"A":    {"B", "D", "Hub"},
			"B":    {"C"},
			"D":    {"C"},
			"Hub":  {"C", "Menu"},
			"C":    {"Hub"},
		},
		structural: map[string]bool{"Menu": true, "Hub": true},
	}
}

func TestFindPath(t *testing.T) {
	g := diamond()
	all := set("Menu", "A", "B", "C", "D", "Hub")

	tests := []struct {
		name    string
		start   string
		goal    string
		allowed mapset.Set[string]
		want    []string
		ok      bool
	}{
		{"first declared shortest path", "A", "C", all, []string{"A", "B", "C"}, true},
		{"detour when B is excluded", "A", "C", set("A", "C", "D"), []string{"A", "D", "C"}, true},
		{"structural hub is not a stepping stone", "A", "C", set("A", "C", "Hub"), nil, false},
		{"structural node may be the goal", "A", "Hub", all, []string{"A", "Hub"}, true},
		{"structural start is expanded", "Menu", "B", all, []string{"Menu", "A", "B"}, true},
		{"start equals goal", "B", "B", all, []string{"B"}, true},
		{"goal outside allowed", "A", "C", set("A", "B"), nil, false},
		{"start outside allowed", "A", "C", set("B", "C"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindPath(g, tt.start, tt.goal, tt.allowed)
			if ok != tt.ok {
				t.Fatalf("FindPath ok = %v, want %v", ok, tt.ok)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindPath = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReachableFrom(t *testing.T) {
	g := diamond()

	tests := []struct {
		name    string
		start   string
		allowed mapset.Set[string]
		want    []string
	}{
		{"everything", "Menu", set("Menu", "A", "B", "C", "D", "Hub"), []string{"A", "B", "C", "D", "Hub", "Menu"}},
		{"hub reached but not expanded", "A", set("A", "Hub", "C"), []string{"A", "Hub"}},
		{"isolated start", "B", set("B"), []string{"B"}},
		{"start not allowed", "A", set("B", "C"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := members(ReachableFrom(g, tt.start, tt.allowed))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReachableFrom = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReachableFrom_Idempotent(t *testing.T) {
	g := diamond()
	subsets := []mapset.Set[string]{
		set("Menu", "A", "B", "C", "D", "Hub"),
		set("A", "C", "Hub"),
		set("A", "D", "C"),
		set("A", "B"),
	}
	for _, s := range subsets {
		once := ReachableFrom(g, "A", s)
		twice := ReachableFrom(g, "A", once)
		if !reflect.DeepEqual(members(once), members(twice)) {
			t.Errorf("ReachableFrom not idempotent: %v then %v", members(once), members(twice))
		}
	}
}

func TestFindPath_NodesAreAdjacent(t *testing.T) {
	g := diamond()
	path, ok := FindPath(g, "Menu", "C", set("Menu", "A", "B", "C", "D", "Hub"))
	if !ok {
		t.Fatal("expected a path from Menu to C")
	}
	for i := 0; i+1 < len(path); i++ {
		found := false
		for _, next := range g.Exits(path[i]) {
			if next == path[i+1] {
				found = true
			}
		}
		if !found {
			t.Errorf("path step %s -> %s is not a declared exit", path[i], path[i+1])
		}
	}
}

func TestReachableFrom_Properties(t *testing.T) {
	g := diamond()
	nodes := []string{"Menu", "A", "B", "C", "D", "Hub"}
	subset := func(mask int) mapset.Set[string] {
		s := mapset.New[string]()
		for i, n := range nodes {
			if mask&(1<<i) != 0 {
				s.Put(n)
			}
		}
		return s
	}

	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("reachability is idempotent", prop.ForAll(
		func(mask int) bool {
			once := ReachableFrom(g, "A", subset(mask))
			twice := ReachableFrom(g, "A", once)
			return reflect.DeepEqual(members(once), members(twice))
		},
		gen.IntRange(0, 1<<len(nodes)-1),
	))

	properties.Property("reachable nodes stay inside the subset", prop.ForAll(
		func(mask int) bool {
			allowed := subset(mask)
			ok := true
			ReachableFrom(g, "A", allowed).Each(func(n string) {
				ok = ok && allowed.Has(n)
			})
			return ok
		},
		gen.IntRange(0, 1<<len(nodes)-1),
	))

	properties.TestingRun(t)
}
