package rules

import (
	"reflect"
	"testing"

	"github.com/nathoo/apworld/types"
)

// bag is a minimal Inventory for tests.
type bag map[string]int

func (b bag) Has(item string, count int) bool { return b[item] >= count }

func TestCeil(t *testing.T) {
	tests := []struct {
		level, chunk, want int
	}{
		{69, 5, 14},
		{70, 5, 14},
		{71, 5, 15},
		{150, 150, 1},
		{1, 150, 1},
		{1, 1, 1},
		{0, 5, 0},
		{10, 0, 10},
	}
	for _, tt := range tests {
		if got := Ceil(tt.level, tt.chunk); got != tt.want {
			t.Errorf("Ceil(%d, %d) = %d, want %d", tt.level, tt.chunk, got, tt.want)
		}
	}
}

func TestAllOf_Flattens(t *testing.T) {
	a, b, c := Has("A", 1), Has("B", 2), Has("C", 1)

	got := AllOf(a, Always(), AllOf(b, c))
	want := types.Requirement{Kind: types.ReqAllOf, Terms: []types.Requirement{a, b, c}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllOf = %+v, want %+v", got, want)
	}
	if got := AllOf(Always(), a); !reflect.DeepEqual(got, a) {
		t.Errorf("AllOf(always, a) = %+v, want %+v", got, a)
	}
	if got := AllOf(); got.Kind != types.ReqAlways {
		t.Errorf("AllOf() kind = %q, want always", got.Kind)
	}
}

func TestHas_MinimumCount(t *testing.T) {
	if got := Has("A", 0).Count; got != 1 {
		t.Errorf("Has(A, 0).Count = %d, want 1", got)
	}
}

func TestSkillTier_CopiesMap(t *testing.T) {
	skills := map[string]int{"Running Level": 10}
	r := SkillTier(skills, 5)
	skills["Running Level"] = 99
	if got := r.Skills["Running Level"]; got != 10 {
		t.Errorf("SkillTier kept a reference to the caller's map: level %d", got)
	}
}

func TestEval(t *testing.T) {
	inv := bag{"A": 1, "Running Level": 14, "Swimming Level": 2}

	tests := []struct {
		name string
		req  types.Requirement
		want bool
	}{
		{"always", Always(), true},
		{"zero value", types.Requirement{}, true},
		{"item held", Has("A", 1), true},
		{"item count short", Has("A", 2), false},
		{"item missing", Has("B", 1), false},
		{"all of met", AllOf(Has("A", 1), Has("Running Level", 3)), true},
		{"all of one missing", AllOf(Has("A", 1), Has("B", 1)), false},
		{"skill tier met", SkillTier(map[string]int{"Running Level": 69}, 5), true},
		{"skill tier short", SkillTier(map[string]int{"Running Level": 71}, 5), false},
		{"skill tier one skill short", SkillTier(map[string]int{"Running Level": 5, "Swimming Level": 15}, 5), false},
		{"skill tier one chunk", SkillTier(map[string]int{"Swimming Level": 150}, 150), true},
		{"branch match", BranchIs(1, 1), true},
		{"branch mismatch", BranchIs(0, 1), false},
		{"branch mismatch ignores items", AllOf(BranchIs(2, 0), Has("A", 1)), false},
		{"unknown kind", types.Requirement{Kind: "nope"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eval(tt.req, inv); got != tt.want {
				t.Errorf("Eval(%s) = %v, want %v", Describe(tt.req), got, tt.want)
			}
		})
	}
}

func TestItems(t *testing.T) {
	r := AllOf(
		Has("Glenumbra Access", 1),
		BranchIs(0, 0),
		SkillTier(map[string]int{"Swimming Level": 30, "Running Level": 12}, 5),
		Has("Progressive Main Quest", 4),
	)
	want := []ItemCount{
		{"Glenumbra Access", 1},
		{"Running Level", 3},
		{"Swimming Level", 6},
		{"Progressive Main Quest", 4},
	}
	if got := Items(r); !reflect.DeepEqual(got, want) {
		t.Errorf("Items = %v, want %v", got, want)
	}
	if got := Items(Always()); got != nil {
		t.Errorf("Items(always) = %v, want nil", got)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		req  types.Requirement
		want string
	}{
		{Always(), "always"},
		{Has("A", 1), "A"},
		{Has("A", 3), "A x3"},
		{AllOf(Has("A", 1), Has("B", 2)), "A and B x2"},
		{SkillTier(map[string]int{"Running Level": 69}, 5), "Running Level x14 (level 69)"},
		{BranchIs(1, 1), "alliance 1"},
		{BranchIs(0, 1), "alliance 1 (closed)"},
		{types.Requirement{Kind: "nope"}, "never"},
	}
	for _, tt := range tests {
		if got := Describe(tt.req); got != tt.want {
			t.Errorf("Describe = %q, want %q", got, tt.want)
		}
	}
}
