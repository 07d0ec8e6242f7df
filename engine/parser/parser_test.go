package parser

import (
	"testing"

	"github.com/nathoo/apworld/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Command
	}{
		// Empty / whitespace
		{
			name:  "empty string",
			input: "",
			want:  types.Command{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  types.Command{},
		},

		// Basic verbs
		{
			name:  "regions",
			input: "regions",
			want:  types.Command{Verb: "regions"},
		},
		{
			name:  "verb is lowercased",
			input: "REACH",
			want:  types.Command{Verb: "reach"},
		},

		// Aliases
		{
			name:  "i → inventory",
			input: "i",
			want:  types.Command{Verb: "inventory"},
		},
		{
			name:  "x zone → region zone",
			input: "x Stros M'kai",
			want:  types.Command{Verb: "region", Object: "Stros M'kai"},
		},
		{
			name:  "why → rule",
			input: "why Main Quest - The Harborage",
			want:  types.Command{Verb: "rule", Object: "Main Quest - The Harborage"},
		},

		// Counts
		{
			name:  "give with count",
			input: "give Progressive Main Quest 10",
			want:  types.Command{Verb: "give", Object: "Progressive Main Quest", Count: 10},
		},
		{
			name:  "give without count",
			input: "give Auridon Access",
			want:  types.Command{Verb: "give", Object: "Auridon Access"},
		},
		{
			name:  "take with count",
			input: "remove Swimming Level 3",
			want:  types.Command{Verb: "take", Object: "Swimming Level", Count: 3},
		},
		{
			name:  "lone number is the object",
			input: "give 5",
			want:  types.Command{Verb: "give", Object: "5"},
		},
		{
			name:  "numbers are not counts for other verbs",
			input: "rule Grasslands - Tournament Race 1 Won",
			want:  types.Command{Verb: "rule", Object: "Grasslands - Tournament Race 1 Won"},
		},

		// Path
		{
			name:  "path a to b",
			input: "path Khenarthi's Roost to Grahtwood",
			want:  types.Command{Verb: "path", Object: "Khenarthi's Roost", Target: "Grahtwood"},
		},
		{
			name:  "path splits on the last to",
			input: "route On to Glenumbria to Betnikh",
			want:  types.Command{Verb: "path", Object: "On to Glenumbria", Target: "Betnikh"},
		},
		{
			name:  "path without to",
			input: "path Craglorn",
			want:  types.Command{Verb: "path", Object: "Craglorn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
