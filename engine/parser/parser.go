// Package parser converts explorer command strings into Command structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strconv"
	"strings"

	"github.com/nathoo/apworld/types"
)

var verbAliases = map[string]string{
	// Listing
	"ls":    "regions",
	"zones": "regions",
	"map":   "regions",

	// Region detail
	"r":       "region",
	"zone":    "region",
	"show":    "region",
	"look":    "region",
	"l":       "region",
	"examine": "region",
	"x":       "region",

	// Rules
	"why":      "rule",
	"requires": "rule",

	// Inventory edits
	"add":    "give",
	"get":    "give",
	"grant":  "give",
	"remove": "take",
	"drop":   "take",
	"inv":    "inventory",
	"i":      "inventory",
	"items":  "inventory",
	"clear":  "reset",

	// Reachability
	"sweep":     "reach",
	"reachable": "reach",
	"locations": "checks",
	"c":         "checks",
	"route":     "path",
	"goto":      "path",
	"status":    "goal",
	"victory":   "goal",
	"codes":     "ids",
}

// Parse converts a raw command string into a Command. The verb is
// lowercased; object and target keep their casing because region and item
// names are matched case-insensitively later. A trailing integer on give or
// take becomes the count.
func Parse(input string) types.Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Command{}
	}

	words := strings.Fields(input)
	verb := strings.ToLower(words[0])
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}
	rest := words[1:]

	cmd := types.Command{Verb: verb}

	if (verb == "give" || verb == "take") && len(rest) > 1 {
		if n, err := strconv.Atoi(rest[len(rest)-1]); err == nil {
			cmd.Count = n
			rest = rest[:len(rest)-1]
		}
	}

	if verb == "path" {
		cmd.Object, cmd.Target = splitOnTo(rest)
		return cmd
	}

	cmd.Object = strings.Join(rest, " ")
	return cmd
}

// splitOnTo splits "<a> to <b>" on the last standalone "to", so names that
// contain the word still parse.
func splitOnTo(words []string) (object, target string) {
	for i := len(words) - 1; i > 0; i-- {
		if strings.EqualFold(words[i], "to") {
			return strings.Join(words[:i], " "), strings.Join(words[i+1:], " ")
		}
	}
	return strings.Join(words, " "), ""
}
