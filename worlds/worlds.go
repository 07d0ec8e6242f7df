// Package worlds is the registry of built-in game worlds.
package worlds

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/nathoo/apworld/engine/graph"
	"github.com/nathoo/apworld/worlds/duck"
	"github.com/nathoo/apworld/worlds/eso"
)

type entry struct {
	title string
	build func() (*graph.Defs, error)
}

var registry = map[string]entry{
	"eso":  {eso.Title, eso.New},
	"duck": {duck.Title, duck.New},
}

var (
	mu    sync.Mutex
	cache = map[string]*graph.Defs{}
)

// Lookup returns the compiled world for a short name ("eso") or a title
// ("Elder Scrolls Online"), case-insensitively. Worlds compile once.
func Lookup(name string) (*graph.Defs, error) {
	key, ok := resolve(name)
	if !ok {
		return nil, fmt.Errorf("unknown world %q (known: %s)", name, strings.Join(Names(), ", "))
	}

	mu.Lock()
	defer mu.Unlock()
	if d, ok := cache[key]; ok {
		return d, nil
	}
	d, err := registry[key].build()
	if err != nil {
		return nil, fmt.Errorf("world %s: %w", key, err)
	}
	cache[key] = d
	return d, nil
}

// Names lists the short names of the built-in worlds, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func resolve(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for key, e := range registry {
		if strings.EqualFold(key, name) || strings.EqualFold(e.title, name) {
			return key, true
		}
	}
	return "", false
}
