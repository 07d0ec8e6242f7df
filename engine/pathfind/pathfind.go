// Package pathfind answers connectivity questions over a subset of a region
// graph. Structural regions (menu roots, quest hubs) can be reached but are
// never expanded, so they cannot serve as stepping stones.
package pathfind

import "github.com/zyedidia/generic/mapset"

// Graph is the adjacency the searches walk.
type Graph interface {
	Exits(node string) []string
	Structural(node string) bool
}

// FindPath returns the nodes of a shortest path from start to goal using only
// nodes in allowed. Ties go to the first path discovered in exit declaration
// order. The bool is false when goal is unreachable.
func FindPath(g Graph, start, goal string, allowed mapset.Set[string]) ([]string, bool) {
	if !allowed.Has(start) || !allowed.Has(goal) {
		return nil, false
	}
	if start == goal {
		return []string{start}, true
	}

	parent := map[string]string{start: ""}
	queue := []string{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current != start && g.Structural(current) {
			continue
		}

		for _, next := range g.Exits(current) {
			if !allowed.Has(next) {
				continue
			}
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = current
			if next == goal {
				return walkBack(parent, goal), true
			}
			queue = append(queue, next)
		}
	}

	return nil, false
}

// walkBack rebuilds the start..goal path from BFS parent links.
func walkBack(parent map[string]string, goal string) []string {
	var rev []string
	for n := goal; n != ""; n = parent[n] {
		rev = append(rev, n)
	}
	path := make([]string, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}

// ReachableFrom returns every node of allowed reachable from start, start
// included. Structural nodes appear in the result but are not expanded.
func ReachableFrom(g Graph, start string, allowed mapset.Set[string]) mapset.Set[string] {
	reachable := mapset.New[string]()
	if !allowed.Has(start) {
		return reachable
	}

	reachable.Put(start)
	queue := []string{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current != start && g.Structural(current) {
			continue
		}

		for _, next := range g.Exits(current) {
			if allowed.Has(next) && !reachable.Has(next) {
				reachable.Put(next)
				queue = append(queue, next)
			}
		}
	}

	return reachable
}
