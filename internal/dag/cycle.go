package dag

import (
	"fmt"
	"sort"
	"strings"
)

// CycleError reports that the dependency graph is not acyclic. It names the
// members of every cycle located in the unresolved remainder.
type CycleError struct {
	Cycles [][]string
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Cycles))
	for i, cycle := range e.Cycles {
		parts[i] = strings.Join(append(append([]string{}, cycle...), cycle[0]), " -> ")
	}
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(parts, "; "))
}

// extractCycles names the cycles inside the remainder left behind by Sort.
// Every remainder node has at least one predecessor inside the remainder, so
// walking predecessors from any of them must eventually revisit a node on
// the current path.
func extractCycles(remainder map[string]*node) [][]string {
	// Deterministic iteration: lowest discovery index first.
	start := make([]*node, 0, len(remainder))
	for _, n := range remainder {
		start = append(start, n)
	}
	sort.Slice(start, func(i, j int) bool { return start[i].index < start[j].index })

	visited := make(map[string]bool)
	var cycles [][]string

	for _, n := range start {
		if visited[n.id] {
			continue
		}

		var path []*node
		onPath := make(map[string]int)
		current := n
		for {
			if pos, ok := onPath[current.id]; ok {
				// Closed a loop; the cycle is the path suffix from the
				// first occurrence of current.
				cycle := make([]string, 0, len(path)-pos)
				for _, m := range path[pos:] {
					cycle = append(cycle, m.id)
				}
				cycles = append(cycles, canonicalize(cycle, remainder))
				break
			}
			if visited[current.id] {
				// Ran into a previously explored region; its cycle is
				// already reported.
				break
			}

			onPath[current.id] = len(path)
			path = append(path, current)

			next := lowestRemainderPred(current, remainder)
			if next == nil {
				break
			}
			current = next
		}

		for _, m := range path {
			visited[m.id] = true
		}
	}

	return cycles
}

// lowestRemainderPred picks the predecessor with the lowest discovery index
// that is still inside the remainder.
func lowestRemainderPred(n *node, remainder map[string]*node) *node {
	var best *node
	for id, dep := range n.deps {
		if _, in := remainder[id]; !in {
			continue
		}
		if best == nil || dep.index < best.index {
			best = dep
		}
	}
	return best
}

// canonicalize rotates a cycle so it starts at its lowest-discovery-index
// member and flips it to follow edge direction (A -> B meaning B depends on
// A), keeping cycle reports stable across runs.
func canonicalize(cycle []string, remainder map[string]*node) []string {
	lowest := 0
	for i, id := range cycle {
		if remainder[id].index < remainder[cycle[lowest]].index {
			lowest = i
		}
	}

	// The walk followed predecessors, so reverse to get load-order direction.
	rotated := make([]string, 0, len(cycle))
	for i := 0; i < len(cycle); i++ {
		rotated = append(rotated, cycle[(lowest-i+len(cycle))%len(cycle)])
	}
	return rotated
}
