package dag

import (
	"fmt"
	"sort"
)

// Graph is the directed dependency graph. An edge from A to B means A must
// be loaded before B. The whole pipeline is single-threaded, so the graph
// performs no locking.
type Graph struct {
	nodes map[string]*node
}

// node is a single vertex. It is un-exported to enforce interaction with the
// graph via string ids.
type node struct {
	id string
	// index is the module's discovery index, the deterministic tie-break.
	index int
	// deps holds the nodes this node depends on (predecessors).
	deps map[string]*node
	// dependents holds the nodes that depend on this node (successors).
	dependents map[string]*node
}

// New creates an initialized, empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int { return len(g.nodes) }

// AddNode adds a node with the given id and discovery index. Adding an
// existing id again does nothing.
func (g *Graph) AddNode(id string, index int) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{
		id:         id,
		index:      index,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
}

// AddEdge records that beforeID must be loaded before afterID. An error is
// returned if either node is unknown or the edge is self-referential.
// Duplicate edges (explicit declarations repeating inferred references) are
// collapsed silently.
func (g *Graph) AddEdge(beforeID, afterID string) error {
	if beforeID == afterID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", beforeID, afterID)
	}

	before, ok := g.nodes[beforeID]
	if !ok {
		return fmt.Errorf("source node not found: %s", beforeID)
	}
	after, ok := g.nodes[afterID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", afterID)
	}

	after.deps[beforeID] = before
	before.dependents[afterID] = after
	return nil
}

// Dependencies returns the ids the given node depends on, in discovery order.
func (g *Graph) Dependencies(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedIDs(n.deps), nil
}

// Dependents returns the ids that depend on the given node, in discovery order.
func (g *Graph) Dependents(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedIDs(n.dependents), nil
}

// TransitiveDependents returns every node reachable from id along dependent
// edges, in discovery order. This is the set of modules doomed when id fails.
func (g *Graph) TransitiveDependents(id string) ([]string, error) {
	start, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}

	visited := make(map[string]*node)
	queue := []*node{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for depID, dep := range n.dependents {
			if _, seen := visited[depID]; seen {
				continue
			}
			visited[depID] = dep
			queue = append(queue, dep)
		}
	}

	return sortedIDs(visited), nil
}

// sortedIDs flattens a node set into ids ordered by discovery index.
func sortedIDs(set map[string]*node) []string {
	nodes := make([]*node, 0, len(set))
	for _, n := range set {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].index < nodes[j].index })

	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.id
	}
	return ids
}
