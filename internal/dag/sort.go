package dag

import (
	"container/heap"
)

// Sort computes the topological load order with Kahn's algorithm. Ready
// nodes are drained lowest-discovery-index first, so the order is fully
// deterministic for an unchanged module set. If the graph is cyclic, no
// partial order is returned: the error names every full cycle found.
func (g *Graph) Sort() ([]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	ready := &nodeHeap{}
	heap.Init(ready)

	for id, n := range g.nodes {
		indegree[id] = len(n.deps)
		if len(n.deps) == 0 {
			heap.Push(ready, n)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for ready.Len() > 0 {
		n := heap.Pop(ready).(*node)
		order = append(order, n.id)

		for depID, dependent := range n.dependents {
			indegree[depID]--
			if indegree[depID] == 0 {
				heap.Push(ready, dependent)
			}
		}
	}

	if len(order) < len(g.nodes) {
		// The unresolved remainder contains at least one cycle; a correct
		// load plan does not exist.
		remainder := make(map[string]*node)
		for id, n := range g.nodes {
			if indegree[id] > 0 {
				remainder[id] = n
			}
		}
		return nil, &CycleError{Cycles: extractCycles(remainder)}
	}

	return order, nil
}

// nodeHeap is a min-heap of nodes keyed by discovery index.
type nodeHeap []*node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].index < h[j].index }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)         { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}
