package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderIndex maps each id to its position in the produced order.
func orderIndex(order []string) map[string]int {
	idx := make(map[string]int, len(order))
	for i, id := range order {
		idx[id] = i
	}
	return idx
}

func TestSort_RespectsEdges(t *testing.T) {
	g := New()
	g.AddNode("a", 0)
	g.AddNode("b", 1)
	g.AddNode("c", 2)
	g.AddNode("d", 3)
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "c"))
	require.NoError(t, g.AddEdge("a", "c"))
	require.NoError(t, g.AddEdge("c", "d"))

	order, err := g.Sort()
	require.NoError(t, err)
	require.Len(t, order, 4)

	idx := orderIndex(order)
	assert.Less(t, idx["a"], idx["b"])
	assert.Less(t, idx["b"], idx["c"])
	assert.Less(t, idx["a"], idx["c"])
	assert.Less(t, idx["c"], idx["d"])
}

func TestSort_DiscoveryIndexBreaksTies(t *testing.T) {
	// No edges at all: the order must be exactly the discovery order, not
	// map iteration order.
	g := New()
	g.AddNode("z", 0)
	g.AddNode("m", 1)
	g.AddNode("a", 2)

	order, err := g.Sort()
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "m", "a"}, order)
}

func TestSort_Deterministic(t *testing.T) {
	build := func() *Graph {
		g := New()
		g.AddNode("a", 0)
		g.AddNode("b", 1)
		g.AddNode("c", 2)
		g.AddNode("d", 3)
		g.AddNode("e", 4)
		require.NoError(t, g.AddEdge("a", "c"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "e"))
		return g
	}

	first, err := build().Sort()
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := build().Sort()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSort_TwoNodeCycle(t *testing.T) {
	g := New()
	g.AddNode("a", 0)
	g.AddNode("b", 1)
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "a"))

	order, err := g.Sort()
	assert.Nil(t, order, "no partial order may be produced for a cyclic graph")

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	require.Len(t, cycleErr.Cycles, 1)
	assert.ElementsMatch(t, []string{"a", "b"}, cycleErr.Cycles[0])
	assert.Contains(t, err.Error(), "a")
	assert.Contains(t, err.Error(), "b")
}

func TestSort_CycleInDisjointComponent(t *testing.T) {
	g := New()
	// Component 1 (valid).
	g.AddNode("a", 0)
	g.AddNode("b", 1)
	require.NoError(t, g.AddEdge("a", "b"))
	// Component 2 (three-node cycle).
	g.AddNode("x", 2)
	g.AddNode("y", 3)
	g.AddNode("z", 4)
	require.NoError(t, g.AddEdge("x", "y"))
	require.NoError(t, g.AddEdge("y", "z"))
	require.NoError(t, g.AddEdge("z", "x"))

	order, err := g.Sort()
	assert.Nil(t, order)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	require.Len(t, cycleErr.Cycles, 1)
	assert.ElementsMatch(t, []string{"x", "y", "z"}, cycleErr.Cycles[0])
}

func TestSort_CycleWithAttachedChain(t *testing.T) {
	// d depends on the cycle but is not part of it; it must not be named as
	// a cycle member.
	g := New()
	g.AddNode("a", 0)
	g.AddNode("b", 1)
	g.AddNode("d", 2)
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "a"))
	require.NoError(t, g.AddEdge("a", "d"))

	_, err := g.Sort()
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	require.Len(t, cycleErr.Cycles, 1)
	assert.ElementsMatch(t, []string{"a", "b"}, cycleErr.Cycles[0])
}
