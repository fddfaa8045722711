package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.Equal(t, 0, g.Len())
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a", 0)
	assert.Equal(t, 1, g.Len())
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.Equal(t, 0, nodeA.index)
	assert.NotNil(t, nodeA.deps)
	assert.NotNil(t, nodeA.dependents)

	g.AddNode("a", 5) // Re-adding keeps the original index.
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, 0, g.nodes["a"].index)

	g.AddNode("b", 1)
	assert.Equal(t, 2, g.Len())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a", 0)
		g.AddNode("b", 1)

		err := g.AddEdge("a", "b") // b depends on a
		require.NoError(t, err)

		deps, err := g.Dependencies("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, deps)

		dependents, err := g.Dependents("a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, dependents)
	})

	t.Run("duplicate edges collapse", func(t *testing.T) {
		g := New()
		g.AddNode("a", 0)
		g.AddNode("b", 1)
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("a", "b"))

		deps, err := g.Dependencies("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, deps)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a", 0)

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge("a", "a")
		assert.ErrorContains(t, err, "self-referential edge")
	})
}

func TestTransitiveDependents(t *testing.T) {
	g := New()
	g.AddNode("a", 0)
	g.AddNode("b", 1)
	g.AddNode("c", 2)
	g.AddNode("d", 3)
	g.AddNode("e", 4)
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "c"))
	require.NoError(t, g.AddEdge("b", "d"))
	// e is independent.

	doomed, err := g.TransitiveDependents("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d"}, doomed)

	doomed, err = g.TransitiveDependents("e")
	require.NoError(t, err)
	assert.Empty(t, doomed)

	_, err = g.TransitiveDependents("dne")
	assert.Error(t, err)
}
