package inmemoryhost

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/addonloadgo/internal/host"
)

func TestAddClass(t *testing.T) {
	h := New()
	ctx := context.Background()

	opID := host.ClassID{Kind: "operator", Name: "jump"}
	require.NoError(t, h.AddClass(ctx, opID, "class-a"))

	class, ok := h.Class(opID)
	require.True(t, ok)
	assert.Equal(t, "class-a", class)

	t.Run("duplicate id is rejected", func(t *testing.T) {
		err := h.AddClass(ctx, opID, "class-b")
		var dupErr *host.DuplicateClassError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, opID, dupErr.ID)
	})

	t.Run("same name under another kind is distinct", func(t *testing.T) {
		assert.NoError(t, h.AddClass(ctx, host.ClassID{Kind: "panel", Name: "jump"}, "class-c"))
	})
}

func TestRemoveClass(t *testing.T) {
	h := New()
	ctx := context.Background()

	id := host.ClassID{Kind: "keymap", Name: "graph_editor"}
	require.NoError(t, h.AddClass(ctx, id, "binding"))
	require.NoError(t, h.RemoveClass(ctx, id))

	_, ok := h.Class(id)
	assert.False(t, ok)

	err := h.RemoveClass(ctx, id)
	var unknownErr *host.UnknownClassError
	require.ErrorAs(t, err, &unknownErr)
}

func TestClasses_PreservesRegistrationOrder(t *testing.T) {
	h := New()
	ctx := context.Background()

	ids := []host.ClassID{
		{Kind: "operator", Name: "c"},
		{Kind: "operator", Name: "a"},
		{Kind: "panel", Name: "b"},
	}
	for _, id := range ids {
		require.NoError(t, h.AddClass(ctx, id, nil))
	}

	assert.Equal(t, ids, h.Classes())

	require.NoError(t, h.RemoveClass(ctx, ids[1]))
	assert.Equal(t, []host.ClassID{ids[0], ids[2]}, h.Classes())
}
