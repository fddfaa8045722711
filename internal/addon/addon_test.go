package addon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDottedID(t *testing.T) {
	assert.Equal(t, "constants", DottedID("constants.hcl"))
	assert.Equal(t, "operators.keyframe_jump", DottedID("operators/keyframe_jump.hcl"))
	assert.Equal(t, "ui.pies.align", DottedID("ui/pies/align.hcl"))

	// Round trip.
	assert.Equal(t, "ui/pies/align.hcl", IDToPath("ui.pies.align"))
}

func TestLoadState_String(t *testing.T) {
	assert.Equal(t, "discovered", StateDiscovered.String())
	assert.Equal(t, "registered", StateRegistered.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "skipped", StateSkipped.String())

	assert.False(t, StateImported.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.True(t, StateSkipped.Terminal())
}

func TestLoadManifest(t *testing.T) {
	t.Run("valid manifest", func(t *testing.T) {
		root := t.TempDir()
		src := `
addon {
  name    = "graph_monkey"
  version = "0.10.0"
  modules = ["constants", "operators.*"]
}
`
		require.NoError(t, os.WriteFile(filepath.Join(root, ManifestFileName), []byte(src), 0o644))

		m, err := LoadManifest(root)
		require.NoError(t, err)
		assert.Equal(t, "graph_monkey", m.Name)
		assert.Equal(t, "0.10.0", m.Version)
		assert.Equal(t, []string{"constants", "operators.*"}, m.Modules)
	})

	t.Run("missing manifest", func(t *testing.T) {
		_, err := LoadManifest(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("empty module patterns", func(t *testing.T) {
		root := t.TempDir()
		src := `
addon {
  name    = "empty"
  modules = []
}
`
		require.NoError(t, os.WriteFile(filepath.Join(root, ManifestFileName), []byte(src), 0o644))

		_, err := LoadManifest(root)
		assert.ErrorContains(t, err, "no module patterns")
	})
}
