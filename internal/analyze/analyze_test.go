package analyze

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/addonloadgo/internal/addon"
)

// analyzeSource writes src as the module's file and runs extraction against
// the given discovered-id set.
func analyzeSource(t *testing.T, src string, id string, discoveredIDs ...string) (*addon.Descriptor, error) {
	t.Helper()
	root := t.TempDir()

	discovered := make(map[string]*addon.Descriptor)
	for i, did := range append([]string{id}, discoveredIDs...) {
		d := &addon.Descriptor{ID: did, Path: addon.IDToPath(did), Index: i, State: addon.StateDiscovered}
		discovered[did] = d
	}

	d := discovered[id]
	full := filepath.Join(root, filepath.FromSlash(d.Path))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(src), 0o644))

	err := Module(context.Background(), hclparse.NewParser(), root, d, discovered)
	return d, err
}

func TestModule_InferredReferences(t *testing.T) {
	src := `
export "step" {
  value = module.constants.default_step * 2
}

operator "jump" {
  label = "Jump"
  group = module.keymap_manager.default_group
}
`
	d, err := analyzeSource(t, src, "operators.jump", "constants", "keymap_manager")
	require.NoError(t, err)
	assert.Equal(t, []string{"constants", "keymap_manager"}, d.Deps)
	assert.Empty(t, d.Requires)
	assert.Equal(t, addon.StateAnalyzed, d.State)
	assert.NotNil(t, d.File)
}

func TestModule_ExplicitRequires(t *testing.T) {
	src := `
requires = ["keymap_manager", "constants"]

export "x" {
  value = 1
}
`
	d, err := analyzeSource(t, src, "ui.pie", "constants", "keymap_manager")
	require.NoError(t, err)
	assert.Equal(t, []string{"keymap_manager", "constants"}, d.Requires)
	assert.Equal(t, []string{"keymap_manager", "constants"}, d.Deps)
}

func TestModule_ExplicitUnionsWithInferred(t *testing.T) {
	src := `
requires = ["constants"]

export "x" {
  value = module.utils.math.clamp_min
}
`
	d, err := analyzeSource(t, src, "ui.pie", "constants", "utils.math")
	require.NoError(t, err)
	assert.Equal(t, []string{"constants", "utils.math"}, d.Deps)
}

func TestModule_LongestPrefixWins(t *testing.T) {
	// Both "b" and "b.x" are discovered; module.b.x.step must resolve to
	// the submodule, not its parent.
	src := `
export "v" {
  value = module.b.x.step
}
`
	d, err := analyzeSource(t, src, "a", "b", "b.x")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.x"}, d.Deps)
}

func TestModule_OutsideReferencesAreNotEdges(t *testing.T) {
	src := `
export "v" {
  value = module.third_party.thing
}

export "w" {
  value = host.area.width
}
`
	d, err := analyzeSource(t, src, "a", "b")
	require.NoError(t, err)
	assert.Empty(t, d.Deps)
}

func TestModule_SelfReferenceIsNotAnEdge(t *testing.T) {
	src := `
export "base" {
  value = 4
}

export "double" {
  value = module.a.base * 2
}
`
	d, err := analyzeSource(t, src, "a")
	require.NoError(t, err)
	assert.Empty(t, d.Deps)
}

func TestModule_DuplicateReferencesCollapse(t *testing.T) {
	src := `
requires = ["b"]

export "v" {
  value = module.b.one
}

export "w" {
  value = module.b.two
}
`
	d, err := analyzeSource(t, src, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, d.Deps)
}

func TestModule_ParseErrorIsTyped(t *testing.T) {
	d, err := analyzeSource(t, `export "x" { value = `, "a")

	var parseErr *addon.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "a", parseErr.ModuleID)
	assert.Equal(t, addon.StateDiscovered, d.State)
}

func TestModule_NonLiteralRequiresIsParseError(t *testing.T) {
	src := `
requires = [module.b.name]
`
	_, err := analyzeSource(t, src, "a", "b")

	var parseErr *addon.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "literal module name")
}

func TestModule_UnknownRequiresIsParseError(t *testing.T) {
	src := `
requires = ["ghost"]
`
	_, err := analyzeSource(t, src, "a")

	var parseErr *addon.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "ghost")
}
