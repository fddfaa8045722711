package integrationtests

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/addonloadgo/internal/addon"
	"github.com/vk/addonloadgo/internal/testutil"
)

// A full addon using every built-in capability kind, pattern groups, explicit
// requires and inferred references.
func TestAddonLoading_AllKinds(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{
		"addon.hcl": `
addon {
  name    = "graph_monkey"
  version = "2.0.0"
  modules = [
    "constants",
    "preferences",
    "keymap_manager",
    "operators.*",
    "ui.*",
  ]
}
`,
		"constants.hcl": `
export "default_pie_radius" {
  value = 100
}

export "addon_name" {
  value = "graph_monkey"
}
`,
		"preferences.hcl": `
requires = ["constants"]

export "pie_radius" {
  value = module.constants.default_pie_radius
}

preferences "graph_monkey_prefs" {
  pie_radius = module.preferences.pie_radius
}
`,
		"keymap_manager.hcl": `
keymap "graph_editor_pie" {
  key   = "W"
  ctrl  = true
  space = "graph_editor"
}
`,
		"operators/jump.hcl": `
operator "keyframe_jump" {
  label       = "Jump to Keyframe"
  description = "Move the playhead to the next keyframe"
}
`,
		"operators/ease.hcl": `
operator "ease_curve" {
  label = "Ease Curve"
}
`,
		"ui/pie.hcl": `
panel "curve_tools" {
  label  = "Curve Tools"
  space  = "graph_editor"
  region = "ui"
}

menu "pie_main" {
  label = module.constants.addon_name
}
`,
	})

	require.NoError(t, result.Err)

	wantOrder := []string{
		"constants",
		"preferences",
		"keymap_manager",
		"operators.ease",
		"operators.jump",
		"ui.pie",
	}
	if diff := cmp.Diff(wantOrder, result.Report.Order); diff != "" {
		t.Errorf("load order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, wantOrder, result.Report.Loaded)
	assert.Empty(t, result.Report.Failed)
	assert.Empty(t, result.Report.ClassFailures)
	assert.Equal(t, 6, result.Report.RegisteredClasses)

	testutil.AssertClassRegistered(t, result, "operator", "keyframe_jump")
	testutil.AssertClassRegistered(t, result, "operator", "ease_curve")
	testutil.AssertClassRegistered(t, result, "panel", "curve_tools")
	testutil.AssertClassRegistered(t, result, "menu", "pie_main")
	testutil.AssertClassRegistered(t, result, "keymap", "graph_editor_pie")
	testutil.AssertClassRegistered(t, result, "preferences", "graph_monkey_prefs")
}

// Pattern groups decide order between unrelated modules; dependencies decide
// order within them.
func TestAddonLoading_WildcardGroupKeepsLexicalOrder(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{
		"addon.hcl": `
addon {
  name    = "ordering"
  modules = ["ops.*"]
}
`,
		"ops/b.hcl": `
export "x" {
  value = 1
}
`,
		"ops/a.hcl": `
requires = ["ops.b"]

export "y" {
  value = module.ops.b.x + 1
}
`,
		"ops/c.hcl": `
export "z" {
  value = 3
}
`,
	})

	require.NoError(t, result.Err)
	// Lexical discovery gives a, b, c; the a->b dependency flips the pair.
	assert.Equal(t, []string{"ops.b", "ops.a", "ops.c"}, result.Report.Order)
}

// A reference like module.ui.pie.radius must resolve to module "ui.pie", not
// to a module "ui" with an export "pie".
func TestAddonLoading_LongestPrefixReference(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{
		"addon.hcl": `
addon {
  name    = "prefix"
  modules = ["ui", "ui.pie", "consumer"]
}
`,
		"ui.hcl": `
export "pie" {
  value = "not a module"
}
`,
		"ui/pie.hcl": `
export "radius" {
  value = 42
}
`,
		"consumer.hcl": `
export "r" {
  value = module.ui.pie.radius
}
`,
	})

	require.NoError(t, result.Err)
	testutil.AssertModuleLoaded(t, result, "consumer")

	consumer, ok := result.App.Session().Module("consumer")
	require.True(t, ok)
	assert.Equal(t, []string{"ui.pie"}, consumer.Deps)
	v, _ := consumer.Exports["r"].AsBigFloat().Int64()
	assert.EqualValues(t, 42, v)
}

func TestAddonLoading_ModuleStates(t *testing.T) {
	t.Parallel()

	result := testutil.RunIntegrationTest(t, map[string]string{
		"addon.hcl": `
addon {
  name    = "states"
  modules = ["plain", "declares"]
}
`,
		"plain.hcl": `
export "x" {
  value = 1
}
`,
		"declares.hcl": `
operator "op" {
  label = "Op"
}
`,
	})

	require.NoError(t, result.Err)
	for _, id := range []string{"plain", "declares"} {
		d, ok := result.App.Session().Module(id)
		require.True(t, ok)
		assert.Equal(t, addon.StateRegistered, d.State, id)
	}
}
