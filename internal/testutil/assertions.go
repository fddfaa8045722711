package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/addonloadgo/internal/host"
)

// AssertModuleLoaded checks that a module completed the full load cycle.
func AssertModuleLoaded(t *testing.T, result *HarnessResult, moduleID string) {
	t.Helper()
	require.Contains(t, result.Report.Loaded, moduleID,
		"expected module %q to be loaded, report: loaded=%v failed=%v skipped=%v",
		moduleID, result.Report.Loaded, result.Report.FailedIDs(), result.Report.SkippedIDs())
}

// AssertModuleFailed checks that a module failed and was contained.
func AssertModuleFailed(t *testing.T, result *HarnessResult, moduleID string) {
	t.Helper()
	require.Contains(t, result.Report.FailedIDs(), moduleID,
		"expected module %q to fail, report: loaded=%v failed=%v",
		moduleID, result.Report.Loaded, result.Report.FailedIDs())
}

// AssertClassRegistered checks that a class of the given kind and name is
// currently registered with the host.
func AssertClassRegistered(t *testing.T, result *HarnessResult, kind, name string) {
	t.Helper()
	_, ok := result.App.Host().Class(host.ClassID{Kind: kind, Name: name})
	require.True(t, ok, "expected class %s.%s to be registered", kind, name)
}

// AssertClassNotRegistered checks that no class of the given kind and name is
// registered with the host.
func AssertClassNotRegistered(t *testing.T, result *HarnessResult, kind, name string) {
	t.Helper()
	_, ok := result.App.Host().Class(host.ClassID{Kind: kind, Name: name})
	require.False(t, ok, "expected class %s.%s to not be registered", kind, name)
}
