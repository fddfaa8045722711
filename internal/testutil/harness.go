package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/addonloadgo/internal/addon"
	"github.com/vk/addonloadgo/internal/app"
	"github.com/vk/addonloadgo/internal/ctxlog"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Report    *addon.LoadReport
	Err       error
	App       *app.App
	Root      string
	ctx       context.Context
}

// WriteAddonTree materializes an addon under root. Keys are root-relative
// paths; the manifest is just another file.
func WriteAddonTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, src := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(src), 0o644))
	}
}

// RunIntegrationTest writes the addon tree to a temp dir and runs one full
// init cycle against it with the core capability kinds wired.
func RunIntegrationTest(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller-provided
// context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	WriteAddonTree(t, root, files)

	logBuf := &SafeBuffer{}
	cfg, err := app.NewConfig(app.Config{
		AddonPath: root,
		LogFormat: "text",
		LogLevel:  "debug",
	})
	require.NoError(t, err)

	application := app.NewApp(logBuf, cfg)
	ctx = ctxlog.WithLogger(ctx, application.Logger())

	report, runErr := application.Session().Init(ctx)
	t.Cleanup(func() { application.Session().Teardown(ctx) })

	return &HarnessResult{
		LogOutput: logBuf.String(),
		Report:    report,
		Err:       runErr,
		App:       application,
		Root:      root,
		ctx:       ctx,
	}
}

// Reload repeats the pipeline against the current on-disk state of the
// harness's addon tree and refreshes the result's report and error.
func (r *HarnessResult) Reload(t *testing.T) {
	t.Helper()
	r.Report, r.Err = r.App.Session().Reload(r.ctx)
}
