// Package testutil provides the integration test harness: it materializes
// fixture model files into a temp directory, runs the generator end to end,
// and hands the test the captured output and the artifact tree.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/debarchito/time-table-generator/internal/app"
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
	Output string
	Err    error
	OutDir string
}

// Options tweaks a harness run.
type Options struct {
	SQLite bool
}

// RunGenerator writes the fixture model files into a temp directory, runs
// the app over that directory, and returns the captured output plus the
// directory artifacts were written into. File names in the fixtures map are
// relative paths, so nested model directories work too.
func RunGenerator(t *testing.T, fixtures map[string]string, opts Options) *HarnessResult {
	t.Helper()
	return RunGeneratorWithContext(context.Background(), t, fixtures, opts)
}

// RunGeneratorWithContext is RunGenerator with a caller-provided context.
func RunGeneratorWithContext(ctx context.Context, t *testing.T, fixtures map[string]string, opts Options) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	modelsDir := filepath.Join(tmpDir, "models")
	outDir := filepath.Join(tmpDir, "solutions")
	require.NoError(t, os.Mkdir(modelsDir, 0755))

	for name, content := range fixtures {
		filePath := filepath.Join(modelsDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	cfg, err := app.NewConfig(app.Config{
		ModelPath: modelsDir,
		OutDir:    outDir,
		SQLite:    opts.SQLite,
		LogFormat: "text",
		LogLevel:  "debug",
	})
	require.NoError(t, err)

	output := &SafeBuffer{}
	generator := app.NewApp(output, cfg)
	runErr := generator.Run(ctx, cfg)

	if os.Getenv("TTG_TEST_LOGS") == "true" {
		t.Logf("--- Full Output for %s ---\n%s", t.Name(), output.String())
	}

	return &HarnessResult{
		Output: output.String(),
		Err:    runErr,
		OutDir: outDir,
	}
}
