package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtensions(t *testing.T) {
	tmpDir := t.TempDir()

	mustWrite := func(rel string) {
		path := filepath.Join(tmpDir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	}

	mustWrite("one.json")
	mustWrite("nested/two.hcl")
	mustWrite("nested/deeper/three.json")
	mustWrite("ignored.txt")

	t.Run("finds matching files recursively in sorted order", func(t *testing.T) {
		files, err := FindFilesByExtensions(tmpDir, ".json", ".hcl")
		require.NoError(t, err)
		require.Len(t, files, 3)
		assert.Equal(t, filepath.Join(tmpDir, "nested", "deeper", "three.json"), files[0])
		assert.Equal(t, filepath.Join(tmpDir, "nested", "two.hcl"), files[1])
		assert.Equal(t, filepath.Join(tmpDir, "one.json"), files[2])
	})

	t.Run("single extension filters the rest", func(t *testing.T) {
		files, err := FindFilesByExtensions(tmpDir, ".hcl")
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, filepath.Join(tmpDir, "nested", "two.hcl"), files[0])
	})

	t.Run("missing root returns an error", func(t *testing.T) {
		_, err := FindFilesByExtensions(filepath.Join(tmpDir, "does-not-exist"), ".json")
		assert.Error(t, err)
	})

	t.Run("no extensions panics", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = FindFilesByExtensions(tmpDir)
		})
	})
}
