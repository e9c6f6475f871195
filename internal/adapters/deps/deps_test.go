package deps_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wow2006/poac/internal/adapters/deps"
)

func TestCopyFromThenExists(t *testing.T) {
	projectDir := t.TempDir()
	cacheDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "file.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(cacheDir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "sub", "nested.txt"), []byte("nested"), 0o644))

	d := deps.New(projectDir)
	require.False(t, d.Exists("poac-foo-1.0.0"))

	require.NoError(t, d.CopyFrom(cacheDir, "poac-foo-1.0.0"))
	require.True(t, d.Exists("poac-foo-1.0.0"))

	data, err := os.ReadFile(filepath.Join(projectDir, "deps", "poac-foo-1.0.0", "sub", "nested.txt"))
	require.NoError(t, err)
	require.Equal(t, "nested", string(data))
}
