package lockfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wow2006/poac/internal/adapters/lockfile"
	"github.com/wow2006/poac/internal/adapters/logger"
	"github.com/wow2006/poac/internal/core/domain"
)

func sampleResolved() *domain.Resolved {
	activated := []domain.ActivatedNode{
		{Name: "zeta", Version: "1.0.0", Source: domain.Registry},
		{Name: "alpha", Version: "2.0.0", Source: domain.GitHost, Deps: []int{0}},
	}
	return domain.NewResolved(activated, []int{0, 1})
}

func TestWriteThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	store := lockfile.New(logger.New())

	resolved := sampleResolved()
	require.NoError(t, store.Write(dir, "2026-08-06T00:00:00Z", resolved))

	data, err := os.ReadFile(filepath.Join(dir, "poac.lock"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "# Please do not edit this file."))

	loaded, ok, err := store.Load(dir, "2026-08-06T00:00:00Z")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1.0.0", loaded.Backtracked["zeta"].Version)
	require.Equal(t, "2.0.0", loaded.Backtracked["alpha"].Version)
}

func TestLoadTimestampMismatchIsNotFound(t *testing.T) {
	dir := t.TempDir()
	store := lockfile.New(logger.New())
	require.NoError(t, store.Write(dir, "old", sampleResolved()))

	_, ok, err := store.Load(dir, "new")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoadCorruptIsNotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "poac.lock"), []byte("not: [valid yaml"), 0o644))

	store := lockfile.New(logger.New())
	_, ok, err := store.Load(dir, "anything")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDependencyChildrenAreSortedAscending(t *testing.T) {
	dir := t.TempDir()
	store := lockfile.New(logger.New())

	activated := []domain.ActivatedNode{
		{Name: "charlie", Version: "1.0.0", Source: domain.Registry},
		{Name: "alpha", Version: "1.0.0", Source: domain.Registry},
		{Name: "bravo", Version: "1.0.0", Source: domain.Registry},
	}
	resolved := domain.NewResolved(activated, []int{0, 1, 2})
	require.NoError(t, store.Write(dir, "t", resolved))

	data, err := os.ReadFile(filepath.Join(dir, "poac.lock"))
	require.NoError(t, err)

	alphaIdx := strings.Index(string(data), "alpha")
	bravoIdx := strings.Index(string(data), "bravo")
	charlieIdx := strings.Index(string(data), "charlie")
	require.True(t, alphaIdx < bravoIdx)
	require.True(t, bravoIdx < charlieIdx)
}
