package cas_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wow2006/poac/internal/adapters/cas"
	"github.com/wow2006/poac/internal/core/domain"
)

func TestPopulateWritesAndHasReportsTrue(t *testing.T) {
	store, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	const name = "poac-foo-1.0.0"
	require.False(t, store.Has(name))

	err = store.Populate(context.Background(), name, func(tmpDir string) error {
		return os.WriteFile(filepath.Join(tmpDir, "marker"), []byte("x"), 0o644)
	})
	require.NoError(t, err)
	require.True(t, store.Has(name))

	data, err := os.ReadFile(filepath.Join(store.Path(name), "marker"))
	require.NoError(t, err)
	require.Equal(t, "x", string(data))

	sum, ok := store.Checksum(name)
	require.True(t, ok)
	require.NotEmpty(t, sum)
}

func TestPopulateRejectsEmptyArchive(t *testing.T) {
	store, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	const name = "poac-empty-1.0.0"
	err = store.Populate(context.Background(), name, func(string) error { return nil })
	require.ErrorIs(t, err, domain.ErrArchiveCorrupt)
	require.False(t, store.Has(name))

	_, ok := store.Checksum(name)
	require.False(t, ok)
}

func TestChecksumDiffersForDifferentContent(t *testing.T) {
	storeA, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)
	storeB, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, storeA.Populate(context.Background(), "pkg", func(tmpDir string) error {
		return os.WriteFile(filepath.Join(tmpDir, "marker"), []byte("x"), 0o644)
	}))
	require.NoError(t, storeB.Populate(context.Background(), "pkg", func(tmpDir string) error {
		return os.WriteFile(filepath.Join(tmpDir, "marker"), []byte("y"), 0o644)
	}))

	sumA, _ := storeA.Checksum("pkg")
	sumB, _ := storeB.Checksum("pkg")
	require.NotEqual(t, sumA, sumB)
}

func TestPopulateSkipsWhenAlreadyCached(t *testing.T) {
	store, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	const name = "poac-foo-1.0.0"
	calls := int32(0)
	fetch := func(tmpDir string) error {
		atomic.AddInt32(&calls, 1)
		return os.WriteFile(filepath.Join(tmpDir, "marker"), []byte("x"), 0o644)
	}

	require.NoError(t, store.Populate(context.Background(), name, fetch))
	require.NoError(t, store.Populate(context.Background(), name, fetch))
	require.Equal(t, int32(1), calls)
}

func TestPopulateDedupesConcurrentCallers(t *testing.T) {
	store, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	const name = "poac-foo-1.0.0"
	var calls int32
	fetch := func(tmpDir string) error {
		atomic.AddInt32(&calls, 1)
		return os.WriteFile(filepath.Join(tmpDir, "marker"), []byte("x"), 0o644)
	}

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.Populate(context.Background(), name, fetch)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), calls)
}
