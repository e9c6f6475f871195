package ports

import "context"

// Cache is the global, content-addressed package cache keyed by cache_name
// (see domain.PackageID.CacheName). It is shared across every invocation of
// the tool on the machine.
type Cache interface {
	// Has reports whether cacheName is already present and fully extracted.
	Has(cacheName string) bool

	// Path returns the cache directory for cacheName, valid only after Has
	// reports true or Populate has returned successfully.
	Path(cacheName string) string

	// Populate runs fetch to materialize cacheName if it is not already
	// present, deduplicating concurrent callers for the same cacheName so the
	// fetch work happens at most once (see DepsDir for the analogous guarantee
	// on the per-project side).
	Populate(ctx context.Context, cacheName string, fetch func(tmpDir string) error) error
}

// DepsDir is the project-local deps/ directory packages are materialized
// into from the cache.
type DepsDir interface {
	// Exists reports whether currentName is already present under deps/.
	Exists(currentName string) bool

	// CopyFrom recursively copies the cache directory at srcCacheDir into
	// deps/currentName, atomically (via a temporary sibling directory plus
	// rename) so a concurrent reader never observes a partial copy.
	CopyFrom(srcCacheDir, currentName string) error
}
