// Package cas implements the global, content-addressed package cache: one
// directory per cache_name under $POAC_CACHE_DIR, populated atomically via a
// temporary sibling directory plus rename, and shared across concurrent
// fetches of the same package through a mutex-guarded map of one-shot
// completion gates, since what is cached here is a directory tree, not a
// small record.
package cas

import (
	"context"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/ports"
)

// Store implements ports.Cache rooted at a single directory.
type Store struct {
	root string

	mu       sync.Mutex
	inFlight map[string]*populateOnce
}

type populateOnce struct {
	done chan struct{}
	err  error
}

// NewStore creates a Store rooted at root, creating it if necessary.
func NewStore(root string) (*Store, error) {
	root = filepath.Clean(root)
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, zerr.Wrap(err, "create cache root")
	}
	return &Store{root: root, inFlight: make(map[string]*populateOnce)}, nil
}

// New creates an *Store satisfying ports.Cache.
func New(root string) (ports.Cache, error) {
	return NewStore(root)
}

func (s *Store) Path(cacheName string) string {
	return filepath.Join(s.root, cacheName)
}

// Has reports whether cacheName has already been fully extracted.
func (s *Store) Has(cacheName string) bool {
	info, err := os.Stat(s.Path(cacheName))
	return err == nil && info.IsDir()
}

// Populate runs fetch into a temporary sibling directory and renames it into
// place, unless cacheName is already present. Concurrent callers for the same
// cacheName block on the same in-flight gate rather than fetching twice.
func (s *Store) Populate(ctx context.Context, cacheName string, fetch func(tmpDir string) error) error {
	if s.Has(cacheName) {
		return nil
	}

	s.mu.Lock()
	gate, owner := s.inFlight[cacheName]
	if !owner {
		gate = &populateOnce{done: make(chan struct{})}
		s.inFlight[cacheName] = gate
	}
	s.mu.Unlock()

	if owner {
		select {
		case <-gate.done:
			return gate.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	gate.err = s.populate(cacheName, fetch)
	close(gate.done)

	s.mu.Lock()
	delete(s.inFlight, cacheName)
	s.mu.Unlock()

	return gate.err
}

func (s *Store) populate(cacheName string, fetch func(tmpDir string) error) error {
	if s.Has(cacheName) {
		return nil
	}

	tmpDir, err := os.MkdirTemp(s.root, ".tmp-"+cacheName+"-")
	if err != nil {
		return zerr.Wrap(err, "create temp cache directory")
	}
	defer os.RemoveAll(tmpDir)

	if err := fetch(tmpDir); err != nil {
		return err
	}

	sum, fileCount, err := checksumDir(tmpDir)
	if err != nil {
		return zerr.Wrap(err, "checksum populated cache directory")
	}
	if fileCount == 0 {
		return zerr.With(domain.ErrArchiveCorrupt, "cache_name", cacheName, "reason", "fetch produced an empty directory")
	}

	dest := s.Path(cacheName)
	if err := os.Rename(tmpDir, dest); err != nil {
		if s.Has(cacheName) {
			// Another process won the race; not an error.
			return nil
		}
		return zerr.Wrap(err, "rename populated cache directory into place")
	}

	if err := os.WriteFile(s.checksumPath(cacheName), []byte(sum), 0o644); err != nil {
		return zerr.Wrap(err, "write cache checksum")
	}
	return nil
}

// checksumPath is the sidecar file recording a cache entry's digest,
// written as a sibling of the entry rather than inside it so it never gets
// swept up by a caller copying the entry's tree out of the cache.
func (s *Store) checksumPath(cacheName string) string {
	return filepath.Join(s.root, cacheName+".checksum")
}

// Checksum returns the digest recorded for cacheName the last time it was
// populated, and whether one exists.
func (s *Store) Checksum(cacheName string) (string, bool) {
	data, err := os.ReadFile(s.checksumPath(cacheName))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// checksumDir hashes every file under dir, in filepath.Walk's lexical order,
// folding each file's path and contents into one xxhash digest. It also
// returns how many files were hashed, so an archive that extracted to
// nothing can be told apart from one that extracted normally.
func checksumDir(dir string) (string, int, error) {
	digest := xxhash.New()
	fileCount := 0

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		io.WriteString(digest, rel) //nolint:errcheck // xxhash.Digest.Write never errors
		f, err := os.Open(path) //nolint:gosec // path is rooted under dir, a caller-controlled temp directory
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := io.Copy(digest, f); err != nil {
			return err
		}
		fileCount++
		return nil
	})
	if err != nil {
		return "", 0, err
	}

	return hex.EncodeToString(digest.Sum(nil)), fileCount, nil
}
