package ports

import "github.com/wow2006/poac/internal/core/domain"

// LockfileStore loads and persists poac.lock.
type LockfileStore interface {
	// Load reads the lockfile at dir. ok is false, with a nil error, both when
	// the file is absent and when its recorded timestamp no longer matches
	// expectedTimestamp (the manifest changed since the lock was written) or
	// the file is corrupt; the implementation logs a warning in the corrupt case.
	Load(dir, expectedTimestamp string) (resolved *domain.Resolved, ok bool, err error)

	// Write persists resolved as the new lockfile, under the given manifest
	// timestamp.
	Write(dir, timestamp string, resolved *domain.Resolved) error
}
