package ports

import (
	"time"

	"github.com/wow2006/poac/internal/core/domain"
)

// ManifestStore loads and persists a project's poac.toml.
type ManifestStore interface {
	// Load reads the manifest at dir. ok is false, with a nil error, when the
	// file is simply absent.
	Load(dir string) (m *domain.Manifest, ok bool, err error)

	// Write rewrites the manifest at dir.
	Write(dir string, m *domain.Manifest) error

	// Timestamp returns the manifest file's last-modified time, used to
	// invalidate the lockfile when the manifest has changed since it was written.
	Timestamp(dir string) (time.Time, error)
}
