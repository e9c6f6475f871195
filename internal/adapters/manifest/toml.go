// Package manifest implements ports.ManifestStore over poac.toml using
// github.com/pelletier/go-toml/v2.
package manifest

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"go.trai.ch/zerr"

	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/ports"
)

const filename = "poac.toml"

// Store implements ports.ManifestStore.
type Store struct{}

// New creates a new Store.
func New() ports.ManifestStore {
	return &Store{}
}

func (s *Store) path(dir string) string {
	return filepath.Join(dir, filename)
}

// Load reads and decodes poac.toml, validating the cpp standard and build
// system fields without conflating a missing field with a wrong-typed one.
func (s *Store) Load(dir string) (*domain.Manifest, bool, error) {
	data, err := os.ReadFile(s.path(dir))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, zerr.Wrap(err, "read manifest")
	}

	var m domain.Manifest
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			line, _ := decodeErr.Position()
			return nil, false, zerr.With(domain.ErrManifestInvalid, "line", line, "cause", decodeErr.Error())
		}
		return nil, false, zerr.Wrap(domain.ErrManifestInvalid, err.Error())
	}

	if m.Package.Cpp == 0 {
		m.Package.Cpp = domain.DefaultCppStandard
	} else if !domain.ValidCppStandard(m.Package.Cpp) {
		return nil, false, zerr.With(domain.ErrInvalidCppStandard, "cpp", m.Package.Cpp)
	}

	if m.Build != nil {
		system, err := domain.ParseBuildSystem(m.Build.SystemRaw)
		if err != nil {
			return nil, false, err
		}
		m.Build.System = system
	}

	return &m, true, nil
}

// Write encodes m back to poac.toml.
func (s *Store) Write(dir string, m *domain.Manifest) error {
	if m.Build != nil {
		m.Build.SystemRaw = m.Build.System.String()
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return zerr.Wrap(err, "encode manifest")
	}
	return os.WriteFile(s.path(dir), data, 0o644)
}

// Timestamp returns poac.toml's modification time as os.Stat reports it. It
// does no formatting; the caller turns it into the string compared against a
// stored lockfile timestamp.
func (s *Store) Timestamp(dir string) (time.Time, error) {
	info, err := os.Stat(s.path(dir))
	if errors.Is(err, os.ErrNotExist) {
		return time.Time{}, zerr.Wrap(domain.ErrManifestMissing, dir)
	}
	if err != nil {
		return time.Time{}, zerr.Wrap(err, "stat manifest")
	}
	return info.ModTime(), nil
}
