// Package tarextract implements ports.Extractor over archive/tar and
// compress/gzip, stripping the archive's single top-level directory before
// copying its contents into the cache.
package tarextract

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/ports"
)

// Extractor implements ports.Extractor.
type Extractor struct{}

// New creates an Extractor.
func New() ports.Extractor {
	return &Extractor{}
}

// Extract decompresses and untars archiveFile into destDir, dropping the
// first path component of every entry without checking that all entries
// share it; an entry whose name has no "/" is skipped.
func (e *Extractor) Extract(archiveFile, destDir string) error {
	f, err := os.Open(archiveFile) //nolint:gosec // archiveFile is a caller-controlled temp path
	if err != nil {
		return zerr.Wrap(err, "open archive")
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return zerr.Wrap(domain.ErrArchiveCorrupt, err.Error())
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return zerr.Wrap(domain.ErrArchiveCorrupt, err.Error())
		}

		name := stripTopLevel(hdr.Name)
		if name == "" {
			continue
		}
		target := filepath.Join(destDir, name)
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return zerr.With(domain.ErrArchiveCorrupt, "reason", "path escapes destination", "entry", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o750); err != nil {
				return zerr.Wrap(err, "create directory from archive")
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
				return zerr.Wrap(err, "create parent directory from archive")
			}
			if err := writeFile(tr, target, hdr.FileInfo().Mode()); err != nil {
				return err
			}
		}
	}
}

func writeFile(r io.Reader, target string, mode os.FileMode) error {
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return zerr.Wrap(err, "create file from archive")
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return zerr.Wrap(err, "write file from archive")
	}
	return nil
}

func stripTopLevel(name string) string {
	name = filepath.ToSlash(name)
	idx := strings.Index(name, "/")
	if idx < 0 {
		return ""
	}
	return name[idx+1:]
}
