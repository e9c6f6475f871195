// Package deps implements ports.DepsDir: the project-local deps/ directory
// that resolved packages are copied into from the global cache, via a
// filepath.WalkDir-based recursive copy and an os.Stat-based presence check.
package deps

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/wow2006/poac/internal/core/ports"
)

// Dir implements ports.DepsDir rooted at a project's deps/ directory.
type Dir struct {
	root string
}

// New creates a Dir rooted at filepath.Join(projectDir, "deps").
func New(projectDir string) ports.DepsDir {
	return &Dir{root: filepath.Join(projectDir, "deps")}
}

// Exists reports whether currentName is already present under deps/.
func (d *Dir) Exists(currentName string) bool {
	info, err := os.Stat(filepath.Join(d.root, currentName))
	return err == nil && info.IsDir()
}

// CopyFrom recursively copies srcCacheDir into deps/currentName via a
// temporary sibling directory and rename, the same atomicity discipline the
// cache uses on its side.
func (d *Dir) CopyFrom(srcCacheDir, currentName string) error {
	if err := os.MkdirAll(d.root, 0o750); err != nil {
		return zerr.Wrap(err, "create deps directory")
	}

	tmpDir, err := os.MkdirTemp(d.root, ".tmp-"+currentName+"-")
	if err != nil {
		return zerr.Wrap(err, "create temp deps directory")
	}
	defer os.RemoveAll(tmpDir)

	if err := copyTree(srcCacheDir, tmpDir); err != nil {
		return zerr.Wrap(err, "copy into deps")
	}

	dest := filepath.Join(d.root, currentName)
	if err := os.Rename(tmpDir, dest); err != nil {
		if d.Exists(currentName) {
			return nil
		}
		return zerr.Wrap(err, "rename into deps")
	}
	return nil
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if entry.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		return copyFile(path, target, entry)
	})
}

func copyFile(src, dst string, entry fs.DirEntry) error {
	info, err := entry.Info()
	if err != nil {
		return err
	}

	in, err := os.Open(src) //nolint:gosec // src is a path under the already-validated cache/tmp tree
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
