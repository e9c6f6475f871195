// Package gitclone implements ports.GitCloner by shelling out to the git
// binary, capturing stderr via exec.CommandContext for error reporting.
package gitclone

import (
	"bytes"
	"context"
	"os/exec"

	"go.trai.ch/zerr"

	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/ports"
)

// Cloner implements ports.GitCloner.
type Cloner struct{}

// New creates a Cloner.
func New() ports.GitCloner {
	return &Cloner{}
}

// Clone runs "git clone --depth 1 --branch <ref> <url> <destDir>".
func (c *Cloner) Clone(ctx context.Context, url, ref, destDir string) error {
	args := []string{"clone", "--depth", "1"}
	if ref != "" {
		args = append(args, "--branch", ref)
	}
	args = append(args, url, destDir)

	//nolint:gosec // args are built from validated package identity fields, not raw user input
	cmd := exec.CommandContext(ctx, "git", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return zerr.With(domain.ErrGitCloneFailed, "url", url, "ref", ref, "stderr", stderr.String())
	}
	return nil
}
