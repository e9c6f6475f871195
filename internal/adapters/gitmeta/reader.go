// Package gitmeta implements ports.OriginReader by shelling out to
// "git config --get remote.origin.url" and extracting the "owner/repo"
// full name from it.
package gitmeta

import (
	"os/exec"
	"strings"

	"go.trai.ch/zerr"

	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/ports"
)

// Reader implements ports.OriginReader.
type Reader struct{}

// New creates a Reader.
func New() ports.OriginReader {
	return &Reader{}
}

// OriginFullName runs git in dir and extracts "owner/repo" from the origin
// remote, accepting both the https:// and git@ remote URL forms.
func (r *Reader) OriginFullName(dir string) (string, error) {
	cmd := exec.Command("git", "config", "--get", "remote.origin.url")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", zerr.Wrap(domain.ErrNoOriginRemote, err.Error())
	}
	return extractFullName(strings.TrimSpace(string(out)))
}

func extractFullName(remote string) (string, error) {
	if full, ok := between(remote, "https://github.com/", ".git"); ok {
		return full, nil
	}
	if full, ok := between(remote, "git@github.com:", ".git"); ok {
		return full, nil
	}
	return "", zerr.With(domain.ErrNoOriginRemote, "reason", "unrecognized remote url", "remote", remote)
}

func between(s, prefix, suffix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}
	rest := s[len(prefix):]
	rest = strings.TrimSuffix(rest, suffix)
	if rest == "" {
		return "", false
	}
	return rest, true
}
