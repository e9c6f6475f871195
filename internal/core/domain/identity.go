package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Source identifies which provider a package comes from.
type Source int

const (
	// Registry is the default source: the poac package registry.
	Registry Source = iota
	// GitHost is a package hosted directly on a git forge (github).
	GitHost
)

// String implements fmt.Stringer, rendering the "poac"/"github" source tags.
func (s Source) String() string {
	switch s {
	case Registry:
		return "poac"
	case GitHost:
		return "github"
	default:
		return "unknown"
	}
}

// ParseSource maps a dependency-key prefix onto a Source. An empty prefix
// defaults to Registry.
func ParseSource(s string) (Source, error) {
	switch s {
	case "", "poac":
		return Registry, nil
	case "github":
		return GitHost, nil
	default:
		return 0, zerr.With(ErrUnknownSource, "source", s)
	}
}

// SplitSource splits a dependency key of the form "[<source>/]<name>" into
// its Source and the remaining package name, per the qualified name grammar:
// only "poac/" and "github/" are recognized source prefixes; any other text
// before a slash is not a prefix at all, just the leading segment of a bare
// Registry name (e.g. "boost/optional" is Registry name "boost/optional",
// not an attempt at an unrecognized "boost" source).
func SplitSource(qualified string) (Source, string, error) {
	if rest, ok := strings.CutPrefix(qualified, "github/"); ok {
		return GitHost, rest, nil
	}
	if rest, ok := strings.CutPrefix(qualified, "poac/"); ok {
		return Registry, rest, nil
	}
	return Registry, qualified, nil
}

// PackageID uniquely identifies one resolvable package across providers.
type PackageID struct {
	Source  Source
	Name    string
	Version string
}

// CacheName is the deterministic directory name this package occupies in the
// global content-addressed cache.
func (p PackageID) CacheName() string {
	return formatIdentity(p.Source, p.Name, p.Version)
}

// CurrentName is the deterministic directory name this package occupies under
// the project's deps/ directory. It is computed from the same identity as
// CacheName but is a distinct call site: the cache root and the project's
// deps/ tree are never the same path.
func (p PackageID) CurrentName() string {
	return formatIdentity(p.Source, p.Name, p.Version)
}

func formatIdentity(source Source, name, version string) string {
	flat := strings.ReplaceAll(name, "/", "-")
	return source.String() + "-" + flat + "-" + version
}

// reservedFilesystemNames are filenames the Windows filesystem treats
// specially regardless of extension; a package segment matching one of these
// would collide when a cache or deps/ directory is created from it.
var reservedFilesystemNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// ValidateName rejects package names that cannot appear in a cache_name or
// current_name without ambiguity.
func ValidateName(source Source, name string) error {
	if name == "" {
		return zerr.With(ErrInvalidPackageName, "reason", "empty")
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return zerr.With(ErrInvalidPackageName, "reason", "leading or trailing slash")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '/':
		default:
			return zerr.With(ErrInvalidPackageName, "reason", "invalid character", "name", name)
		}
	}
	if source == GitHost && strings.Count(name, "/") != 1 {
		return zerr.With(ErrInvalidPackageName, "reason", "github source requires owner/repo", "name", name)
	}
	for _, segment := range strings.Split(name, "/") {
		if reservedFilesystemNames[strings.ToUpper(segment)] {
			return zerr.With(ErrInvalidPackageName, "reason", "reserved filesystem name", "name", name)
		}
	}
	return nil
}
