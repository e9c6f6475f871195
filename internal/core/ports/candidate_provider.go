package ports

import (
	"context"

	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/semver"
)

// CandidateProvider answers "what versions of this package exist, and what
// does its manifest look like" for one source (registry or git host). The
// resolver dispatches to the provider matching a dependency's declared source.
type CandidateProvider interface {
	// ListVersions returns every version the provider knows about for id.Name.
	// id.Version is ignored.
	ListVersions(ctx context.Context, id domain.PackageID) ([]semver.Version, error)

	// FetchManifest returns the manifest declared by the package at the given
	// concrete version, so the resolver can discover its transitive
	// dependencies.
	FetchManifest(ctx context.Context, id domain.PackageID) (*domain.Manifest, error)
}

// ArchiveSource is implemented by providers whose packages are fetched as a
// downloadable archive (the registry).
type ArchiveSource interface {
	ArchiveURL(id domain.PackageID) string
}

// GitSource is implemented by providers whose packages are fetched by cloning
// a repository (git hosts).
type GitSource interface {
	CloneURL(id domain.PackageID) string
}

// VersionProber checks whether a specific package version is already known to
// a provider. It backs the publish pipeline's pre-flight "already published" check.
type VersionProber interface {
	Exists(ctx context.Context, id domain.PackageID) (bool, error)
}
