package ports

import "context"

// OriginReader discovers the git host "owner/repo" full name for the current
// project, by inspecting its origin remote.
type OriginReader interface {
	OriginFullName(dir string) (string, error)
}

// RepoMetadataProvider answers the GitHub-style metadata lookups the publish
// pipeline needs to fill in a PackageInfo: the latest release tag, the
// repository's license, and its description.
type RepoMetadataProvider interface {
	LatestRelease(ctx context.Context, fullName string) (version string, err error)
	License(ctx context.Context, fullName, version string) (string, error)
	Description(ctx context.Context, fullName string) (string, error)
}
