package ports

import "context"

// ArchiveFetcher downloads an archive to a local file. It is the concrete
// edge of the abstract "fetch_archive(url) -> bytes" external collaborator.
type ArchiveFetcher interface {
	Fetch(ctx context.Context, url, destFile string) error
}

// Extractor extracts a downloaded archive into a directory, stripping its
// single top-level component. It is the concrete edge of
// "extract(archive_bytes, dir)".
type Extractor interface {
	Extract(archiveFile, destDir string) error
}

// GitCloner performs a shallow clone of a ref into a directory. It is the
// concrete edge of "git_clone(url, ref, dir) -> void".
type GitCloner interface {
	Clone(ctx context.Context, url, ref, destDir string) error
}
