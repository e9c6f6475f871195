package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestMissing is returned when poac.toml does not exist in the project root.
	ErrManifestMissing = zerr.New("manifest not found")

	// ErrManifestInvalid is returned when poac.toml cannot be parsed as valid TOML.
	ErrManifestInvalid = zerr.New("manifest is invalid")

	// ErrManifestFieldType names a manifest field that is present but has the wrong
	// type. The TOML manifest store does not return it: it reports a type mismatch
	// as ErrManifestInvalid with the line number, and an absent field as its zero value.
	ErrManifestFieldType = zerr.New("manifest field has wrong type")

	// ErrInvalidBuildSystem is returned when build.system names something other than
	// "poac" or "cmake".
	ErrInvalidBuildSystem = zerr.New("invalid build system")

	// ErrInvalidCppStandard is returned when package.cpp is not one of 98, 3, 11, 14, 17, 20.
	ErrInvalidCppStandard = zerr.New("invalid c++ standard")

	// ErrUnknownSource is returned when a source tag other than "poac" or "github" is
	// parsed (ParseSource), or when no provider is registered for a Source value.
	// SplitSource never returns it: an unrecognized prefix is part of a Registry name.
	ErrUnknownSource = zerr.New("unknown dependency source")

	// ErrInvalidPackageName is returned when a package name fails the naming rules.
	ErrInvalidPackageName = zerr.New("invalid package name")

	// ErrIntervalSyntax is returned when a version interval string cannot be parsed.
	ErrIntervalSyntax = zerr.New("invalid version interval")

	// ErrNoCandidates is returned when a provider has no versions to offer for a package.
	ErrNoCandidates = zerr.New("no candidate versions available")

	// ErrIntervalUnsatisfiable is returned when no available version satisfies a
	// dependency's interval.
	ErrIntervalUnsatisfiable = zerr.New("no version satisfies interval")

	// ErrConflict is returned when two requirements on the same package cannot both
	// be satisfied by a single selected version.
	ErrConflict = zerr.New("dependency conflict")

	// ErrRegistryRequest is returned when the registry or git host rejects a request
	// for a reason other than "not found".
	ErrRegistryRequest = zerr.New("registry request failed")

	// ErrArchiveCorrupt is returned when a downloaded archive cannot be extracted.
	ErrArchiveCorrupt = zerr.New("archive is corrupt")

	// ErrGitCloneFailed is returned when the git binary exits non-zero while cloning.
	ErrGitCloneFailed = zerr.New("git clone failed")

	// ErrLockfileInvalid names a poac.lock that exists but cannot be parsed. The YAML
	// lockfile store does not return it: it logs a warning and reports the file as absent.
	ErrLockfileInvalid = zerr.New("lockfile is invalid")

	// ErrPublishApplication is returned when attempting to publish a package whose
	// build produces an application rather than a library.
	ErrPublishApplication = zerr.New("cannot publish an application package")

	// ErrAlreadyPublished is returned when the registry already has the package
	// version being published.
	ErrAlreadyPublished = zerr.New("package version already published")

	// ErrPublishAborted is returned when the user declines the publish confirmation prompt.
	ErrPublishAborted = zerr.New("publish aborted by user")

	// ErrNoOriginRemote is returned when the current directory has no git
	// "origin" remote to derive a package's full name from.
	ErrNoOriginRemote = zerr.New("no origin remote configured")
)
