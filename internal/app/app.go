// Package app wires together every port into the two user-facing
// operations this tool exposes: installing a project's dependencies and
// publishing a package. It is the composition root: the only layer allowed
// to see both core and adapters.
package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.trai.ch/zerr"

	"github.com/wow2006/poac/internal/build"
	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/interval"
	"github.com/wow2006/poac/internal/core/ports"
	"github.com/wow2006/poac/internal/core/resolver"
	"github.com/wow2006/poac/internal/engine/fetcher"
)

const timestampLayout = time.RFC3339Nano

// App holds every adapter Install and Publish need, resolved once at
// startup by the graft component graph.
type App struct {
	manifests  ports.ManifestStore
	lockfiles  ports.LockfileStore
	cache      ports.Cache
	providers  ports.ProviderSet
	archive    ports.ArchiveFetcher
	extractor  ports.Extractor
	cloner     ports.GitCloner
	resolver   *resolver.Resolver
	origin     ports.OriginReader
	prompter   ports.Prompter
	logger     ports.Logger
	tracer     ports.Tracer
	newDepsDir func(projectDir string) ports.DepsDir
}

// New creates an App from its constituent ports. newDepsDir constructs the
// project-local deps/ directory adapter; it is injected as a function rather
// than a single instance because it is rooted at a project directory only
// known per-call, not at wiring time.
func New(
	manifests ports.ManifestStore,
	lockfiles ports.LockfileStore,
	cache ports.Cache,
	providers ports.ProviderSet,
	archive ports.ArchiveFetcher,
	extractor ports.Extractor,
	cloner ports.GitCloner,
	resolver *resolver.Resolver,
	origin ports.OriginReader,
	prompter ports.Prompter,
	logger ports.Logger,
	tracer ports.Tracer,
	newDepsDir func(projectDir string) ports.DepsDir,
) *App {
	return &App{
		manifests:  manifests,
		lockfiles:  lockfiles,
		cache:      cache,
		providers:  providers,
		archive:    archive,
		extractor:  extractor,
		cloner:     cloner,
		resolver:   resolver,
		origin:     origin,
		prompter:   prompter,
		logger:     logger,
		tracer:     tracer,
		newDepsDir: newDepsDir,
	}
}

// Version returns the running build's version string.
func (a *App) Version() string {
	return build.Version
}

// Install resolves and fetches dir's dependencies, following the nine-step
// sequence: when no extra packages were requested and the lockfile's
// recorded timestamp still matches the manifest, resolution and fetching
// are skipped entirely and the loaded lockfile is reused as-is; otherwise
// dependencies are resolved from scratch and fetched, any "latest" roots
// the resolver pinned are rewritten into the manifest, and a fresh lockfile
// is persisted.
func (a *App) Install(ctx context.Context, dir string, extra []string, quiet, verbose bool) error {
	ctx, span := a.tracer.Start(ctx, "app.install")
	defer span.End()

	manifest, ok, err := a.manifests.Load(dir)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrManifestMissing
	}
	ts0, err := a.manifests.Timestamp(dir)
	if err != nil {
		return err
	}

	var resolved *domain.Resolved
	loadedLock := false

	if len(extra) == 0 {
		if locked, ok, err := a.lockfiles.Load(dir, formatTimestamp(ts0)); err != nil {
			return err
		} else if ok {
			resolved = locked
			loadedLock = true
		}
	}

	if !loadedLock {
		roots, err := buildRootConstraints(extra, manifest)
		if err != nil {
			return err
		}
		resolved, err = a.resolver.Resolve(ctx, roots)
		if err != nil {
			return err
		}

		deps := a.newDepsDir(dir)
		f := fetcher.New(a.providers, a.cache, a.archive, a.extractor, a.cloner, a.logger, a.tracer)
		if _, err := f.Fetch(ctx, resolved.Backtracked, deps, quiet, verbose); err != nil {
			return err
		}
	}

	ts1 := ts0
	manifestChanged := false

	// Any manifest-declared root the resolver just pinned away from "latest"
	// is rewritten in place, under the exact key it was already declared
	// under, so a slash-containing or GitHost qualifier already present in
	// the manifest is preserved rather than collapsed to a bare name.
	existingNames := make(map[string]bool, len(manifest.Dependencies))
	for key := range manifest.Dependencies {
		_, name, err := domain.SplitSource(key)
		if err != nil {
			return err
		}
		existingNames[name] = true
		if rewritten, ok := resolved.RewrittenIntervals[name]; ok {
			manifest.Dependencies[key] = rewritten
			manifestChanged = true
		}
	}

	// A package newly added via the command line is written with its pinned
	// interval when the resolver rewrote it away from "latest", not the
	// literal token "latest" itself, so the pin actually survives into the
	// manifest instead of being re-resolved on every later install. A name
	// already covered by the loop above is skipped here to avoid writing it
	// twice under two different key spellings.
	for _, raw := range extra {
		source, name, rawInterval, err := parseArgPackage(raw)
		if err != nil {
			return err
		}
		if existingNames[name] {
			continue
		}
		pinned := rawInterval
		if rewritten, ok := resolved.RewrittenIntervals[name]; ok {
			pinned = rewritten
		}
		if manifest.Dependencies == nil {
			manifest.Dependencies = map[string]string{}
		}
		manifest.Dependencies[qualifiedKey(source, name)] = pinned
		manifestChanged = true
	}
	if manifestChanged {
		if err := a.manifests.Write(dir, manifest); err != nil {
			return err
		}
		ts1, err = a.manifests.Timestamp(dir)
		if err != nil {
			return err
		}
	}

	if !loadedLock {
		if err := a.lockfiles.Write(dir, formatTimestamp(ts1), resolved); err != nil {
			return err
		}
	}

	return nil
}

// buildRootConstraints merges command-line package arguments with the
// manifest's own dependency table into the resolver's root requirement set,
// deduping so a package named both ways is only resolved once.
func buildRootConstraints(extra []string, manifest *domain.Manifest) ([]domain.Constraint, error) {
	seen := make(map[string]bool, len(extra)+len(manifest.Dependencies))
	roots := make([]domain.Constraint, 0, len(extra)+len(manifest.Dependencies))

	for _, raw := range extra {
		source, name, rawInterval, err := parseArgPackage(raw)
		if err != nil {
			return nil, err
		}
		key := source.String() + ":" + name
		if seen[key] {
			continue
		}
		seen[key] = true
		roots = append(roots, domain.Constraint{Name: name, Source: source, Interval: rawInterval})
	}

	keys := make([]string, 0, len(manifest.Dependencies))
	for key := range manifest.Dependencies {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		source, name, err := domain.SplitSource(key)
		if err != nil {
			return nil, err
		}
		if err := domain.ValidateName(source, name); err != nil {
			return nil, err
		}
		dedupeKey := source.String() + ":" + name
		if seen[dedupeKey] {
			continue
		}
		seen[dedupeKey] = true
		roots = append(roots, domain.Constraint{Name: name, Source: source, Interval: manifest.Dependencies[key]})
	}

	return roots, nil
}

// parseArgPackage splits a command-line package argument of the form
// "[source/]name[@interval]" into its constraint parts, defaulting to the
// "latest" interval when none is given.
func parseArgPackage(raw string) (domain.Source, string, string, error) {
	qualified := raw
	rawInterval := "latest"
	for i := 0; i < len(raw); i++ {
		if raw[i] == '@' {
			qualified = raw[:i]
			rawInterval = raw[i+1:]
			break
		}
	}
	source, name, err := domain.SplitSource(qualified)
	if err != nil {
		return 0, "", "", err
	}
	if err := domain.ValidateName(source, name); err != nil {
		return 0, "", "", err
	}
	if _, err := interval.Parse(rawInterval); err != nil {
		return 0, "", "", err
	}
	return source, name, rawInterval, nil
}

// qualifiedKey formats a manifest dependency key for (source, name). A
// GitHost dependency is always written with its "github/" prefix, since a
// bare name can't otherwise be told apart from a Registry one; a Registry
// dependency is written bare, matching the grammar's default-source rule,
// even when name itself contains a slash (domain.SplitSource only treats
// "poac/" and "github/" as source prefixes, so an unprefixed slash-bearing
// name like "boost/variant" is unambiguous).
func qualifiedKey(source domain.Source, name string) string {
	if source == domain.GitHost {
		return source.String() + "/" + name
	}
	return name
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// PublishOptions carries the publish command's flags.
type PublishOptions struct {
	Verbose bool
	Yes     bool
}

// Publish gathers a package's metadata from its git remote and registry/git
// host, rejects application packages, checks it is not already published,
// confirms with the user unless Yes is set, and logs completion. It stops
// short of the registration POST, which the registry does not yet expose.
func (a *App) Publish(ctx context.Context, dir string, opts PublishOptions) error {
	ctx, span := a.tracer.Start(ctx, "app.publish")
	defer span.End()
	_ = opts.Verbose

	manifest, ok, err := a.manifests.Load(dir)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrManifestMissing
	}

	info, err := a.gatherPackageInfo(ctx, dir, manifest)
	if err != nil {
		return err
	}

	if info.Kind == domain.PackageKindApplication {
		return zerr.With(domain.ErrPublishApplication, "name", info.Name)
	}

	// Publishing always registers against the poac registry, regardless of
	// which git host the project's source lives on.
	prober, err := a.versionProberFor(domain.Registry)
	if err != nil {
		return err
	}
	exists, err := prober.Exists(ctx, domain.PackageID{Source: domain.Registry, Name: info.Name, Version: info.Version})
	if err != nil {
		return err
	}
	if exists {
		return zerr.With(domain.ErrAlreadyPublished, "name", info.Name, "version", info.Version)
	}

	if !opts.Yes {
		confirmed, err := a.prompter.Confirm(fmt.Sprintf("Publish %s %s?", info.Name, info.Version))
		if err != nil {
			return err
		}
		if !confirmed {
			return domain.ErrPublishAborted
		}
	}

	a.logger.Info("Done.")
	return nil
}

// gatherPackageInfo fills in a PackageInfo from the manifest, the project's
// git origin remote, and git-host repository metadata.
func (a *App) gatherPackageInfo(ctx context.Context, dir string, manifest *domain.Manifest) (domain.PackageInfo, error) {
	fullName, err := a.origin.OriginFullName(dir)
	if err != nil {
		return domain.PackageInfo{}, err
	}

	meta, err := a.repoMetadataProvider()
	if err != nil {
		return domain.PackageInfo{}, err
	}

	version, err := meta.LatestRelease(ctx, fullName)
	if err != nil {
		return domain.PackageInfo{}, err
	}
	description, err := meta.Description(ctx, fullName)
	if err != nil {
		return domain.PackageInfo{}, err
	}
	license, err := meta.License(ctx, fullName, version)
	if err != nil {
		return domain.PackageInfo{}, err
	}

	return domain.PackageInfo{
		Name:        fullName,
		Version:     version,
		Description: description,
		Cpp:         manifest.CppOrDefault(),
		License:     license,
		Kind:        domain.PackageKindOf(manifest),
	}, nil
}

// versionProberFor returns the ports.VersionProber for source. Both
// providers implement the port on their concrete types, so it is fetched
// indirectly through ports.ProviderSet rather than a dedicated node.
func (a *App) versionProberFor(source domain.Source) (ports.VersionProber, error) {
	provider, err := a.providers.For(source)
	if err != nil {
		return nil, err
	}
	prober, ok := provider.(ports.VersionProber)
	if !ok {
		return nil, fmt.Errorf("app: provider for %s does not implement VersionProber", source)
	}
	return prober, nil
}

// repoMetadataProvider returns the git-host provider's RepoMetadataProvider
// face, since repository metadata is only ever sourced from the git host,
// regardless of which source the package itself is registered under.
func (a *App) repoMetadataProvider() (ports.RepoMetadataProvider, error) {
	provider, err := a.providers.For(domain.GitHost)
	if err != nil {
		return nil, err
	}
	meta, ok := provider.(ports.RepoMetadataProvider)
	if !ok {
		return nil, fmt.Errorf("app: git host provider does not implement RepoMetadataProvider")
	}
	return meta, nil
}
