// Package fetcher drives the concurrent, unordered fetch of every package in
// a resolved dependency set into the global cache and then into the
// project's local deps/ directory: independent units of work dispatched
// through golang.org/x/sync/errgroup with a bounded worker limit, results
// aggregated rather than abandoned on the first failure, since package
// fetches have no inter-dependencies to protect (see domain.FetchStatus).
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/ports"
)

// Fetcher materializes a resolved dependency set on disk.
type Fetcher struct {
	providers ports.ProviderSet
	cache     ports.Cache
	archive   ports.ArchiveFetcher
	extractor ports.Extractor
	cloner    ports.GitCloner
	logger    ports.Logger
	tracer    ports.Tracer
}

// New creates a Fetcher. deps is supplied per-call to Fetch rather than here,
// since it is rooted at a project directory only known at install time.
func New(
	providers ports.ProviderSet,
	cache ports.Cache,
	archive ports.ArchiveFetcher,
	extractor ports.Extractor,
	cloner ports.GitCloner,
	logger ports.Logger,
	tracer ports.Tracer,
) *Fetcher {
	return &Fetcher{
		providers: providers,
		cache:     cache,
		archive:   archive,
		extractor: extractor,
		cloner:    cloner,
		logger:    logger,
		tracer:    tracer,
	}
}

// workerLimit bounds fetch concurrency to the host's CPU count, capped at 8,
// rather than leaving it user-configurable, since there's no build graph here whose
// width a user might want to cap.
func workerLimit() int {
	if n := runtime.NumCPU(); n < 8 {
		return n
	}
	return 8
}

// Fetch ensures every package in backtracked exists in deps and returns the
// terminal domain.FetchStatus reached for each, plus the join of every
// per-package failure (nil if every package succeeded).
// quiet suppresses per-package success logging; verbose adds the pinned
// source and version to each success line. A package that fails to fetch is
// always logged, via Warn, regardless of either flag.
func (f *Fetcher) Fetch(ctx context.Context, backtracked map[string]domain.PinnedVersion, deps ports.DepsDir, quiet, verbose bool) (map[string]domain.FetchStatus, error) {
	ctx, span := f.tracer.Start(ctx, "fetcher.fetch")
	defer span.End()

	var mu sync.Mutex
	statuses := make(map[string]domain.FetchStatus, len(backtracked))
	var errs []error

	var g errgroup.Group
	g.SetLimit(workerLimit())

	for name, pinned := range backtracked {
		name, pinned := name, pinned
		g.Go(func() error {
			status, err := f.fetchOne(ctx, name, pinned, deps)
			mu.Lock()
			statuses[name] = status
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
			mu.Unlock()
			switch {
			case err != nil:
				f.logger.Warn(fmt.Sprintf("fetch failed for %s: %v", name, err))
			case verbose:
				f.logger.Info(fmt.Sprintf("%s %s (source=%s version=%s)", name, status, pinned.Source, pinned.Version))
			case !quiet:
				f.logger.Info(fmt.Sprintf("%s %s", name, status))
			}
			return nil
		})
	}

	_ = g.Wait()
	return statuses, errors.Join(errs...)
}

func (f *Fetcher) fetchOne(ctx context.Context, name string, pinned domain.PinnedVersion, deps ports.DepsDir) (domain.FetchStatus, error) {
	id := domain.PackageID{Source: pinned.Source, Name: name, Version: pinned.Version}
	currentName := id.CurrentName()

	if deps.Exists(currentName) {
		return domain.FetchStatusAlreadyInstalled, nil
	}

	cacheName := id.CacheName()
	hadCache := f.cache.Has(cacheName)

	if !hadCache {
		if err := f.cache.Populate(ctx, cacheName, func(tmpDir string) error {
			return f.download(ctx, id, tmpDir)
		}); err != nil {
			return domain.FetchStatusFailed, err
		}
	}

	if err := deps.CopyFrom(f.cache.Path(cacheName), currentName); err != nil {
		return domain.FetchStatusFailed, err
	}

	if hadCache {
		return domain.FetchStatusCopiedFromCache, nil
	}
	return domain.FetchStatusFetched, nil
}

// download populates tmpDir with package id's contents, dispatching on
// source: an archive download+extract for the registry, a shallow git clone
// for a git host.
func (f *Fetcher) download(ctx context.Context, id domain.PackageID, tmpDir string) error {
	provider, err := f.providers.For(id.Source)
	if err != nil {
		return err
	}

	switch id.Source {
	case domain.Registry:
		archiveSrc, ok := provider.(ports.ArchiveSource)
		if !ok {
			return errors.New("fetcher: registry provider does not implement ArchiveSource")
		}
		archivePath := filepath.Join(tmpDir, ".download.tar.gz")
		if err := f.archive.Fetch(ctx, archiveSrc.ArchiveURL(id), archivePath); err != nil {
			return err
		}
		defer os.Remove(archivePath)
		return f.extractor.Extract(archivePath, tmpDir)

	case domain.GitHost:
		gitSrc, ok := provider.(ports.GitSource)
		if !ok {
			return errors.New("fetcher: git-host provider does not implement GitSource")
		}
		return f.cloner.Clone(ctx, gitSrc.CloneURL(id), id.Version, tmpDir)

	default:
		return domain.ErrUnknownSource
	}
}
