package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wow2006/poac/internal/adapters/telemetry"
	"github.com/wow2006/poac/internal/app"
	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/ports"
	"github.com/wow2006/poac/internal/core/resolver"
	"github.com/wow2006/poac/internal/core/semver"
)

type fakeManifests struct {
	manifest  *domain.Manifest
	ok        bool
	timestamp time.Time
	writes    int
}

func (f *fakeManifests) Load(string) (*domain.Manifest, bool, error) {
	return f.manifest, f.ok, nil
}

func (f *fakeManifests) Write(_ string, m *domain.Manifest) error {
	f.manifest = m
	f.writes++
	f.timestamp = f.timestamp.Add(time.Second)
	return nil
}

func (f *fakeManifests) Timestamp(string) (time.Time, error) {
	return f.timestamp, nil
}

type fakeLockfiles struct {
	stored    *domain.Resolved
	timestamp string
	loads     int
	writes    int
}

func (f *fakeLockfiles) Load(_ string, expectedTimestamp string) (*domain.Resolved, bool, error) {
	f.loads++
	if f.stored == nil || f.timestamp != expectedTimestamp {
		return nil, false, nil
	}
	return f.stored, true, nil
}

func (f *fakeLockfiles) Write(_ string, timestamp string, resolved *domain.Resolved) error {
	f.stored = resolved
	f.timestamp = timestamp
	f.writes++
	return nil
}

type fakeCache struct{ populated map[string]bool }

func newFakeCache() *fakeCache { return &fakeCache{populated: map[string]bool{}} }

func (c *fakeCache) Has(cacheName string) bool { return c.populated[cacheName] }
func (c *fakeCache) Path(string) string        { return "" }
func (c *fakeCache) Populate(_ context.Context, cacheName string, fetch func(string) error) error {
	if err := fetch(""); err != nil {
		return err
	}
	c.populated[cacheName] = true
	return nil
}

type fakeDeps struct{ copied map[string]bool }

func newFakeDeps() *fakeDeps { return &fakeDeps{copied: map[string]bool{}} }

func (d *fakeDeps) Exists(currentName string) bool { return d.copied[currentName] }
func (d *fakeDeps) CopyFrom(_, currentName string) error {
	d.copied[currentName] = true
	return nil
}

type fakeArchive struct{}

func (fakeArchive) Fetch(context.Context, string, string) error { return nil }

type fakeExtractor struct{}

func (fakeExtractor) Extract(string, string) error { return nil }

type fakeCloner struct{}

func (fakeCloner) Clone(context.Context, string, string, string) error { return nil }

type fakeOrigin struct{ fullName string }

func (o fakeOrigin) OriginFullName(string) (string, error) { return o.fullName, nil }

type fakePrompter struct{ answer bool }

func (p fakePrompter) Confirm(string) (bool, error) { return p.answer, nil }

type fakeLogger struct{}

func (fakeLogger) Info(string) {}
func (fakeLogger) Warn(string) {}
func (fakeLogger) Error(error) {}

// fakeProvider backs both the registry and git-host sides of fakeProviderSet.
type fakeProvider struct {
	versions    map[string][]string
	description string
	license     string
	latest      string
	published   map[string]bool
}

func (p *fakeProvider) ListVersions(_ context.Context, id domain.PackageID) ([]semver.Version, error) {
	raw, ok := p.versions[id.Name]
	if !ok {
		return nil, domain.ErrNoCandidates
	}
	out := make([]semver.Version, 0, len(raw))
	for _, v := range raw {
		out = append(out, semver.MustParse(v))
	}
	return out, nil
}

func (p *fakeProvider) FetchManifest(context.Context, domain.PackageID) (*domain.Manifest, error) {
	return &domain.Manifest{}, nil
}

func (p *fakeProvider) ArchiveURL(domain.PackageID) string { return "https://example/archive.tar.gz" }
func (p *fakeProvider) CloneURL(domain.PackageID) string   { return "https://example/repo.git" }

func (p *fakeProvider) Exists(_ context.Context, id domain.PackageID) (bool, error) {
	return p.published[id.Name+"@"+id.Version], nil
}

func (p *fakeProvider) LatestRelease(context.Context, string) (string, error) { return p.latest, nil }
func (p *fakeProvider) License(context.Context, string, string) (string, error) {
	return p.license, nil
}
func (p *fakeProvider) Description(context.Context, string) (string, error) {
	return p.description, nil
}

type fakeProviderSet struct {
	registry *fakeProvider
	githost  *fakeProvider
}

func (s *fakeProviderSet) For(source domain.Source) (ports.CandidateProvider, error) {
	if source == domain.GitHost {
		return s.githost, nil
	}
	return s.registry, nil
}

func noopTracer() ports.Tracer { return telemetry.NewNoOpTracer() }

func newTestApp(manifests *fakeManifests, lockfiles *fakeLockfiles, providerSet *fakeProviderSet, origin ports.OriginReader, prompter ports.Prompter) (*app.App, *fakeDeps) {
	cache := newFakeCache()
	deps := newFakeDeps()
	r := resolver.New(providerSet, noopTracer())
	a := app.New(
		manifests, lockfiles, cache, providerSet,
		fakeArchive{}, fakeExtractor{}, fakeCloner{},
		r, origin, prompter, fakeLogger{}, noopTracer(),
		func(string) ports.DepsDir { return deps },
	)
	return a, deps
}

func TestInstall_ResolvesFetchesAndWritesLockfile(t *testing.T) {
	manifests := &fakeManifests{
		ok:       true,
		manifest: &domain.Manifest{Dependencies: map[string]string{"boost/variant": ">=1.70.0 and <2.0.0"}},
	}
	lockfiles := &fakeLockfiles{}
	providers := &fakeProviderSet{
		registry: &fakeProvider{versions: map[string][]string{"boost/variant": {"1.70.0", "1.71.0"}}},
		githost:  &fakeProvider{},
	}

	a, deps := newTestApp(manifests, lockfiles, providers, fakeOrigin{}, fakePrompter{})

	err := a.Install(context.Background(), "/project", nil, false, false)
	require.NoError(t, err)

	assert.Equal(t, 1, lockfiles.writes)
	assert.NotNil(t, lockfiles.stored)
	pinned, ok := lockfiles.stored.Backtracked["boost/variant"]
	require.True(t, ok)
	assert.Equal(t, "1.71.0", pinned.Version)
	assert.True(t, deps.Exists(domain.PackageID{Source: domain.Registry, Name: "boost/variant", Version: "1.71.0"}.CurrentName()))
}

func TestInstall_RewritesLatestRootIntoManifest(t *testing.T) {
	manifests := &fakeManifests{
		ok:       true,
		manifest: &domain.Manifest{Dependencies: map[string]string{}},
	}
	lockfiles := &fakeLockfiles{}
	providers := &fakeProviderSet{
		registry: &fakeProvider{versions: map[string][]string{"boost/variant": {"1.70.0", "1.71.0"}}},
		githost:  &fakeProvider{},
	}

	a, _ := newTestApp(manifests, lockfiles, providers, fakeOrigin{}, fakePrompter{})

	err := a.Install(context.Background(), "/project", []string{"boost/variant"}, false, false)
	require.NoError(t, err)

	assert.Equal(t, 1, manifests.writes)
	assert.Equal(t, ">=1.71.0 and <2.0.0", manifests.manifest.Dependencies["boost/variant"])
}

func TestInstall_UsesLockfileFastPathWhenUnchanged(t *testing.T) {
	manifests := &fakeManifests{ok: true, manifest: &domain.Manifest{}}
	resolved := domain.NewResolved([]domain.ActivatedNode{
		{Name: "boost/variant", Version: "1.71.0", Source: domain.Registry},
	}, []int{0})
	lockfiles := &fakeLockfiles{stored: resolved, timestamp: "1970-01-01T00:00:00Z"}
	manifests.timestamp, _ = time.Parse(time.RFC3339, "1970-01-01T00:00:00Z")

	providers := &fakeProviderSet{registry: &fakeProvider{}, githost: &fakeProvider{}}
	a, deps := newTestApp(manifests, lockfiles, providers, fakeOrigin{}, fakePrompter{})

	err := a.Install(context.Background(), "/project", nil, false, false)
	require.NoError(t, err)

	assert.Equal(t, 0, lockfiles.writes)
	assert.False(t, deps.Exists(domain.PackageID{Source: domain.Registry, Name: "boost/variant", Version: "1.71.0"}.CurrentName()))
}

func TestInstall_MissingManifestFails(t *testing.T) {
	manifests := &fakeManifests{ok: false}
	lockfiles := &fakeLockfiles{}
	providers := &fakeProviderSet{registry: &fakeProvider{}, githost: &fakeProvider{}}
	a, _ := newTestApp(manifests, lockfiles, providers, fakeOrigin{}, fakePrompter{})

	err := a.Install(context.Background(), "/project", nil, false, false)
	require.ErrorIs(t, err, domain.ErrManifestMissing)
}

func TestPublish_HappyPath(t *testing.T) {
	manifests := &fakeManifests{ok: true, manifest: &domain.Manifest{Package: domain.Package{Cpp: domain.Cpp17}}}
	providers := &fakeProviderSet{
		registry: &fakeProvider{},
		githost: &fakeProvider{
			latest:      "1.0.0",
			description: "a library",
			license:     "MIT",
			published:   map[string]bool{},
		},
	}
	a, _ := newTestApp(manifests, &fakeLockfiles{}, providers, fakeOrigin{fullName: "poac-dev/poac"}, fakePrompter{answer: true})

	err := a.Publish(context.Background(), "/project", app.PublishOptions{})
	require.NoError(t, err)
}

func TestPublish_RejectsApplicationPackages(t *testing.T) {
	manifests := &fakeManifests{ok: true, manifest: &domain.Manifest{
		Build: &domain.BuildConfig{Bin: []domain.BuildBin{{Name: "poac", Path: "main.cpp"}}},
	}}
	providers := &fakeProviderSet{
		registry: &fakeProvider{},
		githost:  &fakeProvider{latest: "1.0.0"},
	}
	a, _ := newTestApp(manifests, &fakeLockfiles{}, providers, fakeOrigin{fullName: "poac-dev/poac"}, fakePrompter{answer: true})

	err := a.Publish(context.Background(), "/project", app.PublishOptions{})
	require.ErrorIs(t, err, domain.ErrPublishApplication)
}

func TestPublish_RejectsAlreadyPublishedVersion(t *testing.T) {
	manifests := &fakeManifests{ok: true, manifest: &domain.Manifest{}}
	providers := &fakeProviderSet{
		registry: &fakeProvider{published: map[string]bool{"poac-dev/poac@1.0.0": true}},
		githost:  &fakeProvider{latest: "1.0.0"},
	}
	a, _ := newTestApp(manifests, &fakeLockfiles{}, providers, fakeOrigin{fullName: "poac-dev/poac"}, fakePrompter{answer: true})

	err := a.Publish(context.Background(), "/project", app.PublishOptions{})
	require.ErrorIs(t, err, domain.ErrAlreadyPublished)
}

func TestPublish_AbortsOnDeclinedConfirmation(t *testing.T) {
	manifests := &fakeManifests{ok: true, manifest: &domain.Manifest{}}
	providers := &fakeProviderSet{
		registry: &fakeProvider{},
		githost:  &fakeProvider{latest: "1.0.0"},
	}
	a, _ := newTestApp(manifests, &fakeLockfiles{}, providers, fakeOrigin{fullName: "poac-dev/poac"}, fakePrompter{answer: false})

	err := a.Publish(context.Background(), "/project", app.PublishOptions{})
	require.ErrorIs(t, err, domain.ErrPublishAborted)
}
