// Package registry implements ports.CandidateProvider and ports.ArchiveSource
// against the poac package registry's HTTP API: build a request, run it,
// decode a typed JSON response, wrap errors with zerr.With.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.trai.ch/zerr"

	"github.com/wow2006/poac/internal/adapters/httpretry"
	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/ports"
	"github.com/wow2006/poac/internal/core/semver"
)

const defaultBaseURL = "https://registry.poac.pm/api/v1"

// Provider implements ports.CandidateProvider, ports.ArchiveSource, and
// ports.VersionProber for registry-hosted packages.
type Provider struct {
	baseURL string
	client  *httpretry.Client
}

// New creates a Provider. An empty baseURL uses the production registry.
func New(baseURL string, client *httpretry.Client) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{baseURL: baseURL, client: client}
}

type versionsResponse struct {
	Versions []string `json:"versions"`
}

// ListVersions calls GET /packages/{name}/versions.
func (p *Provider) ListVersions(ctx context.Context, id domain.PackageID) ([]semver.Version, error) {
	url := fmt.Sprintf("%s/packages/%s/versions", p.baseURL, id.Name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "build request")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, zerr.With(domain.ErrRegistryRequest, "package", id.Name, "cause", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, zerr.With(domain.ErrNoCandidates, "package", id.Name)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(domain.ErrRegistryRequest, "package", id.Name, "status", resp.StatusCode)
	}

	var body versionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, zerr.With(domain.ErrRegistryRequest, "package", id.Name, "cause", "decode response: "+err.Error())
	}

	versions := make([]semver.Version, 0, len(body.Versions))
	for _, raw := range body.Versions {
		v, err := semver.Parse(raw)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	if len(versions) == 0 {
		return nil, zerr.With(domain.ErrNoCandidates, "package", id.Name)
	}
	return versions, nil
}

type manifestResponse struct {
	Dependencies map[string]string `json:"deps"`
}

// FetchManifest calls GET /packages/{name}/{version}/manifest to discover the
// package's own transitive dependency declarations.
func (p *Provider) FetchManifest(ctx context.Context, id domain.PackageID) (*domain.Manifest, error) {
	url := fmt.Sprintf("%s/packages/%s/%s/manifest", p.baseURL, id.Name, id.Version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "build request")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, zerr.With(domain.ErrRegistryRequest, "package", id.Name, "cause", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, zerr.With(domain.ErrNoCandidates, "package", id.Name, "version", id.Version)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(domain.ErrRegistryRequest, "package", id.Name, "status", resp.StatusCode)
	}

	var body manifestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, zerr.With(domain.ErrRegistryRequest, "package", id.Name, "cause", "decode response: "+err.Error())
	}
	return &domain.Manifest{Dependencies: body.Dependencies}, nil
}

// ArchiveURL returns the tarball URL for id.
func (p *Provider) ArchiveURL(id domain.PackageID) string {
	return fmt.Sprintf("%s/packages/%s/%s.tar.gz", p.baseURL, id.Name, id.Version)
}

// Exists checks whether the registry already has id.Name at id.Version.
func (p *Provider) Exists(ctx context.Context, id domain.PackageID) (bool, error) {
	url := fmt.Sprintf("%s/packages/%s/%s", p.baseURL, id.Name, id.Version)
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, zerr.Wrap(err, "build request")
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false, zerr.With(domain.ErrRegistryRequest, "package", id.Name, "cause", err.Error())
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

var (
	_ ports.CandidateProvider = (*Provider)(nil)
	_ ports.ArchiveSource     = (*Provider)(nil)
	_ ports.VersionProber     = (*Provider)(nil)
)
