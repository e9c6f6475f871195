// Package githost implements ports.CandidateProvider, ports.GitSource,
// ports.VersionProber and ports.RepoMetadataProvider against a git
// forge's REST API: tags, releases, license, repo metadata, over HTTPS.
package githost

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

const defaultBaseURL = "https://api.github.com"

// Provider implements the git-host side of candidate discovery and publish
// metadata gathering.
type Provider struct {
	baseURL string
	client  *httpretry.Client
}

// New creates a Provider. An empty baseURL defaults to api.github.com.
func New(baseURL string, client *httpretry.Client) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{baseURL: baseURL, client: client}
}

func (p *Provider) get(ctx context.Context, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return 0, zerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, zerr.With(domain.ErrRegistryRequest, "path", path, "cause", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, zerr.With(domain.ErrRegistryRequest, "path", path, "status", resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, zerr.With(domain.ErrRegistryRequest, "path", path, "cause", "decode response: "+err.Error())
		}
	}
	return resp.StatusCode, nil
}

type tag struct {
	Name string `json:"name"`
}

// ListVersions calls GET /repos/{owner}/{repo}/tags and parses each tag name
// as a SemVer version, discarding tags that do not parse.
func (p *Provider) ListVersions(ctx context.Context, id domain.PackageID) ([]semver.Version, error) {
	var tags []tag
	status, err := p.get(ctx, fmt.Sprintf("/repos/%s/tags", id.Name), &tags)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, zerr.With(domain.ErrNoCandidates, "package", id.Name)
	}

	versions := make([]semver.Version, 0, len(tags))
	for _, t := range tags {
		v, err := semver.Parse(t.Name)
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

// FetchManifest clones-free peek at a manifest is not offered by the REST
// API; git-hosted packages declare no transitive dependencies of their own in
// this system, so this returns an empty manifest.
func (p *Provider) FetchManifest(_ context.Context, _ domain.PackageID) (*domain.Manifest, error) {
	return &domain.Manifest{}, nil
}

// CloneURL returns the clone URL for id, used by ports.GitCloner.
func (p *Provider) CloneURL(id domain.PackageID) string {
	return fmt.Sprintf("https://github.com/%s.git", id.Name)
}

// Exists checks for a tag matching id.Version.
func (p *Provider) Exists(ctx context.Context, id domain.PackageID) (bool, error) {
	status, err := p.get(ctx, fmt.Sprintf("/repos/%s/git/ref/tags/%s", id.Name, id.Version), nil)
	if err != nil {
		return false, err
	}
	return status == http.StatusOK, nil
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
}

// LatestRelease calls GET /repos/{full_name}/releases/latest.
func (p *Provider) LatestRelease(ctx context.Context, fullName string) (string, error) {
	var rel releaseResponse
	status, err := p.get(ctx, fmt.Sprintf("/repos/%s/releases/latest", fullName), &rel)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound || rel.TagName == "" {
		return "", zerr.With(domain.ErrRegistryRequest, "full_name", fullName, "cause", "no latest release")
	}
	return rel.TagName, nil
}

type licenseResponse struct {
	License struct {
		Name string `json:"name"`
	} `json:"license"`
}

// License calls GET /repos/{full_name}/license?ref={version}.
func (p *Provider) License(ctx context.Context, fullName, version string) (string, error) {
	var lic licenseResponse
	status, err := p.get(ctx, fmt.Sprintf("/repos/%s/license?ref=%s", fullName, version), &lic)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", nil
	}
	return lic.License.Name, nil
}

type repoResponse struct {
	Description string `json:"description"`
}

// Description calls GET /repos/{full_name}.
func (p *Provider) Description(ctx context.Context, fullName string) (string, error) {
	var repo repoResponse
	status, err := p.get(ctx, fmt.Sprintf("/repos/%s", fullName), &repo)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", nil
	}
	return repo.Description, nil
}

var (
	_ ports.CandidateProvider    = (*Provider)(nil)
	_ ports.GitSource            = (*Provider)(nil)
	_ ports.VersionProber        = (*Provider)(nil)
	_ ports.RepoMetadataProvider = (*Provider)(nil)
)
