// Package providers aggregates the registry and git-host CandidateProviders
// behind ports.ProviderSet so the resolver and fetcher never need to know
// about the two concrete provider types directly.
package providers

import (
	"go.trai.ch/zerr"

	"github.com/wow2006/poac/internal/adapters/githost"
	"github.com/wow2006/poac/internal/adapters/registry"
	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/ports"
)

// Set implements ports.ProviderSet.
type Set struct {
	Registry *registry.Provider
	GitHost  *githost.Provider
}

// New builds a Set from the two concrete providers.
func New(reg *registry.Provider, git *githost.Provider) *Set {
	return &Set{Registry: reg, GitHost: git}
}

// For implements ports.ProviderSet.
func (s *Set) For(source domain.Source) (ports.CandidateProvider, error) {
	switch source {
	case domain.Registry:
		return s.Registry, nil
	case domain.GitHost:
		return s.GitHost, nil
	default:
		return nil, zerr.With(domain.ErrUnknownSource, "source", int(source))
	}
}
