package ports

import "github.com/wow2006/poac/internal/core/domain"

// ProviderSet dispatches to the CandidateProvider matching a package's
// declared source: "poac" routes to the registry, "github" to the git host.
type ProviderSet interface {
	For(source domain.Source) (CandidateProvider, error)
}
