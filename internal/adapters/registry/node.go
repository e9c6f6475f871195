package registry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"

	"github.com/wow2006/poac/internal/adapters/httpretry"
)

// NodeID identifies the registry provider node in the dependency graph. It is
// registered under its concrete type (rather than ports.CandidateProvider)
// because the git host provider implements the same port and the two must
// not collide when graft resolves a dependency by type.
const NodeID graft.ID = "adapter.registry"

func init() {
	graft.Register(graft.Node[*Provider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Provider, error) {
			return New(os.Getenv("POAC_REGISTRY_URL"), httpretry.New()), nil
		},
	})
}
