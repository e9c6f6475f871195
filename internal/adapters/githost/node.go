package githost

import (
	"context"
	"os"

	"github.com/grindlemire/graft"

	"github.com/wow2006/poac/internal/adapters/httpretry"
)

// NodeID identifies the git-host provider node in the dependency graph,
// registered under its concrete type for the same reason registry.NodeID is.
const NodeID graft.ID = "adapter.githost"

func init() {
	graft.Register(graft.Node[*Provider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Provider, error) {
			return New(os.Getenv("POAC_GITHOST_URL"), httpretry.New()), nil
		},
	})
}
