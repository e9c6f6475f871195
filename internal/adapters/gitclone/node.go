package gitclone

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/wow2006/poac/internal/core/ports"
)

// NodeID identifies the git cloner node in the dependency graph.
const NodeID graft.ID = "adapter.git_cloner"

func init() {
	graft.Register(graft.Node[ports.GitCloner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.GitCloner, error) {
			return New(), nil
		},
	})
}
