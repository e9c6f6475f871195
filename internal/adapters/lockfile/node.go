package lockfile

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/wow2006/poac/internal/adapters/logger"
	"github.com/wow2006/poac/internal/core/ports"
)

// NodeID identifies the LockfileStore node in the dependency graph.
const NodeID graft.ID = "adapter.lockfile_store"

func init() {
	graft.Register(graft.Node[ports.LockfileStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.LockfileStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
