package gitmeta

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/wow2006/poac/internal/core/ports"
)

// NodeID identifies the origin reader node in the dependency graph.
const NodeID graft.ID = "adapter.origin_reader"

func init() {
	graft.Register(graft.Node[ports.OriginReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.OriginReader, error) {
			return New(), nil
		},
	})
}
