package manifest

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/wow2006/poac/internal/core/ports"
)

// NodeID identifies the ManifestStore node in the dependency graph.
const NodeID graft.ID = "adapter.manifest_store"

func init() {
	graft.Register(graft.Node[ports.ManifestStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ManifestStore, error) {
			return New(), nil
		},
	})
}
