package tarextract

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/wow2006/poac/internal/core/ports"
)

// NodeID identifies the archive extractor node in the dependency graph.
const NodeID graft.ID = "adapter.extractor"

func init() {
	graft.Register(graft.Node[ports.Extractor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Extractor, error) {
			return New(), nil
		},
	})
}
