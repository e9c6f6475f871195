package archivefetch

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/wow2006/poac/internal/core/ports"
)

// NodeID identifies the archive fetcher node in the dependency graph.
const NodeID graft.ID = "adapter.archive_fetcher"

func init() {
	graft.Register(graft.Node[ports.ArchiveFetcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ArchiveFetcher, error) {
			return New(), nil
		},
	})
}
