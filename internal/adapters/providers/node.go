package providers

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/wow2006/poac/internal/adapters/githost"
	"github.com/wow2006/poac/internal/adapters/registry"
	"github.com/wow2006/poac/internal/core/ports"
)

// NodeID identifies the provider-set node in the dependency graph.
const NodeID graft.ID = "adapter.provider_set"

func init() {
	graft.Register(graft.Node[ports.ProviderSet]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{registry.NodeID, githost.NodeID},
		Run: func(ctx context.Context) (ports.ProviderSet, error) {
			reg, err := graft.Dep[*registry.Provider](ctx)
			if err != nil {
				return nil, err
			}
			git, err := graft.Dep[*githost.Provider](ctx)
			if err != nil {
				return nil, err
			}
			return New(reg, git), nil
		},
	})
}
