package prompt

import (
	"context"
	"os"

	"github.com/grindlemire/graft"

	"github.com/wow2006/poac/internal/core/ports"
)

// NodeID identifies the prompter node in the dependency graph.
const NodeID graft.ID = "adapter.prompter"

func init() {
	graft.Register(graft.Node[ports.Prompter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Prompter, error) {
			return New(os.Stdin, os.Stdout), nil
		},
	})
}
