package cas

import (
	"context"
	"os"
	"path/filepath"

	"github.com/grindlemire/graft"

	"github.com/wow2006/poac/internal/core/ports"
)

// NodeID identifies the package cache node in the dependency graph.
const NodeID graft.ID = "adapter.cache"

// cacheDir resolves $POAC_CACHE_DIR, defaulting to ~/.poac/cache.
func cacheDir() (string, error) {
	if dir := os.Getenv("POAC_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".poac", "cache"), nil
}

func init() {
	graft.Register(graft.Node[ports.Cache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Cache, error) {
			dir, err := cacheDir()
			if err != nil {
				return nil, err
			}
			return New(dir)
		},
	})
}
