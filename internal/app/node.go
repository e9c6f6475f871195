package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/wow2006/poac/internal/adapters/archivefetch"
	"github.com/wow2006/poac/internal/adapters/cas"
	"github.com/wow2006/poac/internal/adapters/deps"
	"github.com/wow2006/poac/internal/adapters/gitclone"
	"github.com/wow2006/poac/internal/adapters/gitmeta"
	"github.com/wow2006/poac/internal/adapters/lockfile"
	"github.com/wow2006/poac/internal/adapters/logger"
	"github.com/wow2006/poac/internal/adapters/manifest"
	"github.com/wow2006/poac/internal/adapters/prompt"
	"github.com/wow2006/poac/internal/adapters/providers"
	"github.com/wow2006/poac/internal/adapters/tarextract"
	"github.com/wow2006/poac/internal/adapters/telemetry"
	"github.com/wow2006/poac/internal/core/ports"
	"github.com/wow2006/poac/internal/core/resolver"
)

const (
	// ResolverNodeID identifies the constraint solver node in the dependency
	// graph. It is registered here, rather than in internal/core/resolver,
	// because its DependsOn reaches into adapters, which core packages may
	// not import.
	ResolverNodeID graft.ID = "core.resolver"
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*resolver.Resolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{providers.NodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (*resolver.Resolver, error) {
			providerSet, err := graft.Dep[ports.ProviderSet](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return resolver.New(providerSet, tracer), nil
		},
	})

	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			lockfile.NodeID,
			cas.NodeID,
			providers.NodeID,
			archivefetch.NodeID,
			tarextract.NodeID,
			gitclone.NodeID,
			ResolverNodeID,
			gitmeta.NodeID,
			prompt.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run:       runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	manifests, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}
	lockfiles, err := graft.Dep[ports.LockfileStore](ctx)
	if err != nil {
		return nil, err
	}
	cache, err := graft.Dep[ports.Cache](ctx)
	if err != nil {
		return nil, err
	}
	providerSet, err := graft.Dep[ports.ProviderSet](ctx)
	if err != nil {
		return nil, err
	}
	archive, err := graft.Dep[ports.ArchiveFetcher](ctx)
	if err != nil {
		return nil, err
	}
	extractor, err := graft.Dep[ports.Extractor](ctx)
	if err != nil {
		return nil, err
	}
	cloner, err := graft.Dep[ports.GitCloner](ctx)
	if err != nil {
		return nil, err
	}
	resolv, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}
	origin, err := graft.Dep[ports.OriginReader](ctx)
	if err != nil {
		return nil, err
	}
	prompter, err := graft.Dep[ports.Prompter](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(manifests, lockfiles, cache, providerSet, archive, extractor, cloner, resolv, origin, prompter, log, tracer, deps.New), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return NewComponents(app, log), nil
}
