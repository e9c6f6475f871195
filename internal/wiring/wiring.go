// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/wow2006/poac/internal/adapters/archivefetch"
	_ "github.com/wow2006/poac/internal/adapters/cas"
	_ "github.com/wow2006/poac/internal/adapters/gitclone"
	_ "github.com/wow2006/poac/internal/adapters/githost"
	_ "github.com/wow2006/poac/internal/adapters/gitmeta"
	_ "github.com/wow2006/poac/internal/adapters/lockfile"
	_ "github.com/wow2006/poac/internal/adapters/logger"
	_ "github.com/wow2006/poac/internal/adapters/manifest"
	_ "github.com/wow2006/poac/internal/adapters/prompt"
	_ "github.com/wow2006/poac/internal/adapters/providers"
	_ "github.com/wow2006/poac/internal/adapters/registry"
	_ "github.com/wow2006/poac/internal/adapters/tarextract"
	_ "github.com/wow2006/poac/internal/adapters/telemetry"
	// Register app nodes (also registers the resolver node, see internal/app/node.go).
	_ "github.com/wow2006/poac/internal/app"
)
