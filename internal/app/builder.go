package app

import (
	"github.com/wow2006/poac/internal/core/ports"
)

// Components is what the CLI layer resolves from the graft graph: the
// orchestrator plus the logger the commands print through directly.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NewComponents creates a new Components struct from its dependencies.
func NewComponents(app *App, logger ports.Logger) *Components {
	return &Components{App: app, Logger: logger}
}
