// Package commands implements the CLI commands for the poac package manager.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wow2006/poac/internal/app"
)

// Application is the subset of *app.App the CLI depends on, kept as an
// interface so commands can be exercised against a fake in tests.
type Application interface {
	Install(ctx context.Context, dir string, extra []string, quiet, verbose bool) error
	Publish(ctx context.Context, dir string, opts app.PublishOptions) error
	Version() string
}

// CLI represents the command line interface for poac.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "poac",
		Short:         "A package manager and build automation tool for C++",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newPublishCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}
