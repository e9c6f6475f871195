package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [packages...]",
		Short: "Install the project's dependencies",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quiet, _ := cmd.Flags().GetBool("quiet")
			verbose, _ := cmd.Flags().GetBool("verbose")

			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return c.app.Install(cmd.Context(), dir, args, quiet, verbose)
		},
	}
	cmd.Flags().BoolP("quiet", "q", false, "Suppress non-essential output")
	cmd.Flags().BoolP("verbose", "v", false, "Print detailed progress output")
	return cmd
}
