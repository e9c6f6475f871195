package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wow2006/poac/internal/app"
)

func (c *CLI) newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the project's package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			yes, _ := cmd.Flags().GetBool("yes")

			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return c.app.Publish(cmd.Context(), dir, app.PublishOptions{Verbose: verbose, Yes: yes})
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Print detailed progress output")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
