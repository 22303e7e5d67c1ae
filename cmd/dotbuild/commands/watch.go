package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/dotbuild/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the documentation whenever its content changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, _ := cmd.Flags().GetString("target")
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				RunOptions: runOptions(cmd),
				Target:     target,
			})
		},
	}
	cmd.Flags().StringP("target", "t", app.DefaultWatchTarget, "Target to run after each change")
	return cmd
}
