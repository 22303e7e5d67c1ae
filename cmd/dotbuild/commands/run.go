package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/dotbuild/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [target]",
		Short: "Run a target and everything it runs after",
		Long: "Run a target and everything it runs after. Without a target, " + domain.DefaultTarget +
			" is run. Append " + domain.SingleSuffix + " to a target name to run it alone, without prompts.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := domain.DefaultTarget
			if len(args) == 1 {
				target = args[0]
			}

			opts := runOptions(cmd)
			opts.AssumeYes, _ = cmd.Flags().GetBool("yes")

			return c.app.Run(cmd.Context(), target, opts)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Accept every confirmation prompt")
	return cmd
}
