package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.trai.ch/dotbuild/internal/core/domain"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the targets of the build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := c.app.Targets(runOptions(cmd))
			if err != nil {
				return err
			}

			t := table.New().
				Border(lipgloss.HiddenBorder()).
				Headers("TARGET", "DESCRIPTION", "RUNS AFTER")
			for _, target := range targets {
				t.Row(target.Name, target.Description, strings.Join(target.RunsAfter, ", "))
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, t.String())
			_, _ = fmt.Fprintf(out, "Append %s to any target to run it without its prerequisites.\n", domain.SingleSuffix)
			return nil
		},
	}
}
