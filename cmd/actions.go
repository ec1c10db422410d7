package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edwin/plugin-edwin/internal/dependency"
	"github.com/edwin/plugin-edwin/internal/shared/llmutils"
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List the actions generated from Edwin tools",
	RunE:  runActions,
}

func runActions(cmd *cobra.Command, _ []string) error {
	return withContainer(cmd.Context(), func(c *dependency.Container) error {
		p, err := c.Plugin()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(p.Actions) == 0 {
			fmt.Fprintln(out, "No Edwin tools available.")
			return nil
		}
		for _, a := range p.Actions {
			fmt.Fprintf(out, "%-28s %s\n", a.Name, llmutils.Truncate(a.Description, 80))
		}
		return nil
	})
}
