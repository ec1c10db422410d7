package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edwin/plugin-edwin/internal/dependency"
	"github.com/edwin/plugin-edwin/internal/schema"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Print the wallet portfolio as the agent sees it",
	RunE:  runPortfolio,
}

func runPortfolio(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	return withContainer(ctx, func(c *dependency.Container) error {
		pp, err := c.PortfolioProvider()
		if err != nil {
			return err
		}

		report, ok := pp.Get(ctx, nil, schema.NewMemory(runSession, cliUser, "portfolio"))
		if !ok {
			return errors.New("portfolio unavailable (see logs)")
		}
		fmt.Fprintln(cmd.OutOrStdout(), report)
		return nil
	})
}
