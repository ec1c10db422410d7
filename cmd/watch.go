package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/edwin/plugin-edwin/internal/dependency"
)

var watchOnce bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Log the portfolio on the configured cron schedule",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "Take one snapshot and exit")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	return withContainer(ctx, func(c *dependency.Container) error {
		svc, err := c.Watcher()
		if err != nil {
			return err
		}

		if _, ok := svc.RunOnce(ctx); !ok && watchOnce {
			return errors.New("portfolio unavailable (see logs)")
		}
		if watchOnce {
			return nil
		}

		if err := svc.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
}
