package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/edwin/plugin-edwin/internal/dependency"
	"github.com/edwin/plugin-edwin/internal/shared/cmdutils"
)

const cliUser = "user"

var (
	runMessage string
	runSession string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Send a single message to the agent and print the reply",
	RunE:  runOnce,
}

func init() {
	runCmd.Flags().StringVarP(&runMessage, "message", "m", "", "Message to send (required)")
	runCmd.Flags().StringVarP(&runSession, "session", "s", "cli:direct", "Session ID")
}

func runOnce(cmd *cobra.Command, _ []string) error {
	if runMessage == "" {
		return errors.New("--message is required")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	return withContainer(ctx, func(c *dependency.Container) error {
		rt, err := c.Runtime()
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "  ↳ thinking...\n")
		reply, err := rt.ProcessDirect(ctx, runSession, cliUser, runMessage)
		if err != nil {
			return err
		}
		cmdutils.PrintResponse(cmd.OutOrStdout(), reply)
		return nil
	})
}
