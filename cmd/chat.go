package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edwin/plugin-edwin/internal/dependency"
	"github.com/edwin/plugin-edwin/internal/shared/cmdutils"
)

var chatSession string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the agent interactively",
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatSession, "session", "s", "cli:direct", "Session ID")
}

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

// runChat reads lines from stdin and answers each one before prompting again.
func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withContainer(ctx, func(c *dependency.Container) error {
		rt, err := c.Runtime()
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s Interactive mode (type 'exit' or Ctrl+C to quit)\n\n", logo)
		scanner := bufio.NewScanner(os.Stdin)

		for {
			fmt.Fprint(out, "You: ")

			if !scanner.Scan() || ctx.Err() != nil {
				fmt.Fprintln(out, "\nGoodbye!")
				return nil
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if exitCommands[strings.ToLower(line)] {
				fmt.Fprintln(out, "Goodbye!")
				return nil
			}

			reply, err := rt.ProcessDirect(ctx, chatSession, cliUser, line)
			if err != nil {
				slog.Error("Error processing message", "err", err)
				fmt.Fprintf(out, "\nSorry, I encountered an error: %v\n\n", err)
				continue
			}
			cmdutils.PrintResponse(out, reply)
		}
	})
}
