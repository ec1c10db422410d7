package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edwin/plugin-edwin/internal/dependency"
	"github.com/edwin/plugin-edwin/internal/edwin"
	"github.com/edwin/plugin-edwin/internal/plugin"
	"github.com/edwin/plugin-edwin/internal/providers"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show edwin status",
	RunE:  runStatus,
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func runStatus(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	cfgPath := resolvedConfigPath()

	fmt.Fprintf(out, "%s edwin Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	fmt.Fprintf(out, "Config:    %s %s\n", cfgPath, mark(statErr == nil))

	ws := cfg.WorkspacePath()
	_, wsErr := os.Stat(ws)
	fmt.Fprintf(out, "Workspace: %s %s\n", ws, mark(wsErr == nil))
	fmt.Fprintf(out, "Model:     %s\n", cfg.Agents.Defaults.Model)
	fmt.Fprintf(out, "Watch:     %s\n\n", cfg.Watch.Schedule)

	fmt.Fprintln(out, "Edwin:")
	server := cfg.Edwin.Server
	switch {
	case server.Command != "":
		fmt.Fprintf(out, "  %-20s ✓ stdio %s\n", "Server", server.Command)
	case server.URL != "":
		fmt.Fprintf(out, "  %-20s ✓ %s\n", "Server", server.URL)
	default:
		fmt.Fprintf(out, "  %-20s (not set)\n", "Server")
	}
	creds := plugin.CredentialsFromEnv()
	fmt.Fprintf(out, "  %-20s %s\n", "EVM wallet", walletStatus(creds.EVMPrivateKey, func(k string) (string, error) {
		w, err := edwin.NewEVMWallet(k)
		if err != nil {
			return "", err
		}
		return w.Address().Hex(), nil
	}))
	fmt.Fprintf(out, "  %-20s %s\n", "Solana wallet", walletStatus(creds.SolanaPrivateKey, func(k string) (string, error) {
		w, err := edwin.NewSolanaWallet(k)
		if err != nil {
			return "", err
		}
		return w.Address(), nil
	}))
	fmt.Fprintf(out, "  %-20s %s\n\n", "EVM RPC", mark(cfg.Edwin.EVMRPCURL != ""))

	fmt.Fprintln(out, "Providers:")
	for _, spec := range providers.Registry {
		p := cfg.ProviderByName(spec.Name)
		if p == nil {
			continue
		}
		label := spec.Label()
		switch {
		case spec.IsLocal:
			if p.APIBase != "" {
				fmt.Fprintf(out, "  %-20s ✓ %s\n", label, p.APIBase)
			} else {
				fmt.Fprintf(out, "  %-20s (not set)\n", label)
			}
		case p.APIKey != "":
			fmt.Fprintf(out, "  %-20s ✓\n", label)
		default:
			fmt.Fprintf(out, "  %-20s (not set)\n", label)
		}
	}

	if wsErr != nil {
		return nil
	}
	return withContainer(cmd.Context(), func(c *dependency.Container) error {
		sessions, err := c.Sessions()
		if err != nil {
			return err
		}
		list := sessions.ListSessions()
		fmt.Fprintf(out, "\nSessions: %d\n", len(list))
		for _, info := range list[:min(len(list), maxListedSessions)] {
			fmt.Fprintf(out, "  %-20s %s\n", info.Key, info.UpdatedAt)
		}
		return nil
	})
}

const maxListedSessions = 5

// walletStatus reports the address derived from key, or why there is none.
func walletStatus(key string, address func(string) (string, error)) string {
	if key == "" {
		return "(not set)"
	}
	addr, err := address(key)
	if err != nil {
		return "✗ " + err.Error()
	}
	return "✓ " + addr
}
