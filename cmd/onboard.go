package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/edwin/plugin-edwin/internal/config"
	"github.com/edwin/plugin-edwin/internal/plugin"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize configuration, workspace and character",
	RunE:  runOnboard,
}

func runOnboard(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	cfgPath := resolvedConfigPath()

	// cfg already holds the existing values (or defaults) from loadConfig.
	_, statErr := os.Stat(cfgPath)
	if err := config.Save(cfg, cfgPath); err != nil {
		return err
	}
	if statErr == nil {
		fmt.Fprintf(out, "✓ Config refreshed at %s\n", cfgPath)
	} else {
		fmt.Fprintf(out, "✓ Created config at %s\n", cfgPath)
	}

	workspace := cfg.WorkspacePath()
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	fmt.Fprintf(out, "✓ Workspace at %s\n", workspace)

	charPath := filepath.Join(config.DataDir(), "character.yaml")
	if _, err := os.Stat(charPath); os.IsNotExist(err) {
		if err := config.SaveCharacter(config.DefaultCharacter(), charPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "  Created %s (set agents.defaults.character to use it)\n", charPath)
	}

	fmt.Fprintf(out, "\n%s edwin is ready!\n\n", logo)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  1. Add an LLM API key and the Edwin server to %s\n", cfgPath)
	fmt.Fprintf(out, "  2. Export %s and/or %s\n", plugin.EnvEVMPrivateKey, plugin.EnvSolanaPrivateKey)
	fmt.Fprintln(out, "  3. Chat: edwin run -m \"What is my portfolio?\"")
	return nil
}
