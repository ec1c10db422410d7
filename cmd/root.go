// Package cmd implements the edwin CLI using cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/edwin/plugin-edwin/internal/config"
	"github.com/edwin/plugin-edwin/internal/dependency"
	"github.com/edwin/plugin-edwin/internal/logging"
)

const version = "0.0.1"
const logo = "🪙"

var (
	configPath string
	logLevel   string

	// cfg is loaded once by the root PersistentPreRunE.
	cfg *config.Config
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "edwin",
	Short: logo + " edwin - DeFi agent backed by the Edwin SDK",
	Long:  logo + " edwin - exposes Edwin SDK tools as agent actions and reports the wallet portfolio",

	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command and exits on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $EDWIN_CONFIG or ~/.edwin/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(actionsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(portfolioCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statusCmd)
}

func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(resolvedConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	logging.Setup(level, cfg.Logging.Format, os.Stderr)
	return nil
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.ConfigPath()
}

// withContainer builds the service container, hands it to fn and releases
// every Edwin client afterwards.
func withContainer(ctx context.Context, fn func(*dependency.Container) error) error {
	c, err := dependency.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}
