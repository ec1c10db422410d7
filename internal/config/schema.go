// Package config defines the configuration schema for the Edwin agent.
//
// JSON keys use camelCase. The file lives at ~/.edwin/config.json unless
// EDWIN_CONFIG or --config points elsewhere.
package config

import (
	"os"
	"path/filepath"

	"github.com/edwin/plugin-edwin/internal/config/agent"
	"github.com/edwin/plugin-edwin/internal/config/provider"
	"github.com/edwin/plugin-edwin/internal/config/sdk"
)

// WatchConfig schedules the portfolio watcher.
type WatchConfig struct {
	Schedule string `json:"schedule"` // standard 5-field cron expression
}

// LoggingConfig controls the default slog handler.
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // text or json
}

// Config is the root configuration object.
type Config struct {
	Agents    agent.AgentsConfig       `json:"agents"`
	Providers provider.ProvidersConfig `json:"providers"`
	Edwin     sdk.EdwinConfig          `json:"edwin"`
	Watch     WatchConfig              `json:"watch"`
	Logging   LoggingConfig            `json:"logging"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		Agents:    agent.DefaultAgentsConfig(),
		Providers: provider.DefaultProvidersConfig(),
		Edwin:     sdk.DefaultEdwinConfig(),
		Watch:     WatchConfig{Schedule: "*/15 * * * *"},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
	}
}

// WorkspacePath returns the expanded absolute path to the agent workspace.
func (c *Config) WorkspacePath() string {
	return expandHome(c.Agents.Defaults.Workspace, filepath.Join(DataDir(), "workspace"))
}

// ProviderByName returns the ProviderConfig for a registry name, or nil.
func (c *Config) ProviderByName(name string) *provider.ProviderConfig {
	return c.Providers.ByName(name)
}

func expandHome(path, fallback string) string {
	if path == "" {
		return fallback
	}
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
