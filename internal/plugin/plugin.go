package plugin

import (
	"context"
	"log/slog"

	"github.com/edwin/plugin-edwin/internal/schema"
)

const (
	Name        = "[Edwin] Integration"
	Description = "Edwin integration plugin"
	Version     = "0.0.1"
)

// New builds the plugin: one action per Edwin tool plus the portfolio provider.
// Actions are enumerated here, once.
func New(ctx context.Context, clients ClientGetter) (*schema.Plugin, error) {
	slog.Info("Initializing Edwin Plugin", "version", Version)

	actions, err := BuildActions(ctx, clients)
	if err != nil {
		return nil, err
	}

	slog.Info("Edwin plugin ready", "actions", len(actions))
	return &schema.Plugin{
		Name:        Name,
		Description: Description,
		Actions:     actions,
		Providers:   []schema.Provider{NewPortfolioProvider(clients)},
	}, nil
}
