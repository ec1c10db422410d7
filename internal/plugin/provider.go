package plugin

import (
	"context"
	"log/slog"

	"github.com/edwin/plugin-edwin/internal/schema"
)

// PortfolioProvider adds the wallet portfolio to the agent's context.
// It is best effort: failures are logged and contribute nothing.
type PortfolioProvider struct {
	clients ClientGetter
}

// NewPortfolioProvider returns a provider reading from clients.
func NewPortfolioProvider(clients ClientGetter) *PortfolioProvider {
	return &PortfolioProvider{clients: clients}
}

// Get returns the portfolio summary, or false when it could not be fetched.
func (p *PortfolioProvider) Get(ctx context.Context, _ schema.Runtime, _ schema.Memory) (portfolio string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Error in Edwin provider", "err", r)
			portfolio, ok = "", false
		}
	}()

	client, err := p.clients.Client(ctx)
	if err != nil {
		slog.Error("Error in Edwin provider", "err", err)
		return "", false
	}

	portfolio, err = client.Portfolio(ctx)
	if err != nil {
		slog.Error("Error in Edwin provider", "err", err)
		return "", false
	}
	return portfolio, true
}

var _ schema.Provider = (*PortfolioProvider)(nil)
