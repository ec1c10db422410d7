// Package edwin is the Go client for the Edwin financial-operations SDK: it
// holds the configured wallets, exposes the tools of the Edwin tool server
// and summarizes the wallet portfolio.
package edwin

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/edwin/plugin-edwin/internal/mcp"
	"github.com/edwin/plugin-edwin/internal/schema"
)

// DefaultPortfolioTool is the server tool queried for portfolio details.
const DefaultPortfolioTool = "get_portfolio"

// Config configures a Client. Both keys are optional.
type Config struct {
	EVMPrivateKey    string
	SolanaPrivateKey string

	// Server is the Edwin tool server. Leaving it empty yields no tools.
	Server mcp.ServerConfig
	// EVMRPCURL enables native balance lookups for the EVM wallet.
	EVMRPCURL string
	// PortfolioTool overrides DefaultPortfolioTool.
	PortfolioTool string
}

// Client is a running Edwin SDK instance.
type Client struct {
	evm    *EVMWallet
	solana *SolanaWallet

	server        toolServer // nil when no server is configured
	mu            sync.Mutex
	balances      balanceReader // dialed on first use
	evmRPCURL     string
	portfolioTool string
}

// New validates the keys, connects to the tool server and returns a ready client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{
		evmRPCURL:     cfg.EVMRPCURL,
		portfolioTool: cfg.PortfolioTool,
	}
	if c.portfolioTool == "" {
		c.portfolioTool = DefaultPortfolioTool
	}

	if cfg.EVMPrivateKey != "" {
		w, err := NewEVMWallet(cfg.EVMPrivateKey)
		if err != nil {
			return nil, err
		}
		c.evm = w
		slog.Info("Edwin EVM wallet loaded", "address", w.Address().Hex())
	}
	if cfg.SolanaPrivateKey != "" {
		w, err := NewSolanaWallet(cfg.SolanaPrivateKey)
		if err != nil {
			return nil, err
		}
		c.solana = w
		slog.Info("Edwin Solana wallet loaded", "address", w.Address())
	}
	if c.evm == nil && c.solana == nil {
		slog.Warn("Edwin started without wallet keys; only read-only tools will work")
	}

	if cfg.Server.Configured() {
		server := mcp.NewClient("edwin", withWalletEnv(cfg.Server, cfg))
		if err := server.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connect edwin tool server: %w", err)
		}
		c.server = server
	}

	return c, nil
}

// withWalletEnv forwards the keys to a stdio server process.
func withWalletEnv(server mcp.ServerConfig, cfg Config) mcp.ServerConfig {
	env := make(map[string]string, len(server.Env)+2)
	maps.Copy(env, server.Env)
	if cfg.EVMPrivateKey != "" {
		env["EVM_PRIVATE_KEY"] = cfg.EVMPrivateKey
	}
	if cfg.SolanaPrivateKey != "" {
		env["SOLANA_PRIVATE_KEY"] = cfg.SolanaPrivateKey
	}
	server.Env = env
	return server
}

// Tools lists the tools the server currently offers, in server order.
func (c *Client) Tools(ctx context.Context) ([]schema.Tool, error) {
	if c.server == nil {
		return nil, nil
	}
	defs, err := c.server.ListTools(ctx)
	if err != nil {
		return nil, err
	}

	tools := make([]schema.Tool, 0, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			continue
		}
		tools = append(tools, &remoteTool{server: c.server, def: def})
	}
	return tools, nil
}

// Close releases the tool server and RPC connections.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.balances != nil {
		c.balances.Close()
		c.balances = nil
	}
	c.mu.Unlock()
	if c.server != nil {
		return c.server.Close()
	}
	return nil
}
