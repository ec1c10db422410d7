package edwin

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/edwin/plugin-edwin/internal/mcp"
)

// balanceReader is the subset of *ethclient.Client used for portfolio lookups.
type balanceReader interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	Close()
}

var weiPerEther = new(big.Float).SetInt(big.NewInt(1_000_000_000_000_000_000))

// Portfolio returns a human-readable summary of the configured wallets.
func (c *Client) Portfolio(ctx context.Context) (string, error) {
	var lines []string

	if c.evm != nil {
		line := "EVM wallet: " + c.evm.Address().Hex()
		if c.evmRPCURL != "" {
			bal, err := c.evmBalance(ctx)
			if err != nil {
				return "", fmt.Errorf("fetch EVM balance: %w", err)
			}
			line += fmt.Sprintf(" (%s ETH)", formatEther(bal))
		}
		lines = append(lines, line)
	}
	if c.solana != nil {
		lines = append(lines, "Solana wallet: "+c.solana.Address())
	}

	if details, err := c.serverPortfolio(ctx); err != nil {
		return "", err
	} else if details != "" {
		lines = append(lines, details)
	}

	if len(lines) == 0 {
		return "No wallets configured.", nil
	}
	return "Edwin portfolio:\n" + strings.Join(lines, "\n"), nil
}

func (c *Client) evmBalance(ctx context.Context) (*big.Int, error) {
	c.mu.Lock()
	if c.balances == nil {
		ec, err := ethclient.DialContext(ctx, c.evmRPCURL)
		if err != nil {
			c.mu.Unlock()
			return nil, err
		}
		c.balances = ec
	}
	balances := c.balances
	c.mu.Unlock()

	return balances.BalanceAt(ctx, c.evm.Address(), nil)
}

// serverPortfolio calls the server's portfolio tool when it exposes one.
func (c *Client) serverPortfolio(ctx context.Context) (string, error) {
	if c.server == nil {
		return "", nil
	}
	defs, err := c.server.ListTools(ctx)
	if err != nil {
		return "", fmt.Errorf("list edwin tools: %w", err)
	}
	if !slices.ContainsFunc(defs, func(d mcp.ToolDefinition) bool { return d.Name == c.portfolioTool }) {
		return "", nil
	}

	res, err := c.server.CallTool(ctx, c.portfolioTool, map[string]any{})
	if err != nil {
		return "", fmt.Errorf("call %s: %w", c.portfolioTool, err)
	}
	v, err := decodeResult(res)
	if err != nil {
		return "", fmt.Errorf("call %s: %w", c.portfolioTool, err)
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s), nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s result: %w", c.portfolioTool, err)
	}
	return string(data), nil
}

// formatEther renders a wei amount in ether with six decimals.
func formatEther(wei *big.Int) string {
	eth := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEther)
	return eth.Text('f', 6)
}
