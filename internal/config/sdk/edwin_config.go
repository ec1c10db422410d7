package sdk

// ServerConfig describes the Edwin tool server connection (stdio or HTTP).
type ServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
}

// EdwinConfig configures the Edwin SDK client. Wallet keys are never read
// from here; they come from EVM_PRIVATE_KEY and SOLANA_PRIVATE_KEY.
type EdwinConfig struct {
	Server        ServerConfig `json:"server"`
	EVMRPCURL     string       `json:"evmRpcUrl,omitempty"`
	PortfolioTool string       `json:"portfolioTool,omitempty"`
}

func DefaultEdwinConfig() EdwinConfig {
	return EdwinConfig{
		Server:        ServerConfig{Args: []string{}, Env: map[string]string{}, Headers: map[string]string{}},
		PortfolioTool: "get_portfolio",
	}
}
