package mcp

// ServerConfig holds the connection parameters for a single MCP server.
// Command selects the stdio transport; otherwise URL selects HTTP.
type ServerConfig struct {
	Command string
	Args    []string
	Env     map[string]string
	URL     string
	Headers map[string]string
}

// Configured reports whether any transport is set.
func (c ServerConfig) Configured() bool {
	return c.Command != "" || c.URL != ""
}
