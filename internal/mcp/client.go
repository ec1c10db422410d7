// Package mcp connects to the Edwin tool server over stdio or streamable HTTP
// using the mcp-go client.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

const (
	httpTimeout = 30 * time.Second
	// closeGrace is how long a stdio server may take to exit after stdin closes.
	closeGrace = 2 * time.Second
)

// ErrNotConnected is returned by calls made before Connect succeeded.
var ErrNotConnected = errors.New("mcp: not connected")

// ToolDefinition is one entry of a tools/list response.
type ToolDefinition struct {
	Name        string
	Description string
	// InputSchema is nil when the server declared no parameters.
	InputSchema json.RawMessage
}

// ContentBlock is one text block of a tools/call result.
type ContentBlock struct {
	Type string
	Text string
}

// CallResult is the decoded tools/call result.
type CallResult struct {
	Content []ContentBlock
	IsError bool
}

// Text joins all text blocks of the result.
func (r CallResult) Text() string {
	var parts []string
	for _, block := range r.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Client is a connection to a single MCP server.
type Client struct {
	name string
	cfg  ServerConfig

	mu     sync.RWMutex
	conn   *mcpclient.Client
	cancel context.CancelFunc // stops the stdio subprocess
}

// NewClient returns an unconnected client for the named server.
func NewClient(name string, cfg ServerConfig) *Client {
	return &Client{name: name, cfg: cfg}
}

// Connect starts the transport and runs the initialize handshake. ctx bounds
// the handshake only; a stdio subprocess lives until Close.
func (c *Client) Connect(ctx context.Context) error {
	conn, cancel, err := c.dial(ctx)
	if err != nil {
		return err
	}

	req := mcpgo.InitializeRequest{}
	req.Params.ProtocolVersion = mcpgo.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcpgo.Implementation{Name: "plugin-edwin", Version: "1.0"}

	if _, err := conn.Initialize(ctx, req); err != nil {
		shutdown(conn, cancel)
		return fmt.Errorf("initialize %s: %w", c.name, err)
	}

	c.mu.Lock()
	c.conn, c.cancel = conn, cancel
	c.mu.Unlock()
	return nil
}

func (c *Client) dial(ctx context.Context) (*mcpclient.Client, context.CancelFunc, error) {
	switch {
	case c.cfg.Command != "":
		procCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		stdio := transport.NewStdio(c.cfg.Command, envList(c.cfg.Env), c.cfg.Args...)
		conn := mcpclient.NewClient(stdio)
		if err := conn.Start(procCtx); err != nil {
			cancel()
			return nil, nil, fmt.Errorf("start MCP server %s: %w", c.name, err)
		}
		go logStderr(c.name, stdio.Stderr())
		return conn, cancel, nil

	case c.cfg.URL != "":
		conn, err := mcpclient.NewStreamableHttpClient(c.cfg.URL,
			transport.WithHTTPHeaders(c.cfg.Headers),
			transport.WithHTTPTimeout(httpTimeout),
		)
		if err != nil {
			return nil, nil, err
		}
		if err := conn.Start(ctx); err != nil {
			return nil, nil, fmt.Errorf("start MCP transport %s: %w", c.name, err)
		}
		return conn, func() {}, nil
	}
	return nil, nil, fmt.Errorf("MCP server %q: no command or url configured", c.name)
}

func envList(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	return out
}

// logStderr forwards server log output so the pipe never fills up.
func logStderr(name string, r io.Reader) {
	if r == nil {
		return
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		slog.Debug("MCP server stderr", "server", name, "line", sc.Text())
	}
}

// shutdown closes conn, killing a stdio server that does not exit in time.
func shutdown(conn *mcpclient.Client, cancel context.CancelFunc) error {
	done := make(chan error, 1)
	go func() { done <- conn.Close() }()

	var err error
	select {
	case err = <-done:
	case <-time.After(closeGrace):
		cancel()
		<-done
	}
	cancel()
	return err
}

// Close shuts the connection down. It is a no-op when not connected.
func (c *Client) Close() error {
	c.mu.Lock()
	conn, cancel := c.conn, c.cancel
	c.conn, c.cancel = nil, nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	return shutdown(conn, cancel)
}

func (c *Client) connected() (*mcpclient.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.conn == nil {
		return nil, ErrNotConnected
	}
	return c.conn, nil
}

// ListTools returns the tools exposed by the server, in server order.
func (c *Client) ListTools(ctx context.Context) ([]ToolDefinition, error) {
	conn, err := c.connected()
	if err != nil {
		return nil, err
	}
	res, err := conn.ListTools(ctx, mcpgo.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("tools/list: %w", err)
	}

	defs := make([]ToolDefinition, 0, len(res.Tools))
	for _, tool := range res.Tools {
		def := ToolDefinition{Name: tool.Name, Description: tool.Description}
		if tool.InputSchema.Type != "" || len(tool.InputSchema.Properties) > 0 {
			raw, err := json.Marshal(tool.InputSchema)
			if err != nil {
				return nil, fmt.Errorf("encode schema of %s: %w", tool.Name, err)
			}
			def.InputSchema = raw
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// CallTool invokes a named tool with the given arguments.
func (c *Client) CallTool(ctx context.Context, toolName string, args map[string]any) (CallResult, error) {
	conn, err := c.connected()
	if err != nil {
		return CallResult{}, err
	}

	req := mcpgo.CallToolRequest{}
	req.Params.Name = toolName
	req.Params.Arguments = args

	res, err := conn.CallTool(ctx, req)
	if err != nil {
		return CallResult{}, fmt.Errorf("tools/call %s: %w", toolName, err)
	}

	out := CallResult{IsError: res.IsError}
	for _, content := range res.Content {
		if text, ok := mcpgo.AsTextContent(content); ok {
			out.Content = append(out.Content, ContentBlock{Type: text.Type, Text: text.Text})
		}
	}
	return out, nil
}
