package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"testing"
	"time"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// stdioServerEnv makes the test binary serve the test tools over stdio.
const stdioServerEnv = "EDWIN_MCP_STDIO_SERVER"

func TestMain(m *testing.M) {
	if os.Getenv(stdioServerEnv) == "1" {
		if err := server.ServeStdio(newToolServer()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}
	os.Exit(m.Run())
}

// newToolServer exposes supply, broken and env.
func newToolServer() *server.MCPServer {
	s := server.NewMCPServer("edwin-test", "1.0.0", server.WithToolCapabilities(true))

	s.AddTool(mcpgo.NewTool("supply",
		mcpgo.WithDescription("Supply to a lending pool"),
		mcpgo.WithNumber("amount", mcpgo.Required()),
	), func(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		return mcpgo.NewToolResultText(fmt.Sprintf(`{"amount":%v}`, req.GetArguments()["amount"])), nil
	})

	s.AddTool(mcpgo.NewTool("broken",
		mcpgo.WithDescription("Always fails"),
	), func(context.Context, mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		return mcpgo.NewToolResultError("insufficient funds"), nil
	})

	s.AddTool(mcpgo.NewTool("env",
		mcpgo.WithString("name", mcpgo.Required()),
	), func(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		return mcpgo.NewToolResultText(os.Getenv(req.GetString("name", ""))), nil
	})
	return s
}

// newHTTPServer serves the tools over streamable HTTP behind an API key.
func newHTTPServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler := server.NewStreamableHTTPServer(newToolServer())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func connect(t *testing.T, cfg ServerConfig) *Client {
	t.Helper()
	c := NewClient("edwin", cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func connectHTTP(t *testing.T) *Client {
	t.Helper()
	srv := newHTTPServer(t)
	return connect(t, ServerConfig{URL: srv.URL, Headers: map[string]string{"X-Api-Key": "secret"}})
}

func connectStdio(t *testing.T, env map[string]string) *Client {
	t.Helper()
	merged := map[string]string{stdioServerEnv: "1"}
	for k, v := range env {
		merged[k] = v
	}
	return connect(t, ServerConfig{Command: os.Args[0], Args: []string{"-test.run=^$"}, Env: merged})
}

func toolsByName(t *testing.T, c *Client) map[string]ToolDefinition {
	t.Helper()
	tools, err := c.ListTools(context.Background())
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	out := make(map[string]ToolDefinition, len(tools))
	for _, tool := range tools {
		out[tool.Name] = tool
	}
	return out
}

func TestListTools_StreamableHTTP(t *testing.T) {
	c := connectHTTP(t)

	tools := toolsByName(t, c)
	if len(tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(tools))
	}
	supply, ok := tools["supply"]
	if !ok || supply.Description != "Supply to a lending pool" {
		t.Fatalf("unexpected supply tool: %+v", supply)
	}

	var schema struct {
		Type       string                    `json:"type"`
		Properties map[string]map[string]any `json:"properties"`
		Required   []string                  `json:"required"`
	}
	if err := json.Unmarshal(supply.InputSchema, &schema); err != nil {
		t.Fatalf("decode schema: %v", err)
	}
	if schema.Type != "object" || schema.Properties["amount"]["type"] != "number" {
		t.Errorf("unexpected schema %s", supply.InputSchema)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "amount" {
		t.Errorf("unexpected required %v", schema.Required)
	}
}

func TestCallTool_StreamableHTTP(t *testing.T) {
	c := connectHTTP(t)

	// A second call reuses the session negotiated by initialize.
	for i := 0; i < 2; i++ {
		res, err := c.CallTool(context.Background(), "supply", map[string]any{"amount": 100})
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if res.IsError || res.Text() != `{"amount":100}` {
			t.Errorf("call %d: unexpected result %+v", i, res)
		}
	}
}

func TestCallTool_ToolError(t *testing.T) {
	c := connectHTTP(t)

	res, err := c.CallTool(context.Background(), "broken", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsError || res.Text() != "insufficient funds" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestCallTool_UnknownTool(t *testing.T) {
	c := connectHTTP(t)

	if _, err := c.CallTool(context.Background(), "missing", nil); err == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestConnect_HTTPUnauthorized(t *testing.T) {
	srv := newHTTPServer(t)

	c := NewClient("edwin", ServerConfig{URL: srv.URL})
	if err := c.Connect(context.Background()); err == nil {
		t.Fatal("expected error without api key header")
	}
	if _, err := c.ListTools(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("failed connect should leave the client unconnected, got %v", err)
	}
}

func TestStdio_ListAndCall(t *testing.T) {
	c := connectStdio(t, map[string]string{"EDWIN_TEST_VALUE": "forwarded"})

	if tools := toolsByName(t, c); len(tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(tools))
	}

	res, err := c.CallTool(context.Background(), "supply", map[string]any{"amount": 5})
	if err != nil {
		t.Fatalf("call supply: %v", err)
	}
	if res.Text() != `{"amount":5}` {
		t.Errorf("unexpected text %q", res.Text())
	}

	res, err = c.CallTool(context.Background(), "env", map[string]any{"name": "EDWIN_TEST_VALUE"})
	if err != nil {
		t.Fatalf("call env: %v", err)
	}
	if res.Text() != "forwarded" {
		t.Errorf("server env not forwarded, got %q", res.Text())
	}

	if err := c.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if _, err := c.ListTools(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected after Close, got %v", err)
	}
}

func TestStdio_ConnectHonoursDeadline(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	// The server reads stdin but never answers.
	c := NewClient("silent", ServerConfig{Command: sh, Args: []string{"-c", "cat >/dev/null"}})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = c.Connect(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Connect returned after %s", elapsed)
	}
}

func TestCall_BeforeConnect(t *testing.T) {
	c := NewClient("edwin", ServerConfig{URL: "http://127.0.0.1:0"})
	if _, err := c.ListTools(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
	if _, err := c.CallTool(context.Background(), "supply", nil); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close on unconnected client: %v", err)
	}
}

func TestConnect_NoTransport(t *testing.T) {
	c := NewClient("edwin", ServerConfig{})
	if err := c.Connect(context.Background()); err == nil {
		t.Fatal("expected error for empty config")
	}
}
