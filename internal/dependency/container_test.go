package dependency

import (
	"context"
	"strings"
	"testing"

	"github.com/edwin/plugin-edwin/internal/config"
	"github.com/edwin/plugin-edwin/internal/plugin"
	"github.com/edwin/plugin-edwin/internal/schema"
)

const testEVMKey = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(plugin.EnvEVMPrivateKey, testEVMKey)
	t.Setenv(plugin.EnvSolanaPrivateKey, "")

	cfg := config.DefaultConfig()
	cfg.Agents.Defaults.Workspace = t.TempDir()
	return &cfg
}

func newTestContainer(t *testing.T, cfg *config.Config) *Container {
	t.Helper()
	c, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestContainer_PortfolioWithoutLLM(t *testing.T) {
	c := newTestContainer(t, testConfig(t))

	pp, err := c.PortfolioProvider()
	if err != nil {
		t.Fatalf("PortfolioProvider: %v", err)
	}
	report, ok := pp.Get(context.Background(), nil, schema.NewMemory("room", "user", "hi"))
	if !ok {
		t.Fatal("expected a portfolio")
	}
	if !strings.Contains(report, "0x2c7536E3605D9C16a7a3D7b1898e529396a65c23") {
		t.Errorf("report missing EVM address: %q", report)
	}
}

func TestContainer_PluginWithoutServer(t *testing.T) {
	c := newTestContainer(t, testConfig(t))

	p, err := c.Plugin()
	if err != nil {
		t.Fatalf("Plugin: %v", err)
	}
	if p.Name != plugin.Name {
		t.Errorf("Name = %q, want %q", p.Name, plugin.Name)
	}
	if len(p.Actions) != 0 {
		t.Errorf("expected no actions without a tool server, got %d", len(p.Actions))
	}
	if len(p.Providers) != 1 {
		t.Errorf("expected the portfolio provider, got %d providers", len(p.Providers))
	}
}

func TestContainer_SharesOneClient(t *testing.T) {
	c := newTestContainer(t, testConfig(t))

	a1, err := c.Accessor()
	if err != nil {
		t.Fatalf("Accessor: %v", err)
	}
	a2, _ := c.Accessor()
	if a1 != a2 {
		t.Error("expected a single accessor")
	}

	if _, err := c.Plugin(); err != nil {
		t.Fatalf("Plugin: %v", err)
	}
	if _, err := c.PortfolioProvider(); err != nil {
		t.Fatalf("PortfolioProvider: %v", err)
	}
	if n := len(c.clients.clients); n != 1 {
		t.Errorf("built %d clients, want 1", n)
	}

	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if len(c.clients.clients) != 0 {
		t.Error("Close should forget released clients")
	}
}

func TestContainer_ProviderNeedsAPIKey(t *testing.T) {
	c := newTestContainer(t, testConfig(t))

	_, err := c.Provider()
	if err == nil || !strings.Contains(err.Error(), "no API key") {
		t.Fatalf("expected missing API key error, got %v", err)
	}
}

func TestContainer_RuntimeRegistersPlugin(t *testing.T) {
	cfg := testConfig(t)
	cfg.Providers.OpenAI.APIKey = "sk-test"
	c := newTestContainer(t, cfg)

	rt, err := c.Runtime()
	if err != nil {
		t.Fatalf("Runtime: %v", err)
	}
	plugins := rt.Plugins()
	if len(plugins) != 1 || plugins[0] != plugin.Name {
		t.Errorf("Plugins = %v", plugins)
	}
	if rt.Character().Name != "Edwin" {
		t.Errorf("Character = %q", rt.Character().Name)
	}
}

func TestContainer_InvalidKeySurfaces(t *testing.T) {
	cfg := testConfig(t)
	t.Setenv(plugin.EnvEVMPrivateKey, "0xnothex")
	c := newTestContainer(t, cfg)

	if _, err := c.Plugin(); err == nil {
		t.Fatal("expected invalid key error")
	}
	if n := len(c.clients.clients); n != 0 {
		t.Errorf("failed construction should not be tracked, got %d", n)
	}
}

func TestContainer_WatcherSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.Watch.Schedule = "not a schedule"
	c := newTestContainer(t, cfg)

	if _, err := c.Watcher(); err == nil {
		t.Fatal("expected schedule parse error")
	}

	cfg2 := testConfig(t)
	c2 := newTestContainer(t, cfg2)
	svc, err := c2.Watcher()
	if err != nil {
		t.Fatalf("Watcher: %v", err)
	}
	if _, ok := svc.RunOnce(context.Background()); !ok {
		t.Error("expected a snapshot")
	}
}

func TestContainer_SessionsShared(t *testing.T) {
	cfg := testConfig(t)
	cfg.Providers.OpenAI.APIKey = "sk-test"
	c := newTestContainer(t, cfg)

	sessions, err := c.Sessions()
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	rt, err := c.Runtime()
	if err != nil {
		t.Fatalf("Runtime: %v", err)
	}
	if _, err := rt.ProcessDirect(context.Background(), "cli:direct", "user", "/new"); err != nil {
		t.Fatalf("ProcessDirect: %v", err)
	}

	list := sessions.ListSessions()
	if len(list) != 1 || list[0].Key != "cli:direct" {
		t.Errorf("sessions = %+v", list)
	}
}
