// Package dependency wires the Edwin agent services using go.uber.org/dig.
package dependency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.uber.org/dig"

	"github.com/edwin/plugin-edwin/internal/agent"
	"github.com/edwin/plugin-edwin/internal/config"
	"github.com/edwin/plugin-edwin/internal/edwin"
	"github.com/edwin/plugin-edwin/internal/mcp"
	"github.com/edwin/plugin-edwin/internal/plugin"
	"github.com/edwin/plugin-edwin/internal/providers"
	"github.com/edwin/plugin-edwin/internal/schema"
	"github.com/edwin/plugin-edwin/internal/session"
	"github.com/edwin/plugin-edwin/internal/watch"
)

// Container resolves services on demand: a command that only needs the
// Edwin client never constructs the LLM provider.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	d       *dig.Container
	clients *clientSet
}

// clientSet tracks every Edwin client built so Close can release them.
type clientSet struct {
	mu      sync.Mutex
	clients []*edwin.Client
}

func (s *clientSet) add(c *edwin.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append(s.clients, c)
}

// New registers all constructors. Nothing is built until a getter asks for it.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	d := dig.New()
	clients := &clientSet{}

	constructors := []any{
		func() context.Context { return ctx },
		func() *config.Config { return cfg },
		func() *clientSet { return clients },
		newProvider,
		newSessionManager,
		newCharacter,
		newAccessor,
		newPlugin,
		newPortfolioProvider,
		newRuntime,
		newWatcher,
	}
	for _, c := range constructors {
		if err := d.Provide(c); err != nil {
			return nil, err
		}
	}
	return &Container{d: d, clients: clients}, nil
}

func resolve[T any](d *dig.Container) (T, error) {
	var out T
	err := d.Invoke(func(v T) { out = v })
	return out, dig.RootCause(err)
}

// Provider returns the LLM provider.
func (c *Container) Provider() (schema.LLMProvider, error) { return resolve[schema.LLMProvider](c.d) }

// Sessions returns the session store.
func (c *Container) Sessions() (*session.Manager, error) { return resolve[*session.Manager](c.d) }

// Accessor returns the shared Edwin client accessor.
func (c *Container) Accessor() (*plugin.Accessor, error) { return resolve[*plugin.Accessor](c.d) }

// Plugin returns the Edwin plugin.
func (c *Container) Plugin() (*schema.Plugin, error) { return resolve[*schema.Plugin](c.d) }

// PortfolioProvider returns the portfolio provider.
func (c *Container) PortfolioProvider() (*plugin.PortfolioProvider, error) {
	return resolve[*plugin.PortfolioProvider](c.d)
}

// Runtime returns the agent runtime with the Edwin plugin registered.
func (c *Container) Runtime() (*agent.Runtime, error) { return resolve[*agent.Runtime](c.d) }

// Watcher returns the portfolio watcher.
func (c *Container) Watcher() (*watch.Service, error) { return resolve[*watch.Service](c.d) }

// Close releases every Edwin client the container built.
func (c *Container) Close() error {
	c.clients.mu.Lock()
	defer c.clients.mu.Unlock()
	var err error
	for _, client := range c.clients.clients {
		err = errors.Join(err, client.Close())
	}
	c.clients.clients = nil
	return err
}

func newProvider(cfg *config.Config) (schema.LLMProvider, error) {
	model := cfg.Agents.Defaults.Model
	result := cfg.MatchProvider(model)

	if result.Provider == nil {
		return nil, fmt.Errorf("no API key configured for model %q: edit %s", model, config.ConfigPath())
	}

	apiBase := result.Provider.APIBase
	if apiBase == "" {
		apiBase = cfg.GetAPIBase(model)
	}
	return providers.New(providers.Params{
		APIKey:       result.Provider.APIKey,
		APIBase:      apiBase,
		ExtraHeaders: result.Provider.ExtraHeaders,
		DefaultModel: model,
		ProviderName: result.Name,
	}), nil
}

func newSessionManager(cfg *config.Config) (*session.Manager, error) {
	return session.NewManager(cfg.WorkspacePath())
}

func newCharacter(cfg *config.Config) (schema.Character, error) {
	return config.LoadCharacter(cfg.Agents.Defaults.Character)
}

// newAccessor builds the accessor around edwin.New. Keys come only from the
// environment.
func newAccessor(cfg *config.Config, clients *clientSet) *plugin.Accessor {
	server := cfg.Edwin.Server
	factory := func(ctx context.Context, creds plugin.Credentials) (plugin.Client, error) {
		c, err := edwin.New(ctx, edwin.Config{
			EVMPrivateKey:    creds.EVMPrivateKey,
			SolanaPrivateKey: creds.SolanaPrivateKey,
			Server: mcp.ServerConfig{
				Command: server.Command,
				Args:    server.Args,
				Env:     server.Env,
				URL:     server.URL,
				Headers: server.Headers,
			},
			EVMRPCURL:     cfg.Edwin.EVMRPCURL,
			PortfolioTool: cfg.Edwin.PortfolioTool,
		})
		if err != nil {
			return nil, err
		}
		clients.add(c)
		return c, nil
	}
	return plugin.NewAccessor(factory, plugin.CredentialsFromEnv())
}

func newPlugin(ctx context.Context, acc *plugin.Accessor) (*schema.Plugin, error) {
	return plugin.New(ctx, acc)
}

func newPortfolioProvider(acc *plugin.Accessor) *plugin.PortfolioProvider {
	return plugin.NewPortfolioProvider(acc)
}

func newRuntime(
	cfg *config.Config,
	provider schema.LLMProvider,
	character schema.Character,
	sessions *session.Manager,
	p *schema.Plugin,
) *agent.Runtime {
	defaults := cfg.Agents.Defaults
	models := make(map[schema.ModelClass]string, 3)
	for _, class := range []schema.ModelClass{schema.ModelSmall, schema.ModelMedium, schema.ModelLarge} {
		models[class] = defaults.ModelFor(string(class))
	}

	rt := agent.NewRuntime(provider, character, sessions, agent.Settings{
		Models:       models,
		MaxTokens:    defaults.MaxTokens,
		Temperature:  defaults.Temperature,
		MemoryWindow: defaults.MemoryWindow,
	})
	rt.RegisterPlugin(p)
	return rt
}

func newWatcher(cfg *config.Config, pp *plugin.PortfolioProvider) (*watch.Service, error) {
	return watch.NewService(cfg.Watch.Schedule, pp, nil, func(_ context.Context, report string, changed bool) {
		if changed {
			slog.Info("Portfolio changed", "portfolio", report)
			return
		}
		slog.Debug("Portfolio unchanged")
	})
}
