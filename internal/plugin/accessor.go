// Package plugin adapts the Edwin SDK to the agent host: it owns the client
// accessor, turns every SDK tool into an action, and exposes the portfolio
// provider.
package plugin

import (
	"context"
	"errors"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/edwin/plugin-edwin/internal/schema"
)

// Environment variables holding the wallet keys handed to the SDK.
const (
	EnvEVMPrivateKey    = "EVM_PRIVATE_KEY"
	EnvSolanaPrivateKey = "SOLANA_PRIVATE_KEY"
)

var errNilClient = errors.New("edwin client factory returned no client")

// Client is the part of the Edwin SDK the plugin uses.
type Client interface {
	Tools(ctx context.Context) ([]schema.Tool, error)
	Portfolio(ctx context.Context) (string, error)
}

// ClientGetter hands out the shared client. *Accessor is the canonical implementation.
type ClientGetter interface {
	Client(ctx context.Context) (Client, error)
}

// Credentials are the optional wallet keys. Empty means absent.
type Credentials struct {
	EVMPrivateKey    string
	SolanaPrivateKey string
}

// CredentialsFromEnv reads both keys from the process environment.
func CredentialsFromEnv() Credentials {
	return Credentials{
		EVMPrivateKey:    os.Getenv(EnvEVMPrivateKey),
		SolanaPrivateKey: os.Getenv(EnvSolanaPrivateKey),
	}
}

// ClientFactory constructs a new SDK client.
type ClientFactory func(ctx context.Context, creds Credentials) (Client, error)

// Accessor owns the single client handle for whoever constructed it.
//
// The handle is built on first use. Concurrent first callers share one
// construction; a failed construction caches nothing so the next call retries.
// Once set, the handle is never replaced.
type Accessor struct {
	factory ClientFactory
	creds   Credentials

	mu     sync.RWMutex
	client Client
	group  singleflight.Group
}

// NewAccessor returns an Accessor that builds its client with factory.
func NewAccessor(factory ClientFactory, creds Credentials) *Accessor {
	return &Accessor{factory: factory, creds: creds}
}

// Preloaded returns an Accessor around an already constructed client.
func Preloaded(c Client) *Accessor {
	return &Accessor{client: c}
}

// Client returns the cached handle, constructing it if needed.
func (a *Accessor) Client(ctx context.Context) (Client, error) {
	if c := a.cached(); c != nil {
		return c, nil
	}

	v, err, _ := a.group.Do("client", func() (any, error) {
		if c := a.cached(); c != nil {
			return c, nil
		}
		c, err := a.factory(ctx, a.creds)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, errNilClient
		}

		a.mu.Lock()
		a.client = c
		a.mu.Unlock()
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Client), nil
}

func (a *Accessor) cached() Client {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.client
}
