// Package agent is the host runtime that plugins run inside: it composes
// conversation state, renders prompt templates, calls the LLM and dispatches
// actions.
package agent

import (
	"strings"
	"sync"

	"github.com/edwin/plugin-edwin/internal/schema"
	"github.com/edwin/plugin-edwin/internal/session"
)

// Settings are the generation parameters of a Runtime.
type Settings struct {
	// Models maps a model class to a model name. Missing classes use the
	// provider's default model.
	Models       map[schema.ModelClass]string
	MaxTokens    int
	Temperature  float64
	MemoryWindow int // recent memories placed in state; 0 = all
}

func (s Settings) chatOptions(class schema.ModelClass) schema.ChatOptions {
	return schema.ChatOptions{
		Model:       s.Models[class],
		MaxTokens:   s.MaxTokens,
		Temperature: s.Temperature,
	}
}

// Runtime implements schema.Runtime on top of an LLM provider and the
// session store.
type Runtime struct {
	provider  schema.LLMProvider
	character schema.Character
	sessions  *session.Manager
	settings  Settings

	mu        sync.RWMutex
	plugins   []string
	actions   []schema.Action
	providers []schema.Provider
}

// NewRuntime creates a Runtime speaking as character.
func NewRuntime(
	provider schema.LLMProvider,
	character schema.Character,
	sessions *session.Manager,
	settings Settings,
) *Runtime {
	return &Runtime{
		provider:  provider,
		character: character,
		sessions:  sessions,
		settings:  settings,
	}
}

// RegisterPlugin adds the plugin's actions and providers.
func (r *Runtime) RegisterPlugin(p *schema.Plugin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins = append(r.plugins, p.Name)
	r.actions = append(r.actions, p.Actions...)
	r.providers = append(r.providers, p.Providers...)
}

// Plugins returns the names of the registered plugins.
func (r *Runtime) Plugins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.plugins...)
}

// Actions returns the registered actions in registration order.
func (r *Runtime) Actions() []schema.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]schema.Action(nil), r.actions...)
}

func (r *Runtime) registeredProviders() []schema.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]schema.Provider(nil), r.providers...)
}

// findAction looks an action up by name, ignoring case.
func (r *Runtime) findAction(name string) (schema.Action, bool) {
	for _, a := range r.Actions() {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return schema.Action{}, false
}

// Character implements schema.Runtime.
func (r *Runtime) Character() schema.Character { return r.character }

var _ schema.Runtime = (*Runtime)(nil)
