package config

import (
	"strings"

	"github.com/edwin/plugin-edwin/internal/config/provider"
	"github.com/edwin/plugin-edwin/internal/providers"
)

// MatchResult is the resolved LLM provider config and registry name for a model.
type MatchResult struct {
	Provider *provider.ProviderConfig
	Name     string // e.g. "openrouter", "anthropic"
}

// MatchProvider resolves which provider config and registry entry to use for model.
// If model is empty, the default model from agents.defaults.model is used.
//
// Priority order:
//  1. Explicit provider prefix in model string (e.g. "deepseek/deepseek-chat" → deepseek)
//  2. Keyword match in model name (registry order)
//  3. Fallback: first provider with an API key, in registry order
func (c *Config) MatchProvider(model string) MatchResult {
	if model == "" {
		model = c.Agents.Defaults.Model
	}
	modelLower := strings.ToLower(model)
	modelPrefix, _, hasPrefix := strings.Cut(modelLower, "/")

	configured := func(name string) *provider.ProviderConfig {
		p := c.ProviderByName(name)
		if p == nil || p.APIKey == "" {
			return nil
		}
		return p
	}

	if hasPrefix {
		for _, spec := range providers.Registry {
			if modelPrefix == spec.Name {
				if p := configured(spec.Name); p != nil {
					return MatchResult{Provider: p, Name: spec.Name}
				}
			}
		}
	}

	for _, spec := range providers.Registry {
		for _, kw := range spec.Keywords {
			if strings.Contains(modelLower, kw) {
				if p := configured(spec.Name); p != nil {
					return MatchResult{Provider: p, Name: spec.Name}
				}
			}
		}
	}

	for _, spec := range providers.Registry {
		if p := configured(spec.Name); p != nil {
			return MatchResult{Provider: p, Name: spec.Name}
		}
	}

	return MatchResult{}
}

// GetAPIBase resolves the effective API base URL for model.
// Precedence: user-configured apiBase > gateway default.
func (c *Config) GetAPIBase(model string) string {
	result := c.MatchProvider(model)
	if result.Provider != nil && result.Provider.APIBase != "" {
		return result.Provider.APIBase
	}
	if spec := providers.FindByName(result.Name); spec != nil && spec.IsGateway {
		return spec.DefaultAPIBase
	}
	return ""
}

// GetAPIKey returns the API key for model (or "").
func (c *Config) GetAPIKey(model string) string {
	if p := c.MatchProvider(model).Provider; p != nil {
		return p.APIKey
	}
	return ""
}
