package providers

import "strings"

// ProviderSpec is the metadata record for one LLM provider.
type ProviderSpec struct {
	Name        string   // config field name, e.g. "openrouter"
	Keywords    []string // model-name keywords for matching (lowercase)
	DisplayName string   // shown in `edwin status`

	// RoutingPrefix is the "provider/" prefix users may put on model names.
	RoutingPrefix string

	IsGateway           bool   // routes any model (OpenRouter)
	IsLocal             bool   // local deployment (vLLM)
	DetectByKeyPrefix   string // match api_key prefix to identify gateway
	DetectByBaseKeyword string // match substring in api_base URL
	DefaultAPIBase      string // fallback base URL when none is configured

	// Anthropic speaks the Messages API instead of chat completions.
	Anthropic bool
}

// Label returns the display name, defaulting to Title-cased Name.
func (s ProviderSpec) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return strings.ToUpper(s.Name[:1]) + s.Name[1:]
}

// Registry lists the known providers. Order = match priority.
var Registry = []ProviderSpec{
	{
		Name:        "custom",
		DisplayName: "Custom",
	},
	{
		Name:                "openrouter",
		Keywords:            []string{"openrouter"},
		DisplayName:         "OpenRouter",
		RoutingPrefix:       "openrouter",
		IsGateway:           true,
		DetectByKeyPrefix:   "sk-or-",
		DetectByBaseKeyword: "openrouter",
		DefaultAPIBase:      "https://openrouter.ai/api/v1",
	},
	{
		Name:           "anthropic",
		Keywords:       []string{"anthropic", "claude"},
		DisplayName:    "Anthropic",
		RoutingPrefix:  "anthropic",
		DefaultAPIBase: "https://api.anthropic.com/v1",
		Anthropic:      true,
	},
	{
		Name:           "openai",
		Keywords:       []string{"openai", "gpt"},
		DisplayName:    "OpenAI",
		RoutingPrefix:  "openai",
		DefaultAPIBase: "https://api.openai.com/v1",
	},
	{
		Name:           "deepseek",
		Keywords:       []string{"deepseek"},
		DisplayName:    "DeepSeek",
		RoutingPrefix:  "deepseek",
		DefaultAPIBase: "https://api.deepseek.com/v1",
	},
	{
		Name:           "gemini",
		Keywords:       []string{"gemini"},
		DisplayName:    "Gemini",
		RoutingPrefix:  "gemini",
		DefaultAPIBase: "https://generativelanguage.googleapis.com/v1beta/openai",
	},
	{
		Name:           "groq",
		Keywords:       []string{"groq"},
		DisplayName:    "Groq",
		RoutingPrefix:  "groq",
		DefaultAPIBase: "https://api.groq.com/openai/v1",
	},
	{
		Name:           "vllm",
		Keywords:       []string{"vllm"},
		DisplayName:    "vLLM/Local",
		RoutingPrefix:  "hosted_vllm",
		IsLocal:        true,
		DefaultAPIBase: "http://localhost:8000/v1",
	},
}

// FindByModel matches a standard provider by model-name keyword (case-insensitive).
// Skips gateways and local providers; those are matched by api_key/api_base.
func FindByModel(model string) *ProviderSpec {
	modelLower := strings.ToLower(model)
	modelPrefix, _, _ := strings.Cut(modelLower, "/")

	var std []int
	for i := range Registry {
		if !Registry[i].IsGateway && !Registry[i].IsLocal {
			std = append(std, i)
		}
	}

	// Prefer explicit provider prefix.
	if strings.Contains(modelLower, "/") {
		for _, i := range std {
			if modelPrefix == Registry[i].Name {
				return &Registry[i]
			}
		}
	}

	for _, i := range std {
		for _, kw := range Registry[i].Keywords {
			if strings.Contains(modelLower, kw) {
				return &Registry[i]
			}
		}
	}
	return nil
}

// FindGateway detects the gateway or local provider.
// Priority: (1) explicit provider name, (2) api_key prefix, (3) api_base keyword.
func FindGateway(providerName, apiKey, apiBase string) *ProviderSpec {
	if providerName != "" {
		if s := FindByName(providerName); s != nil && (s.IsGateway || s.IsLocal) {
			return s
		}
	}
	for i := range Registry {
		spec := &Registry[i]
		if spec.DetectByKeyPrefix != "" && strings.HasPrefix(apiKey, spec.DetectByKeyPrefix) {
			return spec
		}
		if spec.DetectByBaseKeyword != "" && strings.Contains(apiBase, spec.DetectByBaseKeyword) {
			return spec
		}
	}
	return nil
}

// FindByName returns the ProviderSpec whose Name equals name.
func FindByName(name string) *ProviderSpec {
	for i := range Registry {
		if Registry[i].Name == name {
			return &Registry[i]
		}
	}
	return nil
}
