package agent

type AgentDefaults struct {
	Workspace   string  `json:"workspace"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature"`
	// Models overrides Model per model class ("small", "medium", "large").
	Models       map[string]string `json:"models,omitempty"`
	MemoryWindow int               `json:"memoryWindow"`
	// Character is a YAML persona file; empty uses the built-in persona.
	Character string `json:"character,omitempty"`
}

// ModelFor returns the model configured for class, falling back to Model.
func (d AgentDefaults) ModelFor(class string) string {
	if m := d.Models[class]; m != "" {
		return m
	}
	return d.Model
}

type AgentsConfig struct {
	Defaults AgentDefaults `json:"defaults"`
}

func defaultAgentDefaults() AgentDefaults {
	return AgentDefaults{
		Workspace:    "~/.edwin/workspace",
		Model:        "openai/gpt-4o",
		MaxTokens:    8192,
		Temperature:  0.7,
		MemoryWindow: 32,
	}
}

func DefaultAgentsConfig() AgentsConfig {
	return AgentsConfig{Defaults: defaultAgentDefaults()}
}
