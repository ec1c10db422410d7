package schema

// Character is the persona the agent speaks as.
type Character struct {
	Name            string            `yaml:"name"`
	System          string            `yaml:"system"`
	Bio             []string          `yaml:"bio"`
	Lore            []string          `yaml:"lore"`
	Knowledge       []string          `yaml:"knowledge"`
	MessageExamples [][]ActionExample `yaml:"messageExamples"`
	Style           []string          `yaml:"style"`
}
