package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/edwin/plugin-edwin/internal/schema"
)

// DefaultCharacter is the persona used when no character file is configured.
func DefaultCharacter() schema.Character {
	return schema.Character{
		Name:   "Edwin",
		System: "You are Edwin, an assistant that manages on-chain DeFi positions for the user. Be concise and precise about amounts, assets and chains.",
		Bio: []string{
			"Edwin operates lending, staking and swap protocols on EVM chains and Solana.",
		},
		Lore: []string{
			"Edwin never moves funds without a clear instruction from the user.",
		},
		Style: []string{"concise", "numbers first"},
	}
}

// LoadCharacter reads a YAML persona file. An empty path returns DefaultCharacter.
// A file without a name inherits the default name.
func LoadCharacter(path string) (schema.Character, error) {
	if path == "" {
		return DefaultCharacter(), nil
	}

	data, err := os.ReadFile(expandHome(path, path))
	if err != nil {
		return schema.Character{}, fmt.Errorf("read character %s: %w", path, err)
	}

	var c schema.Character
	if err := yaml.Unmarshal(data, &c); err != nil {
		return schema.Character{}, fmt.Errorf("parse character %s: %w", path, err)
	}
	if c.Name == "" {
		c.Name = DefaultCharacter().Name
	}
	return c, nil
}

// SaveCharacter writes c to path as YAML, creating parent directories.
func SaveCharacter(c schema.Character, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode character: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create character dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
