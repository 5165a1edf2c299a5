package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the JSON configuration for the enchantment registry.
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Enchantments []Def `json:"enchantments"`
}

// Load reads an enchantment definition file and builds a registry from it.
func Load(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse registry config: %w", err)
	}

	if len(config.Enchantments) == 0 {
		return nil, fmt.Errorf("%w: no enchantments defined", ErrInvalidConfig)
	}

	return NewStatic(config.Enchantments)
}
