package planner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads a run configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes a run configuration to a YAML file.
func SaveConfig(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ValidateConfig checks the fields a planning run depends on. Flag overrides
// are applied before validation, so the CLI calls this after merging.
func ValidateConfig(c *Config) error {
	if c.Map == "" {
		return fmt.Errorf("map is required")
	}
	if c.Options.MaxIterations < 0 {
		return fmt.Errorf("maxIterations must not be negative")
	}
	if c.Options.SteerRadius <= 0 {
		return fmt.Errorf("steerRadius must be positive")
	}
	if c.Options.GoalRadius <= 0 {
		return fmt.Errorf("goalRadius must be positive")
	}
	switch c.Options.Nearest {
	case "", NearestLinear, NearestRTree:
	default:
		return fmt.Errorf("nearest must be %q or %q, got %q", NearestLinear, NearestRTree, c.Options.Nearest)
	}
	switch c.Format {
	case "", FormatRaster, FormatVector, FormatGeoJSON:
	default:
		return fmt.Errorf("format must be raster, vector, or geojson, got %q", c.Format)
	}
	if c.Simplify < 0 {
		return fmt.Errorf("simplify tolerance must not be negative")
	}
	return nil
}
