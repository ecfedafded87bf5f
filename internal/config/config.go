package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the flowctl configuration.
type Config struct {
	LogLevel     string `yaml:"log_level" json:"log_level"`
	OutputFormat string `yaml:"output_format" json:"output_format"`
	// Schemas maps a name to a layout such as "uint16,uint,string".
	Schemas map[string]string `yaml:"schemas" json:"schemas"`
}

// DefaultPath returns the default config file path: ~/.flowctl/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".flowctl", "config.yaml")
	}
	return filepath.Join(home, ".flowctl", "config.yaml")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel:     "info",
		OutputFormat: "yaml",
		Schemas:      map[string]string{},
	}
}

// Load reads the configuration from the given YAML file path.
// If the file does not exist, it returns a default Config with no error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Schemas == nil {
		cfg.Schemas = map[string]string{}
	}

	return cfg, nil
}

// Schema returns the layout registered under name.
func (c *Config) Schema(name string) (string, error) {
	spec, ok := c.Schemas[name]
	if !ok {
		return "", fmt.Errorf("schema %q not found in config", name)
	}
	return spec, nil
}
