package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileNames lists the files searched for configuration in order.
// Checks .github/ first, then the directory itself.
var FileNames = []string{
	".github/devkit.yml",
	"devkit.yml",
	".devkit.yml",
}

// LoadFromFile reads and parses a devkit configuration file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses devkit configuration from raw YAML bytes.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// FindFile returns the first configuration file found in dirs, searched in
// order, or "" when there is none.
func FindFile(dirs ...string) string {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

// Load builds the effective configuration. An explicit path wins; otherwise
// the first file found in dirs is used; otherwise defaults apply.
func Load(explicit string, dirs ...string) (*Config, error) {
	builder := NewBuilder()

	path := explicit
	if path == "" {
		path = FindFile(dirs...)
	}
	if path != "" {
		userCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		builder.Add(userCfg)
	}

	return builder.Build()
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
