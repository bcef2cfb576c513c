package config

import (
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-devkit/internal/launch"

	"github.com/bmatcuk/doublestar/v4"
)

// Builder constructs a Config by layering overrides on top of defaults.
type Builder struct {
	overrides []*Config
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a configuration override. Overrides are applied in order:
// later overrides take precedence over earlier ones.
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// Build constructs the final configuration by starting with defaults,
// applying all overrides, and validating.
func (b *Builder) Build() (*Config, error) {
	cfg := CreateDefaultConfiguration()

	for _, override := range b.overrides {
		mergeConfig(cfg, override)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig applies non-nil fields from src to dst.
func mergeConfig(dst, src *Config) {
	src.Bump.MergeTo(&dst.Bump)
	src.Launch.MergeTo(&dst.Launch)
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	if cfg.Bump.CommitMessage != nil && strings.TrimSpace(*cfg.Bump.CommitMessage) == "" {
		return fmt.Errorf("bump.commit-message must not be empty")
	}
	if cfg.Bump.ManifestFiles != nil && len(*cfg.Bump.ManifestFiles) == 0 {
		return fmt.Errorf("bump.manifest-files must list at least one file")
	}

	if cfg.Launch.Port != nil && (*cfg.Launch.Port < 1 || *cfg.Launch.Port > 65535) {
		return fmt.Errorf("launch.port %d out of range", *cfg.Launch.Port)
	}
	if cfg.Launch.Console != nil {
		if _, err := launch.ParseConsole(*cfg.Launch.Console); err != nil {
			return fmt.Errorf("launch.console: %w", err)
		}
	}
	if cfg.Launch.RootSearchLevels != nil && *cfg.Launch.RootSearchLevels < 1 {
		return fmt.Errorf("launch.root-search-levels must be at least 1")
	}
	if cfg.Launch.Excludes != nil {
		for _, p := range *cfg.Launch.Excludes {
			if !doublestar.ValidatePattern(p) {
				return fmt.Errorf("launch.excludes has invalid pattern %q", p)
			}
		}
	}

	return nil
}
