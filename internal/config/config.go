// Package config provides YAML configuration loading, defaults and config
// merging for devkit.
package config

import (
	"github.com/MyCarrier-DevOps/go-devkit/internal/calculator"
	"github.com/MyCarrier-DevOps/go-devkit/internal/semver"
)

// Config is the root configuration for devkit. All optional fields are
// pointers to support merge semantics during configuration building.
type Config struct {
	Bump   BumpConfig     `yaml:"bump"`
	Launch LaunchSettings `yaml:"launch"`
}

// BumpConfig controls the bump command.
type BumpConfig struct {
	RepeatIdentifier    *semver.RepeatPolicy  `yaml:"repeat-identifier"`
	ExhaustedIdentifier *semver.ExhaustPolicy `yaml:"exhausted-identifier"`
	ChangelogFile       *string               `yaml:"changelog-file"`
	ManifestFiles       *[]string             `yaml:"manifest-files"`
	TagPrefix           *string               `yaml:"tag-prefix"`
	CommitMessage       *string               `yaml:"commit-message"`
	Push                *bool                 `yaml:"push"`
	SharedFiles         *[]string             `yaml:"shared-files"`
	SharedSuffixes      *[]string             `yaml:"shared-suffixes"`
	SharedDirs          *[]string             `yaml:"shared-dirs"`
}

// LaunchSettings controls the launchgen command.
type LaunchSettings struct {
	RuntimeExecutable *string   `yaml:"runtime-executable"`
	Port              *int      `yaml:"port"`
	Console           *string   `yaml:"console"`
	Excludes          *[]string `yaml:"excludes"`
	RootSearchLevels  *int      `yaml:"root-search-levels"`
}

// MergeTo copies non-nil fields from bc into target. Used for overlay
// semantics: user config overrides defaults where specified.
func (bc *BumpConfig) MergeTo(target *BumpConfig) {
	if bc == nil || target == nil {
		return
	}
	if bc.RepeatIdentifier != nil {
		target.RepeatIdentifier = bc.RepeatIdentifier
	}
	if bc.ExhaustedIdentifier != nil {
		target.ExhaustedIdentifier = bc.ExhaustedIdentifier
	}
	if bc.ChangelogFile != nil {
		target.ChangelogFile = bc.ChangelogFile
	}
	if bc.ManifestFiles != nil {
		target.ManifestFiles = bc.ManifestFiles
	}
	if bc.TagPrefix != nil {
		target.TagPrefix = bc.TagPrefix
	}
	if bc.CommitMessage != nil {
		target.CommitMessage = bc.CommitMessage
	}
	if bc.Push != nil {
		target.Push = bc.Push
	}
	if bc.SharedFiles != nil {
		target.SharedFiles = bc.SharedFiles
	}
	if bc.SharedSuffixes != nil {
		target.SharedSuffixes = bc.SharedSuffixes
	}
	if bc.SharedDirs != nil {
		target.SharedDirs = bc.SharedDirs
	}
}

// MergeTo copies non-nil fields from ls into target.
func (ls *LaunchSettings) MergeTo(target *LaunchSettings) {
	if ls == nil || target == nil {
		return
	}
	if ls.RuntimeExecutable != nil {
		target.RuntimeExecutable = ls.RuntimeExecutable
	}
	if ls.Port != nil {
		target.Port = ls.Port
	}
	if ls.Console != nil {
		target.Console = ls.Console
	}
	if ls.Excludes != nil {
		target.Excludes = ls.Excludes
	}
	if ls.RootSearchLevels != nil {
		target.RootSearchLevels = ls.RootSearchLevels
	}
}

// Policies returns the increment policies of a built configuration.
func (bc *BumpConfig) Policies() calculator.Policies {
	p := calculator.DefaultPolicies()
	if bc.RepeatIdentifier != nil {
		p.Repeat = *bc.RepeatIdentifier
	}
	if bc.ExhaustedIdentifier != nil {
		p.Exhaust = *bc.ExhaustedIdentifier
	}
	return p
}
