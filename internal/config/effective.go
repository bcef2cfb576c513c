package config

import (
	"strings"

	"github.com/MyCarrier-DevOps/go-devkit/internal/git"
	"github.com/MyCarrier-DevOps/go-devkit/internal/launch"

	"github.com/samber/lo"
)

// The accessors below read a configuration returned by Builder.Build, where
// defaults fill every field. Unset fields fall back to built-in values.

// Manifests returns the manifest file names searched in a package directory.
func (bc *BumpConfig) Manifests() []string {
	return lo.FromPtr(bc.ManifestFiles)
}

// Shared returns the shared-file rules for staging.
func (bc *BumpConfig) Shared() git.SharedPaths {
	return git.SharedPaths{
		Files:    lo.FromPtr(bc.SharedFiles),
		Suffixes: lo.FromPtr(bc.SharedSuffixes),
		Dirs:     lo.FromPtr(bc.SharedDirs),
	}
}

// CommitMessageFor renders the default commit message for a version.
func (bc *BumpConfig) CommitMessageFor(version string) string {
	msg := lo.CoalesceOrEmpty(lo.FromPtr(bc.CommitMessage), DefaultCommitMessage)
	return strings.ReplaceAll(msg, "{version}", version)
}

// Defaults converts the launch settings into generator defaults.
func (ls *LaunchSettings) Defaults() launch.Defaults {
	d := launch.DefaultDefaults()
	if ls.Port != nil {
		d.Port = uint16(*ls.Port)
	}
	if ls.Console != nil {
		if c, err := launch.ParseConsole(*ls.Console); err == nil {
			d.Console = c
		}
	}
	if ls.Excludes != nil {
		d.Excludes = append([]string(nil), *ls.Excludes...)
	}
	d.RuntimeExecutable = lo.CoalesceOrEmpty(lo.FromPtr(ls.RuntimeExecutable), d.RuntimeExecutable)
	return d
}

// SearchLevels is how many directories FindRoot inspects.
func (ls *LaunchSettings) SearchLevels() int {
	return lo.CoalesceOrEmpty(lo.FromPtr(ls.RootSearchLevels), 2)
}
