package config

import "github.com/MyCarrier-DevOps/go-devkit/internal/semver"

// DefaultCommitMessage is the commit message used when no messages are given.
// The version is substituted for {version}.
const DefaultCommitMessage = "Bump version to {version}"

// CreateDefaultConfiguration returns a Config with all default values
// populated.
func CreateDefaultConfiguration() *Config {
	return &Config{
		Bump: BumpConfig{
			RepeatIdentifier:    repeatPtr(semver.RepeatBumpsCounter),
			ExhaustedIdentifier: exhaustPtr(semver.ExhaustFinalizes),
			ChangelogFile:       stringPtr("CHANGELOG.md"),
			ManifestFiles:       strSlicePtr([]string{"deno.json", "package.json"}),
			TagPrefix:           stringPtr("v"),
			CommitMessage:       stringPtr(DefaultCommitMessage),
			Push:                boolPtr(true),
			SharedFiles: strSlicePtr([]string{
				"deno.lock",
				".vscode/launch.json",
				"launch.config.json",
				"README.md",
				"deno.json",
				".gitignore",
			}),
			SharedSuffixes: strSlicePtr([]string{".md"}),
			SharedDirs:     strSlicePtr([]string{"docs/"}),
		},
		Launch: LaunchSettings{
			RuntimeExecutable: stringPtr("deno"),
			Port:              intPtr(9229),
			Console:           stringPtr("internalConsole"),
			Excludes: strSlicePtr([]string{
				"node_modules/**",
				".git/**",
				"**/.*",
				"**/.*/**",
			}),
			RootSearchLevels: intPtr(2),
		},
	}
}
