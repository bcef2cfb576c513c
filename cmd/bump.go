package cmd

import (
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-devkit/internal/output"
	"github.com/MyCarrier-DevOps/go-devkit/internal/semver"
	"github.com/MyCarrier-DevOps/go-devkit/pkg/devkit"

	"github.com/spf13/cobra"
)

// advanceIdentifier is the value of a bare -i flag.
const advanceIdentifier = "next"

var (
	flagMajor               bool
	flagMinor               bool
	flagPatch               bool
	flagRelease             bool
	flagIdentifier          string
	flagDryRun              bool
	flagChangelog           bool
	flagGit                 bool
	flagTag                 bool
	flagNoPush              bool
	flagTest                string
	flagRepeatIdentifier    string
	flagExhaustedIdentifier string
	flagOutput              string
	flagShowVariable        string
	flagExplain             bool
)

var bumpCmd = &cobra.Command{
	Use:   "bump [messages...]",
	Short: "Bump the package version",
	Long: `Bump the version in the package manifest (deno.json or package.json).

Without flags a stable version gets a patch bump and a pre-release gets its
counter bumped. Messages become changelog entries and the commit message.

Examples:
  devkit bump --minor
  devkit bump -i beta "Add workspace support"
  devkit bump -i --tag "Advance to the next pre-release"
  devkit bump --test 1.2.3-rc.4 --release`,
	RunE: bumpRunE,
}

func init() {
	f := bumpCmd.Flags()
	f.BoolVar(&flagMajor, "major", false, "bump the major version")
	f.BoolVar(&flagMinor, "minor", false, "bump the minor version")
	f.BoolVar(&flagPatch, "patch", false, "bump the patch version")
	f.BoolVarP(&flagRelease, "release", "r", false, "drop the pre-release (bump patch when already stable)")
	f.StringVarP(&flagIdentifier, "prerelease-identifier", "i", "", "pre-release identifier: alpha, beta or rc (bare -i advances to the next)")
	f.Lookup("prerelease-identifier").NoOptDefVal = advanceIdentifier
	f.BoolVarP(&flagDryRun, "dry-run", "n", false, "compute the new version without changing files")
	f.BoolVarP(&flagChangelog, "changelog", "c", false, "update the changelog even without messages")
	f.BoolVarP(&flagGit, "git", "g", false, "stage and commit the release")
	f.BoolVarP(&flagTag, "tag", "t", false, "create an annotated tag (implies --git)")
	f.BoolVar(&flagNoPush, "no-push", false, "do not push after committing")
	f.StringVar(&flagTest, "test", "", "compute against this version instead of the manifest")
	f.StringVar(&flagRepeatIdentifier, "repeat-identifier", "", "policy when -i repeats the current identifier: bump-counter or reject")
	f.StringVar(&flagExhaustedIdentifier, "exhausted-identifier", "", "policy when bare -i is on rc: finalize or restart-cycle")
	f.StringVarP(&flagOutput, "output", "o", "", "output format: json, all, or empty for the version only")
	f.StringVar(&flagShowVariable, "show-variable", "", "output a single variable (e.g. Version, Tag)")
	f.BoolVar(&flagExplain, "explain", false, "show how the version was calculated")

	rootCmd.AddCommand(bumpCmd)
}

func bumpRunE(cmd *cobra.Command, args []string) error {
	if err := output.CheckFormat(flagOutput); err != nil {
		return err
	}

	identifier, messages := splitIdentifier(flagIdentifier, args)
	opts := bumpOptions(identifier, messages)

	if flagTest == "" {
		dir, err := workingDir()
		if err != nil {
			return err
		}
		opts.Dir = dir
	}

	if flagShowConfig && opts.Dir != "" {
		return showConfig(cmd, opts.Dir)
	}

	result, err := devkit.Bump(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if flagExplain {
		if _, err := io.WriteString(cmd.ErrOrStderr(), result.FormattedExplanation); err != nil {
			return fmt.Errorf("writing explanation: %w", err)
		}
	}

	return result.Release().Write(cmd.OutOrStdout(), flagOutput, flagShowVariable)
}

// splitIdentifier recovers "-i beta": a bare -i takes no value, so a known
// identifier right after it arrives as the first positional argument.
func splitIdentifier(identifier string, args []string) (string, []string) {
	if identifier == advanceIdentifier && len(args) > 0 && semver.IdentifierIndex(args[0]) >= 0 {
		return args[0], args[1:]
	}
	return identifier, args
}

// bumpOptions maps the command line onto library options.
func bumpOptions(identifier string, messages []string) devkit.BumpOptions {
	opts := devkit.BumpOptions{
		Major:               flagMajor,
		Minor:               flagMinor,
		Patch:               flagPatch,
		Release:             flagRelease,
		Messages:            messages,
		DryRun:              flagDryRun,
		Changelog:           flagChangelog,
		Git:                 flagGit,
		Tag:                 flagTag,
		NoPush:              flagNoPush,
		Test:                flagTest,
		ConfigPath:          flagConfig,
		RepeatIdentifier:    flagRepeatIdentifier,
		ExhaustedIdentifier: flagExhaustedIdentifier,
		Explain:             flagExplain,
		Logger:              logger,
	}
	if identifier == advanceIdentifier {
		opts.AdvanceIdentifier = true
	} else {
		opts.Identifier = identifier
	}
	return opts
}
