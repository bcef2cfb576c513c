package cmd

import (
	"github.com/MyCarrier-DevOps/go-devkit/pkg/devkit"

	"github.com/spf13/cobra"
)

var (
	flagRoot         string
	flagInit         bool
	flagLaunchDryRun bool
)

var launchgenCmd = &cobra.Command{
	Use:   "launchgen",
	Short: "Generate .vscode/launch.json for the project",
	Long: `Generate debugger entries in .vscode/launch.json from launch.config.json
files and the "launch" block of each manifest.

The project root is the nearest directory holding .vscode, searched from
--path upwards. Hand-written entries and other keys such as compounds are
kept; generated entries are replaced.`,
	RunE: launchgenRunE,
}

func init() {
	launchgenCmd.Flags().StringVar(&flagRoot, "root", "", "project root (default: search for .vscode)")
	launchgenCmd.Flags().BoolVar(&flagInit, "init", false, "regenerate every launch.config.json")
	launchgenCmd.Flags().BoolVarP(&flagLaunchDryRun, "dry-run", "n", false, "print launch.json instead of writing it")

	rootCmd.AddCommand(launchgenCmd)
}

func launchgenRunE(cmd *cobra.Command, _ []string) error {
	dir, err := workingDir()
	if err != nil {
		return err
	}

	if flagShowConfig {
		return showConfig(cmd, dir)
	}

	result, err := devkit.GenerateLaunch(devkit.LaunchOptions{
		Root:       flagRoot,
		Dir:        dir,
		Init:       flagInit,
		DryRun:     flagLaunchDryRun,
		ConfigPath: flagConfig,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	if !result.Written {
		_, err = cmd.OutOrStdout().Write(result.Document)
		return err
	}
	logger.Infow("Generated launch configurations",
		"path", result.Path,
		"generated", result.Generated,
		"retained", result.Retained,
	)
	return nil
}
