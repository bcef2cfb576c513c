package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MyCarrier-DevOps/go-devkit/internal/config"
	"github.com/MyCarrier-DevOps/go-devkit/internal/logging"
	"github.com/MyCarrier-DevOps/go-devkit/pkg/devkit"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Global flags shared across commands.
var (
	flagPath       string
	flagConfig     string
	flagShowConfig bool
	flagVerbosity  string
)

// logger is built from --verbosity before any command runs.
var logger = zap.NewNop().Sugar()

// rootCmd is the top-level command for devkit.
var rootCmd = &cobra.Command{
	Use:   "devkit",
	Short: "Release and editor tooling for Deno and Node workspaces",
	Long: `devkit bumps package versions (manifest, changelog, git commit and tag)
and generates VS Code launch configurations for a workspace.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		log, err := logging.New(flagVerbosity, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		logger = log
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if flagShowConfig {
			dir, err := workingDir()
			if err != nil {
				return err
			}
			return showConfig(cmd, dir)
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", "", "package or project directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().BoolVar(&flagShowConfig, "show-config", false, "display the effective configuration and exit")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "info", "log verbosity: quiet, info, debug")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// workingDir resolves --path against the process working directory.
func workingDir() (string, error) {
	if flagPath != "" {
		return filepath.Abs(flagPath)
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return dir, nil
}

// showConfig prints the effective configuration for dir as YAML, resolved
// the same way bump resolves it.
func showConfig(cmd *cobra.Command, dir string) error {
	cfg, err := config.Load(flagConfig, devkit.ConfigDirs(dir)...)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
