package devkit

import (
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-devkit/internal/config"
	"github.com/MyCarrier-DevOps/go-devkit/internal/launch"

	"go.uber.org/zap"
)

// LaunchOptions configures launch.json generation.
type LaunchOptions struct {
	// Root is the project root holding .vscode. When empty, Dir and its
	// ancestors are searched.
	Root string

	// Dir is where the root search starts when Root is empty.
	Dir string

	// Init regenerates every launch.config.json from scratch.
	Init bool

	// DryRun computes the launch.json document without writing files.
	DryRun bool

	// ConfigPath is the path to a devkit YAML config file. If empty,
	// auto-detects one in the root.
	ConfigPath string

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.SugaredLogger
}

// LaunchResult describes a generator run.
type LaunchResult struct {
	// Root is the resolved project root.
	Root string

	// Path is the launch.json that was (or would be) written.
	Path string

	// Document is the generated launch.json content.
	Document []byte

	// Written is false for dry runs.
	Written bool

	// Retained counts hand-written entries kept from the previous file.
	Retained int

	// Generated counts entries produced in this run.
	Generated int

	// Targets lists the member paths processed, or "root".
	Targets []string
}

// GenerateLaunch rewrites .vscode/launch.json for a project root, keeping
// hand-written entries and regenerating the rest.
func GenerateLaunch(opts LaunchOptions) (*LaunchResult, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	root := opts.Root
	searchFrom := root
	if searchFrom == "" {
		searchFrom = opts.Dir
	}
	if searchFrom == "" {
		return nil, errors.New("project root or start directory is required")
	}

	cfg, err := config.Load(opts.ConfigPath, searchFrom)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if root == "" {
		root, err = launch.FindRoot(opts.Dir, cfg.Launch.SearchLevels())
		if err != nil {
			return nil, err
		}
		if opts.ConfigPath == "" && config.FindFile(opts.Dir) == "" {
			if cfg, err = config.Load("", root); err != nil {
				return nil, fmt.Errorf("loading configuration: %w", err)
			}
		}
	}
	log.Debugw("Project root", "root", root)

	gen := launch.NewGenerator(launch.GeneratorOptions{
		Root:            root,
		ForceRegenerate: opts.Init,
		DryRun:          opts.DryRun,
		Defaults:        cfg.Launch.Defaults(),
		ManifestNames:   cfg.Bump.Manifests(),
	}, log)

	res, err := gen.Run()
	if err != nil {
		return nil, err
	}

	return &LaunchResult{
		Root:      root,
		Path:      res.Path,
		Document:  res.Document,
		Written:   res.Written,
		Retained:  res.Retained,
		Generated: res.Generated,
		Targets:   res.Targets,
	}, nil
}
