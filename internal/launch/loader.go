package launch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MyCarrier-DevOps/go-devkit/internal/manifest"

	"go.uber.org/zap"
)

// Defaults are the settings written into an auto-generated project root
// configuration.
type Defaults struct {
	Port              uint16
	Console           Console
	Excludes          []string
	RuntimeExecutable string
}

// DefaultDefaults returns the built-in generation defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Port:              DefaultPort,
		Console:           DefaultConsole,
		Excludes:          append([]string(nil), DefaultExcludes...),
		RuntimeExecutable: DefaultRuntime,
	}
}

// LoadOptions control a single LoadAndMerge call.
type LoadOptions struct {
	// ForceRegenerate ignores an existing launch.config.json and writes a
	// fresh one.
	ForceRegenerate bool
	// IsProjectRoot adds port, console, excludes and runtime executable to a
	// generated file. Members only get groups.
	IsProjectRoot bool
	// DryRun keeps a generated configuration in memory.
	DryRun bool
}

// ConfigLoader loads the launch settings of one directory from its manifest
// and its launch.config.json.
type ConfigLoader struct {
	defaults  Defaults
	manifests []string
	log       *zap.SugaredLogger
}

// NewConfigLoader creates a loader. A nil logger discards diagnostics.
func NewConfigLoader(defaults Defaults, log *zap.SugaredLogger, manifestNames ...string) *ConfigLoader {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if len(manifestNames) == 0 {
		manifestNames = manifest.DefaultNames
	}
	return &ConfigLoader{defaults: defaults, manifests: manifestNames, log: log.Named("launch")}
}

// LoadAndMerge returns the manifest "launch" block merged with the
// directory's launch.config.json. When neither exists, or when forced, a
// default configuration is generated and written first. An existing
// launch.config.json is never regenerated unless forced.
func (l *ConfigLoader) LoadAndMerge(dir string, opts LoadOptions) (Config, error) {
	m, err := manifest.Find(dir, l.manifests...)
	if err != nil && !errors.Is(err, manifest.ErrNotFound) {
		return Config{}, err
	}

	var cfg Config
	embedded := false
	if m != nil {
		if raw, ok := m.Launch(); ok {
			if err := ValidateLaunch(raw); err != nil {
				return Config{}, fmt.Errorf("%s: %w", m.Path(), err)
			}
			if err := json.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("%s: %w: %v", m.Path(), ErrInvalidConfig, err)
			}
			embedded = true
		}
	}

	path := filepath.Join(dir, ConfigFile)
	exists := fileExists(path)
	if exists && !opts.ForceRegenerate {
		doc, err := ReadConfigDocument(path)
		if err != nil {
			return Config{}, err
		}
		if doc.Launch != nil {
			cfg = Merge(cfg, *doc.Launch)
		}
		return cfg, nil
	}

	if !opts.ForceRegenerate && embedded {
		return cfg, nil
	}

	doc := l.Generate(dir, m, opts.IsProjectRoot)
	if opts.DryRun {
		l.log.Infow("Would generate launch config", "path", path, "groups", doc.Launch.Groups.Len())
		return Merge(cfg, *doc.Launch), nil
	}
	if err := writeJSON(path, doc); err != nil {
		return Config{}, err
	}
	l.log.Infow("Generated launch config", "path", path, "groups", doc.Launch.Groups.Len())

	written, err := ReadConfigDocument(path)
	if err != nil {
		return Config{}, err
	}
	if written.Launch != nil {
		cfg = Merge(cfg, *written.Launch)
	}
	return cfg, nil
}

// Generate builds the default configuration for dir: a test group, a run
// group and one group per exported entry point. m may be nil.
func (l *ConfigLoader) Generate(dir string, m *manifest.Manifest, isProjectRoot bool) ConfigDocument {
	console := l.defaults.Console
	if console == "" {
		console = DefaultConsole
	}

	groups := NewGroupSet(
		Group{
			ID:          "test",
			Name:        ptr("Tests"),
			Console:     ptr(console),
			Includes:    ptr([]string{"**/*.test.ts"}),
			RuntimeArgs: ptr(append([]string(nil), DefaultTestArgs...)),
		},
		Group{
			ID:          "run",
			Name:        ptr("Runnable"),
			Console:     ptr(console),
			Includes:    ptr([]string{"**/*.run.ts"}),
			RuntimeArgs: ptr(append([]string(nil), DefaultRuntimeArgs...)),
		},
	)

	if m != nil {
		for _, export := range m.Exports() {
			if !IsEntryPoint(dir, export.Path) {
				l.log.Debugw("Skipping export", "key", export.Key, "path", export.Path)
				continue
			}
			groups.Upsert(Group{
				ID:          export.Key,
				Name:        ptr(exportName(export)),
				Console:     ptr(console),
				Program:     ptr(export.Path),
				RuntimeArgs: ptr(append([]string(nil), DefaultRuntimeArgs...)),
				Scripts:     ptr([]ArgList{ArgString(""), ArgString("--help")}),
			})
		}
	}

	launch := &Config{Groups: groups}
	if isProjectRoot {
		port := l.defaults.Port
		if port == 0 {
			port = DefaultPort
		}
		excludes := l.defaults.Excludes
		if excludes == nil {
			excludes = DefaultExcludes
		}
		runtime := l.defaults.RuntimeExecutable
		if runtime == "" {
			runtime = DefaultRuntime
		}
		launch.Port = ptr(port)
		launch.Console = ptr(console)
		launch.Excludes = ptr(append([]string(nil), excludes...))
		launch.RuntimeExecutable = ptr(runtime)
	}
	return ConfigDocument{Schema: SchemaURL, Launch: launch}
}

func exportName(e manifest.Export) string {
	if e.Key != "." {
		return strings.TrimPrefix(e.Key, "./")
	}
	return strings.TrimSuffix(strings.TrimPrefix(e.Path, "./"), ".ts")
}

// ReadConfigDocument reads and validates a launch.config.json file.
func ReadConfigDocument(path string) (ConfigDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ConfigDocument{}, fmt.Errorf("reading launch config: %w", err)
	}
	if err := ValidateDocument(data); err != nil {
		return ConfigDocument{}, fmt.Errorf("%s: %w", path, err)
	}
	var doc ConfigDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ConfigDocument{}, fmt.Errorf("%s: %w: %v", path, ErrInvalidConfig, err)
	}
	return doc, nil
}

func marshalIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func writeJSON(path string, v any) error {
	data, err := marshalIndent(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
