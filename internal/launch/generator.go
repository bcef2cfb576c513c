package launch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

// ErrRootNotFound is returned when no project root is found above a
// directory.
var ErrRootNotFound = errors.New("project root not found")

const defaultLaunchJSON = `{"version": "0.2.0", "configurations": []}`

// FindRoot returns the first of dir and its ancestors, up to levels
// directories in total, that holds a .vscode directory.
func FindRoot(dir string, levels int) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	current := abs
	for range max(levels, 1) {
		if info, err := os.Stat(filepath.Join(current, VSCodeDir)); err == nil && info.IsDir() {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", fmt.Errorf("%w: no %s directory in %s or its parents", ErrRootNotFound, VSCodeDir, abs)
}

// GeneratorOptions configure a Generator.
type GeneratorOptions struct {
	// Root is the project root holding .vscode.
	Root string
	// ForceRegenerate rewrites every launch.config.json.
	ForceRegenerate bool
	// DryRun computes the document without writing any file.
	DryRun bool
	// Defaults feed auto-generated root configurations.
	Defaults Defaults
	// ManifestNames overrides the manifest search order.
	ManifestNames []string
}

// GenerateResult describes one generator run.
type GenerateResult struct {
	Path      string
	Retained  int
	Generated int
	Targets   []string
	Document  []byte
	Written   bool
}

// Generator rewrites .vscode/launch.json, keeping hand-written entries and
// replacing generated ones.
type Generator struct {
	opts    GeneratorOptions
	loader  *ConfigLoader
	walker  *WorkspaceWalker
	builder *Builder
	log     *zap.SugaredLogger
}

// NewGenerator creates a Generator. A nil logger discards diagnostics.
func NewGenerator(opts GeneratorOptions, log *zap.SugaredLogger) *Generator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Generator{
		opts:    opts,
		loader:  NewConfigLoader(opts.Defaults, log, opts.ManifestNames...),
		walker:  NewWorkspaceWalker(opts.ManifestNames...),
		builder: NewBuilder(log),
		log:     log.Named("launch"),
	}
}

// LaunchPath is the launch.json the generator maintains.
func (g *Generator) LaunchPath() string {
	return filepath.Join(g.opts.Root, VSCodeDir, LaunchJSONFile)
}

// Run loads settings for the root and every workspace member, generates
// entries and writes the merged launch.json once at the end.
func (g *Generator) Run() (GenerateResult, error) {
	result := GenerateResult{Path: g.LaunchPath()}

	existing, err := g.loadExisting()
	if err != nil {
		return result, err
	}
	manual := manualConfigurations(existing)
	result.Retained = len(manual)
	g.log.Infow("Retaining manual configurations", "count", len(manual))

	members, err := g.walker.Members(g.opts.Root)
	if err != nil {
		return result, err
	}

	loadOpts := LoadOptions{ForceRegenerate: g.opts.ForceRegenerate, DryRun: g.opts.DryRun}
	rootOpts := loadOpts
	rootOpts.IsProjectRoot = true
	rootCfg, err := g.loader.LoadAndMerge(g.opts.Root, rootOpts)
	if err != nil {
		return result, err
	}

	var generated []Configuration
	if len(members) == 0 {
		target := Target{Dir: g.opts.Root}
		entries, err := g.builder.Build(target, rootCfg)
		if err != nil {
			return result, err
		}
		generated = append(generated, entries...)
		result.Targets = append(result.Targets, target.Name())
	}
	for _, member := range members {
		memberCfg, err := g.loader.LoadAndMerge(member.Dir, loadOpts)
		if err != nil {
			return result, err
		}
		target := Target{Dir: member.Dir, Rel: member.Rel}
		entries, err := g.builder.Build(target, Merge(rootCfg, memberCfg))
		if err != nil {
			return result, err
		}
		generated = append(generated, entries...)
		result.Targets = append(result.Targets, member.Rel)
	}
	result.Generated = len(generated)

	doc, err := renderLaunchJSON(existing, manual, generated)
	if err != nil {
		return result, err
	}
	result.Document = doc

	if g.opts.DryRun {
		g.log.Infow("Dry run - would update", "path", result.Path)
		return result, nil
	}
	if err := os.MkdirAll(filepath.Dir(result.Path), 0o755); err != nil {
		return result, fmt.Errorf("creating %s: %w", VSCodeDir, err)
	}
	if err := os.WriteFile(result.Path, doc, 0o644); err != nil {
		return result, fmt.Errorf("writing %s: %w", result.Path, err)
	}
	result.Written = true
	g.log.Infow("Updated", "path", result.Path)
	return result, nil
}

func (g *Generator) loadExisting() ([]byte, error) {
	data, err := os.ReadFile(g.LaunchPath())
	if errors.Is(err, fs.ErrNotExist) {
		return []byte(defaultLaunchJSON), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading launch.json: %w", err)
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("%s is not a valid JSON object", g.LaunchPath())
	}
	return data, nil
}

// IsGenerated reports whether a raw launch entry carries the generator
// marker.
func IsGenerated(entry gjson.Result) bool {
	return entry.Get("env." + GeneratedEnvKey).String() == GeneratedEnvFlag
}

func manualConfigurations(doc []byte) []string {
	var manual []string
	for _, entry := range gjson.GetBytes(doc, "configurations").Array() {
		if !IsGenerated(entry) {
			manual = append(manual, entry.Raw)
		}
	}
	return manual
}

// renderLaunchJSON replaces the configurations array of existing, keeping
// every other top-level key.
func renderLaunchJSON(existing []byte, manual []string, generated []Configuration) ([]byte, error) {
	items := append([]string(nil), manual...)
	for _, c := range generated {
		raw, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encoding launch entry %q: %w", c.Name, err)
		}
		items = append(items, string(raw))
	}

	doc, err := sjson.SetRawBytes(existing, "configurations", []byte("["+strings.Join(items, ",")+"]"))
	if err != nil {
		return nil, fmt.Errorf("updating configurations: %w", err)
	}
	if !gjson.GetBytes(doc, "version").Exists() {
		if doc, err = sjson.SetBytes(doc, "version", "0.2.0"); err != nil {
			return nil, fmt.Errorf("setting version: %w", err)
		}
	}
	return pretty.PrettyOptions(doc, &pretty.Options{Width: 100, Indent: "  "}), nil
}
