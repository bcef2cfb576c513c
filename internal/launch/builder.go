package launch

import (
	"path"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

const workspaceFolder = "${workspaceFolder}"

// Presentation groups entries in the editor's debug picker.
type Presentation struct {
	Group string `json:"group"`
}

// Configuration is one generated debug launch entry.
type Configuration struct {
	Type              string            `json:"type"`
	Request           string            `json:"request"`
	Name              string            `json:"name"`
	Program           string            `json:"program,omitempty"`
	Cwd               string            `json:"cwd"`
	RuntimeExecutable string            `json:"runtimeExecutable"`
	RuntimeArgs       []string          `json:"runtimeArgs"`
	Args              []string          `json:"args,omitempty"`
	AttachSimplePort  uint16            `json:"attachSimplePort"`
	Console           Console           `json:"console"`
	Presentation      *Presentation     `json:"presentation,omitempty"`
	Env               map[string]string `json:"env"`
}

// Target is the directory entries are generated for.
type Target struct {
	// Dir is the absolute directory scanned for files.
	Dir string
	// Rel is the slash separated path from the project root; empty for the
	// root itself.
	Rel string
}

// IsRoot reports whether the target is the project root.
func (t Target) IsRoot() bool { return t.Rel == "" }

// Name is "root" for the project root, else the member directory name.
func (t Target) Name() string {
	if t.IsRoot() {
		return "root"
	}
	return path.Base(t.Rel)
}

func (t Target) workspacePath(file string) string {
	file = strings.TrimPrefix(file, "./")
	if t.IsRoot() {
		return workspaceFolder + "/" + file
	}
	return workspaceFolder + "/" + path.Join(t.Rel, file)
}

func (t Target) displayName(name string) string {
	if t.IsRoot() {
		return name
	}
	return t.Name() + ": " + name
}

func (t Target) presentation() *Presentation {
	if t.IsRoot() {
		return nil
	}
	return &Presentation{Group: t.Name()}
}

// Builder turns a merged Config into concrete launch entries.
type Builder struct {
	finder FileFinder
	log    *zap.SugaredLogger
}

// NewBuilder creates a Builder. A nil logger discards diagnostics.
func NewBuilder(log *zap.SugaredLogger) *Builder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Builder{log: log.Named("launch")}
}

// Build generates entries for every group of cfg, in group order. Discovery
// groups yield one entry per matching file in walk order; program groups
// yield one entry per script.
func (b *Builder) Build(target Target, cfg Config) ([]Configuration, error) {
	var out []Configuration
	for _, g := range cfg.Groups.Groups() {
		switch {
		case g.IsDiscovery():
			entries, err := b.discover(target, cfg, g)
			if err != nil {
				return nil, err
			}
			out = append(out, entries...)
		case g.Program != nil:
			out = append(out, b.programEntries(target, cfg, g)...)
		default:
			b.log.Warnw("Group has neither includes nor program", "group", g.ID, "target", target.Name())
		}
	}
	b.log.Infow("Generated configurations", "count", len(out), "target", target.Name())
	return out, nil
}

func (b *Builder) discover(target Target, cfg Config, g Group) ([]Configuration, error) {
	excludes := DefaultExcludes
	if cfg.Excludes != nil {
		excludes = *cfg.Excludes
	}
	if g.Excludes != nil {
		excludes = append(append([]string(nil), excludes...), *g.Excludes...)
	}

	files, err := b.finder.FindFiles(target.Dir, *g.Includes, excludes)
	if err != nil {
		return nil, err
	}

	entries := make([]Configuration, 0, len(files))
	for _, file := range files {
		entry := b.base(target, cfg, g, target.displayName(file))
		filePath := target.workspacePath(file)
		if isTestRun(entry.RuntimeArgs) {
			entry.RuntimeArgs = append(entry.RuntimeArgs, filePath)
		} else {
			entry.Program = filePath
		}
		b.log.Debugw("Adding", "name", entry.Name)
		entries = append(entries, entry)
	}
	return entries, nil
}

func (b *Builder) programEntries(target Target, cfg Config, g Group) []Configuration {
	scripts := []ArgList{ArgString("")}
	if g.Scripts != nil && len(*g.Scripts) > 0 {
		scripts = *g.Scripts
	}

	var prefix []string
	if g.ScriptArgs != nil {
		prefix = g.ScriptArgs.Args
	}

	entries := make([]Configuration, 0, len(scripts))
	for _, script := range scripts {
		name := g.DisplayName()
		if len(script.Args) > 0 {
			name += " " + strings.Join(script.Args, " ")
		}

		entry := b.base(target, cfg, g, target.displayName(name))
		entry.Program = target.workspacePath(*g.Program)
		entry.Args = append(append([]string{}, prefix...), script.Args...)
		entries = append(entries, entry)
	}
	b.log.Debugw("Adding program entries", "group", g.ID, "count", len(entries))
	return entries
}

func (b *Builder) base(target Target, cfg Config, g Group, name string) Configuration {
	runtimeArgs := []string{}
	if g.RuntimeArgs != nil {
		runtimeArgs = append(runtimeArgs, *g.RuntimeArgs...)
	}

	return Configuration{
		Type:              "node",
		Request:           "launch",
		Name:              name,
		Cwd:               workspaceFolder,
		RuntimeExecutable: lo.CoalesceOrEmpty(lo.FromPtr(g.RuntimeExecutable), lo.FromPtr(cfg.RuntimeExecutable), DefaultRuntime),
		RuntimeArgs:       runtimeArgs,
		AttachSimplePort:  lo.CoalesceOrEmpty(lo.FromPtr(g.Port), lo.FromPtr(cfg.Port), DefaultPort),
		Console:           lo.CoalesceOrEmpty(lo.FromPtr(g.Console), lo.FromPtr(cfg.Console), DefaultConsole),
		Presentation:      target.presentation(),
		Env:               map[string]string{GeneratedEnvKey: GeneratedEnvFlag},
	}
}

// isTestRun reports whether runtime args invoke the test runner, which
// takes the file as an argument rather than as the program.
func isTestRun(runtimeArgs []string) bool {
	return len(runtimeArgs) > 0 && runtimeArgs[0] == "test"
}
