// Package launch generates editor debug launch configurations from
// workspace launch settings.
package launch

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// File and directory names used by the generator.
const (
	VSCodeDir        = ".vscode"
	LaunchJSONFile   = "launch.json"
	ConfigFile       = "launch.config.json"
	DefaultPort      = 9229
	DefaultRuntime   = "deno"
	GeneratedEnvKey  = "LAUNCHGEN"
	GeneratedEnvFlag = "true"
	SchemaURL        = "https://raw.githubusercontent.com/MyCarrier-DevOps/go-devkit/main/internal/launch/schemas/launch.schema.json"
)

var (
	// DefaultExcludes skip dependency caches, VCS metadata and dot files.
	DefaultExcludes = []string{"node_modules/**", ".git/**", "**/.*", "**/.*/**"}
	// DefaultRuntimeArgs start a program under the inspector.
	DefaultRuntimeArgs = []string{"run", "-A", "--inspect-brk"}
	// DefaultTestArgs run a test file under the inspector.
	DefaultTestArgs = []string{"test", "-A", "--inspect-brk"}
)

// Console is where the debuggee's output goes.
type Console string

const (
	ConsoleInternal   Console = "internalConsole"
	ConsoleIntegrated Console = "integratedTerminal"
	ConsoleExternal   Console = "externalTerminal"
)

// DefaultConsole is used when no group or config sets a console.
const DefaultConsole = ConsoleInternal

var consoles = []Console{ConsoleInternal, ConsoleIntegrated, ConsoleExternal}

// ParseConsole validates a console name.
func ParseConsole(s string) (Console, error) {
	c := Console(s)
	if !slices.Contains(consoles, c) {
		return "", fmt.Errorf("unknown console %q (want internalConsole, integratedTerminal or externalTerminal)", s)
	}
	return c, nil
}

// UnmarshalJSON implements json.Unmarshaler for Console.
func (c *Console) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseConsole(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ArgList is an argument list written either as one whitespace separated
// string or as an array of strings. The original form is kept on output.
type ArgList struct {
	Args []string
	list bool
}

// ArgString builds an ArgList from a whitespace separated string.
func ArgString(s string) ArgList {
	return ArgList{Args: strings.Fields(s)}
}

// Args builds an ArgList written as an array.
func Args(args ...string) ArgList {
	return ArgList{Args: args, list: true}
}

// UnmarshalJSON implements json.Unmarshaler for ArgList.
func (a *ArgList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = ArgString(s)
		return nil
	}
	var args []string
	if err := json.Unmarshal(data, &args); err != nil {
		return fmt.Errorf("arguments must be a string or an array of strings: %w", err)
	}
	*a = ArgList{Args: args, list: true}
	return nil
}

// MarshalJSON implements json.Marshaler for ArgList.
func (a ArgList) MarshalJSON() ([]byte, error) {
	if a.list {
		if a.Args == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Args)
	}
	return json.Marshal(strings.Join(a.Args, " "))
}

// Group describes one family of launch entries. A group either discovers
// files with Includes or launches a single Program once per script.
type Group struct {
	ID                string     `json:"id"`
	Name              *string    `json:"name,omitempty"`
	Includes          *[]string  `json:"includes,omitempty"`
	Excludes          *[]string  `json:"excludes,omitempty"`
	Program           *string    `json:"program,omitempty"`
	RuntimeExecutable *string    `json:"runtimeExecutable,omitempty"`
	RuntimeArgs       *[]string  `json:"runtimeArgs,omitempty"`
	ScriptArgs        *ArgList   `json:"scriptArgs,omitempty"`
	Scripts           *[]ArgList `json:"scripts,omitempty"`
	Port              *uint16    `json:"port,omitempty"`
	Console           *Console   `json:"console,omitempty"`
}

// MergeTo copies non-nil fields from g into target.
func (g Group) MergeTo(target *Group) {
	if target == nil {
		return
	}
	if g.Name != nil {
		target.Name = g.Name
	}
	if g.Includes != nil {
		target.Includes = g.Includes
	}
	if g.Excludes != nil {
		target.Excludes = g.Excludes
	}
	if g.Program != nil {
		target.Program = g.Program
	}
	if g.RuntimeExecutable != nil {
		target.RuntimeExecutable = g.RuntimeExecutable
	}
	if g.RuntimeArgs != nil {
		target.RuntimeArgs = g.RuntimeArgs
	}
	if g.ScriptArgs != nil {
		target.ScriptArgs = g.ScriptArgs
	}
	if g.Scripts != nil {
		target.Scripts = g.Scripts
	}
	if g.Port != nil {
		target.Port = g.Port
	}
	if g.Console != nil {
		target.Console = g.Console
	}
}

// DisplayName returns the group name, or its id when unnamed.
func (g Group) DisplayName() string {
	if g.Name != nil && *g.Name != "" {
		return *g.Name
	}
	return g.ID
}

// IsDiscovery reports whether the group finds files by pattern.
func (g Group) IsDiscovery() bool {
	return g.Includes != nil
}

// Config holds launch settings from one source, or the merge of several.
// Nil fields are unset.
type Config struct {
	Port              *uint16   `json:"port,omitempty"`
	Console           *Console  `json:"console,omitempty"`
	Excludes          *[]string `json:"excludes,omitempty"`
	RuntimeExecutable *string   `json:"runtimeExecutable,omitempty"`
	Groups            *GroupSet `json:"groups,omitempty"`
}

// IsEmpty reports whether no field is set.
func (c Config) IsEmpty() bool {
	return c.Port == nil && c.Console == nil && c.Excludes == nil &&
		c.RuntimeExecutable == nil && c.Groups == nil
}

// ConfigDocument is the on-disk shape of launch.config.json.
type ConfigDocument struct {
	Schema string  `json:"$schema,omitempty"`
	Launch *Config `json:"launch,omitempty"`
}

func ptr[T any](v T) *T { return &v }
