// Package manifest reads and updates project manifests (deno.json,
// package.json) without disturbing their formatting.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Well-known manifest file names.
const (
	DenoJSON    = "deno.json"
	PackageJSON = "package.json"
)

// DefaultNames is the manifest search order.
var DefaultNames = []string{DenoJSON, PackageJSON}

var (
	// ErrNotFound is returned when no manifest exists in a directory.
	ErrNotFound = errors.New("manifest not found")
	// ErrNoVersion is returned when a manifest has no string version field.
	ErrNoVersion = errors.New("manifest has no version field")
	// ErrWorkspaceRoot is returned when a bump targets a workspace root.
	ErrWorkspaceRoot = errors.New("this is a workspace root")
)

// Manifest is a parsed project manifest. The raw bytes are kept so writes
// only touch the fields that change.
type Manifest struct {
	path string
	data []byte
}

// Export is one declared entry point.
type Export struct {
	Key  string
	Path string
}

// Read loads the manifest at path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(path, data)
}

// Parse wraps raw manifest bytes. path is used for error messages and Save.
func Parse(path string, data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing manifest %s: invalid JSON", path)
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("parsing manifest %s: not a JSON object", path)
	}
	return &Manifest{path: path, data: data}, nil
}

// Find returns the first manifest in dir named by names (DefaultNames when
// empty).
func Find(dir string, names ...string) (*Manifest, error) {
	if len(names) == 0 {
		names = DefaultNames
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		return Read(path)
	}
	return nil, fmt.Errorf("%w in %s (looked for %s)", ErrNotFound, dir, strings.Join(names, ", "))
}

// Exists reports whether dir holds any of the named manifests.
func Exists(dir string, names ...string) bool {
	if len(names) == 0 {
		names = DefaultNames
	}
	for _, name := range names {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// Path returns the manifest file path.
func (m *Manifest) Path() string { return m.path }

// Dir returns the directory holding the manifest.
func (m *Manifest) Dir() string { return filepath.Dir(m.path) }

// Bytes returns the current raw document.
func (m *Manifest) Bytes() []byte { return m.data }

// Get returns the value at a gjson path.
func (m *Manifest) Get(path string) gjson.Result {
	return gjson.GetBytes(m.data, path)
}

// Name returns the package name, falling back to the directory name.
func (m *Manifest) Name() string {
	if name := m.Get("name"); name.Type == gjson.String && name.String() != "" {
		return name.String()
	}
	return filepath.Base(m.Dir())
}

// Version returns the version field.
func (m *Manifest) Version() (string, error) {
	v := m.Get("version")
	if v.Type != gjson.String || strings.TrimSpace(v.String()) == "" {
		return "", fmt.Errorf("%w: %s", ErrNoVersion, m.path)
	}
	return v.String(), nil
}

// SetVersion replaces the version field in place. The rest of the document
// is left byte-for-byte unchanged.
func (m *Manifest) SetVersion(version string) error {
	data, err := sjson.SetBytes(m.data, "version", version)
	if err != nil {
		return fmt.Errorf("setting version: %w", err)
	}
	m.data = data
	return nil
}

// Save writes the document back to its path.
func (m *Manifest) Save() error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(m.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(m.path, m.data, mode); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// WorkspacePatterns returns the member globs declared by a workspace root.
// deno.json uses "workspace" (or "workspaces"); package.json uses
// "workspaces" either as an array or as {"packages": [...]}.
func (m *Manifest) WorkspacePatterns() []string {
	for _, path := range []string{"workspace", "workspaces", "workspaces.packages"} {
		r := m.Get(path)
		if !r.IsArray() {
			continue
		}
		var patterns []string
		for _, item := range r.Array() {
			if item.Type == gjson.String && item.String() != "" {
				patterns = append(patterns, item.String())
			}
		}
		return patterns
	}
	return nil
}

// IsWorkspaceRoot reports whether the manifest declares workspace members.
func (m *Manifest) IsWorkspaceRoot() bool {
	for _, path := range []string{"workspace", "workspaces"} {
		if r := m.Get(path); r.IsArray() || r.IsObject() {
			return true
		}
	}
	return false
}

// Exports returns declared entry points in document order. A string export
// is reported under the key ".".
func (m *Manifest) Exports() []Export {
	r := m.Get("exports")
	switch {
	case r.Type == gjson.String:
		return []Export{{Key: ".", Path: r.String()}}
	case r.IsObject():
		var exports []Export
		r.ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.String {
				exports = append(exports, Export{Key: key.String(), Path: value.String()})
			}
			return true
		})
		return exports
	default:
		return nil
	}
}

// Launch returns the raw embedded "launch" object, if present.
func (m *Manifest) Launch() ([]byte, bool) {
	r := m.Get("launch")
	if !r.IsObject() {
		return nil, false
	}
	return []byte(r.Raw), true
}

// FindWorkspaceRoot checks the parent and grandparent of dir for a manifest
// that declares workspace members. It returns that directory.
func FindWorkspaceRoot(dir string, names ...string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	candidate := abs
	for range 2 {
		parent := filepath.Dir(candidate)
		if parent == candidate {
			break
		}
		candidate = parent
		m, err := Find(candidate, names...)
		if err != nil {
			continue
		}
		if m.IsWorkspaceRoot() {
			return candidate, true
		}
	}
	return "", false
}
