package launch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/MyCarrier-DevOps/go-devkit/internal/manifest"

	"github.com/bmatcuk/doublestar/v4"
)

// Member is a workspace member directory.
type Member struct {
	// Dir is the absolute member directory.
	Dir string
	// Rel is the slash separated path relative to the workspace root.
	Rel string
}

// Name is the last path element of the member directory.
func (m Member) Name() string {
	return filepath.Base(m.Dir)
}

// WorkspaceWalker discovers workspace members below a root directory.
type WorkspaceWalker struct {
	manifests []string
}

// NewWorkspaceWalker returns a walker that accepts directories holding one of
// the given manifest names (manifest.DefaultNames when empty).
func NewWorkspaceWalker(manifestNames ...string) *WorkspaceWalker {
	if len(manifestNames) == 0 {
		manifestNames = manifest.DefaultNames
	}
	return &WorkspaceWalker{manifests: manifestNames}
}

// Patterns returns the member globs declared by the root manifest, with any
// leading "./" removed. A root without a manifest has no members.
func (w *WorkspaceWalker) Patterns(root string) ([]string, error) {
	m, err := manifest.Find(root, w.manifests...)
	if err != nil {
		return nil, nil
	}
	var patterns []string
	for _, p := range m.WorkspacePatterns() {
		p = strings.TrimSuffix(strings.TrimPrefix(p, "./"), "/")
		if p == "" || p == "." {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid workspace pattern %q in %s", p, m.Path())
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Members returns the member directories matching the root manifest's
// workspace patterns, in walk order. Only directories holding a manifest
// count.
func (w *WorkspaceWalker) Members(root string) ([]Member, error) {
	patterns, err := w.Patterns(root)
	if err != nil || len(patterns) == 0 {
		return nil, err
	}

	var members []Member
	err = walkDir(root, func(rel string, d fs.DirEntry) error {
		if !d.IsDir() || !matchAny(patterns, rel) {
			return nil
		}
		dir := filepath.Join(root, filepath.FromSlash(rel))
		if manifest.Exists(dir, w.manifests...) {
			members = append(members, Member{Dir: dir, Rel: rel})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking workspace %s: %w", root, err)
	}
	return members, nil
}
