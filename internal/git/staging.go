package git

import (
	"path"
	"strings"

	"github.com/samber/lo"
)

// SharedPaths selects files outside a package directory that belong in the
// package's release commit.
type SharedPaths struct {
	// Files are root-relative paths staged when changed.
	Files []string
	// Suffixes match any changed path ending with them.
	Suffixes []string
	// Dirs match any changed path under them.
	Dirs []string
}

// Matches reports whether the root-relative path is shared.
func (s SharedPaths) Matches(rel string) bool {
	if lo.Contains(s.Files, rel) {
		return true
	}
	if lo.SomeBy(s.Suffixes, func(suffix string) bool { return strings.HasSuffix(rel, suffix) }) {
		return true
	}
	return lo.SomeBy(s.Dirs, func(dir string) bool {
		dir = strings.TrimSuffix(dir, "/") + "/"
		return strings.HasPrefix(rel, dir)
	})
}

// StagePaths returns what to stage for a release of the package at pkgRel
// (slash separated, relative to the repository root; "." for the root).
// The package directory always comes first; when it is not the root,
// changed shared files outside it follow in changed order.
func StagePaths(pkgRel string, changed []string, shared SharedPaths) []string {
	pkgRel = path.Clean(pkgRel)
	paths := []string{pkgRel}
	if pkgRel == "." {
		return paths
	}

	outside := lo.Filter(changed, func(rel string, _ int) bool {
		return rel != pkgRel && !strings.HasPrefix(rel, pkgRel+"/") && shared.Matches(rel)
	})
	return append(paths, lo.Uniq(outside)...)
}
