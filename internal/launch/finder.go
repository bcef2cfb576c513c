package launch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// alwaysSkipped directories are never descended into, whatever the
// configured excludes say.
var alwaysSkipped = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	".vscode":      true,
	".idea":        true,
	"node_modules": true,
}

func skipDir(name string) bool {
	return alwaysSkipped[name] || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// walkDir visits dir in lexical order, skipping VCS, editor and dependency
// directories. fn receives slash separated paths relative to dir.
func walkDir(dir string, fn func(rel string, d fs.DirEntry) error) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if d.IsDir() && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel), d)
	})
}

// FileFinder selects files under a directory by glob patterns.
type FileFinder struct{}

// Matches reports whether rel matches at least one include and no exclude.
func (FileFinder) Matches(rel string, includes, excludes []string) bool {
	if !matchAny(includes, rel) {
		return false
	}
	return !matchAny(excludes, rel)
}

// FindFiles returns files under dir, relative to dir in slash form and in
// walk order, that match at least one include pattern and no exclude
// pattern. No includes selects nothing.
func (f FileFinder) FindFiles(dir string, includes, excludes []string) ([]string, error) {
	if len(includes) == 0 {
		return nil, nil
	}
	for _, p := range append(append([]string(nil), includes...), excludes...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}

	var files []string
	err := walkDir(dir, func(rel string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		if f.Matches(rel, includes, excludes) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(strings.TrimPrefix(p, "./"), rel); ok {
			return true
		}
	}
	return false
}
