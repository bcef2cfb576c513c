package launch

import (
	"bufio"
	"bytes"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	rootEntryFile  = "main.ts"
	reexportSuffix = "mod.ts"
	mainGuard      = "import.meta.main"
	// guard scan limit
	maxEntryScan = 256 * 1024
)

// IsEntryPoint reports whether the file at path (relative paths are resolved
// against dir) can be launched directly. Re-export modules are rejected by
// name first. Otherwise the conventional root entry file qualifies by name,
// and any other file qualifies when it starts with an interpreter line or
// contains a direct-invocation guard.
func IsEntryPoint(dir, file string) bool {
	base := path.Base(filepath.ToSlash(file))
	if strings.HasSuffix(base, reexportSuffix) {
		return false
	}
	if base == rootEntryFile {
		return true
	}

	full := file
	if !filepath.IsAbs(file) {
		full = filepath.Join(dir, filepath.FromSlash(file))
	}
	f, err := os.Open(full)
	if err != nil {
		return false
	}
	defer f.Close()

	r := bufio.NewReader(f)
	head, _ := r.Peek(2)
	if bytes.Equal(head, []byte("#!")) {
		return true
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEntryScan)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), mainGuard) {
			return true
		}
	}
	return false
}
