// Package changelog inserts release sections into a Markdown changelog.
package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
)

const (
	sectionPrefix = "## "
	placeholder   = "add details here"
	dateLayout    = "2006-01-02"
)

// Header returns the preamble written to a new changelog.
func Header(name string) string {
	return "# Changelog for " + name + "\n\n" +
		"All notable changes to this project will be documented in this file.\n\n"
}

// Section renders a release section. Without messages a placeholder bullet
// is written.
func Section(version string, date time.Time, messages []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## [%s] - %s\n\n", version, date.Format(dateLayout))
	bullets := 0
	for _, msg := range messages {
		if msg = strings.TrimSpace(msg); msg != "" {
			b.WriteString("- " + msg + "\n")
			bullets++
		}
	}
	if bullets == 0 {
		b.WriteString("- " + placeholder + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

// Insert places section before the first "## " heading of content. When
// there is none the section is appended; empty content gets the header.
func Insert(content, name, section string) string {
	if strings.TrimSpace(content) == "" {
		return Header(name) + section
	}

	offset := 0
	for line := range strings.Lines(content) {
		if strings.HasPrefix(line, sectionPrefix) {
			return content[:offset] + section + content[offset:]
		}
		offset += len(line)
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if !strings.HasSuffix(content, "\n\n") {
		content += "\n"
	}
	return content + section
}

// Update reads the changelog at path (a missing file counts as empty),
// inserts a section for version and writes it back.
func Update(path, name, version string, date time.Time, messages []string) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading changelog: %w", err)
	}

	updated := Insert(string(data), name, Section(version, date, messages))
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}
