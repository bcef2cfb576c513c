// Package output formats bump results for terminals and scripts.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/pretty"
)

// Formats accepted by Release.Write.
const (
	FormatVersion = ""
	FormatJSON    = "json"
	FormatAll     = "all"
)

// ErrUnknownFormat is returned for an output format other than the Format constants.
var ErrUnknownFormat = errors.New("unknown output format")

// Release summarizes one bump.
type Release struct {
	Package   string   `json:"package"`
	Previous  string   `json:"previous"`
	Version   string   `json:"version"`
	Decision  string   `json:"decision"`
	Tag       string   `json:"tag"`
	Manifest  string   `json:"manifest,omitempty"`
	Changelog string   `json:"changelog,omitempty"`
	Staged    []string `json:"staged,omitempty"`
	Commit    string   `json:"commit,omitempty"`
	Tagged    bool     `json:"tagged"`
	Pushed    bool     `json:"pushed"`
	DryRun    bool     `json:"dryRun"`
}

// CheckFormat reports whether format can be written.
func CheckFormat(format string) error {
	switch format {
	case FormatVersion, FormatJSON, FormatAll:
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

// Variables flattens a release into named values. Empty optional fields
// are left out.
func (r Release) Variables() map[string]string {
	vars := map[string]string{
		"Package":  r.Package,
		"Previous": r.Previous,
		"Version":  r.Version,
		"Decision": r.Decision,
		"Tag":      r.Tag,
		"Tagged":   strconv.FormatBool(r.Tagged),
		"Pushed":   strconv.FormatBool(r.Pushed),
		"DryRun":   strconv.FormatBool(r.DryRun),
	}
	if r.Manifest != "" {
		vars["Manifest"] = r.Manifest
	}
	if r.Changelog != "" {
		vars["Changelog"] = r.Changelog
	}
	if r.Commit != "" {
		vars["Commit"] = r.Commit
	}
	if len(r.Staged) > 0 {
		vars["Staged"] = strings.Join(r.Staged, ",")
	}
	return vars
}

// Write prints the release in format. A non-empty variable overrides the
// format and prints only that value.
func (r Release) Write(w io.Writer, format, variable string) error {
	if variable != "" {
		return r.writeVariable(w, variable)
	}

	switch format {
	case FormatVersion:
		_, err := fmt.Fprintln(w, r.Version)
		return err
	case FormatJSON:
		return r.writeJSON(w)
	case FormatAll:
		return r.writeVariables(w)
	}
	return CheckFormat(format)
}

func (r Release) writeJSON(w io.Writer) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding release: %w", err)
	}
	if _, err := w.Write(pretty.Pretty(data)); err != nil {
		return fmt.Errorf("writing release: %w", err)
	}
	return nil
}

// writeVariable matches name case-insensitively, so "tag" and "Tag" both work.
func (r Release) writeVariable(w io.Writer, name string) error {
	vars := r.Variables()
	key, ok := lo.FindKeyBy(vars, func(k, _ string) bool { return strings.EqualFold(k, name) })
	if !ok {
		known := lo.Keys(vars)
		slices.Sort(known)
		return fmt.Errorf("unknown variable %q (have %s)", name, strings.Join(known, ", "))
	}
	_, err := fmt.Fprintln(w, vars[key])
	return err
}

// writeVariables prints NAME=value lines in name order.
func (r Release) writeVariables(w io.Writer) error {
	vars := r.Variables()
	names := lo.Keys(vars)
	slices.Sort(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s=%s\n", name, vars[name]); err != nil {
			return err
		}
	}
	return nil
}
