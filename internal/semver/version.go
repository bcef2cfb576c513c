package semver

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	msemver "github.com/Masterminds/semver/v3"
)

// ErrInvalidVersion is returned when a string is not a valid semantic version.
var ErrInvalidVersion = errors.New("invalid version")

// ErrOverflow is returned when an increment would exceed the largest
// representable component value.
var ErrOverflow = errors.New("version component overflow")

// SemanticVersion represents a semantic version.
// This type is immutable: all methods return new values.
type SemanticVersion struct {
	Major         uint64
	Minor         uint64
	Patch         uint64
	PreReleaseTag PreReleaseTag
}

// Parse parses a strict MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD] string.
// Build metadata is accepted and discarded.
func Parse(s string) (SemanticVersion, error) {
	parsed, err := msemver.StrictNewVersion(strings.TrimSpace(s))
	if err != nil {
		return SemanticVersion{}, fmt.Errorf("%w %q: %v", ErrInvalidVersion, s, err)
	}
	return SemanticVersion{
		Major:         parsed.Major(),
		Minor:         parsed.Minor(),
		Patch:         parsed.Patch(),
		PreReleaseTag: parsePreReleaseTag(parsed.Prerelease()),
	}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) SemanticVersion {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// parsePreReleaseTag splits a pre-release string on its last dot.
// Handles formats like "beta.4", "beta", "4", "rc.1.2".
func parsePreReleaseTag(s string) PreReleaseTag {
	if s == "" {
		return PreReleaseTag{}
	}

	if lastDot := strings.LastIndex(s, "."); lastDot >= 0 {
		if num, err := strconv.ParseUint(s[lastDot+1:], 10, 64); err == nil {
			return PreReleaseTag{Name: s[:lastDot], Number: &num}
		}
	}

	if num, err := strconv.ParseUint(s, 10, 64); err == nil {
		return PreReleaseTag{Number: &num}
	}

	return PreReleaseTag{Name: s}
}

// IsPreRelease reports whether the version carries a pre-release tag.
func (v SemanticVersion) IsPreRelease() bool {
	return v.PreReleaseTag.HasTag()
}

// Stable drops the pre-release tag, keeping the numeric fields.
func (v SemanticVersion) Stable() SemanticVersion {
	return SemanticVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// IncrementField bumps the specified version field.
// Higher fields are preserved, lower fields are zeroed.
// The pre-release tag is cleared. VersionFieldNone returns the version unchanged.
// A field already at the largest representable value yields ErrOverflow.
func (v SemanticVersion) IncrementField(field VersionField) (SemanticVersion, error) {
	var err error
	next := SemanticVersion{Major: v.Major}
	switch field {
	case VersionFieldMajor:
		next.Major, err = increment(v.Major, "major")
	case VersionFieldMinor:
		next.Minor, err = increment(v.Minor, "minor")
	case VersionFieldPatch:
		next.Minor = v.Minor
		next.Patch, err = increment(v.Patch, "patch")
	default:
		return v, nil
	}
	if err != nil {
		return SemanticVersion{}, err
	}
	return next, nil
}

// IncrementPreRelease bumps the pre-release counter. A tag without a
// counter starts at 0.
func (v SemanticVersion) IncrementPreRelease() (SemanticVersion, error) {
	tag := v.PreReleaseTag
	if tag.Number == nil {
		return v.WithPreReleaseTag(tag.WithNumber(0)), nil
	}
	n, err := increment(*tag.Number, "pre-release counter")
	if err != nil {
		return SemanticVersion{}, err
	}
	return v.WithPreReleaseTag(tag.WithNumber(n)), nil
}

func increment(n uint64, what string) (uint64, error) {
	if n == math.MaxUint64 {
		return 0, fmt.Errorf("%w: %s is at %d", ErrOverflow, what, n)
	}
	return n + 1, nil
}

// WithPreReleaseTag returns a new SemanticVersion with the given pre-release tag.
func (v SemanticVersion) WithPreReleaseTag(tag PreReleaseTag) SemanticVersion {
	return SemanticVersion{
		Major:         v.Major,
		Minor:         v.Minor,
		Patch:         v.Patch,
		PreReleaseTag: tag,
	}
}

// CompareTo compares two SemanticVersions.
// Returns a negative value, zero, or a positive value.
func (v SemanticVersion) CompareTo(other SemanticVersion) int {
	if c := compareUint(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareUint(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareUint(v.Patch, other.Patch); c != 0 {
		return c
	}
	return v.PreReleaseTag.CompareTo(other.PreReleaseTag)
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// SemVer returns the canonical form (e.g., "1.2.3" or "1.2.3-beta.4").
func (v SemanticVersion) SemVer() string {
	base := strconv.FormatUint(v.Major, 10) + "." +
		strconv.FormatUint(v.Minor, 10) + "." +
		strconv.FormatUint(v.Patch, 10)
	if tag := v.PreReleaseTag.String(); tag != "" {
		return base + "-" + tag
	}
	return base
}

func (v SemanticVersion) String() string {
	return v.SemVer()
}
