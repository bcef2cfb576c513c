package semver

import (
	"slices"
	"strconv"
	"strings"
)

// identifierOrder is the maturity order of recognized pre-release labels.
var identifierOrder = [...]string{"alpha", "beta", "rc"}

// Identifiers returns the recognized pre-release labels in maturity order.
func Identifiers() []string {
	return identifierOrder[:]
}

// IdentifierIndex returns the position of name in the identifier order,
// or -1 when name is not a recognized label.
func IdentifierIndex(name string) int {
	return slices.Index(identifierOrder[:], name)
}

// FirstIdentifier is the label a new pre-release cycle starts with.
func FirstIdentifier() string {
	return identifierOrder[0]
}

// NextIdentifier returns the label after name. The second return value is
// false when name is the last label or not recognized.
func NextIdentifier(name string) (string, bool) {
	idx := IdentifierIndex(name)
	if idx < 0 || idx+1 >= len(identifierOrder) {
		return "", false
	}
	return identifierOrder[idx+1], true
}

// PreReleaseTag represents the pre-release portion of a semantic version.
// This type is immutable: all methods return new values.
type PreReleaseTag struct {
	Name   string
	Number *uint64
}

// NewPreReleaseTag returns a tag with the given name and counter.
func NewPreReleaseTag(name string, n uint64) PreReleaseTag {
	return PreReleaseTag{Name: name, Number: &n}
}

// HasTag returns true when the pre-release tag has a name or number.
func (t PreReleaseTag) HasTag() bool {
	return t.Name != "" || t.Number != nil
}

// WithName returns a new PreReleaseTag with the given name.
func (t PreReleaseTag) WithName(name string) PreReleaseTag {
	return PreReleaseTag{Name: name, Number: t.Number}
}

// WithNumber returns a new PreReleaseTag with the given number.
func (t PreReleaseTag) WithNumber(n uint64) PreReleaseTag {
	return PreReleaseTag{Name: t.Name, Number: &n}
}

// CompareTo compares two PreReleaseTags.
// A stable version (no tag) is greater than a pre-release version.
// Recognized labels compare by maturity order, others lexically; then by number.
func (t PreReleaseTag) CompareTo(other PreReleaseTag) int {
	if !t.HasTag() && !other.HasTag() {
		return 0
	}
	if !t.HasTag() {
		return 1
	}
	if !other.HasTag() {
		return -1
	}

	ti, oi := IdentifierIndex(t.Name), IdentifierIndex(other.Name)
	if ti >= 0 && oi >= 0 {
		if c := compareUint(uint64(ti), uint64(oi)); c != 0 {
			return c
		}
	} else if c := strings.Compare(strings.ToLower(t.Name), strings.ToLower(other.Name)); c != 0 {
		return c
	}

	var tNum, oNum uint64
	if t.Number != nil {
		tNum = *t.Number
	}
	if other.Number != nil {
		oNum = *other.Number
	}
	return compareUint(tNum, oNum)
}

// String returns the dotted pre-release string (e.g., "beta.4").
func (t PreReleaseTag) String() string {
	if !t.HasTag() {
		return ""
	}
	if t.Number == nil {
		return t.Name
	}
	if t.Name == "" {
		return strconv.FormatUint(*t.Number, 10)
	}
	return t.Name + "." + strconv.FormatUint(*t.Number, 10)
}
