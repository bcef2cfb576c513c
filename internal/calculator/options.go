package calculator

import (
	"strings"

	"github.com/MyCarrier-DevOps/go-devkit/internal/semver"
)

type identifierKind int

const (
	identifierNone identifierKind = iota
	identifierAdvance
	identifierSet
)

// Identifier is the pre-release identifier request attached to a bump.
// Build one with NoIdentifier, AdvanceNext or SetIdentifier.
type Identifier struct {
	kind identifierKind
	name string
}

// NoIdentifier requests no pre-release identifier handling.
func NoIdentifier() Identifier { return Identifier{} }

// AdvanceNext requests the next identifier in maturity order.
func AdvanceNext() Identifier { return Identifier{kind: identifierAdvance} }

// SetIdentifier requests a specific identifier. Validation happens when the
// bump is computed.
func SetIdentifier(name string) Identifier {
	return Identifier{kind: identifierSet, name: strings.TrimSpace(name)}
}

// IsNone reports whether no identifier was requested.
func (i Identifier) IsNone() bool { return i.kind == identifierNone }

// IsAdvance reports whether the request is AdvanceNext.
func (i Identifier) IsAdvance() bool { return i.kind == identifierAdvance }

// Name returns the explicit identifier and true for SetIdentifier requests.
func (i Identifier) Name() (string, bool) {
	return i.name, i.kind == identifierSet
}

// resolve returns the label a major/minor pre-release should start with.
func (i Identifier) resolve() string {
	if i.kind == identifierSet {
		return i.name
	}
	return semver.FirstIdentifier()
}

func (i Identifier) String() string {
	switch i.kind {
	case identifierAdvance:
		return "next"
	case identifierSet:
		return i.name
	default:
		return "none"
	}
}

// BumpOptions is the set of requested bump flags.
type BumpOptions struct {
	Major      bool
	Minor      bool
	Patch      bool
	Release    bool
	Identifier Identifier
}

// Decision is the single rule selected from a BumpOptions set.
type Decision int

const (
	DecisionDefault Decision = iota
	DecisionRelease
	DecisionMajor
	DecisionMinor
	DecisionPatch
	DecisionSetIdentifier
	DecisionAdvanceIdentifier
)

func (d Decision) String() string {
	switch d {
	case DecisionDefault:
		return "default"
	case DecisionRelease:
		return "release"
	case DecisionMajor:
		return "major"
	case DecisionMinor:
		return "minor"
	case DecisionPatch:
		return "patch"
	case DecisionSetIdentifier:
		return "set-identifier"
	case DecisionAdvanceIdentifier:
		return "advance-identifier"
	default:
		return "unknown"
	}
}

// Decision resolves the option set to one rule. The first match wins:
// release, major, minor, patch, identifier, default.
func (o BumpOptions) Decision() Decision {
	switch {
	case o.Release:
		return DecisionRelease
	case o.Major:
		return DecisionMajor
	case o.Minor:
		return DecisionMinor
	case o.Patch:
		return DecisionPatch
	case o.Identifier.kind == identifierSet:
		return DecisionSetIdentifier
	case o.Identifier.kind == identifierAdvance:
		return DecisionAdvanceIdentifier
	default:
		return DecisionDefault
	}
}

// Policies selects behavior where more than one reading is reasonable.
type Policies struct {
	Repeat  semver.RepeatPolicy
	Exhaust semver.ExhaustPolicy
}

// DefaultPolicies returns RepeatBumpsCounter and ExhaustFinalizes.
func DefaultPolicies() Policies {
	return Policies{Repeat: semver.RepeatBumpsCounter, Exhaust: semver.ExhaustFinalizes}
}
