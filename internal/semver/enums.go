// Package semver provides immutable semantic versioning types.
package semver

import (
	"fmt"
	"strings"
)

// VersionField represents which field of a semantic version to increment.
type VersionField int

const (
	VersionFieldNone VersionField = iota
	VersionFieldPatch
	VersionFieldMinor
	VersionFieldMajor
)

func (f VersionField) String() string {
	switch f {
	case VersionFieldNone:
		return "None"
	case VersionFieldPatch:
		return "Patch"
	case VersionFieldMinor:
		return "Minor"
	case VersionFieldMajor:
		return "Major"
	default:
		return "Unknown"
	}
}

// RepeatPolicy controls what happens when the requested pre-release
// identifier equals the current one.
type RepeatPolicy int

const (
	// RepeatBumpsCounter advances the pre-release counter (1.0.0-rc.0 -> 1.0.0-rc.1).
	RepeatBumpsCounter RepeatPolicy = iota
	// RepeatRejected treats the request as a no-op and fails.
	RepeatRejected
)

func (p RepeatPolicy) String() string {
	switch p {
	case RepeatBumpsCounter:
		return "bump-counter"
	case RepeatRejected:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseRepeatPolicy parses a repeat policy name.
func ParseRepeatPolicy(s string) (RepeatPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bump-counter", "bumpcounter", "bump":
		return RepeatBumpsCounter, nil
	case "reject", "rejected":
		return RepeatRejected, nil
	default:
		return RepeatBumpsCounter, fmt.Errorf("unknown repeat-identifier policy %q (want bump-counter or reject)", s)
	}
}

// ExhaustPolicy controls what advancing past the last pre-release
// identifier does.
type ExhaustPolicy int

const (
	// ExhaustFinalizes drops the pre-release tag (1.0.0-rc.3 -> 1.0.0).
	ExhaustFinalizes ExhaustPolicy = iota
	// ExhaustRestartsCycle bumps patch and restarts at the first identifier
	// (1.0.0-rc.3 -> 1.0.1-alpha.0).
	ExhaustRestartsCycle
)

func (p ExhaustPolicy) String() string {
	switch p {
	case ExhaustFinalizes:
		return "finalize"
	case ExhaustRestartsCycle:
		return "restart-cycle"
	default:
		return "unknown"
	}
}

// ParseExhaustPolicy parses an exhaust policy name.
func ParseExhaustPolicy(s string) (ExhaustPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "finalize", "finalise":
		return ExhaustFinalizes, nil
	case "restart-cycle", "restartcycle", "restart":
		return ExhaustRestartsCycle, nil
	default:
		return ExhaustFinalizes, fmt.Errorf("unknown exhausted-identifier policy %q (want finalize or restart-cycle)", s)
	}
}
