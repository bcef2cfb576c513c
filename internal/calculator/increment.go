// Package calculator implements the version increment decision: a pure
// function from the current version and a set of bump options to the next
// version.
package calculator

import (
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-devkit/internal/semver"

	"go.uber.org/zap"
)

var (
	// ErrInvalidIdentifier is returned for a pre-release label outside the
	// recognized order.
	ErrInvalidIdentifier = errors.New("invalid prerelease identifier")
	// ErrUnchanged is returned under RepeatRejected when the requested
	// identifier equals the current one.
	ErrUnchanged = errors.New("version unchanged")
)

// IncrementExplanation records the reasoning behind an increment decision.
type IncrementExplanation struct {
	Steps []string
}

// Add appends a reasoning step. Nil-safe.
func (e *IncrementExplanation) Add(step string) {
	if e != nil {
		e.Steps = append(e.Steps, step)
	}
}

// Addf appends a formatted reasoning step. Nil-safe.
func (e *IncrementExplanation) Addf(format string, args ...any) {
	if e != nil {
		e.Steps = append(e.Steps, fmt.Sprintf(format, args...))
	}
}

// Result is the outcome of a successful increment.
type Result struct {
	Previous    semver.SemanticVersion
	Next        semver.SemanticVersion
	Decision    Decision
	Explanation *IncrementExplanation // nil unless explain was requested
}

// Incrementer computes next versions under a fixed set of policies.
type Incrementer struct {
	policies Policies
	log      *zap.SugaredLogger
	explain  bool
}

// NewIncrementer creates an Incrementer. A nil logger discards diagnostics.
func NewIncrementer(policies Policies, log *zap.SugaredLogger) *Incrementer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Incrementer{policies: policies, log: log.Named("increment")}
}

// WithExplain returns a copy that records reasoning steps in each Result.
func (i *Incrementer) WithExplain(explain bool) *Incrementer {
	cp := *i
	cp.explain = explain
	return &cp
}

// Increment parses current and applies opts. It has no side effects other
// than log output.
func (i *Incrementer) Increment(current string, opts BumpOptions) (Result, error) {
	v, err := semver.Parse(current)
	if err != nil {
		i.log.Errorw("Cannot parse version", "version", current)
		return Result{}, err
	}
	return i.IncrementVersion(v, opts)
}

// IncrementVersion applies opts to an already parsed version.
func (i *Incrementer) IncrementVersion(v semver.SemanticVersion, opts BumpOptions) (Result, error) {
	var exp *IncrementExplanation
	if i.explain {
		exp = &IncrementExplanation{}
	}

	decision := opts.Decision()
	exp.Addf("Current version: %s", v)
	exp.Addf("Decision: %s", decision)
	i.log.Infow("Current version", "version", v.SemVer())

	next, err := i.apply(v, opts, decision, exp)
	if err != nil {
		return Result{}, err
	}

	exp.Addf("New version: %s", next)
	i.log.Infow("New version", "version", next.SemVer())
	return Result{Previous: v, Next: next, Decision: decision, Explanation: exp}, nil
}

func (i *Incrementer) apply(
	v semver.SemanticVersion,
	opts BumpOptions,
	decision Decision,
	exp *IncrementExplanation,
) (semver.SemanticVersion, error) {
	switch decision {
	case DecisionRelease:
		return i.release(v, exp)
	case DecisionMajor:
		return bumpWithIdentifier(v, semver.VersionFieldMajor, opts.Identifier, exp)
	case DecisionMinor:
		return bumpWithIdentifier(v, semver.VersionFieldMinor, opts.Identifier, exp)
	case DecisionPatch:
		exp.Add("Patch requested: increment patch, drop pre-release")
		return v.IncrementField(semver.VersionFieldPatch)
	case DecisionSetIdentifier:
		name, _ := opts.Identifier.Name()
		return i.setIdentifier(v, name, exp)
	case DecisionAdvanceIdentifier:
		return i.advanceIdentifier(v, exp)
	default:
		if v.IsPreRelease() {
			exp.Add("No flags on a pre-release: increment counter")
			return v.IncrementPreRelease()
		}
		exp.Add("No flags on a stable version: increment patch")
		return v.IncrementField(semver.VersionFieldPatch)
	}
}

func (i *Incrementer) release(v semver.SemanticVersion, exp *IncrementExplanation) (semver.SemanticVersion, error) {
	if v.IsPreRelease() {
		exp.Add("Release requested: drop pre-release")
		return v.Stable(), nil
	}
	i.log.Warnw("Version is already stable. Bumping patch level.", "version", v.SemVer())
	exp.Add("Release requested on a stable version: increment patch")
	return v.IncrementField(semver.VersionFieldPatch)
}

// nextPatch increments patch and starts the pre-release label at 0.
func nextPatch(v semver.SemanticVersion, label string) (semver.SemanticVersion, error) {
	next, err := v.IncrementField(semver.VersionFieldPatch)
	if err != nil {
		return semver.SemanticVersion{}, err
	}
	return next.WithPreReleaseTag(semver.NewPreReleaseTag(label, 0)), nil
}

func bumpWithIdentifier(
	v semver.SemanticVersion,
	field semver.VersionField,
	id Identifier,
	exp *IncrementExplanation,
) (semver.SemanticVersion, error) {
	if id.IsNone() {
		exp.Addf("%s requested", field)
		return v.IncrementField(field)
	}
	label := id.resolve()
	if semver.IdentifierIndex(label) < 0 {
		return semver.SemanticVersion{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, label)
	}
	next, err := v.IncrementField(field)
	if err != nil {
		return semver.SemanticVersion{}, err
	}
	exp.Addf("%s requested with identifier %s", field, label)
	return next.WithPreReleaseTag(semver.NewPreReleaseTag(label, 0)), nil
}

func (i *Incrementer) setIdentifier(
	v semver.SemanticVersion,
	name string,
	exp *IncrementExplanation,
) (semver.SemanticVersion, error) {
	newIdx := semver.IdentifierIndex(name)
	if newIdx < 0 {
		i.log.Errorw("Invalid prerelease identifier", "identifier", name, "allowed", semver.Identifiers())
		return semver.SemanticVersion{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}

	current := v.PreReleaseTag.Name
	if !v.IsPreRelease() {
		exp.Addf("Stable version: increment patch and start %s", name)
		return nextPatch(v, name)
	}

	if name == current {
		if i.policies.Repeat == semver.RepeatRejected {
			i.log.Warnw("Prerelease identifier is unchanged", "identifier", name)
			return semver.SemanticVersion{}, fmt.Errorf("%w: already on %q", ErrUnchanged, name)
		}
		i.log.Warnw("Prerelease identifier is unchanged. Bumping prerelease counter.", "identifier", name)
		exp.Addf("Identifier %s repeated: increment counter", name)
		return v.IncrementPreRelease()
	}

	curIdx := semver.IdentifierIndex(current)
	if curIdx >= 0 && newIdx < curIdx {
		exp.Addf("Identifier %s is below %s: increment patch and restart", name, current)
		return nextPatch(v, name)
	}

	exp.Addf("Switch identifier %s -> %s", current, name)
	return v.WithPreReleaseTag(semver.NewPreReleaseTag(name, 0)), nil
}

func (i *Incrementer) advanceIdentifier(v semver.SemanticVersion, exp *IncrementExplanation) (semver.SemanticVersion, error) {
	first := semver.FirstIdentifier()
	if !v.IsPreRelease() {
		exp.Addf("Stable version: increment patch and start %s", first)
		return nextPatch(v, first)
	}

	current := v.PreReleaseTag.Name
	if next, ok := semver.NextIdentifier(current); ok {
		exp.Addf("Advance identifier %s -> %s", current, next)
		return v.WithPreReleaseTag(semver.NewPreReleaseTag(next, 0)), nil
	}

	if semver.IdentifierIndex(current) < 0 {
		// alpha.0 on the same patch would sort below an unknown label.
		i.log.Warnw("Prerelease identifier is not recognized. Bumping patch level.", "identifier", current)
		exp.Addf("Identifier %q is not recognized: increment patch and start %s", current, first)
		return nextPatch(v, first)
	}

	if i.policies.Exhaust == semver.ExhaustRestartsCycle {
		exp.Addf("Identifier %s is the last one: increment patch and restart at %s", current, first)
		return nextPatch(v, first)
	}
	exp.Addf("Identifier %s is the last one: finalize release", current)
	return v.Stable(), nil
}
