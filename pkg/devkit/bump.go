// Package devkit provides a public Go API for the release and editor tooling
// of a Deno or Node workspace: bumping a package version and generating
// debugger launch configurations.
//
// Basic usage:
//
//	result, err := devkit.Bump(ctx, devkit.BumpOptions{
//	    Dir:   "/path/to/package",
//	    Minor: true,
//	    Git:   true,
//	})
//	fmt.Println(result.Version) // "1.3.0"
//
//	launch, err := devkit.GenerateLaunch(devkit.LaunchOptions{
//	    Root: "/path/to/workspace",
//	})
//	fmt.Println(launch.Path) // ".../.vscode/launch.json"
package devkit

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/MyCarrier-DevOps/go-devkit/internal/calculator"
	"github.com/MyCarrier-DevOps/go-devkit/internal/changelog"
	"github.com/MyCarrier-DevOps/go-devkit/internal/config"
	"github.com/MyCarrier-DevOps/go-devkit/internal/git"
	"github.com/MyCarrier-DevOps/go-devkit/internal/manifest"
	"github.com/MyCarrier-DevOps/go-devkit/internal/output"
	"github.com/MyCarrier-DevOps/go-devkit/internal/semver"

	"go.uber.org/zap"
)

// BumpOptions configures a version bump of one package.
type BumpOptions struct {
	// Dir is the package directory holding the manifest (required).
	Dir string

	// Major, Minor, Patch and Release select the bump rule. When several
	// are set the first in the order release, major, minor, patch wins.
	Major   bool
	Minor   bool
	Patch   bool
	Release bool

	// Identifier sets the pre-release label (alpha, beta or rc).
	Identifier string

	// AdvanceIdentifier moves to the next pre-release label. Ignored when
	// Identifier is set.
	AdvanceIdentifier bool

	// Messages are changelog entries and commit message paragraphs.
	Messages []string

	// DryRun computes the version and tag without touching any file.
	DryRun bool

	// Changelog updates the changelog even without messages.
	Changelog bool

	// Git stages and commits the release.
	Git bool

	// Tag creates an annotated tag. Implies Git.
	Tag bool

	// NoPush skips pushing after a commit.
	NoPush bool

	// Test computes the next version from this version instead of the
	// manifest. Nothing is read or written.
	Test string

	// ConfigPath is the path to a devkit YAML config file. If empty,
	// auto-detects one in Dir and then in the workspace root.
	ConfigPath string

	// RepeatIdentifier and ExhaustedIdentifier override the configured
	// policies when non-empty.
	RepeatIdentifier    string
	ExhaustedIdentifier string

	// Explain records the reasoning in the result.
	Explain bool

	// OpenRepository opens the git repository containing a directory.
	// Defaults to go-git.
	OpenRepository func(dir string) (git.Repository, error)

	// Now is the clock for changelog dates. Defaults to time.Now.
	Now func() time.Time

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zap.SugaredLogger
}

// BumpResult describes a completed bump.
type BumpResult struct {
	Package   string
	Previous  string
	Version   string
	Decision  string
	Tag       string
	Manifest  string
	Changelog string
	Staged    []string
	Commit    string
	Tagged    bool
	Pushed    bool
	DryRun    bool

	// ExplanationSteps records the increment reasoning. Nil unless
	// Explain was set.
	ExplanationSteps []string

	// FormattedExplanation is the human-readable explain text.
	FormattedExplanation string
}

// Release returns the result in output form.
func (r *BumpResult) Release() output.Release {
	return output.Release{
		Package:   r.Package,
		Previous:  r.Previous,
		Version:   r.Version,
		Decision:  r.Decision,
		Tag:       r.Tag,
		Manifest:  r.Manifest,
		Changelog: r.Changelog,
		Staged:    r.Staged,
		Commit:    r.Commit,
		Tagged:    r.Tagged,
		Pushed:    r.Pushed,
		DryRun:    r.DryRun,
	}
}

func (o BumpOptions) increment() calculator.BumpOptions {
	id := calculator.NoIdentifier()
	switch {
	case o.Identifier != "":
		id = calculator.SetIdentifier(o.Identifier)
	case o.AdvanceIdentifier:
		id = calculator.AdvanceNext()
	}
	return calculator.BumpOptions{
		Major:      o.Major,
		Minor:      o.Minor,
		Patch:      o.Patch,
		Release:    o.Release,
		Identifier: id,
	}
}

func openGoGit(dir string) (git.Repository, error) {
	return git.Open(dir)
}

// Bump computes the next version of the package in opts.Dir and, unless
// DryRun is set, writes it back, updates the changelog and records the
// release in git as requested.
func Bump(ctx context.Context, opts BumpOptions) (*BumpResult, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	open := opts.OpenRepository
	if open == nil {
		open = openGoGit
	}

	if opts.Dir == "" && opts.Test == "" {
		return nil, errors.New("package directory is required")
	}
	dir := opts.Dir
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", dir, err)
		}
		dir = abs
	}

	// 1. Load configuration.
	cfg, err := loadBumpConfig(opts.ConfigPath, dir)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	policies, err := resolvePolicies(cfg, opts)
	if err != nil {
		return nil, err
	}
	inc := calculator.NewIncrementer(policies, log).WithExplain(opts.Explain)

	// 2. Test mode computes only.
	if opts.Test != "" {
		res, err := inc.Increment(opts.Test, opts.increment())
		if err != nil {
			return nil, err
		}
		result := newResult(res)
		result.Tag = *cfg.Bump.TagPrefix + result.Version
		result.DryRun = true
		return result, nil
	}

	// 3. Read the manifest.
	m, err := manifest.Find(dir, cfg.Bump.Manifests()...)
	if err != nil {
		return nil, err
	}
	if m.IsWorkspaceRoot() {
		return nil, fmt.Errorf("%s: %w", m.Path(), manifest.ErrWorkspaceRoot)
	}
	current, err := m.Version()
	if err != nil {
		return nil, err
	}

	// 4. Compute the next version.
	res, err := inc.Increment(current, opts.increment())
	if err != nil {
		return nil, err
	}
	result := newResult(res)
	result.Package = m.Name()
	result.Manifest = m.Path()
	result.Tag = tagName(dir, result.Version, *cfg.Bump.TagPrefix, cfg.Bump.Manifests())
	result.DryRun = opts.DryRun

	if opts.DryRun {
		log.Infow("Dry run - no files changed", "version", result.Version, "tag", result.Tag)
		return result, nil
	}

	// Nothing is written until the repository and identity are known good.
	var repo git.Repository
	if opts.Git || opts.Tag {
		if repo, err = openForRelease(open, dir); err != nil {
			return nil, err
		}
	}

	// 5. Write the version back.
	if err := m.SetVersion(result.Version); err != nil {
		return nil, err
	}
	if err := m.Save(); err != nil {
		return nil, err
	}
	log.Infow("Updated version", "path", m.Path(), "version", result.Version)

	// 6. Changelog.
	if opts.Changelog || len(opts.Messages) > 0 {
		path := filepath.Join(dir, *cfg.Bump.ChangelogFile)
		if err := changelog.Update(path, result.Package, result.Version, now(), opts.Messages); err != nil {
			return nil, err
		}
		result.Changelog = path
		log.Infow("Updated changelog", "path", path)
	}

	// 7. Git.
	if opts.Git || opts.Tag {
		if err := recordRelease(ctx, repo, dir, cfg, opts, result, log); err != nil {
			return result, err
		}
	}

	return result, nil
}

func newResult(res calculator.Result) *BumpResult {
	r := &BumpResult{
		Previous: res.Previous.SemVer(),
		Version:  res.Next.SemVer(),
		Decision: res.Decision.String(),
	}
	if res.Explanation != nil {
		r.ExplanationSteps = res.Explanation.Steps
		r.FormattedExplanation = output.FormatExplanation(res)
	}
	return r
}

// openForRelease opens the repository holding dir and checks that a commit
// author is configured.
func openForRelease(open func(string) (git.Repository, error), dir string) (git.Repository, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	if _, _, err := repo.Identity(); err != nil {
		return nil, err
	}
	return repo, nil
}

func recordRelease(
	ctx context.Context,
	repo git.Repository,
	dir string,
	cfg *config.Config,
	opts BumpOptions,
	result *BumpResult,
	log *zap.SugaredLogger,
) error {
	pkgRel, err := filepath.Rel(repo.Root(), dir)
	if err != nil {
		return fmt.Errorf("locating package in repository: %w", err)
	}
	changed, err := repo.ChangedFiles()
	if err != nil {
		return err
	}
	paths := git.StagePaths(filepath.ToSlash(pkgRel), changed, cfg.Bump.Shared())
	if err := repo.Add(paths...); err != nil {
		return err
	}
	result.Staged = paths
	log.Debugw("Staged", "paths", paths)

	messages := opts.Messages
	if len(messages) == 0 {
		messages = []string{cfg.Bump.CommitMessageFor(result.Version)}
	}
	sha, err := repo.Commit(messages...)
	if err != nil {
		return err
	}
	result.Commit = sha
	log.Infow("Committed", "sha", sha)

	if opts.Tag {
		message := result.Tag
		if len(opts.Messages) > 0 {
			message = opts.Messages[0]
		}
		if err := repo.Tag(result.Tag, message); err != nil {
			return err
		}
		result.Tagged = true
		log.Infow("Tagged", "tag", result.Tag)
	}

	if opts.NoPush || !*cfg.Bump.Push {
		return nil
	}
	if err := repo.Push(ctx, opts.Tag); err != nil {
		return err
	}
	result.Pushed = true
	log.Infow("Pushed", "tags", opts.Tag)
	return nil
}

// tagName is "{member}-v{version}" for a workspace member and
// "{prefix}{version}" otherwise.
func tagName(dir, version, prefix string, manifests []string) string {
	if _, ok := manifest.FindWorkspaceRoot(dir, manifests...); ok {
		return filepath.Base(dir) + "-v" + version
	}
	return prefix + version
}

// ConfigDirs lists the directories searched for devkit.yml when bumping the
// package in dir: the package itself, then its workspace root if it has one.
func ConfigDirs(dir string) []string {
	dirs := []string{dir}
	if dir != "" {
		if root, ok := manifest.FindWorkspaceRoot(dir); ok {
			dirs = append(dirs, root)
		}
	}
	return dirs
}

func loadBumpConfig(explicit, dir string) (*config.Config, error) {
	return config.Load(explicit, ConfigDirs(dir)...)
}

func resolvePolicies(cfg *config.Config, opts BumpOptions) (calculator.Policies, error) {
	p := cfg.Bump.Policies()
	if opts.RepeatIdentifier != "" {
		repeat, err := semver.ParseRepeatPolicy(opts.RepeatIdentifier)
		if err != nil {
			return p, err
		}
		p.Repeat = repeat
	}
	if opts.ExhaustedIdentifier != "" {
		exhaust, err := semver.ParseExhaustPolicy(opts.ExhaustedIdentifier)
		if err != nil {
			return p, err
		}
		p.Exhaust = exhaust
	}
	return p, nil
}
