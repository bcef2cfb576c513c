package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Compile-time check that GoGitRepository implements Repository.
var _ Repository = (*GoGitRepository)(nil)

// ErrNoIdentity is returned when no committer name or email is configured.
var ErrNoIdentity = errors.New("git user.name and user.email are not configured")

// GoGitRepository implements Repository using go-git. Pushing goes through
// the git binary so credential helpers and ssh agents keep working.
type GoGitRepository struct {
	repo   *gogit.Repository
	root   string
	runner CommandRunner
	now    func() time.Time
}

// Option customizes a GoGitRepository.
type Option func(*GoGitRepository)

// WithRunner replaces the subprocess runner used for pushing.
func WithRunner(runner CommandRunner) Option {
	return func(r *GoGitRepository) { r.runner = runner }
}

// WithClock replaces the clock used for commit and tag signatures.
func WithClock(now func() time.Time) Option {
	return func(r *GoGitRepository) { r.now = now }
}

// Open opens the git repository containing path.
func Open(path string, opts ...Option) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	repo := &GoGitRepository{
		repo:   r,
		root:   wt.Filesystem.Root(),
		runner: ExecRunner{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo, nil
}

func (r *GoGitRepository) Root() string {
	return r.root
}

func (r *GoGitRepository) ChangedFiles() ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("getting worktree status: %w", err)
	}

	var files []string
	for path, s := range status {
		if s.Staging != gogit.Unmodified || s.Worktree != gogit.Unmodified {
			files = append(files, filepath.ToSlash(path))
		}
	}
	slices.Sort(files)
	return files, nil
}

func (r *GoGitRepository) Add(paths ...string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	for _, p := range paths {
		rel, err := r.relative(p)
		if err != nil {
			return err
		}
		opts := &gogit.AddOptions{Path: rel}
		if rel == "." {
			opts = &gogit.AddOptions{All: true}
		}
		if err := wt.AddWithOptions(opts); err != nil {
			return fmt.Errorf("staging %s: %w", rel, err)
		}
	}
	return nil
}

func (r *GoGitRepository) Commit(messages ...string) (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	sig, err := r.signature()
	if err != nil {
		return "", err
	}

	hash, err := wt.Commit(strings.Join(messages, "\n\n"), &gogit.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	return hash.String(), nil
}

func (r *GoGitRepository) Tag(name, message string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}

	sig, err := r.signature()
	if err != nil {
		return err
	}

	_, err = r.repo.CreateTag(name, head.Hash(), &gogit.CreateTagOptions{
		Tagger:  sig,
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("creating tag %s: %w", name, err)
	}
	return nil
}

func (r *GoGitRepository) Push(ctx context.Context, tags bool) error {
	if err := r.runner.Run(ctx, r.root, "push"); err != nil {
		return err
	}
	if tags {
		return r.runner.Run(ctx, r.root, "push", "--tags")
	}
	return nil
}

// Identity reads the author from the merged system, global and local git
// configuration. author.* overrides user.*.
func (r *GoGitRepository) Identity() (string, string, error) {
	cfg, err := r.repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return "", "", fmt.Errorf("reading git config: %w", err)
	}

	name, email := cfg.User.Name, cfg.User.Email
	if cfg.Author.Name != "" {
		name = cfg.Author.Name
	}
	if cfg.Author.Email != "" {
		email = cfg.Author.Email
	}
	if name == "" || email == "" {
		return "", "", ErrNoIdentity
	}
	return name, email, nil
}

func (r *GoGitRepository) signature() (*object.Signature, error) {
	name, email, err := r.Identity()
	if err != nil {
		return nil, err
	}
	return &object.Signature{Name: name, Email: email, When: r.now()}, nil
}

// relative converts p to a slash separated path relative to the root.
func (r *GoGitRepository) relative(p string) (string, error) {
	if !filepath.IsAbs(p) {
		return filepath.ToSlash(filepath.Clean(p)), nil
	}
	rel, err := filepath.Rel(r.root, p)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the repository %s", p, r.root)
	}
	return filepath.ToSlash(rel), nil
}
