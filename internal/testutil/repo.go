// Package testutil provides helpers for creating temporary git repositories
// for end-to-end testing.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Identity used for every commit and tag the helpers create.
const (
	UserName  = "Test"
	UserEmail = "test@example.com"
)

// TestRepo is a builder for creating temporary git repositories with
// controlled files, commits and tags.
type TestRepo struct {
	t    testing.TB
	path string
	repo *gogit.Repository
	time time.Time
}

// NewTestRepo creates and initializes a new git repository in a temporary
// directory, with user.name and user.email set in its local config.
func NewTestRepo(t testing.TB) *TestRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	cfg, err := repo.Config()
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	cfg.User.Name = UserName
	cfg.User.Email = UserEmail
	if err := repo.SetConfig(cfg); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	return &TestRepo{
		t:    t,
		path: dir,
		repo: repo,
		time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Path returns the repository root directory.
func (r *TestRepo) Path() string {
	return r.path
}

// Join returns an absolute path inside the repository.
func (r *TestRepo) Join(rel string) string {
	return filepath.Join(r.path, filepath.FromSlash(rel))
}

// WriteFile writes content to a root-relative path, creating directories.
func (r *TestRepo) WriteFile(rel, content string) {
	r.t.Helper()
	path := r.Join(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("writing %s: %v", rel, err)
	}
}

// ReadFile returns the content of a root-relative path.
func (r *TestRepo) ReadFile(rel string) string {
	r.t.Helper()
	data, err := os.ReadFile(r.Join(rel))
	if err != nil {
		r.t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

// CommitAll stages every change and commits it. Returns the commit SHA.
func (r *TestRepo) CommitAll(message string) string {
	r.t.Helper()
	r.time = r.time.Add(time.Minute)

	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}
	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		r.t.Fatalf("staging: %v", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  UserName,
			Email: UserEmail,
			When:  r.time,
		},
	})
	if err != nil {
		r.t.Fatalf("committing: %v", err)
	}

	return hash.String()
}

// HeadSha returns the current HEAD commit SHA.
func (r *TestRepo) HeadSha() string {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("getting HEAD: %v", err)
	}
	return head.Hash().String()
}

// HeadMessage returns the message of the HEAD commit.
func (r *TestRepo) HeadMessage() string {
	r.t.Helper()
	c, err := r.repo.CommitObject(plumbing.NewHash(r.HeadSha()))
	if err != nil {
		r.t.Fatalf("loading HEAD commit: %v", err)
	}
	return c.Message
}

// HeadFiles returns the paths changed by the HEAD commit, sorted.
func (r *TestRepo) HeadFiles() []string {
	r.t.Helper()
	c, err := r.repo.CommitObject(plumbing.NewHash(r.HeadSha()))
	if err != nil {
		r.t.Fatalf("loading HEAD commit: %v", err)
	}
	stats, err := c.Stats()
	if err != nil {
		r.t.Fatalf("diffing HEAD commit: %v", err)
	}
	files := make([]string, 0, len(stats))
	for _, s := range stats {
		files = append(files, s.Name)
	}
	sort.Strings(files)
	return files
}

// Tags returns the tag names in the repository, sorted.
func (r *TestRepo) Tags() []string {
	r.t.Helper()
	iter, err := r.repo.Tags()
	if err != nil {
		r.t.Fatalf("listing tags: %v", err)
	}
	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		r.t.Fatalf("iterating tags: %v", err)
	}
	sort.Strings(names)
	return names
}

// TagMessage returns the message of an annotated tag.
func (r *TestRepo) TagMessage(name string) string {
	r.t.Helper()
	ref, err := r.repo.Tag(name)
	if err != nil {
		r.t.Fatalf("resolving tag %s: %v", name, err)
	}
	tag, err := r.repo.TagObject(ref.Hash())
	if err != nil {
		r.t.Fatalf("tag %s is not annotated: %v", name, err)
	}
	return tag.Message
}

// IsClean reports whether the worktree has no changes.
func (r *TestRepo) IsClean() bool {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}
	status, err := wt.Status()
	if err != nil {
		r.t.Fatalf("getting status: %v", err)
	}
	return status.IsClean()
}
