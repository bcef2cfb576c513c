// Package git provides the version control layer for releases: staging,
// committing, annotated tags and pushing.
package git

import "context"

// Repository provides the git operations a release needs.
// This is the key abstraction point for testing and backend swapping.
type Repository interface {
	// Root returns the path to the working tree root.
	Root() string

	// Identity returns the configured author name and email, or
	// ErrNoIdentity when either is missing. Commit and Tag need both.
	Identity() (name, email string, err error)

	// ChangedFiles returns modified, staged and untracked files as
	// slash separated paths relative to Root, sorted.
	ChangedFiles() ([]string, error)

	// Add stages the given paths. Paths are relative to Root; a
	// directory stages everything beneath it.
	Add(paths ...string) error

	// Commit records the index with the given messages, one paragraph
	// each, and returns the commit SHA.
	Commit(messages ...string) (string, error)

	// Tag creates an annotated tag on HEAD.
	Tag(name, message string) error

	// Push pushes the current branch, and all tags when tags is true.
	Push(ctx context.Context, tags bool) error
}
