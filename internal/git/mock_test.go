package git

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockRepository_Defaults(t *testing.T) {
	m := &MockRepository{}
	require.Empty(t, m.Root())
	_, _, err := m.Identity()
	require.NoError(t, err)
	files, err := m.ChangedFiles()
	require.NoError(t, err)
	require.Nil(t, files)
	require.NoError(t, m.Add("x"))
	sha, err := m.Commit("msg")
	require.NoError(t, err)
	require.Empty(t, sha)
	require.NoError(t, m.Tag("v1", "msg"))
	require.NoError(t, m.Push(context.Background(), true))
}

func TestMockRepository_Funcs(t *testing.T) {
	var added []string
	var pushedTags bool
	boom := errors.New("boom")
	m := &MockRepository{
		RootFunc:         func() string { return "/repo" },
		IdentityFunc:     func() (string, string, error) { return "", "", ErrNoIdentity },
		ChangedFilesFunc: func() ([]string, error) { return []string{"a"}, nil },
		AddFunc: func(paths ...string) error {
			added = append(added, paths...)
			return nil
		},
		CommitFunc: func(messages ...string) (string, error) { return "abc", nil },
		TagFunc:    func(string, string) error { return boom },
		PushFunc: func(_ context.Context, tags bool) error {
			pushedTags = tags
			return nil
		},
	}

	require.Equal(t, "/repo", m.Root())
	_, _, err := m.Identity()
	require.ErrorIs(t, err, ErrNoIdentity)
	files, _ := m.ChangedFiles()
	require.Equal(t, []string{"a"}, files)
	require.NoError(t, m.Add("x", "y"))
	require.Equal(t, []string{"x", "y"}, added)
	sha, _ := m.Commit("msg")
	require.Equal(t, "abc", sha)
	require.ErrorIs(t, m.Tag("v1", "msg"), boom)
	require.NoError(t, m.Push(context.Background(), true))
	require.True(t, pushedTags)
}
