package changelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)

func TestSection(t *testing.T) {
	require.Equal(t,
		"## [1.2.0] - 2024-03-09\n\n- Added x\n- Fixed y\n\n",
		Section("1.2.0", day, []string{"Added x", " Fixed y "}))

	require.Equal(t,
		"## [1.2.0] - 2024-03-09\n\n- add details here\n\n",
		Section("1.2.0", day, nil))

	require.Equal(t,
		"## [1.2.0] - 2024-03-09\n\n- add details here\n\n",
		Section("1.2.0", day, []string{"", "   "}))
}

func TestInsert(t *testing.T) {
	section := Section("0.0.2", day, []string{"Second"})

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			"empty gets header",
			"",
			Header("tool") + section,
		},
		{
			"before first release",
			"# Changelog\n\nIntro.\n\n## [0.0.1] - 2024-01-01\n\n- First\n",
			"# Changelog\n\nIntro.\n\n" + section + "## [0.0.1] - 2024-01-01\n\n- First\n",
		},
		{
			"only first heading is used",
			"## [0.0.1] - 2024-01-01\n\n## [0.0.0] - 2023-01-01\n",
			section + "## [0.0.1] - 2024-01-01\n\n## [0.0.0] - 2023-01-01\n",
		},
		{
			"no release headings appends",
			"# Changelog\n\nNothing yet.",
			"# Changelog\n\nNothing yet.\n\n" + section,
		},
		{
			"h3 is not a release heading",
			"# Changelog\n\n### Notes\n",
			"# Changelog\n\n### Notes\n\n" + section,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Insert(tt.content, "tool", section))
		})
	}
}

func TestUpdate_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	require.NoError(t, Update(path, "@scope/tool", "0.1.0", day, []string{"Initial"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t,
		"# Changelog for @scope/tool\n\nAll notable changes to this project will be documented in this file.\n\n"+
			"## [0.1.0] - 2024-03-09\n\n- Initial\n\n",
		string(data))
}

func TestUpdate_Twice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	require.NoError(t, Update(path, "tool", "0.1.0", day, nil))
	require.NoError(t, Update(path, "tool", "0.1.1", day.AddDate(0, 0, 1), []string{"Fix"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t,
		Header("tool")+
			"## [0.1.1] - 2024-03-10\n\n- Fix\n\n"+
			"## [0.1.0] - 2024-03-09\n\n- add details here\n\n",
		string(data))
}

func TestUpdate_UnreadablePath(t *testing.T) {
	dir := t.TempDir()
	// a directory in place of the file
	require.Error(t, Update(dir, "tool", "0.1.0", day, nil))
}
