package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MyCarrier-DevOps/go-devkit/internal/launch"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestLaunchgenCmd_DryRunPrintsDocument(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".vscode"), 0o755))
	writeFile(t, filepath.Join(root, "main.test.ts"), "")

	stdout, _, err := execute(t, "launchgen", "-p", root, "-n")
	require.NoError(t, err)

	doc := gjson.Parse(stdout)
	require.Equal(t, "0.2.0", doc.Get("version").String())
	require.Equal(t, "main.test.ts", doc.Get("configurations.0.name").String())
	require.NoFileExists(t, filepath.Join(root, ".vscode", "launch.json"))
	require.NoFileExists(t, filepath.Join(root, launch.ConfigFile))
}

func TestLaunchgenCmd_WritesWithExplicitRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tool.run.ts"), "")

	stdout, stderr, err := execute(t, "launchgen", "--root", root)
	require.NoError(t, err)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "Generated launch configurations")

	data, err := os.ReadFile(filepath.Join(root, ".vscode", "launch.json"))
	require.NoError(t, err)
	require.Equal(t, "tool.run.ts", gjson.GetBytes(data, "configurations.0.name").String())
	require.FileExists(t, filepath.Join(root, launch.ConfigFile))
}

func TestLaunchgenCmd_RootNotFound(t *testing.T) {
	_, _, err := execute(t, "launchgen", "-p", t.TempDir())
	require.ErrorIs(t, err, launch.ErrRootNotFound)
}
