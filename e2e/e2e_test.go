// Package e2e contains end-to-end tests that drive the public devkit API
// against real (temporary) git repositories.
//
// Each test builds a purpose-made workspace, runs bumps and launch
// generation, and asserts on the files, commits and tags left behind. This
// tests all layers together: config → manifest → calculator → changelog →
// git, and config → workspace walk → loader → builder → launch.json.
package e2e

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MyCarrier-DevOps/go-devkit/internal/git"
	"github.com/MyCarrier-DevOps/go-devkit/internal/testutil"
	"github.com/MyCarrier-DevOps/go-devkit/pkg/devkit"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type noPush struct{}

func (noPush) Run(context.Context, string, ...string) error { return nil }

func workspace(t *testing.T) *testutil.TestRepo {
	t.Helper()
	repo := testutil.NewTestRepo(t)
	repo.WriteFile("deno.json", `{"workspace": ["./packages/*"]}`)
	repo.WriteFile("packages/bump/deno.json", "{\n  \"name\": \"@tools/bump\",\n  \"version\": \"0.1.0\",\n  \"exports\": \"./main.ts\"\n}\n")
	repo.WriteFile("packages/bump/main.ts", "if (import.meta.main) {\n  console.log(\"bump\");\n}\n")
	repo.WriteFile("packages/bump/main.test.ts", "")
	repo.WriteFile("packages/launchgen/deno.json", `{"name": "@tools/launchgen", "version": "1.4.2"}`)
	repo.WriteFile(".vscode/settings.json", "{}")
	repo.CommitAll("initial")
	return repo
}

// bump runs one release of a member with tagging and a stubbed push.
func bump(t *testing.T, repo *testutil.TestRepo, member string, opts devkit.BumpOptions) *devkit.BumpResult {
	t.Helper()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	opts.Dir = repo.Join(member)
	opts.Now = func() time.Time { return day }
	opts.OpenRepository = func(dir string) (git.Repository, error) {
		return git.Open(dir, git.WithRunner(noPush{}))
	}
	result, err := devkit.Bump(context.Background(), opts)
	require.NoError(t, err)
	return result
}

func TestE2E_PreReleaseCycle(t *testing.T) {
	repo := workspace(t)

	steps := []struct {
		opts    devkit.BumpOptions
		version string
	}{
		{devkit.BumpOptions{Minor: true, Identifier: "alpha"}, "0.2.0-alpha.0"},
		{devkit.BumpOptions{}, "0.2.0-alpha.1"},
		{devkit.BumpOptions{AdvanceIdentifier: true}, "0.2.0-beta.0"},
		{devkit.BumpOptions{Identifier: "rc"}, "0.2.0-rc.0"},
		{devkit.BumpOptions{Identifier: "rc"}, "0.2.0-rc.1"},
		{devkit.BumpOptions{AdvanceIdentifier: true}, "0.2.0"},
	}

	var tags []string
	for _, step := range steps {
		step.opts.Tag = true
		step.opts.Messages = []string{"Release " + step.version}
		result := bump(t, repo, "packages/bump", step.opts)

		require.Equal(t, step.version, result.Version)
		require.Equal(t, "bump-v"+step.version, result.Tag)
		require.True(t, repo.IsClean())
		tags = append(tags, result.Tag)
	}

	require.ElementsMatch(t, tags, repo.Tags())
	require.Contains(t, repo.ReadFile("packages/bump/deno.json"), `"version": "0.2.0",`)

	changelog := repo.ReadFile("packages/bump/CHANGELOG.md")
	require.True(t, strings.HasPrefix(changelog, "# Changelog for @tools/bump\n"))
	require.Less(t,
		strings.Index(changelog, "## [0.2.0] - 2025-06-01"),
		strings.Index(changelog, "## [0.2.0-rc.1] - 2025-06-01"),
	)
	require.Equal(t, 6, strings.Count(changelog, "\n## ["))
}

func TestE2E_MemberReleaseLeavesSiblingsAlone(t *testing.T) {
	repo := workspace(t)
	repo.WriteFile("packages/launchgen/mod.ts", "export {}\n")

	result := bump(t, repo, "packages/launchgen", devkit.BumpOptions{Major: true, Git: true})

	require.Equal(t, "2.0.0", result.Version)
	require.Equal(t, []string{"packages/launchgen"}, result.Staged)
	require.Equal(t, []string{"packages/launchgen/deno.json", "packages/launchgen/mod.ts"}, repo.HeadFiles())
	require.Equal(t, "Bump version to 2.0.0", strings.TrimSpace(repo.HeadMessage()))
	require.Empty(t, repo.Tags())
	require.Contains(t, repo.ReadFile("packages/bump/deno.json"), `"version": "0.1.0"`)
}

func TestE2E_LaunchThenRelease(t *testing.T) {
	repo := workspace(t)
	repo.WriteFile(".vscode/launch.json", `{
  "version": "0.2.0",
  "configurations": [{"type": "node", "request": "attach", "name": "Attach"}],
  "compounds": [{"name": "All", "configurations": ["Attach"]}]
}`)

	launch, err := devkit.GenerateLaunch(devkit.LaunchOptions{Dir: repo.Join("packages")})
	require.NoError(t, err)
	require.Equal(t, repo.Path(), launch.Root)
	require.Equal(t, 1, launch.Retained)
	require.Equal(t, []string{"packages/bump", "packages/launchgen"}, launch.Targets)

	doc := gjson.Parse(repo.ReadFile(".vscode/launch.json"))
	require.Equal(t, "Attach", doc.Get("configurations.0.name").String())
	require.Equal(t, "All", doc.Get("compounds.0.name").String())

	names := []string{}
	for _, entry := range doc.Get("configurations").Array()[1:] {
		names = append(names, entry.Get("name").String())
		require.Equal(t, "true", entry.Get("env.LAUNCHGEN").String())
	}
	require.Contains(t, names, "bump: main.test.ts")
	require.Contains(t, names, "bump: main")
	require.Contains(t, names, "bump: main --help")

	// The generated files are shared or inside the package, so a release
	// of bump picks them up.
	result := bump(t, repo, "packages/bump", devkit.BumpOptions{Patch: true, Git: true})
	require.Equal(t, []string{"packages/bump", ".vscode/launch.json", "launch.config.json"}, result.Staged)
	require.Contains(t, repo.HeadFiles(), "packages/bump/launch.config.json")
	require.False(t, repo.IsClean())
}
