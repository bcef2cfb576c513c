package launch

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuild_DiscoveryGroupsAtRoot(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "src/a.test.ts", "scripts/seed.run.ts", "node_modules/x/b.test.ts")

	cfg := Config{Groups: NewGroupSet(
		Group{ID: "test", Name: ptr("Tests"), Includes: ptr([]string{"**/*.test.ts"}), RuntimeArgs: ptr(DefaultTestArgs)},
		Group{ID: "run", Name: ptr("Runnable"), Includes: ptr([]string{"**/*.run.ts"}), RuntimeArgs: ptr(DefaultRuntimeArgs)},
	)}

	entries, err := NewBuilder(nil).Build(Target{Dir: root}, cfg)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	test := entries[0]
	require.Equal(t, "src/a.test.ts", test.Name)
	require.Equal(t, "node", test.Type)
	require.Equal(t, "launch", test.Request)
	require.Empty(t, test.Program)
	require.Equal(t, []string{"test", "-A", "--inspect-brk", "${workspaceFolder}/src/a.test.ts"}, test.RuntimeArgs)
	require.Equal(t, "${workspaceFolder}", test.Cwd)
	require.Equal(t, DefaultRuntime, test.RuntimeExecutable)
	require.Equal(t, uint16(DefaultPort), test.AttachSimplePort)
	require.Equal(t, DefaultConsole, test.Console)
	require.Nil(t, test.Presentation)
	require.Equal(t, map[string]string{GeneratedEnvKey: GeneratedEnvFlag}, test.Env)

	run := entries[1]
	require.Equal(t, "scripts/seed.run.ts", run.Name)
	require.Equal(t, "${workspaceFolder}/scripts/seed.run.ts", run.Program)
	require.Equal(t, DefaultRuntimeArgs, run.RuntimeArgs)

	// group args are never shared with the source slice
	require.Equal(t, []string{"test", "-A", "--inspect-brk"}, DefaultTestArgs)
}

func TestBuild_MemberProgramGroup(t *testing.T) {
	root := t.TempDir()
	cfg := Config{
		Port:              ptr[uint16](9300),
		Console:           ptr(ConsoleIntegrated),
		RuntimeExecutable: ptr("/opt/deno"),
		Groups: NewGroupSet(Group{
			ID:          "cli",
			Name:        ptr("CLI"),
			Program:     ptr("./cli.ts"),
			RuntimeArgs: ptr([]string{"run", "-A"}),
			ScriptArgs:  ptr(ArgString("--verbose")),
			Scripts:     ptr([]ArgList{ArgString(""), ArgString("--help"), Args("bump", "--minor")}),
			Port:        ptr[uint16](9400),
		}),
	}

	entries, err := NewBuilder(nil).Build(Target{Dir: root, Rel: "packages/bump"}, cfg)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	names := []string{entries[0].Name, entries[1].Name, entries[2].Name}
	require.Equal(t, []string{"bump: CLI", "bump: CLI --help", "bump: CLI bump --minor"}, names)

	for _, e := range entries {
		require.Equal(t, "${workspaceFolder}/packages/bump/cli.ts", e.Program)
		require.Equal(t, "/opt/deno", e.RuntimeExecutable)
		require.Equal(t, uint16(9400), e.AttachSimplePort)
		require.Equal(t, ConsoleIntegrated, e.Console)
		require.Equal(t, &Presentation{Group: "bump"}, e.Presentation)
	}
	require.Equal(t, []string{"--verbose"}, entries[0].Args)
	require.Equal(t, []string{"--verbose", "--help"}, entries[1].Args)
	require.Equal(t, []string{"--verbose", "bump", "--minor"}, entries[2].Args)
}

func TestBuild_ProgramWithoutScripts(t *testing.T) {
	cfg := Config{Groups: NewGroupSet(Group{ID: "serve", Program: ptr("serve.ts")})}

	entries, err := NewBuilder(nil).Build(Target{Dir: t.TempDir()}, cfg)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "serve", entries[0].Name)
	require.Empty(t, entries[0].Args)
}

func TestBuild_ExcludesCombine(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.test.ts", "dist/b.test.ts", "fixtures/c.test.ts")

	cfg := Config{
		Excludes: ptr([]string{"dist/**"}),
		Groups: NewGroupSet(Group{
			ID:       "test",
			Includes: ptr([]string{"**/*.test.ts"}),
			Excludes: ptr([]string{"fixtures/**"}),
		}),
	}

	entries, err := NewBuilder(nil).Build(Target{Dir: root}, cfg)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "a.test.ts", entries[0].Name)
	require.Equal(t, []string{"dist/**"}, *cfg.Excludes)
}

func TestBuild_WarnsOnEmptyGroup(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b := NewBuilder(zap.New(core).Sugar())

	entries, err := b.Build(Target{Dir: t.TempDir()}, Config{Groups: NewGroupSet(Group{ID: "empty"})})
	require.NoError(t, err)
	require.Empty(t, entries)
	require.Equal(t, 1, logs.FilterMessage("Group has neither includes nor program").Len())
}

func TestTarget(t *testing.T) {
	root := Target{Dir: "/w"}
	require.True(t, root.IsRoot())
	require.Equal(t, "root", root.Name())
	require.Equal(t, "${workspaceFolder}/main.ts", root.workspacePath("./main.ts"))

	member := Target{Dir: "/w/packages/x", Rel: "packages/x"}
	require.False(t, member.IsRoot())
	require.Equal(t, "x", member.Name())
	require.Equal(t, "${workspaceFolder}/packages/x/src/a.ts", member.workspacePath("src/a.ts"))
	require.Equal(t, "x: run", member.displayName("run"))
}
