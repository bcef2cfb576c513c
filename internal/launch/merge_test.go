package launch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMerge_ScalarsReplaced(t *testing.T) {
	base := Config{Port: ptr[uint16](9229), Console: ptr(ConsoleInternal), RuntimeExecutable: ptr("deno")}
	override := Config{Port: ptr[uint16](9339)}

	got := Merge(base, override)
	require.Equal(t, uint16(9339), *got.Port)
	require.Equal(t, ConsoleInternal, *got.Console)
	require.Equal(t, "deno", *got.RuntimeExecutable)
	require.Equal(t, uint16(9229), *base.Port)
}

func TestMerge_GroupsUpsertedById(t *testing.T) {
	base := Config{Groups: NewGroupSet(
		Group{ID: "test", Name: ptr("Tests"), Includes: ptr([]string{"**/*.test.ts"})},
		Group{ID: "run", Name: ptr("Runnable"), Includes: ptr([]string{"**/*.run.ts"})},
	)}
	override := Config{Groups: NewGroupSet(
		Group{ID: "cli", Program: ptr("cli.ts")},
		Group{ID: "test", Name: ptr("Unit tests")},
	)}

	got := Merge(base, override)
	require.Equal(t, []string{"test", "run", "cli"}, got.Groups.IDs())

	test, ok := got.Groups.Get("test")
	require.True(t, ok)
	require.Equal(t, "Unit tests", *test.Name)
	require.Equal(t, []string{"**/*.test.ts"}, *test.Includes)

	// base untouched
	orig, _ := base.Groups.Get("test")
	require.Equal(t, "Tests", *orig.Name)
	require.Equal(t, 2, base.Groups.Len())
}

func TestMerge_EveryIdOnceAndOverrideWins(t *testing.T) {
	cases := []struct {
		name     string
		base     []string
		override []string
	}{
		{"disjoint", []string{"a", "b"}, []string{"c"}},
		{"overlap", []string{"a", "b", "c"}, []string{"c", "a", "d"}},
		{"empty base", nil, []string{"x", "y"}},
		{"empty override", []string{"x"}, nil},
		{"duplicates in override", []string{"a"}, []string{"b", "b", "a"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			base := NewGroupSet()
			for _, id := range tc.base {
				base.Upsert(Group{ID: id, Name: ptr("base-" + id)})
			}
			override := NewGroupSet()
			for _, id := range tc.override {
				override.Upsert(Group{ID: id, Name: ptr("override-" + id)})
			}

			got := Merge(Config{Groups: base}, Config{Groups: override})

			seen := map[string]int{}
			for _, id := range got.Groups.IDs() {
				seen[id]++
			}
			for id, n := range seen {
				require.Equal(t, 1, n, "id %s", id)
			}
			for _, id := range tc.override {
				g, ok := got.Groups.Get(id)
				require.True(t, ok)
				require.Equal(t, "override-"+id, *g.Name)
			}
			for _, id := range tc.base {
				_, ok := got.Groups.Get(id)
				require.True(t, ok)
			}
		})
	}
}

func TestMergeAll_MostSpecificLast(t *testing.T) {
	got := MergeAll(
		Config{Port: ptr[uint16](1)},
		Config{Port: ptr[uint16](2), Console: ptr(ConsoleExternal)},
		Config{Port: ptr[uint16](3)},
	)
	require.Equal(t, uint16(3), *got.Port)
	require.Equal(t, ConsoleExternal, *got.Console)
}

func TestGroupSet_NilSafe(t *testing.T) {
	var s *GroupSet
	require.Equal(t, 0, s.Len())
	require.Nil(t, s.IDs())
	require.Nil(t, s.Groups())
	require.Nil(t, s.Clone())
	_, ok := s.Get("x")
	require.False(t, ok)
}

func TestGroupSet_JSON(t *testing.T) {
	var cfg Config
	err := json.Unmarshal([]byte(`{
		"port": 9300,
		"groups": [
			{"id": "b", "includes": ["**/*.b.ts"]},
			{"id": "a", "program": "main.ts", "scripts": ["", "--help", ["serve", "--port", "80"]]}
		]
	}`), &cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, cfg.Groups.IDs())

	a, _ := cfg.Groups.Get("a")
	require.Len(t, *a.Scripts, 3)
	require.Equal(t, []string{"serve", "--port", "80"}, (*a.Scripts)[2].Args)

	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"port": 9300,
		"groups": [
			{"id": "b", "includes": ["**/*.b.ts"]},
			{"id": "a", "program": "main.ts", "scripts": ["", "--help", ["serve", "--port", "80"]]}
		]
	}`, string(out))
}

func TestGroupSet_UnmarshalRequiresID(t *testing.T) {
	var s GroupSet
	require.Error(t, json.Unmarshal([]byte(`[{"name": "x"}]`), &s))
}

func TestConsole_Unmarshal(t *testing.T) {
	var c Console
	require.NoError(t, json.Unmarshal([]byte(`"integratedTerminal"`), &c))
	require.Equal(t, ConsoleIntegrated, c)
	require.Error(t, json.Unmarshal([]byte(`"terminal"`), &c))
}

func TestArgList_Forms(t *testing.T) {
	var a ArgList
	require.NoError(t, json.Unmarshal([]byte(`"--verbose  --dry-run"`), &a))
	require.Equal(t, []string{"--verbose", "--dry-run"}, a.Args)

	out, err := json.Marshal(a)
	require.NoError(t, err)
	require.Equal(t, `"--verbose --dry-run"`, string(out))

	out, err = json.Marshal(Args("a b", "c"))
	require.NoError(t, err)
	require.Equal(t, `["a b","c"]`, string(out))

	require.Error(t, json.Unmarshal([]byte(`42`), &a))
}

func TestGroup_DisplayName(t *testing.T) {
	require.Equal(t, "cli", Group{ID: "cli"}.DisplayName())
	require.Equal(t, "CLI", Group{ID: "cli", Name: ptr("CLI")}.DisplayName())
}
