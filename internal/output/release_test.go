package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestRelease_WriteJSON(t *testing.T) {
	r := Release{
		Package:  "bump",
		Previous: "0.0.1",
		Version:  "0.0.2",
		Decision: "default",
		Tag:      "bump-v0.0.2",
		Staged:   []string{"packages/bump", "deno.lock"},
		DryRun:   true,
	}
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, FormatJSON, ""))

	require.True(t, gjson.Valid(buf.String()))
	doc := gjson.Parse(buf.String())
	require.Equal(t, "0.0.2", doc.Get("version").String())
	require.Equal(t, "bump-v0.0.2", doc.Get("tag").String())
	require.Equal(t, "deno.lock", doc.Get("staged.1").String())
	require.True(t, doc.Get("dryRun").Bool())
	require.False(t, doc.Get("commit").Exists())
	require.Contains(t, buf.String(), "\n  \"version\": \"0.0.2\",\n")
}

func TestRelease_Write(t *testing.T) {
	r := Release{
		Package:  "tool",
		Previous: "1.0.0",
		Version:  "1.0.1",
		Decision: "patch",
		Tag:      "v1.0.1",
		Commit:   "abc",
		Staged:   []string{".", "x"},
		Tagged:   true,
	}

	tests := []struct {
		name     string
		format   string
		variable string
		want     string
	}{
		{"version only", FormatVersion, "", "1.0.1\n"},
		{"variable", FormatVersion, "Tag", "v1.0.1\n"},
		{"variable ignores case", FormatJSON, "commit", "abc\n"},
		{"boolean variable", FormatVersion, "Tagged", "true\n"},
		{
			"all variables",
			FormatAll,
			"",
			"Commit=abc\nDecision=patch\nDryRun=false\nPackage=tool\nPrevious=1.0.0\nPushed=false\nStaged=.,x\nTag=v1.0.1\nTagged=true\nVersion=1.0.1\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Write(&buf, tt.format, tt.variable))
			require.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRelease_WriteUnknownVariable(t *testing.T) {
	var buf bytes.Buffer
	err := Release{Version: "1.2.3"}.Write(&buf, FormatVersion, "Changelog")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown variable "Changelog"`)
	require.Contains(t, err.Error(), "Tag, Tagged, Version")
	require.Empty(t, buf.String())
}

func TestRelease_Variables_OmitsEmptyOptionals(t *testing.T) {
	vars := Release{Version: "1.2.3"}.Variables()
	require.Equal(t, "1.2.3", vars["Version"])
	require.Equal(t, "false", vars["DryRun"])
	for _, name := range []string{"Manifest", "Changelog", "Commit", "Staged"} {
		require.NotContains(t, vars, name)
	}
}

func TestCheckFormat(t *testing.T) {
	for _, format := range []string{FormatVersion, FormatJSON, FormatAll} {
		require.NoError(t, CheckFormat(format))
	}
	require.ErrorIs(t, CheckFormat("xml"), ErrUnknownFormat)

	var buf bytes.Buffer
	require.ErrorIs(t, Release{}.Write(&buf, "yaml", ""), ErrUnknownFormat)
}
