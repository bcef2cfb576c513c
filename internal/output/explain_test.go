package output

import (
	"bytes"
	"testing"

	"github.com/MyCarrier-DevOps/go-devkit/internal/calculator"
	"github.com/MyCarrier-DevOps/go-devkit/internal/semver"

	"github.com/stretchr/testify/require"
)

func TestWriteExplanation_WithSteps(t *testing.T) {
	inc := calculator.NewIncrementer(calculator.DefaultPolicies(), nil).WithExplain(true)
	result, err := inc.Increment("0.0.6-beta.2", calculator.BumpOptions{Identifier: calculator.AdvanceNext()})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteExplanation(&buf, result))

	out := buf.String()
	require.Contains(t, out, "Increment (advance-identifier):\n")
	require.Contains(t, out, "  → Current version: 0.0.6-beta.2\n")
	require.Contains(t, out, "  → Advance identifier beta -> rc\n")
	require.Contains(t, out, "\nResult: 0.0.6-rc.0\n")
}

func TestWriteExplanation_WithoutSteps(t *testing.T) {
	result := calculator.Result{
		Previous: semver.MustParse("1.2.3"),
		Next:     semver.MustParse("1.3.0"),
		Decision: calculator.DecisionMinor,
	}

	require.Equal(t,
		"Increment (minor):\n  → 1.2.3 → 1.3.0\n\nResult: 1.3.0\n",
		FormatExplanation(result),
	)
}
