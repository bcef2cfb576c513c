package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-devkit/internal/calculator"
)

const arrowPrefix = "→"

// WriteExplanation writes the reasoning behind an increment to w: the
// selected rule, each recorded step and the result.
func WriteExplanation(w io.Writer, result calculator.Result) error {
	fmt.Fprintf(w, "Increment (%s):\n", result.Decision)
	if result.Explanation == nil || len(result.Explanation.Steps) == 0 {
		fmt.Fprintf(w, "  %s %s %s %s\n", arrowPrefix, result.Previous.SemVer(), arrowPrefix, result.Next.SemVer())
	} else {
		for _, step := range result.Explanation.Steps {
			fmt.Fprintf(w, "  %s %s\n", arrowPrefix, step)
		}
	}

	fmt.Fprintln(w)
	_, err := fmt.Fprintf(w, "Result: %s\n", result.Next.SemVer())
	return err
}

// FormatExplanation returns the explain output as a string.
func FormatExplanation(result calculator.Result) string {
	var sb strings.Builder
	_ = WriteExplanation(&sb, result)
	return sb.String()
}
