package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"quiet", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"DEBUG", zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("info", &buf)
	require.NoError(t, err)

	log.Debugw("hidden")
	log.Infow("New version", "version", "1.0.1")
	log.Warn("Version is already stable")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "INFO\tNew version")
	require.Contains(t, out, `{"version": "1.0.1"}`)
	require.Contains(t, out, "WARN\tVersion is already stable")
}

func TestNew_Quiet(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("quiet", &buf)
	require.NoError(t, err)

	log.Warn("suppressed")
	log.Error("shown")
	require.NotContains(t, buf.String(), "suppressed")
	require.Contains(t, buf.String(), "shown")
}

func TestNew_InvalidVerbosity(t *testing.T) {
	_, err := New("chatty", &bytes.Buffer{})
	require.Error(t, err)
}
