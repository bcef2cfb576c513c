// Package logging builds the zap logger used for diagnostics.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a verbosity flag value to a zap level.
func ParseLevel(verbosity string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(verbosity)) {
	case "quiet":
		return zapcore.ErrorLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown verbosity %q (want quiet, info or debug)", verbosity)
	}
}

// New returns a console logger writing to w at the given verbosity.
// Output has no timestamps or caller information.
func New(verbosity string, w io.Writer) (*zap.SugaredLogger, error) {
	level, err := ParseLevel(verbosity)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core).Sugar(), nil
}
