// Package hostlog provides the structured logger used for host-side
// ambient events: ROM loads, interrupt dispatch, debugger session
// start/stop. It never touches the exact-format fault report (see
// internal/report), which must remain raw hex with no structured
// wrapping.
package hostlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.Logger tuned for CLI use: console-encoded, colorized
// level, no timestamps when quiet is requested (useful for golden-output
// tests that pipe stderr).
func New(debug bool, quiet bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if quiet {
		cfg.TimeKey = ""
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(os.Stderr),
		level,
	)

	return zap.New(core)
}

// Nop returns a logger that discards everything, used by tests and by
// library callers that embed the vm package without wanting host-side log
// noise.
func Nop() *zap.Logger {
	return zap.NewNop()
}
