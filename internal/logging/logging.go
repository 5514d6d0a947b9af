// Package logging builds the structured logger shared by the loader and
// the CLI. Nothing here is exported as a global: callers hold on to the
// *zap.SugaredLogger they get back and pass it explicitly.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console-encoded logger at the given level ("debug", "info",
// "warn", "error"). An unrecognized level falls back to "info".
func New(level string) *zap.SugaredLogger {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()

	logger, err := cfg.Build()
	if err != nil {
		// Build only fails on a malformed config; ours is static.
		panic(err)
	}
	return logger.Sugar()
}

// Noop returns a logger that discards everything, for tests that don't
// want to assert on log output.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
