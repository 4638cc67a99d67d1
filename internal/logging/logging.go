// Package logging configures the file-backed zap logger. The TUI owns
// the terminal, so nothing may write to stdout or stderr while the
// program runs; all diagnostics go to a log file in the data directory.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFile = "swb.log"

// New opens (or creates) the log file under dataDir and returns a logger
// writing to it at the given level. Logging is never load-bearing: any
// failure to set up the file yields a nop logger instead of an error.
func New(dataDir string, level zapcore.Level) *zap.Logger {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return zap.NewNop()
	}

	f, err := os.OpenFile(filepath.Join(dataDir, logFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.NewNop()
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(f),
		level,
	)
	return zap.New(core)
}

// ParseLevel maps a config/flag string to a zap level, defaulting to
// info on anything unrecognized.
func ParseLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
