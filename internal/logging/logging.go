// Package logging builds the shared zap logger. Direct commands log to
// stderr; the interactive TUI logs to a file so log lines don't tear
// the rendered screen.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production logger, debug-leveled when verbose.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// NewFileLogger logs to ~/.agrigest/agri.log for TUI sessions.
func NewFileLogger(verbose bool) (*zap.Logger, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".agrigest")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dir, "agri.log")}
	cfg.ErrorOutputPaths = []string{filepath.Join(dir, "agri.log")}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
