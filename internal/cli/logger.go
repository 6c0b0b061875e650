package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iwvelando/fincalc/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// parseLevel accepts the level names used in the policy file.
func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
}

// initializeLogger builds a zap logger from the logging section of the
// policy. A non-empty levelOverride wins over the configured level.
// Logs go to stderr unless an output file is configured; stdout is left
// for command results.
func initializeLogger(logging config.LoggingConfig, levelOverride string) (*zap.Logger, error) {
	level := logging.Level
	if levelOverride != "" {
		level = levelOverride
	}
	zapLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	switch logging.Format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "", "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", logging.Format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	if logging.OutputFile != "" {
		if dir := filepath.Dir(logging.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}
		file, err := os.OpenFile(logging.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", logging.OutputFile, err)
		}
		_ = file.Close()

		cfg.OutputPaths = []string{logging.OutputFile}
		cfg.ErrorOutputPaths = []string{logging.OutputFile}
	}

	return cfg.Build()
}
