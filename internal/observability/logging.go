// Package observability builds the zap loggers shared by the simulator binaries.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/monbattle/internal/config"
)

// formats maps a configured log format to its base zap configuration.
var formats = map[string]func() zap.Config{
	"json":    zap.NewProductionConfig,
	"console": zap.NewDevelopmentConfig,
}

// NewLogger builds the logger for the named binary.
//
// Precondition: cfg.Level is a zap level name; cfg.Format is "json" or "console".
// Postcondition: Every entry carries a "binary" field when binary is non-empty.
func NewLogger(cfg config.LoggingConfig, binary string) (*zap.Logger, error) {
	base, ok := formats[cfg.Format]
	if !ok {
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	zc := base()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// Ability activations repeat within a turn; every one is kept.
	zc.Sampling = nil
	if binary != "" {
		zc.InitialFields = map[string]any{"binary": binary}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building %s logger: %w", cfg.Format, err)
	}
	return logger, nil
}

// BattleLogger returns a child of base that tags every entry with the battle id.
// A nil base yields a no-op logger.
func BattleLogger(base *zap.Logger, battleID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	return base.With(zap.String("battle_id", battleID))
}
