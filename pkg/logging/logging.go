// Package logging builds the zap logger used across tripdesk and carries
// request-scoped loggers on a context.
package logging

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey int8

const loggerKey ctxKey = iota

// Config controls logger construction
type Config struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// Development switches to a human readable console encoder.
	Development bool
}

// ConfigFromEnv reads TRIPDESK_LOG_LEVEL and TRIPDESK_LOG_FORMAT
func ConfigFromEnv() Config {
	return Config{
		Level:       os.Getenv("TRIPDESK_LOG_LEVEL"),
		Development: os.Getenv("TRIPDESK_LOG_FORMAT") == "console",
	}
}

// ParseLevel converts a level name into a zap level, defaulting to info
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a logger for the given configuration
func New(cfg Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "ts"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))

	return zc.Build(zap.Fields(zap.String("service", "tripdesk")))
}

// IsDebug reports whether the configured level enables debug output
func (c Config) IsDebug() bool {
	return ParseLevel(c.Level) == zapcore.DebugLevel
}

// WithLogger returns a copy of ctx carrying logger
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored on ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok && logger != nil {
			return logger
		}
	}
	return zap.NewNop()
}
