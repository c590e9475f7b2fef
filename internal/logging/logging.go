// Package logging wires up structured JSON logging for the auth
// server, in the spirit of the original implementation's tracing +
// bunyan-formatter setup: one JSON object per log line, an
// environment-controlled level, and a service name attached to every
// entry.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-style JSON logger for service, honoring
// LOG_LEVEL (debug, info, warn, error; defaults to info).
func New(service string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := level.Set(raw); err != nil {
			return nil, err
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("service", service)), nil
}
