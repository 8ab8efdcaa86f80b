// Package logging constructs the zap logger used across the console.  The
// development configuration (colored levels, debug) is used for the "dev"
// environment, the production JSON configuration otherwise.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger for the given environment name.  Construction only
// fails on invalid configuration, which cannot happen with the two presets
// used here, so the error is surfaced rather than swallowed only for the
// caller to log.Fatal on.
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "prod" || env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg.Build()
}
