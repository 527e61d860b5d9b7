// Package logger builds the process-wide zap logger.
package logger

import "go.uber.org/zap"

// New returns a logger for the given environment: JSON output in
// production, console output everywhere else.
func New(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
