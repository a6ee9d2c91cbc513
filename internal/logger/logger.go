// Package logger provides structured logging with zap.
package logger

import "go.uber.org/zap"

// New creates a zap.Logger for the given environment. Production gets JSON
// output at info level, test gets a no-op logger and everything else the
// development console logger.
func New(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	switch env {
	case "production":
		logger, err = zap.NewProduction()
	case "test":
		return zap.NewNop()
	default:
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger.Named("clientes")
}
