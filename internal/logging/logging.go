// Package logging provides scoped leveled loggers for capturekit packages.
package logging

import (
	"github.com/pion/logging"
)

var loggerFactory = logging.NewDefaultLoggerFactory()

// NewLogger returns a leveled logger for the given scope. Levels are tuned
// through the PION_LOG_* environment variables; hosts that need more control
// inject their own factory via the session options.
func NewLogger(scope string) logging.LeveledLogger {
	return loggerFactory.NewLogger(scope)
}
