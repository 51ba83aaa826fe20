// =============================================================================
// Order Transformer - Logging Setup
// =============================================================================

// Package logging builds the process-wide logrus logger from configuration.
// Components receive the *logrus.Logger and attach their own fields; nothing
// else in the repository configures log output.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to stdout with the given level and format.
// Unknown values fall back to info-level text output.
func New(level, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return logger
}
