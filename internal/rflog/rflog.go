// Package rflog configures the logrus logger shared by every CLI command
// and the server.
package rflog

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/kenneth/rainbowforge/internal/debug"
)

// New builds a logger writing JSON-formatted entries to stderr at level,
// which must be one of logrus's level names ("debug", "info", "warn",
// "error"); an unrecognized level falls back to "info". DEBUG=true or
// LOG_LEVEL=debug in the environment overrides level to debug, so a
// stuck CLI invocation can be re-run with verbose logging without
// touching its flags.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.JSONFormatter{})

	if debug.Enabled() {
		level = "debug"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}
