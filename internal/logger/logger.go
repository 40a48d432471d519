// Package logger is the process-wide structured logger
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/celestiaorg/hypermedia/internal/constants"
)

// DefaultLevel is used when LOG_LEVEL is unset or invalid
const DefaultLevel = logrus.InfoLevel

var log = logrus.New()

// InitializeAndConfigure switches to JSON output on stdout and applies the
// level from the environment
func InitializeAndConfigure() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	levelStr := os.Getenv(constants.EnvLogLevel)
	level, ok := parseLevel(levelStr)
	log.SetLevel(level)
	if !ok {
		log.Warnf("Invalid log level '%s', defaulting to '%s'", levelStr, DefaultLevel)
		return
	}
	log.Debugf("Log level set to '%s'", level)
}

// parseLevel parses a logrus level name, falling back to DefaultLevel. An
// empty string is not an error.
func parseLevel(s string) (logrus.Level, bool) {
	if s == "" {
		return DefaultLevel, true
	}
	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return DefaultLevel, false
	}
	return level, true
}

// SetOutput redirects log output, mostly for tests
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// SetLevel changes the minimum level logged
func SetLevel(level logrus.Level) {
	log.SetLevel(level)
}

// Debug logs a message at the debug level
func Debug(args ...interface{}) {
	log.Debug(args...)
}

// Debugf logs a formatted message at the debug level
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Info logs a message at the info level
func Info(args ...interface{}) {
	log.Info(args...)
}

// Infof logs a formatted message at the info level
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs a formatted message at the warn level
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Errorf logs a formatted message at the error level
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Fatalf logs a formatted message and exits
func Fatalf(format string, args ...interface{}) {
	log.Fatalf(format, args...)
}

// InfoWithFields logs a message at the info level with additional fields
func InfoWithFields(msg string, fields map[string]interface{}) {
	log.WithFields(logrus.Fields(fields)).Info(msg)
}

// ErrorWithFields logs a message at the error level with additional fields
func ErrorWithFields(msg string, fields map[string]interface{}) {
	log.WithFields(logrus.Fields(fields)).Error(msg)
}
