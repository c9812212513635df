// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log levels accepted by Setup
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	DefaultLevel = LevelInfo
)

// Levels returns the accepted level names, most verbose first
func Levels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}

// ParseLevel converts a level name into a logrus level. Empty means info.
func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", LevelInfo:
		return logrus.InfoLevel, nil
	case LevelDebug:
		return logrus.DebugLevel, nil
	case LevelWarn, "warning":
		return logrus.WarnLevel, nil
	case LevelError:
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

// Setup points the standard logger at stderr with full timestamps. An invalid
// level leaves the logger at info and returns the parse error.
func Setup(level string) error {
	return SetupWriter(os.Stderr, level)
}

// SetupWriter is Setup with an explicit output
func SetupWriter(out io.Writer, level string) error {
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	parsed, err := ParseLevel(level)
	logrus.SetLevel(parsed)
	if err != nil {
		logrus.Warnf("Invalid log level '%s', defaulting to 'info'", level)
		return err
	}

	logrus.Debugf("Log level set to %s", parsed)
	return nil
}
