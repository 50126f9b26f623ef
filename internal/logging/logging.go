// Package logging configures the global logrus logger. The TUI owns the
// terminal, so logs normally go only to a rotated file.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Params struct {
	File   string
	Level  string
	JSON   bool
	Stderr bool // also copy entries to stderr (CLI --verbose)
}

// Setup points logrus at the file in p. The returned closer flushes and
// closes the file; it is safe to call when no file was configured.
func Setup(p Params) (io.Closer, error) {
	if p.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	logrus.SetLevel(ParseLevel(p.Level))

	if p.File == "" {
		if p.Stderr {
			logrus.SetOutput(os.Stderr)
		} else {
			logrus.SetOutput(io.Discard)
		}
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(p.File), 0o755); err != nil {
		return nil, err
	}

	lj := &lumberjack.Logger{
		Filename:   p.File,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		LocalTime:  true,
	}

	if p.Stderr {
		logrus.SetOutput(NewCombinedWriter(os.Stderr, lj))
	} else {
		logrus.SetOutput(lj)
	}
	return lj, nil
}

// ParseLevel maps a level name to logrus. Unknown names mean info.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
