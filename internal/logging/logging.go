// Package logging configures the process-wide charmbracelet logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Level maps a -v count to a log level.
func Level(verbosity int) log.Level {
	switch {
	case verbosity <= 0:
		return log.WarnLevel
	case verbosity == 1:
		return log.InfoLevel
	default:
		return log.DebugLevel
	}
}

// New creates a logger writing to w.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// SetupLogger installs the default logger. Named levels in levelName win
// over the verbosity count.
func SetupLogger(w io.Writer, verbosity int, levelName string) *log.Logger {
	level := Level(verbosity)
	if levelName != "" {
		if l, err := log.ParseLevel(levelName); err == nil && verbosity == 0 {
			level = l
		}
	}

	logger := New(w, level)
	log.SetDefault(logger)
	logger.Debug("logger initialized", "level", level.String())
	return logger
}

// File opens the log file used while the terminal is taken over by the
// presenter: $XDG_STATE_HOME/deck/deck.log or ~/.local/state/deck/deck.log.
func File() (*os.File, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".local", "state")
	}
	dir = filepath.Join(dir, "deck")

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "deck.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
