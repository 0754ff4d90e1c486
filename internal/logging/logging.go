// Package logging configures the process logger. The TUI owns the terminal,
// so log output goes to a file under the config dir rather than stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const fileName = "taskdeck.log"

// New opens the log file in dir and returns a logger writing to it. Level
// comes from TASKDECK_LOG (default info). A file that cannot be opened
// degrades to a disabled logger; losing logs must never take down the client.
func New(dir string) (zerolog.Logger, func()) {
	level := parseLevel(os.Getenv("TASKDECK_LOG"))

	f, err := os.OpenFile(filepath.Join(dir, fileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}
	}

	logger := zerolog.New(f).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger, func() { _ = f.Close() }
}

// NewConsole returns a pretty console logger for scriptable (non-TUI)
// commands, writing to w (normally stderr).
func NewConsole(w io.Writer) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(out).
		Level(parseLevel(os.Getenv("TASKDECK_LOG"))).
		With().
		Timestamp().
		Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
