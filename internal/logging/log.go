// Package logging holds the process-wide structured logger.
//
// Events go to stderr through zerolog's console writer. Configure can raise or
// lower the level and tee every event, uncoloured, into the run log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the global logger. Replace it only through Configure.
var Logger zerolog.Logger

func init() {
	Logger = newLogger(os.Stderr, nil, zerolog.InfoLevel)
}

func newLogger(console io.Writer, file io.Writer, level zerolog.Level) zerolog.Logger {
	var w io.Writer = zerolog.ConsoleWriter{Out: console, TimeFormat: "15:04:05"}
	if file != nil {
		w = zerolog.MultiLevelWriter(w, zerolog.ConsoleWriter{Out: file, NoColor: true, TimeFormat: "2006-01-02 15:04:05"})
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ParseLevel accepts zerolog level names ("trace" … "panic", "disabled").
// An empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// Configure replaces the global logger. console receives coloured output;
// file, when non-nil, receives a plain copy.
func Configure(level string, console io.Writer, file io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	if console == nil {
		console = os.Stderr
	}
	Logger = newLogger(console, file, lvl)
	return nil
}

func With() zerolog.Context { return Logger.With() }
func Trace() *zerolog.Event { return Logger.Trace() }
func Debug() *zerolog.Event { return Logger.Debug() }
func Info() *zerolog.Event { return Logger.Info() }
func Warn() *zerolog.Event { return Logger.Warn() }
func Error() *zerolog.Event { return Logger.Error() }
func Fatal() *zerolog.Event { return Logger.Fatal() }
func GetLevel() zerolog.Level { return Logger.GetLevel() }
