package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Options selects the backend and minimum level of the logger built by New.
type Options struct {
	// Level is one of debug, info, warn, error. Anything else means info.
	Level string
	// Format is FormatText (slog), FormatJSON or FormatConsole (zerolog).
	Format string
	// Output defaults to os.Stderr so log lines do not mix with REPL output.
	Output io.Writer
}

// New builds a Logger from opts.
func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(opts.Format) {
	case FormatJSON, FormatConsole:
		if strings.ToLower(opts.Format) == FormatConsole {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}
		zl := zerolog.New(out).Level(zerologLevel(opts.Level)).With().Timestamp().Logger()
		return NewZerologLogger(zl)
	default:
		h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: slogLevel(opts.Level)})
		return NewSlogLogger(slog.New(h))
	}
}

func zerologLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func slogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Nop discards everything. Handy as a default in tests.
func Nop() Logger {
	return NewZerologLogger(zerolog.Nop())
}
