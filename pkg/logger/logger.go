package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a leveled key/value logger.
type Logger struct {
	*slog.Logger
}

// NewLogger builds a JSON logger writing to stdout. Unknown levels fall back to info.
func NewLogger(level string) *Logger {
	return New(os.Stdout, level)
}

func New(w io.Writer, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return &Logger{Logger: slog.New(handler)}
}

// With returns a child logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
