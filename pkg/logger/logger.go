package logger

import (
	"log/slog"
	"os"
	"strings"
)

func New(level string, handler func(level slog.Level) slog.Handler) *slog.Logger {
	h := handler(ParseLevel(level))
	return slog.New(h)
}

// NewForFormat picks the handler from LOG_FORMAT: "text" for local runs,
// anything else gets the JSON handler.
func NewForFormat(level, format string) *slog.Logger {
	if strings.EqualFold(format, "text") {
		return New(level, NewTextHandler)
	}
	return New(level, NewJSONHandler)
}

func NewTextHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
