// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Setup installs a JSON slog handler as the default logger and returns it.
// Every entry carries the service name. Unknown levels mean info.
func Setup(w io.Writer, serviceName, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	handler := slog.NewJSONHandler(w, opts).
		WithAttrs([]slog.Attr{
			slog.String("service", serviceName),
		})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
