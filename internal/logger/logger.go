package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caffeinepub/food-order-delivery-platform/internal/config"
)

// ServiceName tags every record emitted by the backend.
const ServiceName = "storefront"

// New creates a preconfigured slog.Logger writing JSON to stdout.
func New(level string) *slog.Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a JSON logger writing to w.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler).With(slog.String("service", ServiceName))
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
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

func fromConfig(cfg *config.Config) *slog.Logger {
	return New(cfg.LogLevel)
}
