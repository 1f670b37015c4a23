package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Components receive it (or a
// child via With) at construction so tests can swap in a discard handler.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
