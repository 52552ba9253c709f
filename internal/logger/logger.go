package logger

import (
	"io"
	"log/slog"
	"os"

	"go.uber.org/fx/fxevent"
)

const serviceName = "assetstore"

// New creates the service logger: JSON to stdout at info level, tagged with
// the service name.
func New() *slog.Logger {
	return newLogger(os.Stdout)
}

func newLogger(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", serviceName))
}

// newEventLogger routes fx lifecycle events through the service logger.
func newEventLogger(l *slog.Logger) fxevent.Logger {
	return &fxevent.SlogLogger{Logger: l.With(slog.String("component", "fx"))}
}
