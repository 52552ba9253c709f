package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"go.uber.org/fx/fxevent"
)

func TestNewProvidesJSONLogger(t *testing.T) {
	l := New()
	if l == nil {
		t.Fatal("expected logger, got nil")
	}

	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Errorf("expected info level to be enabled")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("did not expect debug level to be enabled")
	}

	if _, ok := l.Handler().(*slog.JSONHandler); !ok {
		t.Fatalf("expected JSON handler, got %T", l.Handler())
	}
}

func TestLoggerTagsService(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf).Info("order placed", slog.String("order_id", "o1"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["service"] != serviceName || entry["order_id"] != "o1" || entry["msg"] != "order placed" {
		t.Fatalf("unexpected log entry %v", entry)
	}
}

func TestEventLoggerUsesSlog(t *testing.T) {
	var buf bytes.Buffer
	newEventLogger(newLogger(&buf)).LogEvent(&fxevent.Started{})
	if !strings.Contains(buf.String(), `"component":"fx"`) {
		t.Fatalf("expected fx component tag, got %q", buf.String())
	}
}
