package logger

import (
	"log/slog"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestModuleProvidesLogger(t *testing.T) {
	var resolved *slog.Logger
	app := fxtest.New(t,
		Module,
		fx.Populate(&resolved),
	)
	app.RequireStart()
	t.Cleanup(app.RequireStop)

	if resolved == nil {
		t.Fatal("expected logger to be populated")
	}
}
