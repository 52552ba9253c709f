package delivery

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/trivima/assetstore/internal/adapter/mailer"
	"github.com/trivima/assetstore/internal/config"
)

// Module provides the download email notifier.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Sender *mailer.Sender
	Logger *slog.Logger
}

func newNotifier(p notifierParams) *Notifier {
	return NewNotifier(p.Sender, Options{
		Brand:        p.Config.PayPal.BrandName,
		FrontendURL:  p.Config.FrontendURL,
		SupportEmail: p.Config.SupportEmail,
	}, p.Logger)
}
