package di

import (
	"go.uber.org/fx"

	"github.com/trivima/assetstore/internal/adapter/mailer"
	"github.com/trivima/assetstore/internal/adapter/paypal"
	"github.com/trivima/assetstore/internal/app"
	"github.com/trivima/assetstore/internal/config"
	"github.com/trivima/assetstore/internal/delivery"
	"github.com/trivima/assetstore/internal/logger"
	"github.com/trivima/assetstore/internal/pkg/auth"
	"github.com/trivima/assetstore/internal/server/http/handlers"
	"github.com/trivima/assetstore/internal/server/http/router"
	"github.com/trivima/assetstore/internal/storage/postgres"
	"github.com/trivima/assetstore/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		paypal.Module,
		mailer.Module,
		delivery.Module,
		fx.Provide(
			func(g *paypal.Gateway) usecase.PaymentGateway { return g },
			func(c *paypal.FixedRateConverter) usecase.CurrencyConverter { return c },
			func(n *delivery.Notifier) usecase.DownloadNotifier { return n },
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.StoreFacade) handlers.StoreFacade { return f },
		),
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
