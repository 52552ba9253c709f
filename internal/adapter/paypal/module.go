package paypal

import (
	"log/slog"
	"strings"

	"go.uber.org/fx"

	"github.com/trivima/assetstore/internal/config"
)

// Module exposes the PayPal gateway and currency converter to fx graph.
var Module = fx.Provide(newGateway, newConverter)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) (*Gateway, error) {
	cfg := p.Config.PayPal
	frontend := strings.TrimRight(p.Config.FrontendURL, "/")
	opts := Options{
		BrandName: cfg.BrandName,
		ReturnURL: frontend + "/orders",
		CancelURL: frontend + "/cart",
		Timeout:   cfg.Timeout,
	}

	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		p.Logger.Warn("paypal credentials missing, checkout will fail")
		return NewGateway(unconfiguredAPI{}, opts, p.Logger), nil
	}

	client, err := NewClient(cfg.ClientID, cfg.ClientSecret, cfg.Live(), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return NewGateway(client, opts, p.Logger), nil
}

func newConverter(cfg *config.Config) *FixedRateConverter {
	return NewFixedRateConverter(cfg.PayPal.ExchangeRate, cfg.PayPal.SettlementCurrency)
}
