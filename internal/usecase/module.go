package usecase

import (
	"go.uber.org/fx"

	"github.com/trivima/assetstore/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newAdminCredentials,
	NewAuthUseCase,
	NewCouponService,
	NewCatalogService,
	NewCheckoutService,
	NewOrderService,
	NewReviewService,
	NewFulfillmentService,
)

func newAdminCredentials(cfg *config.Config) AdminCredentials {
	return AdminCredentials{Email: cfg.AdminEmail, Password: cfg.AdminPassword}
}
