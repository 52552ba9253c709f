package handlers

import (
	"errors"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	pkgAuth "github.com/trivima/assetstore/internal/pkg/auth"
	"github.com/trivima/assetstore/internal/server/http/dto"
	"github.com/trivima/assetstore/internal/server/http/middleware"
)

// ruleErrors are reported as a failure envelope with status 200; clients
// branch on the success flag.
var ruleErrors = []error{
	domainErrors.ErrValidation,
	domainErrors.ErrInvalidCredentials,
	domainErrors.ErrAlreadyExists,
	domainErrors.ErrNotFound,
	domainErrors.ErrForbidden,
	domainErrors.ErrCouponCodeRequired,
	domainErrors.ErrInvalidCoupon,
	domainErrors.ErrUsageLimitExceeded,
	domainErrors.ErrMinimumOrderNotMet,
	domainErrors.ErrPercentageExceeds100,
	domainErrors.ErrCouponExists,
	domainErrors.ErrCouponExpiryInPast,
	domainErrors.ErrCouponNotRedeemable,
	domainErrors.ErrProductNotFound,
	domainErrors.ErrInsufficientStock,
	domainErrors.ErrEmptyOrder,
	domainErrors.ErrAmountMismatch,
	domainErrors.ErrOrderNotFound,
	domainErrors.ErrOrderAlreadyPaid,
	domainErrors.ErrPaymentNotCompleted,
	domainErrors.ErrReviewNotAllowed,
	domainErrors.ErrProductNotInOrder,
	domainErrors.ErrAlreadyReviewed,
	domainErrors.ErrInvalidRating,
}

// CurrentIdentity extracts the authenticated identity from context.
func CurrentIdentity(c *gin.Context) pkgAuth.Identity {
	identity, _ := middleware.IdentityFromContext(c)
	return identity
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusOK, dto.Fail(dto.BindingMessage(err)))
		return false
	}
	return true
}

// respondError writes err as a failure envelope. Only a retryable gateway outage
// changes the status; other infrastructure errors are logged and sent with 200 like
// rule violations. Payment capture maps its own statuses.
func respondError(c *gin.Context, err error) {
	for _, target := range ruleErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusOK, dto.Fail(message(err)))
			return
		}
	}
	_ = c.Error(err)
	if errors.Is(err, domainErrors.ErrGatewayUnavailable) {
		c.JSON(http.StatusServiceUnavailable, dto.Fail(message(err)))
		return
	}
	c.JSON(http.StatusOK, dto.Fail(message(err)))
}

// message capitalises an error string for display.
func message(err error) string {
	s := err.Error()
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
