package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/trivima/assetstore/internal/pkg/auth"
	"github.com/trivima/assetstore/internal/server/http/dto"
)

const (
	// IdentityContextKey is a gin context key for the authenticated identity.
	IdentityContextKey = "identity"
	authCookieName     = "assetstore_token"
	tokenHeader        = "token"
	cookieMaxAge       = 7 * 24 * 60 * 60
)

// TokenParser resolves a bearer token into an identity.
type TokenParser interface {
	ParseToken(token string) (pkgAuth.Identity, error)
}

// AuthRequired ensures the request carries a valid token.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Not authorized, login again"))
			return
		}

		identity, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Not authorized, login again"))
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail(err.Error()))
			return
		}

		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// CustomerRequired lets through identities bound to a user account. It must run
// after AuthRequired.
func CustomerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok || identity.UserID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("Not authorized, login again"))
			return
		}
		c.Next()
	}
}

// AdminRequired lets through admin identities only. It must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok || !identity.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("Not authorized, login again"))
			return
		}
		c.Next()
	}
}

// IdentityFromContext returns the identity stored by AuthRequired.
func IdentityFromContext(c *gin.Context) (pkgAuth.Identity, bool) {
	val, ok := c.Get(IdentityContextKey)
	if !ok {
		return pkgAuth.Identity{}, false
	}
	identity, ok := val.(pkgAuth.Identity)
	return identity, ok
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if token := strings.TrimSpace(c.GetHeader(tokenHeader)); token != "" {
		return token
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, cookieMaxAge, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
