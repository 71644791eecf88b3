package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/caffeinepub/food-order-delivery-platform/internal/domain/errors"
	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
	pkgAuth "github.com/caffeinepub/food-order-delivery-platform/internal/pkg/auth"
	"github.com/caffeinepub/food-order-delivery-platform/internal/server/http/dto"
)

const (
	// IdentityContextKey is a gin context key for the authenticated identity.
	IdentityContextKey = "identity"
	authCookieName     = "storefront_token"
)

// TokenParser resolves bearer tokens to identities.
type TokenParser interface {
	ParseToken(token string) (model.Identity, error)
}

// AuthRequired ensures the caller is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, domainErrors.ErrUnauthenticated)
			return
		}

		identity, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abort(c, http.StatusUnauthorized, domainErrors.ErrUnauthenticated)
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Code: "internal", Message: "internal error"})
			return
		}

		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// RequireStaff rejects callers without the staff role. It must run after
// AuthRequired.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			abort(c, http.StatusUnauthorized, domainErrors.ErrUnauthenticated)
			return
		}
		if !identity.IsStaff() {
			abort(c, http.StatusForbidden, domainErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// Identity returns the identity stored by AuthRequired.
func Identity(c *gin.Context) (model.Identity, bool) {
	val, ok := c.Get(IdentityContextKey)
	if !ok {
		return model.Identity{}, false
	}
	identity, ok := val.(model.Identity)
	return identity, ok
}

func abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Code: domainErrors.Code(err), Message: err.Error()})
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
