package auth

import (
	"strings"

	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/httpx"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/gin-gonic/gin"
)

// RequireAdmin rejects requests without a valid "Authorization: Bearer <token>" header.
func RequireAdmin(tokens *TokenManager, log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			httpx.Error(c, log, apperror.Unauthorized("missing bearer token"))
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(raw))
		if err != nil || claims.Role != RoleAdmin {
			httpx.Error(c, log, apperror.Unauthorized(ErrInvalidToken.Error()))
			return
		}

		c.Set(ginAdminKey, claims.Email)
		c.Request = c.Request.WithContext(WithAdmin(c.Request.Context(), AdminContext{
			Email: claims.Email,
			Role:  claims.Role,
		}))
		c.Next()
	}
}

// DenyAll rejects every request. It replaces RequireAdmin when the signing
// key cannot be trusted.
func DenyAll(log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		httpx.Error(c, log, apperror.Unauthorized("admin access is disabled"))
	}
}
