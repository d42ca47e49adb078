package auth

import (
	"context"

	"github.com/gin-gonic/gin"
)

type contextKey struct{}

const ginAdminKey = "admin_email"

// AdminContext identifies the administrator behind an authenticated request.
type AdminContext struct {
	Email string
	Role  string
}

func WithAdmin(ctx context.Context, admin AdminContext) context.Context {
	return context.WithValue(ctx, contextKey{}, admin)
}

// AdminFromContext returns the administrator stored by RequireAdmin.
func AdminFromContext(ctx context.Context) (AdminContext, bool) {
	admin, ok := ctx.Value(contextKey{}).(AdminContext)
	return admin, ok
}

// GetAdminEmail reads the gin context first and falls back to the request context.
func GetAdminEmail(c *gin.Context) string {
	if val, ok := c.Get(ginAdminKey); ok {
		if email, ok := val.(string); ok {
			return email
		}
	}
	if admin, ok := AdminFromContext(c.Request.Context()); ok {
		return admin.Email
	}
	return ""
}
