package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/inkless-booking/internal/auth"
	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextTenantID = "tenantID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(v auth.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Authorization header must be a bearer token")
			c.Abort()
			return
		}

		claims, err := v.Validate(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Respond(c, err, "invalid_token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID())
		c.Set(ContextTenantID, claims.TenantID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// RequireOwner lets only business owners through.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != auth.RoleOwner {
			httperr.Respond(c, httperr.ErrUnauthorized("owner_only"), "owner_only")
			c.Abort()
			return
		}
		c.Next()
	}
}

// TenantID and UserID read the identity placed by AuthMiddleware.
func TenantID(c *gin.Context) string {
	return c.GetString(ContextTenantID)
}

func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
