package middleware

import (
	"net/http"

	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RequireRole creates a Gin middleware that rejects requests whose
// authenticated role is not in the allowed set. It must run after
// AuthMiddleware has populated the request context.
func RequireRole(allowed ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		role, ok := GetRoleFromContext(c)
		if !ok {
			logger.Error("Role missing from context in RequireRole")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}

		logger.Warn("Role not permitted for route", "role", string(role))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
