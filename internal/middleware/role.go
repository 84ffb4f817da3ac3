package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldops/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has the specified role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if role.(string) != requiredRole {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// ManagerOnly gates manager-restricted operations such as approving
// discounts flagged requires_manager.
func ManagerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_manager") {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Manager access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
