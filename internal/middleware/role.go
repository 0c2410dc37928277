package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"evorgs/internal/pkg/response"
)

// RequireRole ensures that the authenticated principal has the
// specified role.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "Authentication required")
			c.Abort()
			return
		}

		if p.Role != requiredRole {
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(RoleAdmin)
}

// VendorOnly middleware requires vendor role
func VendorOnly() gin.HandlerFunc {
	return RequireRole(RoleVendor)
}
