package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "evorgs/internal/pkg/jwt"
	"evorgs/internal/pkg/response"
)

// Role tags carried by a Principal.
const (
	RoleUser   = "user"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

const principalKey = "principal"

// Principal is the authenticated caller identity attached to a
// request context: one numeric identity plus a role tag. Handlers
// consume this instead of inspecting separate user/vendor/admin
// context fields.
type Principal struct {
	ID   int64
	Role string
}

func (p Principal) IsAdmin() bool  { return p.Role == RoleAdmin }
func (p Principal) IsVendor() bool { return p.Role == RoleVendor }
func (p Principal) IsUser() bool   { return p.Role == RoleUser }

// PrincipalFrom returns the Principal set by Auth, if any.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// MustPrincipal aborts with UNAUTHENTICATED when no principal is
// attached. Handlers behind Auth can call it unconditionally.
func MustPrincipal(c *gin.Context) (Principal, bool) {
	p, ok := PrincipalFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "Authentication required")
		c.Abort()
		return Principal{}, false
	}
	return p, true
}

// Auth validates the bearer token and attaches the resolved Principal
// to the request context.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "Missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "Invalid token")
			c.Abort()
			return
		}

		c.Set(principalKey, Principal{ID: claims.PrincipalID, Role: claims.Role})
		c.Next()
	}
}
