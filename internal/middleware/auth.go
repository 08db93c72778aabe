package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tasknest/task-tracker-api/internal/auth"
	"github.com/tasknest/task-tracker-api/internal/constants"
	"github.com/tasknest/task-tracker-api/internal/response"
)

// RequireAuth verifies the Bearer token and stashes the caller identity
// in the request context.
func RequireAuth(jwtService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header missing", "")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, http.StatusUnauthorized, "Invalid authorization header format", "")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				response.Error(c, http.StatusUnauthorized, "Token has expired", "")
			} else {
				response.Error(c, http.StatusUnauthorized, "Invalid token", "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPrincipal, auth.PrincipalFromClaims(claims))
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Authentication required", "")
			c.Abort()
			return
		}

		if !principal.IsAdmin {
			response.Error(c, http.StatusForbidden, "Admin access required", "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetPrincipal returns the authenticated caller set by RequireAuth.
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return auth.Principal{}, false
	}
	principal, ok := value.(auth.Principal)
	return principal, ok
}
