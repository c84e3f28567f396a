package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/jobmarket-backend/internal/authz"
	"github.com/ignatzorin/jobmarket-backend/internal/interface/http/response"
)

// TokenParser verifies a bearer token and returns its principal.
type TokenParser interface {
	ParseAccess(token string) (authz.Principal, error)
}

// AuthMiddleware verifies the bearer token and stores the principal in the
// request context.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			response.Unauthorized(c, "authorization required")
			return
		}

		principal, err := tokens.ParseAccess(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}

		c.Request = c.Request.WithContext(authz.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// RequireRole rejects principals whose role claim is not role.
func RequireRole(role authz.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := authz.Require(c.Request.Context(), role); err != nil {
			response.Error(c, err)
			return
		}
		c.Next()
	}
}
