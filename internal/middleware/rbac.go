package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-adp-console/internal/auth"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
	"github.com/noah-isme/sma-adp-console/pkg/response"
)

// RequireRoles rejects sessions whose token names a different role. Tokens
// without a role claim pass through and are left to the backend.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[strings.ToLower(role)] = struct{}{}
	}
	return func(c *gin.Context) {
		value, exists := c.Get(ContextClaimsKey)
		if !exists {
			response.Error(c, appErrors.ErrAuthTokenMissing)
			c.Abort()
			return
		}
		claims, _ := value.(*auth.Claims)
		if claims == nil || claims.Role == "" {
			c.Next()
			return
		}
		if _, ok := allowed[strings.ToLower(claims.Role)]; ok {
			c.Next()
			return
		}
		response.Error(c, appErrors.New("FORBIDDEN", 403, "role "+claims.Role+" cannot access this resource"))
		c.Abort()
	}
}

// RequireRolesWhen applies RequireRoles only to requests matching pred.
func RequireRolesWhen(pred func(c *gin.Context) bool, roles ...string) gin.HandlerFunc {
	gate := RequireRoles(roles...)
	return func(c *gin.Context) {
		if !pred(c) {
			c.Next()
			return
		}
		gate(c)
	}
}
