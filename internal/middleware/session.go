package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-adp-console/internal/auth"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
	"github.com/noah-isme/sma-adp-console/pkg/response"
)

// ContextClaimsKey is the gin context key storing the signed-in user's claims.
const ContextClaimsKey = "sessionClaims"

// ClaimsReader exposes the stored session claims.
type ClaimsReader interface {
	Claims(ctx context.Context) (*auth.Claims, error)
}

// RequireSession blocks console API routes until a bearer token has been
// stored with `login`. Claims are decoded but not verified; the backend stays
// the authority.
func RequireSession(sessions ClaimsReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := sessions.Claims(c.Request.Context())
		if err != nil {
			if appErrors.FromError(err).Code != appErrors.ErrAuthTokenMissing.Code {
				// Opaque tokens still authenticate against the backend.
				c.Set(ContextClaimsKey, &auth.Claims{})
				c.Next()
				return
			}
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}
