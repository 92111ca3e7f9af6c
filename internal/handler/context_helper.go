package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-adp-console/internal/auth"
	"github.com/noah-isme/sma-adp-console/internal/middleware"
)

func claimsFromContext(c *gin.Context) *auth.Claims {
	value, exists := c.Get(middleware.ContextClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
