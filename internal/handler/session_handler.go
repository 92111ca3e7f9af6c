package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
	"github.com/noah-isme/sma-adp-console/pkg/response"
)

// Session godoc
// @Summary Describe the stored session
// @Tags State
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /api/v1/session [get]
func Session(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrAuthTokenMissing)
		return
	}
	response.JSON(c, http.StatusOK, claims, nil)
}
