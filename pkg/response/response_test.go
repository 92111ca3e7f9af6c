package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

func render(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	Error(c, err)
	return rec
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"auth", appErrors.ErrAuthTokenMissing, http.StatusUnauthorized},
		{"backend 404", &appErrors.Error{Code: appErrors.ErrHTTP.Code, Status: http.StatusNotFound, Message: "Teacher not found"}, http.StatusNotFound},
		{"transport", appErrors.Wrap(errors.New("dial tcp"), appErrors.ErrTransport.Code, 0, "connection refused"), http.StatusBadGateway},
		{"superseded", appErrors.ErrSuperseded, http.StatusConflict},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := render(tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		})
	}
}

func TestErrorBodyCarriesMessage(t *testing.T) {
	rec := render(appErrors.ErrAuthTokenMissing)

	var env struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "AUTH_TOKEN_MISSING", env.Error.Code)
	assert.Equal(t, "Authentication token not found", env.Error.Message)
}
