package store

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-adp-console/internal/dto"
)

func TestProfileStore(t *testing.T) {
	b := newBackend(t, func(r *gin.Engine) {
		r.GET("/profile", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user": gin.H{"_id": "u1", "name": "Ada", "email": "ada@uni.edu", "role": "admin"}})
		})
		r.PATCH("/profile", func(c *gin.Context) {
			var in dto.UpdateProfileRequest
			_ = c.ShouldBindJSON(&in)
			c.JSON(http.StatusOK, gin.H{"user": gin.H{"_id": "u1", "name": *in.Name, "email": "ada@uni.edu", "role": "admin"}})
		})
		r.POST("/profile/change-password", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
		})
	})
	s := NewProfileStore(b.deps("tok", nil))
	ctx := context.Background()

	require.NoError(t, s.FetchProfile(ctx))
	assert.Equal(t, "Ada", s.Profile().Value.Name)

	name := "Ada Lovelace"
	updated, err := s.UpdateProfile(ctx, dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "Ada Lovelace", s.Profile().Value.Name)

	err = s.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "same-pass", NewPassword: "same-pass"})
	require.Error(t, err)
	assert.Equal(t, int32(2), b.Hits())

	err = s.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-pass-123"})
	require.Error(t, err)
	assert.Equal(t, "Current password is incorrect", err.Error())
}

func TestProfileLoadingBracketOnFailure(t *testing.T) {
	b := newBackend(t, func(r *gin.Engine) {
		r.GET("/profile", func(c *gin.Context) { c.JSON(http.StatusUnauthorized, gin.H{"message": "Token expired"}) })
	})
	s := NewProfileStore(b.deps("tok", nil))

	require.Error(t, s.FetchProfile(context.Background()))
	state := s.Profile()
	assert.False(t, state.Loading)
	assert.Nil(t, state.Value)
	assert.Equal(t, "Token expired", state.Error)
}
