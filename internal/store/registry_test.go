package store

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

func TestRegistryRefreshAndClear(t *testing.T) {
	b := newBackend(t, func(r *gin.Engine) {
		r.GET("/admin/stats", func(c *gin.Context) { c.JSON(http.StatusServiceUnavailable, gin.H{}) })
	})
	reg := NewRegistry(b.deps("tok", nil), nil, "")
	ctx := context.Background()

	err := reg.Refresh(ctx, "admin.stats", RefreshParams{})
	require.Error(t, err)
	assert.Equal(t, "HTTP error! status: 503", reg.Admin.Stats().Error)

	require.NoError(t, reg.ClearError("admin.stats"))
	assert.Empty(t, reg.Admin.Stats().Error)
}

func TestRegistryRejectsUnknownAndMissingID(t *testing.T) {
	b := newBackend(t, func(r *gin.Engine) {})
	reg := NewRegistry(b.deps("tok", nil), nil, "")
	ctx := context.Background()

	err := reg.Refresh(ctx, "admin.nope", RefreshParams{})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.True(t, errors.Is(reg.ClearError("nope"), appErrors.ErrNotFound))

	err = reg.Refresh(ctx, "course.sessions", RefreshParams{})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Equal(t, int32(0), b.Hits())

	_, err = reg.Snapshot("billing")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestRegistryListsEverySlice(t *testing.T) {
	b := newBackend(t, func(r *gin.Engine) {})
	reg := NewRegistry(b.deps("tok", nil), nil, "")

	slices := reg.Slices()
	assert.Len(t, slices, 19)
	assert.Contains(t, slices, "admin.teachers")
	assert.Contains(t, slices, "share.shareTeachers")

	for _, name := range []string{"admin", "help", "profile", "course", "share"} {
		snap, err := reg.Snapshot(name)
		require.NoError(t, err)
		assert.NotNil(t, snap)
	}
}
