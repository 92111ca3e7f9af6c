package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
	"github.com/noah-isme/sma-adp-console/pkg/storage"
)

func TestFileStateRepositoryRoundTrip(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repo := NewFileStateRepository(store)
	ctx := context.Background()

	var dest map[string]string
	assert.True(t, errors.Is(repo.Get(ctx, "auth-storage", &dest), appErrors.ErrStateMiss))

	require.NoError(t, repo.Set(ctx, "auth-storage", map[string]string{"token": "abc"}))
	require.NoError(t, repo.Get(ctx, "auth-storage", &dest))
	assert.Equal(t, "abc", dest["token"])

	require.NoError(t, repo.Delete(ctx, "auth-storage"))
	assert.True(t, errors.Is(repo.Get(ctx, "auth-storage", &dest), appErrors.ErrStateMiss))
}

func TestRedisStateRepositoryWithoutClient(t *testing.T) {
	repo := NewRedisStateRepository(nil, nil)
	ctx := context.Background()

	var dest map[string]string
	assert.True(t, errors.Is(repo.Get(ctx, "help-storage", &dest), appErrors.ErrStateMiss))
	assert.NoError(t, repo.Set(ctx, "help-storage", dest))
	assert.NoError(t, repo.Delete(ctx, "help-storage"))
	assert.NoError(t, repo.Close())
}
