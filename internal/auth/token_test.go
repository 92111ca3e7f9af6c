package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-adp-console/internal/models"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

type memoryStore struct {
	data   map[string][]byte
	getErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (m *memoryStore) Get(_ context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return appErrors.ErrStateMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryStore) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenMissingReturnsEmpty(t *testing.T) {
	accessor := NewTokenAccessor(newMemoryStore(), "", zap.NewNop())
	assert.Equal(t, "", accessor.Token(context.Background()))
}

func TestTokenUnreadableBlobReturnsEmpty(t *testing.T) {
	store := newMemoryStore()
	store.data[DefaultStorageKey] = []byte("{not json")
	accessor := NewTokenAccessor(store, "", nil)
	assert.Equal(t, "", accessor.Token(context.Background()))

	store.getErr = errors.New("disk unavailable")
	assert.Equal(t, "", accessor.Token(context.Background()))
}

func TestTokenReadsPersistedEnvelope(t *testing.T) {
	store := newMemoryStore()
	store.data["auth-storage"] = []byte(`{"state":{"token":"opaque-token","isAuthenticated":true},"version":0}`)
	accessor := NewTokenAccessor(store, "auth-storage", nil)

	assert.Equal(t, "opaque-token", accessor.Token(context.Background()))
}

func TestSaveAndClear(t *testing.T) {
	store := newMemoryStore()
	accessor := NewTokenAccessor(store, "", nil)
	ctx := context.Background()

	require.Error(t, accessor.Save(ctx, "  ", nil))
	require.NoError(t, accessor.Save(ctx, "tok-1", &models.Profile{ID: "u1", Email: "admin@uni.edu", Role: "admin"}))
	assert.Equal(t, "tok-1", accessor.Token(ctx))
	require.NotNil(t, accessor.User(ctx))
	assert.Equal(t, "admin", accessor.User(ctx).Role)

	require.NoError(t, accessor.Clear(ctx))
	assert.Equal(t, "", accessor.Token(ctx))
}

func TestClaims(t *testing.T) {
	store := newMemoryStore()
	accessor := NewTokenAccessor(store, "", nil)
	accessor.now = func() time.Time { return time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	_, err := accessor.Claims(ctx)
	assert.True(t, errors.Is(err, appErrors.ErrAuthTokenMissing))

	token := signToken(t, jwt.MapClaims{
		"id":    "u1",
		"email": "admin@uni.edu",
		"role":  "admin",
		"exp":   time.Date(2024, 9, 1, 11, 0, 0, 0, time.UTC).Unix(),
	})
	require.NoError(t, accessor.Save(ctx, token, nil))

	claims, err := accessor.Claims(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.Expired)
	assert.Equal(t, token, accessor.Token(ctx))
}
