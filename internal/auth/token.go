package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-adp-console/internal/models"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

// DefaultStorageKey is where the auth blob is persisted.
const DefaultStorageKey = "auth-storage"

type stateStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// State is the persisted auth slice.
type State struct {
	Token           string          `json:"token"`
	User            *models.Profile `json:"user,omitempty"`
	IsAuthenticated bool            `json:"isAuthenticated"`
}

// blob mirrors the persisted-storage envelope {"state": ..., "version": n}.
type blob struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

// Claims are the unverified fields read from the bearer token.
type Claims struct {
	Subject   string     `json:"sub,omitempty"`
	Email     string     `json:"email,omitempty"`
	Role      string     `json:"role,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired"`
}

// TokenAccessor reads and writes the persisted bearer token.
type TokenAccessor struct {
	store  stateStore
	key    string
	logger *zap.Logger
	now    func() time.Time
}

// NewTokenAccessor constructs a TokenAccessor.
func NewTokenAccessor(store stateStore, key string, logger *zap.Logger) *TokenAccessor {
	if key == "" {
		key = DefaultStorageKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenAccessor{store: store, key: key, logger: logger, now: time.Now}
}

// Token returns the persisted bearer token, or "" when none is stored or the
// stored blob cannot be read. It never fails.
func (a *TokenAccessor) Token(ctx context.Context) string {
	state, err := a.load(ctx)
	if err != nil {
		if !errors.Is(err, appErrors.ErrStateMiss) {
			a.logger.Warn("failed to read auth storage", zap.String("key", a.key), zap.Error(err))
		}
		return ""
	}
	token := strings.TrimSpace(state.Token)
	if token == "" {
		return ""
	}
	if claims, err := a.parse(token); err == nil && claims.Expired {
		a.logger.Warn("stored auth token has expired", zap.Timep("expires_at", claims.ExpiresAt))
	}
	return token
}

// User returns the persisted user, if any.
func (a *TokenAccessor) User(ctx context.Context) *models.Profile {
	state, err := a.load(ctx)
	if err != nil {
		return nil
	}
	return state.User
}

// Save persists a token and optional user profile.
func (a *TokenAccessor) Save(ctx context.Context, token string, user *models.Profile) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return appErrors.Clone(appErrors.ErrValidation, "token is required")
	}
	return a.store.Set(ctx, a.key, blob{State: State{Token: token, User: user, IsAuthenticated: true}})
}

// Clear removes the persisted auth blob.
func (a *TokenAccessor) Clear(ctx context.Context) error {
	return a.store.Delete(ctx, a.key)
}

// Claims decodes the stored token without verifying its signature; the
// backend remains the authority on validity.
func (a *TokenAccessor) Claims(ctx context.Context) (*Claims, error) {
	token := a.Token(ctx)
	if token == "" {
		return nil, appErrors.ErrAuthTokenMissing
	}
	return a.parse(token)
}

func (a *TokenAccessor) load(ctx context.Context) (State, error) {
	if a.store == nil {
		return State{}, appErrors.ErrStateMiss
	}
	var b blob
	if err := a.store.Get(ctx, a.key, &b); err != nil {
		return State{}, err
	}
	return b.State, nil
}

func (a *TokenAccessor) parse(token string) (*Claims, error) {
	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mapClaims); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "stored token is not a JWT")
	}

	claims := &Claims{
		Subject: firstString(mapClaims, "sub", "id", "userId", "_id"),
		Email:   firstString(mapClaims, "email"),
		Role:    firstString(mapClaims, "role"),
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt := exp.Time.UTC()
		claims.ExpiresAt = &expiresAt
		claims.Expired = a.now().After(expiresAt)
	}
	return claims, nil
}

func firstString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if value, ok := claims[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}
