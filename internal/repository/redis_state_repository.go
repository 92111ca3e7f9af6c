package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

const redisKeyPrefix = "console:state:"

// RedisStateRepository shares persisted client state between console
// instances through Redis. Keys never expire.
type RedisStateRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStateRepository constructs a Redis-backed repository.
func NewRedisStateRepository(client *redis.Client, logger *zap.Logger) *RedisStateRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStateRepository{client: client, logger: logger}
}

// Get retrieves and unmarshals the stored value into dest.
func (r *RedisStateRepository) Get(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrStateMiss
	}

	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrStateMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal state %s: %w", key, err)
	}

	return nil
}

// Set marshals the value and stores it without expiry.
func (r *RedisStateRepository) Set(ctx context.Context, key string, value interface{}) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal state %s: %w", key, err)
	}

	if err := r.client.Set(ctx, redisKeyPrefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	r.logger.Debug("state persisted", zap.String("key", key), zap.Int("bytes", len(payload)))

	return nil
}

// Delete removes the stored key.
func (r *RedisStateRepository) Delete(ctx context.Context, key string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (r *RedisStateRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
