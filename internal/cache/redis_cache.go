package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/savedate/save-date/internal/config"
)

// redisCache stores values as JSON under caller-built keys.
type redisCache struct {
	client *redis.Client
	cfg    *config.CacheConfig
}

func NewRedisCache(client *redis.Client, cfg *config.CacheConfig) Cache {
	return &redisCache{client: client, cfg: cfg}
}

// Get reports a miss as (false, nil); only transport or decode failures
// are errors.
func (r *redisCache) Get(ctx context.Context, key string, value any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to get key %s from redis: %w", key, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache data for key %s: %w", key, err)
	}

	return true, nil
}

// Set falls back to the configured default TTL when ttl is not positive.
func (r *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = r.cfg.DefaultTTL
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}

	return nil
}

func (r *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys %v from redis: %w", keys, err)
	}

	return nil
}

const scanBatch = 100

// DeletePrefix removes every key starting with prefix, one SCAN page at a time.
func (r *redisCache) DeletePrefix(ctx context.Context, prefix string) error {
	var cursor uint64

	for {
		keys, next, err := r.client.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys with prefix %s: %w", prefix, err)
		}

		if err := r.Delete(ctx, keys...); err != nil {
			return err
		}

		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close is a no-op: the client is shared and closed by its owner.
func (r *redisCache) Close() error {
	return nil
}
