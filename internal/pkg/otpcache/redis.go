package otpcache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis server, for deployments that need OTP
// state shared across processes. TTL handling is delegated to Redis.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis returns a Redis-backed store. Keys are namespaced with prefix.
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "otp:"
	}
	return &Redis{client: client, prefix: prefix}
}

// Put stores value under key with ttl, replacing any previous entry.
func (r *Redis) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

// Get returns the live value for key.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Evict removes any entry for key. Idempotent.
func (r *Redis) Evict(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
