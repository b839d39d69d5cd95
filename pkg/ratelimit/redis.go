package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/course-api/pkg/config"
)

const keyPrefix = "ratelimit:"

// NewRedisClient returns a configured Redis client after a successful ping.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// RedisStore shares counters between API replicas.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore wraps a Redis client.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// Hit implements Store. SETNX seeds the window with its expiry; INCR keeps the TTL,
// so later hits never extend the window.
func (s *RedisStore) Hit(ctx context.Context, key string, size time.Duration) (int64, time.Duration, error) {
	full := keyPrefix + key

	pipe := s.client.TxPipeline()
	pipe.SetNX(ctx, full, 0, size)
	incr := pipe.Incr(ctx, full)
	ttl := pipe.PTTL(ctx, full)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("redis rate limit %s: %w", key, err)
	}

	return incr.Val(), ttl.Val(), nil
}
