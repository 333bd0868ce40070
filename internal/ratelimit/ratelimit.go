// Package ratelimit implements a fixed-window request limiter on Redis.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrWindowTooShort is returned for windows under one second.
var ErrWindowTooShort = errors.New("rate limit window must be at least one second")

// RateLimiter counts requests per key in fixed windows stored in Redis, so
// every server instance sharing the Redis sees the same counts.
type RateLimiter struct {
	redis *redis.Client
}

// NewRateLimiter connects to the Redis at redisURL (redis://host:port/db).
func NewRateLimiter(ctx context.Context, redisURL string) (*RateLimiter, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RateLimiter{redis: client}, nil
}

// Allow records one request for key in the current window and reports
// whether it is within limit, along with the window's count so far.
func (rl *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	secs := int64(window / time.Second)
	if secs < 1 {
		return false, 0, ErrWindowTooShort
	}
	windowKey := fmt.Sprintf("%s:%d", key, time.Now().Unix()/secs)

	pipe := rl.redis.Pipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("rate limit check: %w", err)
	}

	count := int(incr.Val())
	return count <= limit, count, nil
}

// Close releases the Redis connection pool.
func (rl *RateLimiter) Close() error {
	return rl.redis.Close()
}
