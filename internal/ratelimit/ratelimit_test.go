package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rl, err := NewRateLimiter(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { rl.Close() })
	return rl, mr
}

func TestAllow(t *testing.T) {
	ctx := context.Background()
	rl, _ := newLimiter(t)

	for i := 1; i <= 3; i++ {
		allowed, count, err := rl.Allow(ctx, "test:client", 3, time.Hour)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d within limit", i)
		assert.Equal(t, i, count)
	}

	allowed, count, err := rl.Allow(ctx, "test:client", 3, time.Hour)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 4, count)

	allowed, _, err = rl.Allow(ctx, "test:other", 3, time.Hour)
	require.NoError(t, err)
	assert.True(t, allowed, "keys are counted separately")
}

func TestAllowSetsExpiry(t *testing.T) {
	ctx := context.Background()
	rl, mr := newLimiter(t)

	_, _, err := rl.Allow(ctx, "test:ttl", 10, time.Minute)
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, time.Minute, mr.TTL(keys[0]))
}

func TestAllowRejectsShortWindow(t *testing.T) {
	rl, _ := newLimiter(t)
	_, _, err := rl.Allow(context.Background(), "k", 1, 500*time.Millisecond)
	assert.ErrorIs(t, err, ErrWindowTooShort)
}

func TestNewRateLimiterErrors(t *testing.T) {
	_, err := NewRateLimiter(context.Background(), "not a url")
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = NewRateLimiter(context.Background(), "redis://"+addr)
	assert.Error(t, err)
}
