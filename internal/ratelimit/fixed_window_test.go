package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, name string, limit int) (*FixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client, err := NewRedisClient(srv.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	limiter, err := NewFixedWindowLimiter(client, "test:ratelimit", name, limit, time.Minute)
	require.NoError(t, err)
	return limiter, srv
}

func TestFixedWindowLimiter(t *testing.T) {
	limiter, _ := newLimiter(t, "login", 2)
	ctx := context.Background()

	assert.True(t, limiter.Allow(ctx, "ip-1"), "first request should pass")
	assert.True(t, limiter.Allow(ctx, "ip-1"), "second request should pass")
	assert.False(t, limiter.Allow(ctx, "ip-1"), "third request should be blocked")
	assert.True(t, limiter.Allow(ctx, "ip-2"), "other keys have their own quota")
}

func TestFixedWindowLimiter_NamesDoNotShareQuota(t *testing.T) {
	srv := miniredis.RunT(t)
	client, err := NewRedisClient(srv.Addr(), "")
	require.NoError(t, err)
	defer client.Close()

	login, err := NewFixedWindowLimiter(client, "", "login", 1, time.Minute)
	require.NoError(t, err)
	apply, err := NewFixedWindowLimiter(client, "", "apply", 1, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()
	assert.True(t, login.Allow(ctx, "user-1"))
	assert.True(t, apply.Allow(ctx, "user-1"))
	assert.False(t, login.Allow(ctx, "user-1"))
}

func TestFixedWindowLimiter_FailClosed(t *testing.T) {
	limiter, srv := newLimiter(t, "login", 1)
	srv.Close()
	assert.False(t, limiter.Allow(context.Background(), "ip-1"), "limiter should fail closed on redis errors")
}

func TestConstructorsValidateInput(t *testing.T) {
	_, err := NewRedisClient("  ", "")
	assert.ErrorIs(t, err, ErrNoRedisAddr)

	_, err = NewFixedWindowLimiter(nil, "", "login", 1, time.Second)
	assert.ErrorIs(t, err, ErrNoRedisClient)

	srv := miniredis.RunT(t)
	client, _ := NewRedisClient(srv.Addr(), "")
	defer client.Close()
	_, err = NewFixedWindowLimiter(client, "", "login", 0, time.Second)
	assert.ErrorIs(t, err, ErrBadQuota)
}
