package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestThrottle(t *testing.T) (*SignupThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSignupThrottleWithClient(client, time.Minute), mr
}

func TestSignupThrottle_OnePerWindow(t *testing.T) {
	th, mr := newTestThrottle(t)
	ctx := context.Background()

	ok, err := th.Acquire(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = th.Acquire(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.False(t, ok, "email is compared case-insensitively")

	ok, err = th.Acquire(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(61 * time.Second)
	ok, err = th.Acquire(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSignupThrottle_Release(t *testing.T) {
	th, mr := newTestThrottle(t)
	ctx := context.Background()

	ok, err := th.Acquire(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("signup:cooldown:alice@example.com"))

	require.NoError(t, th.Release(ctx, "alice@example.com"))
	assert.False(t, mr.Exists("signup:cooldown:alice@example.com"))

	ok, err = th.Acquire(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSignupThrottle_NilNeverThrottles(t *testing.T) {
	var th *SignupThrottle
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := th.Acquire(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.NoError(t, th.Release(ctx, "alice@example.com"))
	assert.NoError(t, th.Close())
}

func TestSignupThrottle_RedisDown(t *testing.T) {
	th, mr := newTestThrottle(t)
	mr.Close()

	_, err := th.Acquire(context.Background(), "alice@example.com")
	assert.Error(t, err)
}

func TestNewSignupThrottle_BadURL(t *testing.T) {
	_, err := NewSignupThrottle("not-a-url", time.Minute)
	assert.Error(t, err)
}
