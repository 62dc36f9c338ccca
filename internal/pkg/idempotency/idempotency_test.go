package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker(t *testing.T) (*StateTracker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client), mr
}

func TestStateTracker_Acquire(t *testing.T) {
	ctx := context.Background()
	s, mr := newTracker(t)

	state, err := s.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, StateNone, state)

	state, err = s.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, StateInProgress, state)

	require.NoError(t, s.MarkCompleted(ctx, "k", time.Hour))
	state, err = s.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, state)

	val, err := mr.Get(DefaultPrefix + "k")
	require.NoError(t, err)
	assert.Equal(t, StateCompleted.String(), val)
}

func TestStateTracker_AcquireRetakesFailed(t *testing.T) {
	ctx := context.Background()
	s, mr := newTracker(t)

	_, err := s.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.NoError(t, s.MarkFailed(ctx, "k", time.Hour))

	state, err := s.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, StateNone, state)

	val, err := mr.Get(DefaultPrefix + "k")
	require.NoError(t, err)
	assert.Equal(t, StateInProgress.String(), val)

	state, err = s.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, StateInProgress, state)
}

func TestStateTracker_AcquireLockExpires(t *testing.T) {
	ctx := context.Background()
	s, mr := newTracker(t)

	_, err := s.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	state, err := s.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)
	assert.Equal(t, StateNone, state)
}

func TestStateTracker_AcquireInvalidState(t *testing.T) {
	s, mr := newTracker(t)
	require.NoError(t, mr.Set(DefaultPrefix+"bad", "garbage"))

	state, err := s.Acquire(context.Background(), "bad", time.Minute)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, StateError, state)
}

func TestStateTracker_AcquireRedisDown(t *testing.T) {
	s, mr := newTracker(t)
	mr.Close()

	state, err := s.Acquire(context.Background(), "k", time.Minute)
	assert.Error(t, err)
	assert.Equal(t, StateError, state)
}
