package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	t.Run("MissFillsCache", func(t *testing.T) {
		calls := 0
		var got int64
		err := Aside(ctx, "user:1:posts:count", &got, time.Minute, func() error {
			calls++
			got = 42
			return nil
		})
		require.NoError(t, err)
		assert.EqualValues(t, 42, got)
		assert.Equal(t, 1, calls)

		raw, err := mr.Get("user:1:posts:count")
		require.NoError(t, err)
		assert.Equal(t, "42", raw)
	})

	t.Run("HitSkipsFetch", func(t *testing.T) {
		require.NoError(t, mr.Set("user:2:posts:count", "7"))

		calls := 0
		var got int64
		err := Aside(ctx, "user:2:posts:count", &got, time.Minute, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.EqualValues(t, 7, got)
		assert.Zero(t, calls)
	})

	t.Run("CorruptEntryRefetches", func(t *testing.T) {
		require.NoError(t, mr.Set("user:3:posts:count", "{not json"))

		var got int64
		err := Aside(ctx, "user:3:posts:count", &got, time.Minute, func() error {
			got = 9
			return nil
		})
		require.NoError(t, err)
		assert.EqualValues(t, 9, got)
	})

	t.Run("FetchErrorPropagatesAndNothingCached", func(t *testing.T) {
		var got int64
		err := Aside(ctx, "user:4:posts:count", &got, time.Minute, func() error {
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, mr.Exists("user:4:posts:count"))
	})
}

func TestAsideWithoutClient(t *testing.T) {
	SetClient(nil)

	var got int64
	err := Aside(context.Background(), "user:1:posts:count", &got, time.Minute, func() error {
		got = 5
		return nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, got)
}

func TestInvalidateFollowEdge(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(FollowingCountKey(1), "3"))
	require.NoError(t, mr.Set(FollowerCountKey(2), "8"))
	require.NoError(t, mr.Set(FollowerCountKey(1), "1"))

	InvalidateFollowEdge(ctx, 1, 2)

	assert.False(t, mr.Exists(FollowingCountKey(1)))
	assert.False(t, mr.Exists(FollowerCountKey(2)))
	// The untouched side of the edge keeps its counter.
	assert.True(t, mr.Exists(FollowerCountKey(1)))
}

func TestInvalidatePostCount(t *testing.T) {
	mr := setupMiniredis(t)

	require.NoError(t, mr.Set(PostCountKey(5), "12"))
	InvalidatePostCount(context.Background(), 5)
	assert.False(t, mr.Exists(PostCountKey(5)))
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "user:followers:count", keyPrefix("user:7:followers:count"))
	assert.Equal(t, "user:posts:count", keyPrefix("user:123:posts:count"))
	assert.Equal(t, "health", keyPrefix("health"))
}
