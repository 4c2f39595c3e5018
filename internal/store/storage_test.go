package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStorage(rdb), mr
}

func TestRedisStorageGetSet(t *testing.T) {
	storage, _ := newRedisStorage(t)
	ctx := context.Background()

	var got string
	err := storage.Get(ctx, "missing", &got)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, storage.Set(ctx, "k", "value", time.Minute))
	require.NoError(t, storage.Get(ctx, "k", &got))
	assert.Equal(t, "value", got)

	require.NoError(t, storage.Delete(ctx, "k"))
	assert.ErrorIs(t, storage.Get(ctx, "k", &got), ErrNotFound)
	assert.ErrorIs(t, storage.Delete(ctx, "k"), ErrNotFound)
}

func TestRedisStorageTTL(t *testing.T) {
	storage, mr := newRedisStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, "k", "value", time.Minute))
	mr.FastForward(61 * time.Second)

	var got string
	assert.ErrorIs(t, storage.Get(ctx, "k", &got), ErrNotFound)
}

func TestRedisStorageCompareAndDelete(t *testing.T) {
	storage, _ := newRedisStorage(t)
	ctx := context.Background()

	deleted, err := storage.CompareAndDelete(ctx, "missing", "x")
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, storage.Set(ctx, "k", "123456", time.Minute))

	deleted, err = storage.CompareAndDelete(ctx, "k", "999999")
	require.NoError(t, err)
	assert.False(t, deleted, "mismatch must not delete")

	var got string
	require.NoError(t, storage.Get(ctx, "k", &got), "entry must survive a mismatch")

	deleted, err = storage.CompareAndDelete(ctx, "k", "123456")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = storage.CompareAndDelete(ctx, "k", "123456")
	require.NoError(t, err)
	assert.False(t, deleted, "second delete must fail")
}

func TestRedisStorageIncrement(t *testing.T) {
	storage, mr := newRedisStorage(t)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		count, ttl, err := storage.Increment(ctx, "c", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, count)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	}

	mr.FastForward(61 * time.Second)
	count, _, err := storage.Increment(ctx, "c", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "window reset must start a fresh counter")
}

func TestMemoryStorageGetSet(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	var got string
	assert.ErrorIs(t, storage.Get(ctx, "missing", &got), ErrNotFound)

	require.NoError(t, storage.Set(ctx, "k", "value", time.Minute))
	require.NoError(t, storage.Get(ctx, "k", &got))
	assert.Equal(t, "value", got)

	require.NoError(t, storage.Delete(ctx, "k"))
	assert.ErrorIs(t, storage.Get(ctx, "k", &got), ErrNotFound)
}

func TestMemoryStorageExpiry(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, "k", "value", 30*time.Millisecond))
	time.Sleep(60 * time.Millisecond)

	var got string
	assert.ErrorIs(t, storage.Get(ctx, "k", &got), ErrNotFound)
}

func TestMemoryStorageCompareAndDelete(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, "k", "123456", time.Minute))

	deleted, err := storage.CompareAndDelete(ctx, "k", "999999")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = storage.CompareAndDelete(ctx, "k", "123456")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = storage.CompareAndDelete(ctx, "k", "123456")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryStorageIncrement(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	count, ttl, err := storage.Increment(ctx, "c", 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Greater(t, ttl, time.Duration(0))

	count, _, err = storage.Increment(ctx, "c", 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	time.Sleep(60 * time.Millisecond)
	count, _, err = storage.Increment(ctx, "c", 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// A counter whose window has under a second left must still be visible;
// whole-second TTL rounding would drop it early.
func TestMemoryStorageIncrementSubSecondRemainder(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	count, ttl, err := storage.Increment(ctx, "c", time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Greater(t, ttl, time.Duration(0))

	time.Sleep(600 * time.Millisecond)
	count, ttl, err = storage.Increment(ctx, "c", time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Second)

	time.Sleep(500 * time.Millisecond)
	count, _, err = storage.Increment(ctx, "c", time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "elapsed window must start a fresh counter")
}

func TestStoreWithPrefix(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	codes := New[string](storage, "otp:")
	require.NoError(t, codes.Set(ctx, "abc", "123456", time.Minute))

	var got string
	require.NoError(t, storage.Get(ctx, "otp:abc", &got))
	assert.Equal(t, "123456", got)

	val, err := codes.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "123456", val)
}
