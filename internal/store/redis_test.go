package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	st := NewRedisStore(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return st, mr, cleanup
}

func TestRedisStore_SetGet(t *testing.T) {
	st, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, st.Set(ctx, KeyToken, []byte("abc123")))

	// Stored under the prefixed key
	raw, err := mr.Get(storeKey(KeyToken))
	require.NoError(t, err)
	assert.Equal(t, "abc123", raw)

	got, err := st.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc123"), got)
}

func TestRedisStore_MissingKey(t *testing.T) {
	st, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := st.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	st, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, st.Set(ctx, KeyCheckoutItems, []byte(`[]`)))
	require.NoError(t, st.Delete(ctx, KeyCheckoutItems))

	_, err := st.Get(ctx, KeyCheckoutItems)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisStore_NoTTL(t *testing.T) {
	st, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, st.Set(context.Background(), KeyToken, []byte("abc123")))
	assert.Zero(t, mr.TTL(storeKey(KeyToken)))
}
