package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedis connects to the server named by EVENTRA_TEST_REDIS_ADDR and
// skips the test when it is unset.
func setupRedis(t *testing.T) *RedisKV {
	t.Helper()
	addr := os.Getenv("EVENTRA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("EVENTRA_TEST_REDIS_ADDR not set")
	}

	kv, err := OpenRedis(addr, "", 0)
	require.NoError(t, err, "failed to connect to Redis")
	t.Cleanup(func() { kv.Close() })
	return kv
}

func uniqueKey(t *testing.T) string {
	key := fmt.Sprintf("eventra_test_%s_%d", t.Name(), time.Now().UnixNano())
	t.Cleanup(func() {
		kv := redis.NewClient(&redis.Options{Addr: os.Getenv("EVENTRA_TEST_REDIS_ADDR")})
		defer kv.Close()
		kv.Del(key, revisionKey(key), historyKey(key))
	})
	return key
}

func TestRedisKV_PutGetDelete(t *testing.T) {
	kv := setupRedis(t)
	key := uniqueKey(t)
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	rev, err := kv.Put(ctx, key, "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rev)
	rev, err = kv.Put(ctx, key, "v2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rev)

	value, ok, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)

	current, err := kv.Revision(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), current)

	history, err := kv.History(ctx, key, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "v2", history[0].Value)

	require.NoError(t, kv.Delete(ctx, key))
	current, err = kv.Revision(ctx, key)
	require.NoError(t, err)
	assert.Zero(t, current)
}

func TestRedisKeys(t *testing.T) {
	assert.Equal(t, "eventra_store_v1:revision", revisionKey("eventra_store_v1"))
	assert.Equal(t, "eventra_store_v1:history", historyKey("eventra_store_v1"))
}
