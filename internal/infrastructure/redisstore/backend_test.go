package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/infrastructure/storage/storagetest"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func testPrefix() string {
	return "test_" + uuid.NewString()[:8] + "_"
}

func cleanup(t *testing.T, client *redis.Client, prefix string) {
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
	})
}

func TestBackend_Contract(t *testing.T) {
	client := getRedisClient(t)
	prefix := testPrefix()
	cleanup(t, client, prefix)

	storagetest.RunBackendContract(t, New(client, prefix, Options{}), prefix)
}

func TestBackend_BeginHonorsContext(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	prefix := testPrefix()
	cleanup(t, client, prefix)
	b := New(client, prefix, Options{LeaseTTL: 5 * time.Second})

	held, err := b.Begin(context.Background())
	require.NoError(t, err)
	defer held.Rollback(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = b.Begin(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBackend_CommitFailsWhenLeaseLost(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	prefix := testPrefix()
	cleanup(t, client, prefix)
	ctx := context.Background()
	b := New(client, prefix, Options{})

	tx, err := b.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Put(ctx, prefix+"products", []byte(`[]`)))

	// Simula expiración del lease y toma por otro proceso.
	require.NoError(t, client.Set(ctx, prefix+"lock", "otro", time.Second).Err())

	err = tx.Commit(ctx)
	assert.ErrorIs(t, err, ErrLeaseLost)
	assert.Equal(t, int64(0), client.Exists(ctx, prefix+"products").Val())
	assert.Equal(t, "otro", client.Get(ctx, prefix+"lock").Val())
}
