package metadata

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// Set TIJARAH_TEST_REDIS_ADDR (e.g. 127.0.0.1:6379) to run against a real server.
func redisRepo(t *testing.T) *RedisRepository {
	t.Helper()
	addr := os.Getenv("TIJARAH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TIJARAH_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	prefix := "tijarah-test:" + uuid.NewString() + ":"
	r := NewRedisRepository(client, prefix)
	t.Cleanup(func() { _ = client.Del(context.Background(), r.hash).Err() })
	return r
}

func TestRedis_SetManyGetDelete(t *testing.T) {
	r := redisRepo(t)
	ctx := context.Background()

	v, err := r.Get(ctx, "token")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.SetMany(ctx, map[string][]byte{"token": []byte("abc"), "user": []byte(`{"userID":3}`)}))

	v, err = r.Get(ctx, "user")
	require.NoError(t, err)
	require.JSONEq(t, `{"userID":3}`, string(v))

	require.NoError(t, r.Delete(ctx, "token", "user"))
	v, err = r.Get(ctx, "token")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestRedis_UnreachableServerErrorsAreWrapped(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	r := NewRedisRepository(client, "tijarah:")
	ctx := context.Background()

	_, err := r.Get(ctx, "token")
	require.ErrorContains(t, err, "failed to get metadata[token]")

	err = r.SetMany(ctx, map[string][]byte{"token": []byte("x")})
	require.ErrorContains(t, err, "failed to set metadata")

	err = r.Delete(ctx, "token")
	require.ErrorContains(t, err, "failed to delete metadata")
}

func TestRedis_EmptyWritesAreNoops(t *testing.T) {
	r := NewRedisRepository(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), "p:")
	require.NoError(t, r.SetMany(context.Background(), nil))
	require.NoError(t, r.Delete(context.Background()))
	require.Equal(t, "p:session", r.hash)
}
