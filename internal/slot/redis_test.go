package slot

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisRepository(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisRepository(client), mr
}

func TestRedisRepository(t *testing.T) {
	repo, mr := setupRedisRepository(t)
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		_, err := repo.Get(ctx, "visitor", "token")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "visitor", "token", "abc", 0))
		val, err := repo.Get(ctx, "visitor", "token")
		require.NoError(t, err)
		assert.Equal(t, "abc", val)
		assert.True(t, mr.Exists("portal:slot:visitor:token"))
	})

	t.Run("slots are independent", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "visitor", "adminToken", "admin", 0))
		require.NoError(t, repo.Delete(ctx, "visitor", "token"))

		_, err := repo.Get(ctx, "visitor", "token")
		assert.ErrorIs(t, err, ErrNotFound)
		val, err := repo.Get(ctx, "visitor", "adminToken")
		require.NoError(t, err)
		assert.Equal(t, "admin", val)
	})

	t.Run("ttl", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "visitor", "short", "x", time.Second))
		mr.FastForward(2 * time.Second)
		_, err := repo.Get(ctx, "visitor", "short")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
