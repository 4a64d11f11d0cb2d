package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare/internal/petcare/adapters/cache"
)

func mockRedisServer(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		s.Close()
	})

	return s, client
}

func TestSlugRegistryReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("первое резервирование", func(t *testing.T) {
		s, client := mockRedisServer(t)
		registry := cache.NewSlugRegistry(client)

		ok, err := registry.Reserve(ctx, "shelter", "dobri-ruky")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, s.Exists("slug:shelter:dobri-ruky"))
		assert.Equal(t, 0, int(s.TTL("slug:shelter:dobri-ruky")), "reservation should not expire")
	})

	t.Run("повторное резервирование", func(t *testing.T) {
		_, client := mockRedisServer(t)
		registry := cache.NewSlugRegistry(client)

		_, err := registry.Reserve(ctx, "shelter", "dobri-ruky")
		require.NoError(t, err)
		ok, err := registry.Reserve(ctx, "shelter", "dobri-ruky")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("области не пересекаются", func(t *testing.T) {
		_, client := mockRedisServer(t)
		registry := cache.NewSlugRegistry(client)

		_, err := registry.Reserve(ctx, "shelter", "reks")
		require.NoError(t, err)
		ok, err := registry.Reserve(ctx, "lost_pet", "reks")

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("ошибка соединения", func(t *testing.T) {
		s, client := mockRedisServer(t)
		registry := cache.NewSlugRegistry(client)
		s.Close()

		ok, err := registry.Reserve(ctx, "shelter", "dobri-ruky")

		require.Error(t, err)
		assert.False(t, ok)
		assert.Contains(t, err.Error(), cache.ErrorFailedToReserve)
	})
}

func TestSlugRegistryRelease(t *testing.T) {
	ctx := context.Background()

	t.Run("освобожденный slug снова свободен", func(t *testing.T) {
		s, client := mockRedisServer(t)
		registry := cache.NewSlugRegistry(client)

		_, err := registry.Reserve(ctx, "animal", "murchyk")
		require.NoError(t, err)
		require.NoError(t, registry.Release(ctx, "animal", "murchyk"))
		assert.False(t, s.Exists("slug:animal:murchyk"))

		ok, err := registry.Reserve(ctx, "animal", "murchyk")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("освобождение свободного slug", func(t *testing.T) {
		_, client := mockRedisServer(t)
		registry := cache.NewSlugRegistry(client)

		assert.NoError(t, registry.Release(ctx, "animal", "unknown"))
	})
}
