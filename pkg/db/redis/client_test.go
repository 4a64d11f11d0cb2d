package redis_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare/pkg/db/redis"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	t.Run("успешное подключение", func(t *testing.T) {
		srv := miniredis.RunT(t)
		host, portStr, _ := strings.Cut(srv.Addr(), ":")
		port, err := strconv.Atoi(portStr)
		require.NoError(t, err)

		cfg := redis.DefaultConfig()
		cfg.Host = host
		cfg.Port = port

		client, err := redis.NewClient(ctx, cfg)
		require.NoError(t, err)
		require.NotNil(t, client.RawClient())

		require.NoError(t, client.RawClient().Set(ctx, "k", "v", 0).Err())
		srv.CheckGet(t, "k", "v")
		assert.NoError(t, client.Close(ctx))
	})

	t.Run("ошибка подключения", func(t *testing.T) {
		cfg := redis.DefaultConfig()
		cfg.Port = 1
		cfg.Timeout = 200 * time.Millisecond

		client, err := redis.NewClient(ctx, cfg)
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "failed to connect to Redis")
	})
}
