// Package cache содержит реестр slug на основе Redis.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"petcare/internal/petcare/ports/services"
	"petcare/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodReserve = "reserve"
	LogMethodRelease = "release"

	ErrorFailedToReserve = "failed to reserve slug in redis"
	ErrorFailedToRelease = "failed to release slug in redis"

	keyPrefix = "slug"
)

// SlugRegistry хранит занятые slug ключами slug:<scope>:<slug> без срока жизни.
type SlugRegistry struct {
	client *redis.Client
}

// NewSlugRegistry создает новый экземпляр SlugRegistry.
func NewSlugRegistry(client *redis.Client) services.SlugRegistry {
	return &SlugRegistry{client: client}
}

func slugKey(scope, slug string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, scope, slug)
}

// Reserve атомарно занимает slug. Возвращает false, если slug уже занят.
func (r *SlugRegistry) Reserve(ctx context.Context, scope, slug string) (bool, error) {
	key := slugKey(scope, slug)
	log := logger.Log(ctx).With(zap.String("method", LogMethodReserve), zap.String("key", key))

	ok, err := r.client.SetNX(ctx, key, 1, 0).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToReserve, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToReserve, err)
	}

	log.Debug(ctx, "slug reservation", zap.Bool("reserved", ok))
	return ok, nil
}

// Release освобождает slug. Освобождение свободного slug не является ошибкой.
func (r *SlugRegistry) Release(ctx context.Context, scope, slug string) error {
	key := slugKey(scope, slug)
	log := logger.Log(ctx).With(zap.String("method", LogMethodRelease), zap.String("key", key))

	if err := r.client.Del(ctx, key).Err(); err != nil {
		log.Error(ctx, ErrorFailedToRelease, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToRelease, err)
	}

	return nil
}
