package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"petcare/internal/petcare/domain/domainerr"
	vo "petcare/internal/petcare/domain/valueobjects"
	"petcare/internal/petcare/ports/services"
	"petcare/pkg/logger"
)

// maxSlugAttempts ограничивает число суффиксов при подборе свободного slug.
const maxSlugAttempts = 50

const (
	msgSlugTaken    = "slug is taken, trying next suffix"
	msgSlugReserved = "slug reserved"
	msgErrRelease   = "failed to release slug"

	errCtxReservingSlug = "reserving slug"
)

// ErrSlugExhausted возвращается, когда все варианты slug с суффиксами заняты.
var ErrSlugExhausted = domainerr.InvalidState("no free slug variant left")

// reserveSlug выводит slug из text и резервирует его в области scope.
// Занятый slug получает суффиксы -2, -3 и так далее.
func reserveSlug(ctx context.Context, registry services.SlugRegistry, scope, text string) (vo.Slug, error) {
	base, err := vo.NewSlug(text)
	if err != nil {
		return vo.Slug{}, err
	}
	log := logger.Log(ctx).With(zap.String("scope", scope), zap.String("slug", base.String()))

	candidate := base
	for n := 2; n <= maxSlugAttempts+1; n++ {
		ok, err := registry.Reserve(ctx, scope, candidate.String())
		if err != nil {
			return vo.Slug{}, fmt.Errorf("%s: %w", errCtxReservingSlug, err)
		}
		if ok {
			log.Debug(ctx, msgSlugReserved, zap.String("reserved", candidate.String()))
			return candidate, nil
		}

		log.Debug(ctx, msgSlugTaken, zap.String("candidate", candidate.String()))
		if candidate, err = base.WithSuffix(n); err != nil {
			return vo.Slug{}, err
		}
	}
	return vo.Slug{}, ErrSlugExhausted
}

// releaseSlug освобождает slug после неудачного создания агрегата.
func releaseSlug(ctx context.Context, registry services.SlugRegistry, scope string, slug vo.Slug) {
	if err := registry.Release(ctx, scope, slug.String()); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrRelease,
			zap.String("scope", scope),
			zap.String("slug", slug.String()),
			zap.Error(err))
	}
}

// slugSource выбирает текст для slug: явный slug или запасной вариант.
func slugSource(slug string, fallbacks ...string) string {
	if s := strings.TrimSpace(slug); s != "" {
		return s
	}
	for _, f := range fallbacks {
		if s := strings.TrimSpace(f); s != "" {
			return s
		}
	}
	return ""
}
