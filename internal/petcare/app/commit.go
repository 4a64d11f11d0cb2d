// Package app содержит сценарии использования агрегатов, обработчики
// доменных событий и повторную доставку событий из журнала.
package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
	"petcare/internal/petcare/ports/repositories"
	"petcare/internal/petcare/ports/services"
	"petcare/internal/petcare/resilience"
	"petcare/pkg/logger"
)

const (
	msgAggregateUnchanged = "aggregate unchanged, nothing to save"
	msgAggregateSaved     = "aggregate saved"
	msgEventsDispatched   = "events dispatched"

	msgErrDispatchFailed = "event dispatch failed, outbox relay will retry"
	msgErrMarkFailed     = "failed to mark events as dispatched"

	errCtxLoadingAggregate = "loading aggregate"
	errCtxSavingAggregate  = "saving aggregate"
)

// Committer фиксирует изменения агрегатов: сохраняет агрегат вместе с событиями,
// передает события диспетчеру и очищает буфер.
// Конфликты версий повторяются с перечитыванием агрегата.
type Committer struct {
	dispatcher services.EventDispatcher
	outbox     repositories.OutboxRepository
	retry      *resilience.Retry
}

// NewCommitter создает Committer. retryConfig определяет повторы при конфликте версий.
func NewCommitter(
	dispatcher services.EventDispatcher,
	outbox repositories.OutboxRepository,
	retryConfig resilience.RetryConfig,
) *Committer {
	return &Committer{
		dispatcher: dispatcher,
		outbox:     outbox,
		retry:      resilience.NewRetry("aggregate-commit", retryConfig),
	}
}

// create сохраняет новый агрегат.
func create[A entities.Aggregate](ctx context.Context, c *Committer, repo repositories.Repository[A], aggregate A) error {
	if err := repo.Save(ctx, aggregate, 0); err != nil {
		return fmt.Errorf("%s: %w", errCtxSavingAggregate, err)
	}
	c.publish(ctx, aggregate)
	return nil
}

// update загружает агрегат, применяет mutate и сохраняет его с ожидаемой версией.
// При конфликте версий цикл повторяется со свежей копией агрегата.
// Если mutate не изменил версию, агрегат не сохраняется.
func update[A entities.Aggregate](
	ctx context.Context,
	c *Committer,
	repo repositories.Repository[A],
	id uuid.UUID,
	mutate func(A) error,
) (A, error) {
	log := logger.Log(ctx).With(zap.String("aggregate_id", id.String()))

	var result A
	err := c.retry.Execute(ctx, func() error {
		aggregate, err := repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxLoadingAggregate, err)
		}

		expected := aggregate.Version()
		if err := mutate(aggregate); err != nil {
			return err
		}
		if aggregate.Version() == expected {
			log.Debug(ctx, msgAggregateUnchanged)
			result = aggregate
			return nil
		}

		if err := repo.Save(ctx, aggregate, expected); err != nil {
			return fmt.Errorf("%s: %w", errCtxSavingAggregate, err)
		}
		c.publish(ctx, aggregate)
		result = aggregate
		return nil
	})
	if err != nil {
		var zero A
		return zero, err
	}
	return result, nil
}

// publish вызывается после успешного сохранения. Ошибки доставки не возвращаются:
// события уже записаны в журнал и будут доставлены повторно.
func (c *Committer) publish(ctx context.Context, aggregate entities.Aggregate) {
	pending := aggregate.PendingEvents()
	defer aggregate.ClearEvents()

	log := logger.Log(ctx).With(
		zap.String("aggregate_id", aggregate.ID().String()),
		zap.Int("version", aggregate.Version()),
	)
	log.Debug(ctx, msgAggregateSaved, zap.Int("events", len(pending)))

	if len(pending) == 0 {
		return
	}
	if err := c.dispatcher.DispatchAll(ctx, pending); err != nil {
		log.Warn(ctx, msgErrDispatchFailed, zap.Error(err))
		return
	}
	if err := c.outbox.MarkDispatched(ctx, events.IDs(pending)); err != nil {
		log.Warn(ctx, msgErrMarkFailed, zap.Error(err))
		return
	}
	log.Debug(ctx, msgEventsDispatched, zap.Int("events", len(pending)))
}
