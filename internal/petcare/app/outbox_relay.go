package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"petcare/internal/petcare/domain/events"
	"petcare/internal/petcare/ports/repositories"
	"petcare/internal/petcare/ports/services"
	"petcare/pkg/logger"
)

const (
	msgRelayStarted   = "outbox relay started"
	msgRelayStopped   = "outbox relay stopped"
	msgRelayDelivered = "outbox events delivered"
	msgRelayDeferred  = "aggregate stream deferred"

	msgErrRelayFailed = "outbox relay iteration failed"

	errCtxFetchingOutbox = "fetching undispatched events"
	errCtxRelayingEvent  = "relaying event"
	errCtxMarkingOutbox  = "marking events as dispatched"
)

const requestIDPrefixRelay = "relay"

// RelayConfig - параметры OutboxRelay. RetryDelay - сколько агрегат
// с недоставленным событием не попадает в выборку, освобождая место
// событиям других агрегатов.
type RelayConfig struct {
	Interval   time.Duration
	BatchSize  int
	Workers    int
	RetryDelay time.Duration
}

// OutboxRelay периодически доставляет события, которые не удалось доставить
// сразу после сохранения агрегата.
//
// События разных агрегатов доставляются параллельно, события одного агрегата
// строго по порядку: после первой ошибки остальные события этого агрегата
// откладываются на RetryDelay, и следующие выборки их пропускают.
type OutboxRelay struct {
	outbox     repositories.OutboxRepository
	dispatcher services.EventDispatcher
	cfg        RelayConfig

	mu       sync.Mutex
	deferred map[uuid.UUID]time.Time
}

// NewOutboxRelay создает OutboxRelay.
func NewOutboxRelay(
	outbox repositories.OutboxRepository,
	dispatcher services.EventDispatcher,
	cfg RelayConfig,
) *OutboxRelay {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &OutboxRelay{
		outbox:     outbox,
		dispatcher: dispatcher,
		cfg:        cfg,
		deferred:   make(map[uuid.UUID]time.Time),
	}
}

// Run выполняет итерации до отмены контекста.
func (r *OutboxRelay) Run(ctx context.Context) error {
	ctx = logger.WithFields(ctx, zap.String("component", "outbox_relay"))
	log := logger.Log(ctx)
	log.Info(ctx, msgRelayStarted,
		zap.Duration("interval", r.cfg.Interval),
		zap.Int("batch_size", r.cfg.BatchSize),
		zap.Int("workers", r.cfg.Workers),
		zap.Duration("retry_delay", r.cfg.RetryDelay))

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := r.RelayOnce(ctx); err != nil && ctx.Err() == nil {
			log.Warn(ctx, msgErrRelayFailed, zap.Error(err))
		}

		select {
		case <-ctx.Done():
			log.Info(ctx, msgRelayStopped)
			return nil
		case <-ticker.C:
		}
	}
}

// RelayOnce доставляет одну пачку событий и возвращает число событий,
// отмеченных доставленными. Отложенные агрегаты в пачку не попадают.
func (r *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	ctx = logger.EnsureRequestID(ctx, requestIDPrefixRelay)
	batch, err := r.outbox.FetchUndispatched(ctx, r.cfg.BatchSize, r.deferredAggregates())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", errCtxFetchingOutbox, err)
	}
	if len(batch) == 0 {
		return 0, nil
	}

	var (
		mu        sync.Mutex
		delivered = make([]uuid.UUID, 0, len(batch))
		g         errgroup.Group
	)
	g.SetLimit(r.cfg.Workers)
	for _, stream := range byAggregate(batch) {
		g.Go(func() error {
			for _, e := range stream {
				if err := r.dispatcher.Dispatch(ctx, e); err != nil {
					r.deferAggregate(ctx, e.Meta().AggregateID)
					return fmt.Errorf("%s %s: %w", errCtxRelayingEvent, e.Meta().EventID, err)
				}
				mu.Lock()
				delivered = append(delivered, e.Meta().EventID)
				mu.Unlock()
			}
			return nil
		})
	}
	dispatchErr := g.Wait()

	if len(delivered) > 0 {
		if err := r.outbox.MarkDispatched(ctx, delivered); err != nil {
			return 0, errors.Join(dispatchErr, fmt.Errorf("%s: %w", errCtxMarkingOutbox, err))
		}
		logger.Log(ctx).Debug(ctx, msgRelayDelivered, zap.Int("events", len(delivered)))
	}
	return len(delivered), dispatchErr
}

// deferredAggregates возвращает агрегаты, чья задержка еще не истекла,
// и забывает остальные.
func (r *OutboxRelay) deferredAggregates() []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var ids []uuid.UUID
	for id, until := range r.deferred {
		if now.Before(until) {
			ids = append(ids, id)
			continue
		}
		delete(r.deferred, id)
	}
	return ids
}

func (r *OutboxRelay) deferAggregate(ctx context.Context, aggregateID uuid.UUID) {
	if r.cfg.RetryDelay <= 0 {
		return
	}
	r.mu.Lock()
	r.deferred[aggregateID] = time.Now().Add(r.cfg.RetryDelay)
	r.mu.Unlock()

	logger.Log(ctx).Debug(ctx, msgRelayDeferred,
		zap.String("aggregate_id", aggregateID.String()),
		zap.Duration("retry_delay", r.cfg.RetryDelay))
}

// byAggregate разбивает пачку на потоки событий по агрегатам,
// сохраняя порядок внутри каждого потока.
func byAggregate(batch []events.Event) [][]events.Event {
	index := make(map[uuid.UUID]int)
	var streams [][]events.Event
	for _, e := range batch {
		id := e.Meta().AggregateID
		i, ok := index[id]
		if !ok {
			i = len(streams)
			index[id] = i
			streams = append(streams, nil)
		}
		streams[i] = append(streams[i], e)
	}
	return streams
}
