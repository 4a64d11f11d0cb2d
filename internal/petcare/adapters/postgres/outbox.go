package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/events"
	"petcare/internal/petcare/ports/repositories"
	"petcare/pkg/logger"
)

const (
	errCtxQueryEvents   = "error querying undispatched events"
	errCtxScanEvent     = "error scanning event row"
	errCtxDecodeEvent   = "error decoding event"
	errCtxMarkEvents    = "error marking events dispatched"
	logMsgFetchedEvents = "fetched undispatched events"
	logMsgMarkedEvents  = "events marked as dispatched"
)

var nowUTC = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

// OutboxRepository читает и отмечает события таблицы domain_events.
type OutboxRepository struct {
	pool PgxPoolInterface
}

// NewOutboxRepository создает новый экземпляр репозитория журнала событий.
func NewOutboxRepository(pool PgxPoolInterface) repositories.OutboxRepository {
	return &OutboxRepository{pool: pool}
}

// FetchUndispatched возвращает неотправленные события в порядке записи.
// События агрегатов из skip не выбираются.
func (r *OutboxRepository) FetchUndispatched(ctx context.Context, limit int, skip []uuid.UUID) ([]events.Event, error) {
	log := logger.Log(ctx).With(zap.String("repository", "outbox"), zap.String("method", "FetchUndispatched"))

	where := []goqu.Expression{goqu.C(colDispatchedAt).IsNull()}
	if len(skip) > 0 {
		where = append(where, goqu.C(colAggregateID).NotIn(uuidStrings(skip)))
	}

	query, args, err := dialect.From(tableDomainEvents).
		Select(colEventType, colPayload).
		Where(where...).
		Order(goqu.C(colSeq).Asc()).
		Limit(uint(limit)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxBuildQuery, err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, errCtxQueryEvents, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxQueryEvents, err)
	}
	defer rows.Close()

	var result []events.Event
	for rows.Next() {
		var (
			eventType string
			payload   []byte
		)
		if err := rows.Scan(&eventType, &payload); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxScanEvent, err)
		}
		e, err := events.Unmarshal(eventType, payload)
		if err != nil {
			log.Error(ctx, errCtxDecodeEvent, zap.String("event_type", eventType), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxDecodeEvent, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxQueryEvents, err)
	}

	log.Debug(ctx, logMsgFetchedEvents, zap.Int("count", len(result)))
	return result, nil
}

// MarkDispatched проставляет время отправки указанным событиям.
func (r *OutboxRepository) MarkDispatched(ctx context.Context, eventIDs []uuid.UUID) error {
	if len(eventIDs) == 0 {
		return nil
	}
	log := logger.Log(ctx).With(zap.String("repository", "outbox"), zap.String("method", "MarkDispatched"))

	query, args, err := dialect.Update(tableDomainEvents).
		Set(goqu.Record{colDispatchedAt: nowUTC()}).
		Where(goqu.C(colID).In(uuidStrings(eventIDs)), goqu.C(colDispatchedAt).IsNull()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxBuildQuery, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		log.Error(ctx, errCtxMarkEvents, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxMarkEvents, err)
	}

	log.Debug(ctx, logMsgMarkedEvents, zap.Int64("count", tag.RowsAffected()))
	return nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
