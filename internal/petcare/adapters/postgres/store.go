package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
	"petcare/pkg/logger"
)

const (
	errCtxBuildQuery    = "error building query"
	errCtxEncodeState   = "error encoding aggregate state"
	errCtxEncodeEvent   = "error encoding event"
	errCtxBeginTx       = "error beginning transaction"
	errCtxCommitTx      = "error committing transaction"
	errCtxInsertRow     = "error inserting aggregate"
	errCtxUpdateRow     = "error updating aggregate"
	errCtxInsertEvents  = "error appending events"
	errCtxQueryRow      = "error querying aggregate"
	logMsgNotFound      = "aggregate not found"
	logMsgConflict      = "version conflict on save"
	logMsgRollbackFail  = "error rolling back transaction"
	logMsgSaved         = "aggregate saved"
	logMsgQueryFailed   = "error querying aggregate"
	logMsgSaveFailed    = "error saving aggregate"
	logMsgCorruptedData = "stored aggregate cannot be restored"
)

// store - общая реализация Repository для одной таблицы агрегатов.
type store[A entities.Aggregate] struct {
	pool          PgxPoolInterface
	table         string
	aggregateType string
	encode        func(A) (entities.AggregateState, any)
	decode        func(entities.AggregateState, []byte) (A, error)
}

func newStore[A entities.Aggregate](
	pool PgxPoolInterface,
	table, aggregateType string,
	encode func(A) (entities.AggregateState, any),
	decode func(entities.AggregateState, []byte) (A, error),
) *store[A] {
	return &store[A]{pool: pool, table: table, aggregateType: aggregateType, encode: encode, decode: decode}
}

func (s *store[A]) log(ctx context.Context, method string) *logger.Logger {
	return logger.Log(ctx).With(zap.String("repository", s.aggregateType), zap.String("method", method))
}

// FindByID находит агрегат по идентификатору.
func (s *store[A]) FindByID(ctx context.Context, id uuid.UUID) (A, error) {
	return s.findOne(ctx, "FindByID", goqu.C(colID).Eq(id.String()))
}

// findByField ищет агрегат по полю JSONB-документа.
func (s *store[A]) findByField(ctx context.Context, method, field, value string) (A, error) {
	return s.findOne(ctx, method, goqu.L("data->>?", field).Eq(value))
}

func (s *store[A]) findOne(ctx context.Context, method string, where exp.Expression) (A, error) {
	log := s.log(ctx, method)
	var zero A

	query, args, err := dialect.From(s.table).
		Select(colID, colVersion, colCreatedAt, colUpdatedAt, colData).
		Where(where).
		Prepared(true).
		ToSQL()
	if err != nil {
		return zero, fmt.Errorf("%s: %w", errCtxBuildQuery, err)
	}

	var (
		root entities.AggregateState
		data []byte
	)
	err = s.pool.QueryRow(ctx, query, args...).Scan(&root.ID, &root.Version, &root.CreatedAt, &root.UpdatedAt, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, logMsgNotFound)
			return zero, fmt.Errorf("%s: %w", s.aggregateType, domainerr.ErrNotFound)
		}
		log.Error(ctx, logMsgQueryFailed, zap.Error(err))
		return zero, fmt.Errorf("%s: %w", errCtxQueryRow, err)
	}

	agg, err := s.decode(root, data)
	if err != nil {
		log.Error(ctx, logMsgCorruptedData, zap.String("id", root.ID.String()), zap.Error(err))
		return zero, err
	}
	return agg, nil
}

// Save записывает агрегат и его ожидающие события одной транзакцией.
// Агрегат без изменений относительно expectedVersion не записывается.
func (s *store[A]) Save(ctx context.Context, agg A, expectedVersion int) (err error) {
	log := s.log(ctx, "Save").With(zap.String("id", agg.ID().String()))

	if agg.Version() == expectedVersion {
		return nil
	}

	root, doc := s.encode(agg)
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxEncodeState, err)
	}
	pending := agg.PendingEvents()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, logMsgSaveFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxBeginTx, err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Warn(ctx, logMsgRollbackFail, zap.Error(rbErr))
		}
	}()

	if expectedVersion == 0 {
		err = s.insert(ctx, tx, root, data)
	} else {
		err = s.update(ctx, tx, root, data, expectedVersion)
	}
	if err != nil {
		if errors.Is(err, domainerr.ErrConcurrencyConflict) {
			log.Info(ctx, logMsgConflict, zap.Int("expected_version", expectedVersion))
		} else {
			log.Error(ctx, logMsgSaveFailed, zap.Error(err))
		}
		return err
	}

	if err = appendEvents(ctx, tx, s.aggregateType, pending); err != nil {
		log.Error(ctx, logMsgSaveFailed, zap.Error(err))
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		log.Error(ctx, logMsgSaveFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCommitTx, err)
	}

	log.Debug(ctx, logMsgSaved, zap.Int("version", root.Version), zap.Int("events", len(pending)))
	return nil
}

func (s *store[A]) insert(ctx context.Context, tx pgx.Tx, root entities.AggregateState, data []byte) error {
	query, args, err := dialect.Insert(s.table).
		Rows(goqu.Record{
			colID:        root.ID.String(),
			colVersion:   root.Version,
			colCreatedAt: root.CreatedAt,
			colUpdatedAt: root.UpdatedAt,
			colData:      string(data),
		}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxBuildQuery, err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == "" || constraint == s.table+"_pkey" {
				return fmt.Errorf("%s %s already exists: %w", s.aggregateType, root.ID, domainerr.ErrConcurrencyConflict)
			}
			return domainerr.InvalidState("%s violates unique constraint %s", s.aggregateType, constraint)
		}
		return fmt.Errorf("%s: %w", errCtxInsertRow, err)
	}
	return nil
}

func (s *store[A]) update(ctx context.Context, tx pgx.Tx, root entities.AggregateState, data []byte, expectedVersion int) error {
	query, args, err := dialect.Update(s.table).
		Set(goqu.Record{
			colVersion:   root.Version,
			colUpdatedAt: root.UpdatedAt,
			colData:      string(data),
		}).
		Where(
			goqu.C(colID).Eq(root.ID.String()),
			goqu.C(colVersion).Eq(expectedVersion),
		).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxBuildQuery, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxUpdateRow, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s expected version %d: %w",
			s.aggregateType, root.ID, expectedVersion, domainerr.ErrConcurrencyConflict)
	}
	return nil
}

// appendEvents записывает события в таблицу domain_events в порядке буфера.
func appendEvents(ctx context.Context, tx pgx.Tx, aggregateType string, evts []events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	rows := make([]interface{}, 0, len(evts))
	for _, e := range evts {
		payload, err := events.Marshal(e)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxEncodeEvent, err)
		}
		meta := e.Meta()
		rows = append(rows, goqu.Record{
			colID:               meta.EventID.String(),
			colAggregateID:      meta.AggregateID.String(),
			colAggregateType:    aggregateType,
			colAggregateVersion: meta.AggregateVersion,
			colEventType:        e.EventType(),
			colOccurredAt:       meta.OccurredAt,
			colPayload:          string(payload),
		})
	}

	query, args, err := dialect.Insert(tableDomainEvents).Rows(rows...).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxBuildQuery, err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", errCtxInsertEvents, err)
	}
	return nil
}
