// Package postgres реализует границу сохранения агрегатов в PostgreSQL.
//
// Каждый агрегат хранится строкой с версией и JSONB-документом состояния.
// Ожидающие события агрегата записываются в таблицу domain_events
// в той же транзакции, что и сам агрегат.
package postgres

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // регистрация диалекта
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	jsoniter "github.com/json-iterator/go"
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиториями.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

const (
	tableAnimals              = "animals"
	tableShelters             = "shelters"
	tableUsers                = "users"
	tableDonations            = "donations"
	tableAdoptionApplications = "adoption_applications"
	tableLostPets             = "lost_pets"
	tableVolunteerTasks       = "volunteer_tasks"
	tableArticles             = "articles"
	tableAnimalAidRequests    = "animal_aid_requests"
	tableSuccessStories       = "success_stories"
	tableDomainEvents         = "domain_events"

	colID               = "id"
	colVersion          = "version"
	colCreatedAt        = "created_at"
	colUpdatedAt        = "updated_at"
	colData             = "data"
	colAggregateID      = "aggregate_id"
	colAggregateType    = "aggregate_type"
	colAggregateVersion = "aggregate_version"
	colEventType        = "event_type"
	colOccurredAt       = "occurred_at"
	colPayload          = "payload"
	colDispatchedAt     = "dispatched_at"
	colSeq              = "seq"

	dialectPostgres = "postgres"

	pgUniqueViolation = "23505"
)

var (
	dialect = goqu.Dialect(dialectPostgres)
	json    = jsoniter.ConfigCompatibleWithStandardLibrary
)

// uniqueViolation возвращает имя нарушенного ограничения уникальности.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
