package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare/internal/petcare/adapters/postgres"
	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
	"petcare/internal/petcare/ports/repositories"
	"petcare/pkg/logger"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err, "failed to create test logger")
	return logger.NewContext(context.Background(), testLogger)
}

func newTestAnimal(t *testing.T) *entities.Animal {
	t.Helper()
	a, err := entities.CreateAnimal(entities.NewAnimalParams{
		Slug:      "Мурчик",
		Name:      "Мурчик",
		UserID:    uuid.New(),
		BreedID:   uuid.New(),
		ShelterID: uuid.New(),
		IDNumber:  17,
	})
	require.NoError(t, err)
	return a
}

var aggregateColumns = []string{"id", "version", "created_at", "updated_at", "data"}

func TestRepositoryFactory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	factory := postgres.NewRepositoryFactory(mock)
	require.NotNil(t, factory)

	assert.Implements(t, (*repositories.AnimalRepository)(nil), factory.AnimalRepository())
	assert.Implements(t, (*repositories.ShelterRepository)(nil), factory.ShelterRepository())
	assert.Implements(t, (*repositories.UserRepository)(nil), factory.UserRepository())
	assert.Implements(t, (*repositories.DonationRepository)(nil), factory.DonationRepository())
	assert.Implements(t, (*repositories.AdoptionApplicationRepository)(nil), factory.AdoptionApplicationRepository())
	assert.Implements(t, (*repositories.LostPetRepository)(nil), factory.LostPetRepository())
	assert.Implements(t, (*repositories.VolunteerTaskRepository)(nil), factory.VolunteerTaskRepository())
	assert.Implements(t, (*repositories.ArticleRepository)(nil), factory.ArticleRepository())
	assert.Implements(t, (*repositories.AnimalAidRequestRepository)(nil), factory.AnimalAidRequestRepository())
	assert.Implements(t, (*repositories.SuccessStoryRepository)(nil), factory.SuccessStoryRepository())
	assert.Implements(t, (*repositories.OutboxRepository)(nil), factory.OutboxRepository())

	assert.Same(t, factory.AnimalRepository(), factory.AnimalRepository(),
		"multiple calls should return the same repository instance")
}

func TestSave(t *testing.T) {
	ctx := testContext(t)

	t.Run("Successful insert with events", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		animal := newTestAnimal(t)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "animals"`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`INSERT INTO "domain_events"`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		repo := postgres.NewAnimalRepository(mock)
		err = repo.Save(ctx, animal, 0)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("volunteer task goes to its own table", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		task, err := entities.CreateVolunteerTask(entities.NewVolunteerTaskParams{
			VolunteerTaskDetails: entities.VolunteerTaskDetails{
				Title:              "Вигул собак",
				Date:               time.Now(),
				RequiredVolunteers: 2,
			},
			ShelterID: uuid.New(),
		})
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "volunteer_tasks"`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`INSERT INTO "domain_events"`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		repo := postgres.NewVolunteerTaskRepository(mock)
		err = repo.Save(ctx, task, 0)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Successful update", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		animal := newTestAnimal(t)
		animal.ClearEvents()
		require.NoError(t, animal.ChangeStatus(entities.AnimalReserved))

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "animals" SET .* WHERE \(\("id" = \$\d+\) AND \("version" = \$\d+\)\)`).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(`INSERT INTO "domain_events"`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		repo := postgres.NewAnimalRepository(mock)
		err = repo.Save(ctx, animal, 1)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unchanged aggregate is not written", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		animal := newTestAnimal(t)

		repo := postgres.NewAnimalRepository(mock)
		err = repo.Save(ctx, animal, animal.Version())

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		animal := newTestAnimal(t)
		require.NoError(t, animal.ChangeStatus(entities.AnimalReserved))

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "animals"`).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		repo := postgres.NewAnimalRepository(mock)
		err = repo.Save(ctx, animal, 1)

		require.Error(t, err)
		assert.ErrorIs(t, err, domainerr.ErrConcurrencyConflict)
		assert.True(t, domainerr.IsRetryable(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate id on insert is a conflict", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		animal := newTestAnimal(t)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "animals"`).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		repo := postgres.NewAnimalRepository(mock)
		err = repo.Save(ctx, animal, 0)

		assert.ErrorIs(t, err, domainerr.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate slug is a state error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "animals"`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_animals_slug"})
		mock.ExpectRollback()

		repo := postgres.NewAnimalRepository(mock)
		err = repo.Save(ctx, newTestAnimal(t), 0)

		assert.ErrorIs(t, err, domainerr.ErrInvalidState)
		assert.False(t, domainerr.IsRetryable(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("event insert failure rolls back", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		animal := newTestAnimal(t)
		dbErr := errors.New("connection reset")

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "animals"`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`INSERT INTO "domain_events"`).
			WillReturnError(dbErr)
		mock.ExpectRollback()

		repo := postgres.NewAnimalRepository(mock)
		err = repo.Save(ctx, animal, 0)

		assert.ErrorIs(t, err, dbErr)
		assert.False(t, domainerr.IsRetryable(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		repo := postgres.NewAnimalRepository(mock)
		err = repo.Save(ctx, newTestAnimal(t), 0)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindByID(t *testing.T) {
	ctx := testContext(t)
	id := uuid.New()
	created := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Successful find", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		data := []byte(`{"email":"olena@example.com","password_hash":"$2a$10$hash",` +
			`"first_name":"Олена","last_name":"Петренко","phone":"+380501234567","role":"Admin",` +
			`"points":15,"language":"uk"}`)
		rows := pgxmock.NewRows(aggregateColumns).AddRow(id.String(), 4, created, created.Add(time.Hour), data)
		mock.ExpectQuery(`SELECT "id", "version", "created_at", "updated_at", "data" FROM "users" WHERE \("id" = \$1\)`).
			WillReturnRows(rows)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByID(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, id, user.ID())
		assert.Equal(t, 4, user.Version())
		assert.Equal(t, entities.RoleAdmin, user.Role())
		assert.Equal(t, 15, user.Points())
		assert.Empty(t, user.PendingEvents())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("aggregate not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .* FROM "users"`).WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByID(ctx, id)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, domainerr.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupted document", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows(aggregateColumns).AddRow(id.String(), 1, created, created, []byte(`{"slug":""}`))
		mock.ExpectQuery(`SELECT .* FROM "lost_pets"`).WillReturnRows(rows)

		repo := postgres.NewLostPetRepository(mock)
		_, err = repo.FindByID(ctx, id)

		assert.ErrorIs(t, err, postgres.ErrCorruptedDocument)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindByDocumentField(t *testing.T) {
	ctx := testContext(t)

	t.Run("shelter by slug", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .* FROM "shelters" WHERE \(data->>\$1 = \$2\)`).
			WithArgs("slug", "dobri-ruky").
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewShelterRepository(mock)
		_, err = repo.FindBySlug(ctx, "dobri-ruky")

		assert.ErrorIs(t, err, domainerr.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("article by slug", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		id := uuid.New()
		data := []byte(`{"slug":"yak-hoduvaty-kota","title":"Як годувати кота","content":"...","status":"Published"}`)
		rows := pgxmock.NewRows(aggregateColumns).AddRow(id.String(), 3, time.Now(), time.Now(), data)
		mock.ExpectQuery(`SELECT .* FROM "articles" WHERE \(data->>\$1 = \$2\)`).
			WithArgs("slug", "yak-hoduvaty-kota").
			WillReturnRows(rows)

		repo := postgres.NewArticleRepository(mock)
		article, err := repo.FindBySlug(ctx, "yak-hoduvaty-kota")

		require.NoError(t, err)
		assert.Equal(t, id, article.ID())
		assert.Equal(t, entities.ArticlePublished, article.Status())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("user by email ignores case", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .* FROM "users"`).
			WithArgs("email", "olena@example.com").
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewUserRepository(mock)
		_, err = repo.FindByEmail(ctx, " Olena@Example.COM ")

		assert.ErrorIs(t, err, domainerr.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository(t *testing.T) {
	ctx := testContext(t)

	t.Run("Successful fetch in write order", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		created := events.AnimalCreated{Envelope: events.NewEnvelope(uuid.New(), 1, time.Now())}
		changed := events.AnimalStatusChanged{
			Envelope:  events.NewEnvelope(created.AggregateID, 2, time.Now()),
			OldStatus: "Available",
			NewStatus: "Reserved",
		}
		p1, err := events.Marshal(created)
		require.NoError(t, err)
		p2, err := events.Marshal(changed)
		require.NoError(t, err)

		rows := pgxmock.NewRows([]string{"event_type", "payload"}).
			AddRow(created.EventType(), p1).
			AddRow(changed.EventType(), p2)
		mock.ExpectQuery(`SELECT "event_type", "payload" FROM "domain_events" WHERE \("dispatched_at" IS NULL\) ORDER BY "seq" ASC LIMIT \$1`).
			WillReturnRows(rows)

		repo := postgres.NewOutboxRepository(mock)
		evts, err := repo.FetchUndispatched(ctx, 50, nil)

		require.NoError(t, err)
		require.Len(t, evts, 2)
		assert.Equal(t, created.EventID, evts[0].Meta().EventID)
		assert.Equal(t, changed.EventID, evts[1].Meta().EventID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deferred aggregates are skipped", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		blocked, other := uuid.New(), uuid.New()
		healthy := events.AnimalStatusChanged{Envelope: events.NewEnvelope(uuid.New(), 2, time.Now())}
		payload, err := events.Marshal(healthy)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT "event_type", "payload" FROM "domain_events" WHERE \(\("dispatched_at" IS NULL\) AND \("aggregate_id" NOT IN \(\$1, \$2\)\)\) ORDER BY "seq" ASC LIMIT \$3`).
			WithArgs(blocked.String(), other.String(), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"event_type", "payload"}).AddRow(healthy.EventType(), payload))

		repo := postgres.NewOutboxRepository(mock)
		evts, err := repo.FetchUndispatched(ctx, 10, []uuid.UUID{blocked, other})

		require.NoError(t, err)
		require.Len(t, evts, 1)
		assert.Equal(t, healthy.EventID, evts[0].Meta().EventID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown event type", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"event_type", "payload"}).AddRow("Unknown", []byte(`{}`))
		mock.ExpectQuery(`SELECT .* FROM "domain_events"`).WillReturnRows(rows)

		repo := postgres.NewOutboxRepository(mock)
		_, err = repo.FetchUndispatched(ctx, 10, nil)

		assert.ErrorIs(t, err, events.ErrUnknownEventType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Successful mark", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE "domain_events" SET "dispatched_at"=\$1 WHERE \(\("id" IN \(\$2, \$3\)\) AND \("dispatched_at" IS NULL\)\)`).
			WillReturnResult(pgxmock.NewResult("UPDATE", 2))

		repo := postgres.NewOutboxRepository(mock)
		err = repo.MarkDispatched(ctx, []uuid.UUID{uuid.New(), uuid.New()})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty mark is a no-op", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := postgres.NewOutboxRepository(mock)
		require.NoError(t, repo.MarkDispatched(ctx, nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
