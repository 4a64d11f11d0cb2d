package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"petcare/pkg/logger"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrReadSchemaVersion       = "failed to read schema version"
)

// ErrDirtySchema означает, что одна из миграций упала на середине
// и схему нужно чинить вручную.
var ErrDirtySchema = errors.New("database schema is dirty")

// MigrateDSN применяет миграции из migrationsPath и проверяет,
// что схема осталась в чистом состоянии.
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) error {
	log := logger.Log(ctx).With(zap.String("path", migrationsPath))

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer m.Close()

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(upErr))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, upErr)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Error(ctx, ErrReadSchemaVersion, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrReadSchemaVersion, err)
	}
	if dirty {
		log.Error(ctx, ErrApplyMigrations, zap.Uint("version", version), zap.Error(ErrDirtySchema))
		return fmt.Errorf("%s: version %d: %w", ErrApplyMigrations, version, ErrDirtySchema)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		log.Info(ctx, LogMigrationsCurrent, zap.Uint("version", version))
		return nil
	}
	log.Info(ctx, LogMigrationsApplied, zap.Uint("version", version))
	return nil
}
