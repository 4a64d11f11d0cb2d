// Package postgres открывает пул соединений pgx и применяет миграции.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"petcare/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting        = "connecting to Postgres database"
	LogConnected         = "successfully connected to Postgres"
	LogClosing           = "closing Postgres connection pool"
	LogMigrationsApplied = "database migrations successfully applied"
	LogMigrationsCurrent = "database schema is already up to date"
)

// Константы для сообщений об ошибках.
const (
	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
)

// ErrInvalidPoolSize возвращается, если границы пула противоречат друг другу.
var ErrInvalidPoolSize = errors.New("invalid connection pool size")

const runtimeParamApplicationName = "application_name"

// PoolOptions описывает пул соединений. Нулевые длительности оставляют
// значения pgxpool по умолчанию.
type PoolOptions struct {
	DSN               string
	MinConns          int
	MaxConns          int
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	ApplicationName   string
}

func (o PoolOptions) validate() error {
	if o.MaxConns < 1 || o.MinConns < 0 || o.MinConns > o.MaxConns {
		return fmt.Errorf("%w: min=%d max=%d", ErrInvalidPoolSize, o.MinConns, o.MaxConns)
	}
	return nil
}

func (o PoolOptions) apply(cfg *pgxpool.Config) {
	cfg.MinConns = int32(o.MinConns)
	cfg.MaxConns = int32(o.MaxConns)
	if o.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = o.MaxConnLifetime
	}
	if o.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = o.MaxConnIdleTime
	}
	if o.HealthCheckPeriod > 0 {
		cfg.HealthCheckPeriod = o.HealthCheckPeriod
	}
	if o.ApplicationName != "" {
		cfg.ConnConfig.RuntimeParams[runtimeParamApplicationName] = o.ApplicationName
	}
}

// Database представляет пул соединений с Postgres.
type Database struct {
	pool *pgxpool.Pool
}

// New открывает пул по opts и проверяет соединение.
func New(ctx context.Context, opts PoolOptions) (*Database, error) {
	log := logger.Log(ctx)

	if err := opts.validate(); err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	poolCfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}
	opts.apply(poolCfg)

	log.Info(ctx, LogConnecting,
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.Int32("min_conns", poolCfg.MinConns),
		zap.Int32("max_conns", poolCfg.MaxConns),
		zap.Duration("max_conn_lifetime", poolCfg.MaxConnLifetime),
		zap.Duration("health_check_period", poolCfg.HealthCheckPeriod))

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogConnected)
	return &Database{pool: pool}, nil
}

// Pool возвращает пул соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Close закрывает пул, дожидаясь возврата занятых соединений.
func (db *Database) Close(ctx context.Context) {
	stat := db.pool.Stat()
	logger.Log(ctx).Info(ctx, LogClosing,
		zap.Int32("acquired_conns", stat.AcquiredConns()),
		zap.Int32("total_conns", stat.TotalConns()))
	db.pool.Close()
}

// Ping проверяет доступность базы данных.
func (db *Database) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}
