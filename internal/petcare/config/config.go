// Package config содержит конфигурацию сервиса petcare.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "petcare/pkg/config"
	"petcare/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName         = "petcare"
	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	Postgres     PostgresConfig     `yaml:"postgres"`
	Redis        RedisConfig        `yaml:"redis"`
	Logging      LoggingConfig      `yaml:"logging"`
	Shutdown     ShutdownConfig     `yaml:"shutdown"`
	Outbox       OutboxConfig       `yaml:"outbox"`
	Retry        RetryConfig        `yaml:"retry"`
	Security     SecurityConfig     `yaml:"security"`
	Notification NotificationConfig `yaml:"notification"`
	Storage      StorageConfig      `yaml:"storage"`
}

// Load загружает конфигурацию из переменных окружения
// и необязательного YAML-файла PETCARE_CONFIG_PATH.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.Int("postgres_min_conn", cfg.Postgres.MinConn),
		zap.Int("postgres_max_conn", cfg.Postgres.MaxConn),
		zap.Duration("postgres_max_conn_lifetime", cfg.Postgres.MaxConnLifetime),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("shutdown_timeout", cfg.Shutdown.GetTimeout()),
		zap.Duration("outbox_poll_interval", cfg.Outbox.PollInterval),
		zap.Int("outbox_batch_size", cfg.Outbox.BatchSize),
		zap.Int("outbox_workers", cfg.Outbox.Workers),
		zap.Duration("outbox_retry_delay", cfg.Outbox.RetryDelay),
		zap.Int("retry_max_attempts", cfg.Retry.MaxAttempts))

	return cfg, nil
}
