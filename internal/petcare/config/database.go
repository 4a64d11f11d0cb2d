package config

import (
	"fmt"
	"time"

	"petcare/pkg/db/postgres"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host              string        `yaml:"host" env:"PETCARE_POSTGRES_HOST" env-default:"localhost"`
	Port              int           `yaml:"port" env:"PETCARE_POSTGRES_PORT" env-default:"5432"`
	User              string        `yaml:"user" env:"PETCARE_POSTGRES_USER" env-default:"postgres"`
	Password          string        `yaml:"password" env:"PETCARE_POSTGRES_PASSWORD" env-default:"postgres"`
	Database          string        `yaml:"database" env:"PETCARE_POSTGRES_DB" env-default:"petcare"`
	MinConn           int           `yaml:"min_conn" env:"PETCARE_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn           int           `yaml:"max_conn" env:"PETCARE_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime   time.Duration `yaml:"max_conn_lifetime" env:"PETCARE_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	MaxConnIdleTime   time.Duration `yaml:"max_conn_idle_time" env:"PETCARE_POSTGRES_MAX_CONN_IDLE_TIME" env-default:"30m"`
	HealthCheckPeriod time.Duration `yaml:"health_check_period" env:"PETCARE_POSTGRES_HEALTH_CHECK_PERIOD" env-default:"1m"`
	MigrationsDir     string        `yaml:"migrations_dir" env:"PETCARE_POSTGRES_MIGRATIONS_DIR" env-default:"migrations/petcare"`
}

// PoolOptions возвращает параметры пула соединений сервиса.
func (p *PostgresConfig) PoolOptions() postgres.PoolOptions {
	return postgres.PoolOptions{
		DSN:               p.GetDSN(),
		MinConns:          p.MinConn,
		MaxConns:          p.MaxConn,
		MaxConnLifetime:   p.MaxConnLifetime,
		MaxConnIdleTime:   p.MaxConnIdleTime,
		HealthCheckPeriod: p.HealthCheckPeriod,
		ApplicationName:   ServiceName,
	}
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}
