package config

import (
	"fmt"
	"time"

	"petcare/pkg/db/redis"
)

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host     string        `yaml:"host" env:"PETCARE_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"PETCARE_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"PETCARE_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"PETCARE_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"PETCARE_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"PETCARE_REDIS_TIMEOUT" env-default:"5s"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ClientConfig преобразует настройки в конфигурацию клиента pkg/db/redis.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}
