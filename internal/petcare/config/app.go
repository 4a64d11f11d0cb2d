package config

import (
	"time"

	"petcare/internal/petcare/resilience"
)

// OutboxConfig содержит настройки повторной доставки событий.
type OutboxConfig struct {
	PollInterval time.Duration `yaml:"poll_interval" env:"PETCARE_OUTBOX_POLL_INTERVAL" env-default:"5s"`
	BatchSize    int           `yaml:"batch_size" env:"PETCARE_OUTBOX_BATCH_SIZE" env-default:"100"`
	Workers      int           `yaml:"workers" env:"PETCARE_OUTBOX_WORKERS" env-default:"4"`
	RetryDelay   time.Duration `yaml:"retry_delay" env:"PETCARE_OUTBOX_RETRY_DELAY" env-default:"30s"`
}

// RetryConfig содержит настройки повторов при конфликте версий.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" env:"PETCARE_RETRY_MAX_ATTEMPTS" env-default:"3"`
	Backoff     time.Duration `yaml:"backoff" env:"PETCARE_RETRY_BACKOFF" env-default:"50ms"`
}

// ToRetryConfig возвращает конфигурацию повторов для resilience.
func (r *RetryConfig) ToRetryConfig() resilience.RetryConfig {
	return resilience.ConflictRetryConfig(r.MaxAttempts, r.Backoff)
}

// SecurityConfig содержит настройки хэширования паролей.
type SecurityConfig struct {
	BCryptCost int `yaml:"bcrypt_cost" env:"PETCARE_BCRYPT_COST" env-default:"10"`
}

// NotificationConfig содержит настройки устойчивости сервиса уведомлений.
type NotificationConfig struct {
	ErrorThreshold   int           `yaml:"error_threshold" env:"PETCARE_NOTIFY_ERROR_THRESHOLD" env-default:"5"`
	OpenTimeout      time.Duration `yaml:"open_timeout" env:"PETCARE_NOTIFY_OPEN_TIMEOUT" env-default:"30s"`
	SuccessThreshold int           `yaml:"success_threshold" env:"PETCARE_NOTIFY_SUCCESS_THRESHOLD" env-default:"2"`
	MaxAttempts      int           `yaml:"max_attempts" env:"PETCARE_NOTIFY_MAX_ATTEMPTS" env-default:"3"`
}

// CircuitBreakerConfig возвращает конфигурацию предохранителя.
func (n *NotificationConfig) CircuitBreakerConfig() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		ErrorThreshold:   n.ErrorThreshold,
		Timeout:          n.OpenTimeout,
		SuccessThreshold: n.SuccessThreshold,
	}
}

// RetryConfig возвращает конфигурацию повторов отправки уведомления.
func (n *NotificationConfig) RetryConfig() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxAttempts = n.MaxAttempts
	return cfg
}

// StorageConfig содержит настройки хранения медиафайлов.
type StorageConfig struct {
	Dir     string `yaml:"dir" env:"PETCARE_STORAGE_DIR" env-default:"./media"`
	BaseURL string `yaml:"base_url" env:"PETCARE_STORAGE_BASE_URL" env-default:"http://localhost:8080/media"`
}
