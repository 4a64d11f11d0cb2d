package config

import (
	"strings"

	"go.uber.org/zap"

	"petcare/pkg/logger"
)

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level string `yaml:"level" env:"PETCARE_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"PETCARE_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment переводит режим в logger.Environment без учета регистра.
// Неизвестный режим считается development.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if strings.EqualFold(strings.TrimSpace(l.Mode), string(logger.Production)) {
		return logger.Production
	}
	return logger.Development
}

// NewLogger создает logger сервиса: каждая запись помечается полем service.
func (l *LoggingConfig) NewLogger() (*logger.Logger, error) {
	log, err := logger.NewLogger(l.GetEnvironment(), l.Level)
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("service", ServiceName)), nil
}
