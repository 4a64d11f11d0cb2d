// Package config предоставляет загрузку конфигурации из переменных окружения и YAML-файла.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"petcare/pkg/logger"
)

// EnvConfigPath указывает на необязательный YAML-файл конфигурации.
const EnvConfigPath = "PETCARE_CONFIG_PATH"

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load заполняет структуру T. Если задан PETCARE_CONFIG_PATH, значения читаются
// из файла и переопределяются переменными окружения, иначе только из окружения.
func Load[T any](ctx context.Context, serviceName string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	path := os.Getenv(EnvConfigPath)
	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, path))

	var (
		cfg T
		err error
	)
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
