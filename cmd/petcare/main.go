// Package main реализует точку входа сервиса petcare.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"petcare/internal/petcare/adapters/cache"
	"petcare/internal/petcare/adapters/events"
	"petcare/internal/petcare/adapters/postgres"
	"petcare/internal/petcare/adapters/services"
	"petcare/internal/petcare/app"
	"petcare/internal/petcare/config"
	"petcare/internal/petcare/db"
	"petcare/internal/petcare/resilience"
	"petcare/pkg/db/redis"
	"petcare/pkg/logger"
	"petcare/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "PETCARE_LOGGER_MODE"
	EnvLoggerLevel = "PETCARE_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrInitRedis            = "failed to initialize redis"
	ErrCloseDB              = "failed to close database"
	ErrCloseRedis           = "failed to close redis"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "petcare service started"
	LogServiceShutdownDone = "petcare service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing redis connections"
	LogStoppingRelay       = "stopping outbox relay"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHandlers        = "initializing event handlers"
	LogStartingRelay       = "starting outbox relay"
)

// Названия внешних сервисов для предохранителей.
const (
	serviceNotifications = "notifications"
	servicePayments      = "payments"
)

func main() {
	bootstrap := config.LoggingConfig{Level: os.Getenv(EnvLoggerLevel), Mode: os.Getenv(EnvLoggerMode)}
	log, err := bootstrap.NewLogger()
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.EnsureRequestID(context.Background(), config.ServiceName)

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := cfg.Logging.NewLogger()
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		redisClient, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
		if err != nil {
			log.Error(ctx, ErrInitRedis, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())
		outbox := repoFactory.OutboxRepository()

		log.Info(ctx, LogInitServices)
		dispatcher := events.NewDispatcher()
		committer := app.NewCommitter(dispatcher, outbox, cfg.Retry.ToRetryConfig())
		notifier := services.NewLogNotifier()
		notifierResilience := resilience.NewServiceResilience(serviceNotifications,
			cfg.Notification.CircuitBreakerConfig(),
			cfg.Notification.RetryConfig())
		paymentResilience := resilience.NewServiceResilience(servicePayments,
			resilience.DefaultCircuitBreakerConfig(),
			resilience.DefaultRetryConfig())

		log.Info(ctx, LogInitUseCases)
		useCases := app.NewUseCases(app.Dependencies{
			Animals:           repoFactory.AnimalRepository(),
			Shelters:          repoFactory.ShelterRepository(),
			Users:             repoFactory.UserRepository(),
			Donations:         repoFactory.DonationRepository(),
			Applications:      repoFactory.AdoptionApplicationRepository(),
			LostPets:          repoFactory.LostPetRepository(),
			VolunteerTasks:    repoFactory.VolunteerTaskRepository(),
			Articles:          repoFactory.ArticleRepository(),
			AidRequests:       repoFactory.AnimalAidRequestRepository(),
			SuccessStories:    repoFactory.SuccessStoryRepository(),
			Slugs:             cache.NewSlugRegistry(redisClient.RawClient()),
			Passwords:         services.NewPasswordHasher(cfg.Security.BCryptCost),
			Storage:           services.NewLocalFileStorage(cfg.Storage.Dir, cfg.Storage.BaseURL),
			Payments:          services.NewSandboxPaymentProcessor(),
			PaymentResilience: paymentResilience,
		}, committer)

		log.Info(ctx, LogInitHandlers)
		app.RegisterHandlers(dispatcher,
			services.NewZapAuditLogger(log),
			notifier,
			notifierResilience,
			useCases.Animals)

		log.Info(ctx, LogStartingRelay)
		relay := app.NewOutboxRelay(outbox, dispatcher, app.RelayConfig{
			Interval:   cfg.Outbox.PollInterval,
			BatchSize:  cfg.Outbox.BatchSize,
			Workers:    cfg.Outbox.Workers,
			RetryDelay: cfg.Outbox.RetryDelay,
		})
		relayCtx, stopRelay := context.WithCancel(ctx)
		relayDone := make(chan struct{})
		go func() {
			defer close(relayDone)
			_ = relay.Run(relayCtx)
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingRelay)
				stopRelay()
				return awaitStopped(ctx, relayDone)
			},
			func(ctx context.Context) error {
				if err := awaitStopped(ctx, relayDone); err != nil {
					return fmt.Errorf("%s: %w", ErrCloseDB, err)
				}
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			},
			func(ctx context.Context) error {
				if err := awaitStopped(ctx, relayDone); err != nil {
					return fmt.Errorf("%s: %w", ErrCloseRedis, err)
				}
				log.Info(ctx, LogClosingRedis)
				if err := redisClient.Close(ctx); err != nil {
					return fmt.Errorf("%s: %w", ErrCloseRedis, err)
				}
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// awaitStopped ждет завершения фоновой задачи, но не дольше срока остановки.
func awaitStopped(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
