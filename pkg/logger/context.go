package logger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrInitGlobalLogger возвращается, если глобальный logger не удалось построить.
var ErrInitGlobalLogger = errors.New("failed to initialize global logger")

var (
	globalLogger atomic.Pointer[Logger]
	initMu       sync.Mutex
)

// fallbackLogger пишет только предупреждения и ошибки, пока сервис
// не установил свой logger.
var fallbackLogger = sync.OnceValue(func() *Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zapLogger, err := config.Build()
	if err != nil {
		zapLogger = zap.NewNop()
	}
	return &Logger{l: zapLogger.With(zap.String("logger", "fallback"))}
})

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// NewContext кладет logger в контекст.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithFields кладет в контекст logger с дополнительными полями, чтобы
// нижележащие вызовы Log(ctx) писали их без явной передачи.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	return NewContext(ctx, Log(ctx).With(fields...))
}

// InitGlobalLoggerWithLevel создает глобальный logger, если он еще не задан.
func InitGlobalLoggerWithLevel(env Environment, level string) error {
	initMu.Lock()
	defer initMu.Unlock()

	if globalLogger.Load() != nil {
		return nil
	}
	logger, err := NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitGlobalLogger, err)
	}
	globalLogger.Store(logger)
	return nil
}

// SetGlobalLogger заменяет глобальный logger; nil возвращает резервный.
func SetGlobalLogger(logger *Logger) {
	globalLogger.Store(logger)
}

// Log возвращает logger из контекста, затем глобальный, затем резервный.
func Log(ctx context.Context) *Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*Logger); ok {
			return logger
		}
	}
	if logger := globalLogger.Load(); logger != nil {
		return logger
	}
	return fallbackLogger()
}
