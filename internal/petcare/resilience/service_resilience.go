package resilience

import (
	"context"

	"go.uber.org/zap"

	"petcare/pkg/logger"
)

// ServiceResilience объединяет Circuit Breaker и повторы для вызовов внешнего сервиса.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает обертку отказоустойчивости для сервиса.
func NewServiceResilience(serviceName string, cbConfig CircuitBreakerConfig, retryConfig RetryConfig) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, cbConfig),
		retry:          NewRetry(serviceName, retryConfig),
	}
}

// CircuitState возвращает состояние Circuit Breaker сервиса.
func (r *ServiceResilience) CircuitState() CircuitState {
	return r.circuitBreaker.State()
}

// Execute выполняет операцию с отказоустойчивостью.
func (r *ServiceResilience) Execute(ctx context.Context, operationName string, operation func() error) error {
	logger.Log(ctx).With(
		zap.String("service", r.serviceName),
		zap.String("operation", operationName),
	).Debug(ctx, "executing operation with resilience")

	return r.circuitBreaker.Execute(ctx, func() error {
		return r.retry.Execute(ctx, operation)
	})
}

// ExecuteWithResult выполняет операцию с отказоустойчивостью и возвращает ее результат.
func ExecuteWithResult[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func() (T, error)) (T, error) {
	var result T
	err := r.Execute(ctx, operationName, func() error {
		var err error
		result, err = operation()
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
