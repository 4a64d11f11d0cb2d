// Package domainerr описывает категории ошибок предметной области.
//
// Конкретные ошибки оборачивают одну из категорий через fmt.Errorf("%w: ..."),
// поэтому вызывающий код проверяет их через errors.Is как по конкретной ошибке,
// так и по категории.
package domainerr

import (
	"errors"
	"fmt"
)

// Категории ошибок.
var (
	// ErrInvalidArgument - значение нарушает структурный инвариант.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState - текущее состояние агрегата запрещает операцию.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidOperation - операция не определена для данных операндов.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrConcurrencyConflict - сохраненная версия агрегата изменилась после чтения.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	// ErrNotFound - агрегат отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
)

// InvalidArgument создает ошибку категории ErrInvalidArgument с описанием.
func InvalidArgument(format string, args ...any) error {
	return wrap(ErrInvalidArgument, format, args...)
}

// InvalidState создает ошибку категории ErrInvalidState с описанием.
func InvalidState(format string, args ...any) error {
	return wrap(ErrInvalidState, format, args...)
}

// InvalidOperation создает ошибку категории ErrInvalidOperation с описанием.
func InvalidOperation(format string, args ...any) error {
	return wrap(ErrInvalidOperation, format, args...)
}

func wrap(category error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", category, fmt.Sprintf(format, args...))
}

// IsRetryable сообщает, имеет ли смысл перечитать агрегат и повторить операцию.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict)
}

// IsClientError сообщает, вызвана ли ошибка входными данными или состоянием,
// а не сбоем инфраструктуры.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrInvalidOperation) ||
		errors.Is(err, ErrNotFound)
}
