package services

import (
	"context"
	"io"

	"github.com/google/uuid"

	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
)

// PasswordService хэширует пароли пользователей и сверяет их с хэшем.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)

	// Verify возвращает false без ошибки, если пароль не подходит.
	Verify(ctx context.Context, password, hash string) (bool, error)

	// NeedsRehash сообщает, что хэш создан с устаревшими параметрами
	// и его стоит пересчитать при следующем входе.
	NeedsRehash(hash string) bool
}

// FileStorage хранит медиафайлы и возвращает их публичные URL.
type FileStorage interface {
	Upload(ctx context.Context, r io.Reader, name string, maxBytes int64, allowedExtensions []string) (string, error)

	Delete(ctx context.Context, url string) error
}

// AuditLogger фиксирует доменные события в журнале аудита.
type AuditLogger interface {
	LogEvent(ctx context.Context, event events.Event) error
}

// NotificationService отправляет уведомления пользователям.
type NotificationService interface {
	NotifyUser(ctx context.Context, userID uuid.UUID, subject, message string) error
}

// PaymentRequest - данные для списания пожертвования.
type PaymentRequest struct {
	DonationID      uuid.UUID
	Amount          vo.Money
	PaymentMethodID uuid.UUID
	Description     string
}

// PaymentProcessor проводит платежи и возвращает идентификатор транзакции.
type PaymentProcessor interface {
	Charge(ctx context.Context, req PaymentRequest) (string, error)
}

// GeolocationService определяет координаты по почтовому адресу.
type GeolocationService interface {
	Geocode(ctx context.Context, address vo.Address) (vo.Coordinates, error)
}

// SlugRegistry резервирует уникальные slug в пределах области (типа агрегата).
type SlugRegistry interface {
	// Reserve возвращает false, если slug уже занят.
	Reserve(ctx context.Context, scope, slug string) (bool, error)

	Release(ctx context.Context, scope, slug string) error
}
