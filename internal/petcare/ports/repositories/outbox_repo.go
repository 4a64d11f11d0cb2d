package repositories

import (
	"context"

	"github.com/google/uuid"

	"petcare/internal/petcare/domain/events"
)

// OutboxRepository определяет операции над журналом событий, записанных вместе с агрегатами.
type OutboxRepository interface {
	// FetchUndispatched возвращает не более limit неотправленных событий
	// в порядке записи, пропуская события агрегатов из skip.
	FetchUndispatched(ctx context.Context, limit int, skip []uuid.UUID) ([]events.Event, error)

	MarkDispatched(ctx context.Context, eventIDs []uuid.UUID) error
}
