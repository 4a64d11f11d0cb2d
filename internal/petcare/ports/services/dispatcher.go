package services

import (
	"context"

	"petcare/internal/petcare/domain/events"
)

// EventHandler обрабатывает одно доменное событие.
type EventHandler func(ctx context.Context, event events.Event) error

// EventDispatcher доставляет события обработчикам после фиксации агрегата.
// DispatchAll сохраняет порядок событий.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event events.Event) error

	DispatchAll(ctx context.Context, evts []events.Event) error
}
