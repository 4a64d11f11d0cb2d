// Package events содержит внутрипроцессный диспетчер доменных событий.
package events

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainevents "petcare/internal/petcare/domain/events"
	"petcare/internal/petcare/ports/services"
	"petcare/pkg/logger"
)

const (
	msgDispatch        = "dispatching domain event"
	msgNoHandlers      = "no handlers registered for event"
	msgAlreadyHandled  = "event already handled, skipping handler"
	msgErrHandlerFail  = "event handler failed"
	errCtxHandlerEvent = "handler failed for event"
)

// Dispatcher вызывает обработчики, подписанные на тип события, в порядке регистрации.
// Обработчики, подписанные через SubscribeAll, вызываются для каждого события
// перед обработчиками конкретного типа.
//
// Если часть обработчиков события упала, диспетчер запоминает успешные и при
// повторной доставке того же события вызывает только остальные. Память живет
// до перезапуска процесса.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]subscription
	all      []subscription
	nextID   int

	progressMu sync.Mutex
	handled    map[uuid.UUID]map[int]struct{}
}

type subscription struct {
	id     int
	handle services.EventHandler
}

// NewDispatcher создает пустой диспетчер.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]subscription),
		handled:  make(map[uuid.UUID]map[int]struct{}),
	}
}

var _ services.EventDispatcher = (*Dispatcher)(nil)

// Subscribe регистрирует обработчик для указанных типов событий.
func (d *Dispatcher) Subscribe(handler services.EventHandler, eventTypes ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sub := d.newSubscription(handler)
	for _, t := range eventTypes {
		d.handlers[t] = append(d.handlers[t], sub)
	}
}

// SubscribeAll регистрирует обработчик для всех событий.
func (d *Dispatcher) SubscribeAll(handler services.EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.all = append(d.all, d.newSubscription(handler))
}

func (d *Dispatcher) newSubscription(handler services.EventHandler) subscription {
	d.nextID++
	return subscription{id: d.nextID, handle: handler}
}

// Dispatch вызывает обработчики события, еще не обработавшие его. Ошибка
// одного обработчика не останавливает остальные; ошибки объединяются.
func (d *Dispatcher) Dispatch(ctx context.Context, event domainevents.Event) error {
	meta := event.Meta()
	log := logger.Log(ctx).With(
		zap.String("component", "dispatcher"),
		zap.String("event_type", event.EventType()),
		zap.String("event_id", meta.EventID.String()),
		zap.String("aggregate_id", meta.AggregateID.String()),
		zap.Int("aggregate_version", meta.AggregateVersion),
	)

	subs := d.handlersFor(event.EventType())
	if len(subs) == 0 {
		log.Debug(ctx, msgNoHandlers)
		return nil
	}

	log.Debug(ctx, msgDispatch, zap.Int("handlers", len(subs)))

	done := d.handledBy(meta.EventID)
	var (
		errs      []error
		succeeded []int
	)
	for _, s := range subs {
		if _, ok := done[s.id]; ok {
			log.Debug(ctx, msgAlreadyHandled, zap.Int("handler", s.id))
			continue
		}
		if err := s.handle(ctx, event); err != nil {
			log.Warn(ctx, msgErrHandlerFail, zap.Int("handler", s.id), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s %s: %w", errCtxHandlerEvent, meta.EventID, err))
			continue
		}
		succeeded = append(succeeded, s.id)
	}
	d.remember(meta.EventID, succeeded, len(errs) == 0)
	return errors.Join(errs...)
}

// handledBy возвращает обработчики, уже успешно принявшие событие.
func (d *Dispatcher) handledBy(eventID uuid.UUID) map[int]struct{} {
	d.progressMu.Lock()
	defer d.progressMu.Unlock()

	return maps.Clone(d.handled[eventID])
}

// remember сохраняет частичный прогресс доставки. Полностью доставленное
// событие забывается.
func (d *Dispatcher) remember(eventID uuid.UUID, succeeded []int, complete bool) {
	d.progressMu.Lock()
	defer d.progressMu.Unlock()

	if complete {
		delete(d.handled, eventID)
		return
	}
	done, ok := d.handled[eventID]
	if !ok {
		done = make(map[int]struct{}, len(succeeded))
		d.handled[eventID] = done
	}
	for _, id := range succeeded {
		done[id] = struct{}{}
	}
}

// DispatchAll доставляет события строго по порядку.
func (d *Dispatcher) DispatchAll(ctx context.Context, evts []domainevents.Event) error {
	var errs []error
	for _, e := range evts {
		if err := d.Dispatch(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) handlersFor(eventType string) []subscription {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]subscription, 0, len(d.all)+len(d.handlers[eventType]))
	out = append(out, d.all...)
	return append(out, d.handlers[eventType]...)
}
