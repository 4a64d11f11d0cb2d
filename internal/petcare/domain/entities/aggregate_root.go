package entities

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"petcare/internal/petcare/domain/events"
)

// Aggregate - контракт агрегата для границы сохранения.
type Aggregate interface {
	Identifiable
	Version() int
	PendingEvents() []events.Event
	ClearEvents()
}

// AggregateRoot добавляет к Entity версию для оптимистичной блокировки
// и буфер событий, еще не переданных диспетчеру.
type AggregateRoot struct {
	Entity
	version       int
	pendingEvents []events.Event
}

func newAggregateRoot(id uuid.UUID) AggregateRoot {
	return AggregateRoot{Entity: newEntity(id)}
}

func (a *AggregateRoot) Version() int { return a.version }

// PendingEvents возвращает копию буфера в порядке записи.
func (a *AggregateRoot) PendingEvents() []events.Event {
	return slices.Clone(a.pendingEvents)
}

// ClearEvents очищает буфер. Вызывается только после успешной фиксации.
func (a *AggregateRoot) ClearEvents() {
	a.pendingEvents = nil
}

func (a *AggregateRoot) record(evts ...events.Event) {
	a.pendingEvents = append(a.pendingEvents, evts...)
}

func (a *AggregateRoot) bumpVersion() {
	a.version++
	a.touch()
}

// nextEnvelope создает конверт для события текущего изменения,
// то есть с версией, которую агрегат получит после bumpVersion.
func (a *AggregateRoot) nextEnvelope() events.Envelope {
	return events.NewEnvelope(a.id, a.version+1, nowFunc())
}

// AggregateState - общие поля состояния для восстановления из хранилища.
type AggregateState struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

func (a *AggregateRoot) rootState() AggregateState {
	return AggregateState{
		ID:        a.id,
		CreatedAt: a.createdAt,
		UpdatedAt: a.updatedAt,
		Version:   a.version,
	}
}

func restoreRoot(s AggregateState) AggregateRoot {
	return AggregateRoot{
		Entity:  Entity{id: s.ID, createdAt: s.CreatedAt, updatedAt: s.UpdatedAt},
		version: s.Version,
	}
}
