// Package entities содержит базовые Entity и AggregateRoot и агрегаты платформы.
//
// Агрегаты создаются только фабриками Create*/Report* и изменяются только своими
// методами. Каждый успешный мутатор записывает события и увеличивает версию ровно
// один раз. При ошибке состояние агрегата не меняется.
package entities

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// nowFunc возвращает текущее время в UTC с точностью Postgres.
var nowFunc = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Identifiable - объект с устойчивым идентификатором.
type Identifiable interface {
	ID() uuid.UUID
}

// Entity хранит идентификатор и временные метки. Встраивается по значению.
type Entity struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func newEntity(id uuid.UUID) Entity {
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := nowFunc()
	return Entity{id: id, createdAt: now, updatedAt: now}
}

func (e *Entity) ID() uuid.UUID { return e.id }

func (e *Entity) CreatedAt() time.Time { return e.createdAt }

func (e *Entity) UpdatedAt() time.Time { return e.updatedAt }

func (e *Entity) touch() {
	e.updatedAt = nowFunc()
}

// SameEntity сравнивает сущности по конкретному типу и идентификатору.
// Значения изменяемых полей не учитываются.
func SameEntity(a, b Identifiable) bool {
	if a == nil || b == nil {
		return false
	}
	return reflect.TypeOf(a) == reflect.TypeOf(b) && a.ID() == b.ID()
}
