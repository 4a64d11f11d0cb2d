// Package events описывает доменные события: общий конверт и закрытый набор вариантов.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Типы агрегатов, порождающих события.
const (
	AggregateAnimal              = "animal"
	AggregateShelter             = "shelter"
	AggregateUser                = "user"
	AggregateDonation            = "donation"
	AggregateAdoptionApplication = "adoption_application"
	AggregateLostPet             = "lost_pet"
	AggregateVolunteerTask       = "volunteer_task"
	AggregateArticle             = "article"
	AggregateAnimalAidRequest    = "animal_aid_request"
	AggregateSuccessStory        = "success_story"
)

// Envelope - общие поля каждого события.
type Envelope struct {
	EventID          uuid.UUID `json:"event_id"`
	OccurredAt       time.Time `json:"occurred_at"`
	AggregateID      uuid.UUID `json:"aggregate_id"`
	AggregateVersion int       `json:"aggregate_version"`
}

// NewEnvelope создает конверт с новым идентификатором события.
// Время приводится к UTC с точностью до микросекунд, как его хранит Postgres.
func NewEnvelope(aggregateID uuid.UUID, aggregateVersion int, occurredAt time.Time) Envelope {
	return Envelope{
		EventID:          uuid.New(),
		OccurredAt:       occurredAt.UTC().Truncate(time.Microsecond),
		AggregateID:      aggregateID,
		AggregateVersion: aggregateVersion,
	}
}

// Meta возвращает конверт события.
func (e Envelope) Meta() Envelope { return e }

func (Envelope) domainEvent() {}

// Event - доменное событие. Набор реализаций закрыт и перечислен в реестре кодека.
type Event interface {
	EventType() string
	Meta() Envelope
	domainEvent()
}

// IDs возвращает идентификаторы событий в исходном порядке.
func IDs(evts []Event) []uuid.UUID {
	ids := make([]uuid.UUID, len(evts))
	for i, e := range evts {
		ids[i] = e.Meta().EventID
	}
	return ids
}
