package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeLostPetReported        = "LostPetReported"
	TypeLostPetStatusChanged   = "LostPetStatusChanged"
	TypeLostPetMicrochipSet    = "LostPetMicrochipSet"
	TypeLostPetLastSeenUpdated = "LostPetLastSeenUpdated"
	TypeLostPetRewardUpdated   = "LostPetRewardUpdated"
	TypeLostPetPhotoAdded      = "LostPetPhotoAdded"
)

type LostPetReported struct {
	Envelope
	Slug         string    `json:"slug"`
	UserID       uuid.UUID `json:"user_id"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	LastSeenDate time.Time `json:"last_seen_date"`
}

type LostPetStatusChanged struct {
	Envelope
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

type LostPetMicrochipSet struct {
	Envelope
	MicrochipID string `json:"microchip_id"`
}

type LostPetLastSeenUpdated struct {
	Envelope
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	LastSeenDate time.Time `json:"last_seen_date"`
}

type LostPetRewardUpdated struct {
	Envelope
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type LostPetPhotoAdded struct {
	Envelope
	URL string `json:"url"`
}

func (LostPetReported) EventType() string        { return TypeLostPetReported }
func (LostPetStatusChanged) EventType() string   { return TypeLostPetStatusChanged }
func (LostPetMicrochipSet) EventType() string    { return TypeLostPetMicrochipSet }
func (LostPetLastSeenUpdated) EventType() string { return TypeLostPetLastSeenUpdated }
func (LostPetRewardUpdated) EventType() string   { return TypeLostPetRewardUpdated }
func (LostPetPhotoAdded) EventType() string      { return TypeLostPetPhotoAdded }
