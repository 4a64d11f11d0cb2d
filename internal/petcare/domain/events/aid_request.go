package events

import "github.com/google/uuid"

const (
	TypeAnimalAidRequested     = "AnimalAidRequested"
	TypeAnimalAidStatusChanged = "AnimalAidStatusChanged"
	TypeAnimalAidCostUpdated   = "AnimalAidCostUpdated"
	TypeAnimalAidPhotoAdded    = "AnimalAidPhotoAdded"
	TypeAnimalAidPhotoRemoved  = "AnimalAidPhotoRemoved"
)

// AnimalAidRequested несет стоимость строкой с двумя знаками; пустая строка - стоимость не указана.
type AnimalAidRequested struct {
	Envelope
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	ShelterID     *uuid.UUID `json:"shelter_id,omitempty"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	EstimatedCost string     `json:"estimated_cost,omitempty"`
}

type AnimalAidStatusChanged struct {
	Envelope
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

type AnimalAidCostUpdated struct {
	Envelope
	EstimatedCost string `json:"estimated_cost,omitempty"`
}

type AnimalAidPhotoAdded struct {
	Envelope
	URL string `json:"url"`
}

type AnimalAidPhotoRemoved struct {
	Envelope
	URL string `json:"url"`
}

func (AnimalAidRequested) EventType() string     { return TypeAnimalAidRequested }
func (AnimalAidStatusChanged) EventType() string { return TypeAnimalAidStatusChanged }
func (AnimalAidCostUpdated) EventType() string   { return TypeAnimalAidCostUpdated }
func (AnimalAidPhotoAdded) EventType() string    { return TypeAnimalAidPhotoAdded }
func (AnimalAidPhotoRemoved) EventType() string  { return TypeAnimalAidPhotoRemoved }
