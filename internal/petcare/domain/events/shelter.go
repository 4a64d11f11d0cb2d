package events

import "github.com/google/uuid"

const (
	TypeShelterCreated            = "ShelterCreated"
	TypeShelterAnimalAdded        = "ShelterAnimalAdded"
	TypeShelterAnimalRemoved      = "ShelterAnimalRemoved"
	TypeShelterCapacityChanged    = "ShelterCapacityChanged"
	TypeShelterContactsUpdated    = "ShelterContactsUpdated"
	TypeShelterPhotoAdded         = "ShelterPhotoAdded"
	TypeShelterPhotoRemoved       = "ShelterPhotoRemoved"
	TypeShelterSocialMediaUpdated = "ShelterSocialMediaUpdated"
)

type ShelterCreated struct {
	Envelope
	Slug      string     `json:"slug"`
	Name      string     `json:"name"`
	Capacity  int        `json:"capacity"`
	Occupancy int        `json:"occupancy"`
	ManagerID *uuid.UUID `json:"manager_id,omitempty"`
}

type ShelterAnimalAdded struct {
	Envelope
	AnimalID  uuid.UUID `json:"animal_id"`
	Occupancy int       `json:"occupancy"`
}

type ShelterAnimalRemoved struct {
	Envelope
	AnimalID  uuid.UUID `json:"animal_id"`
	Occupancy int       `json:"occupancy"`
}

type ShelterCapacityChanged struct {
	Envelope
	OldCapacity int `json:"old_capacity"`
	NewCapacity int `json:"new_capacity"`
}

type ShelterContactsUpdated struct {
	Envelope
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Alternative string `json:"alternative,omitempty"`
}

type ShelterPhotoAdded struct {
	Envelope
	URL string `json:"url"`
}

type ShelterPhotoRemoved struct {
	Envelope
	URL string `json:"url"`
}

// ShelterSocialMediaUpdated с пустым URL означает удаление ссылки.
type ShelterSocialMediaUpdated struct {
	Envelope
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

func (ShelterCreated) EventType() string            { return TypeShelterCreated }
func (ShelterAnimalAdded) EventType() string        { return TypeShelterAnimalAdded }
func (ShelterAnimalRemoved) EventType() string      { return TypeShelterAnimalRemoved }
func (ShelterCapacityChanged) EventType() string    { return TypeShelterCapacityChanged }
func (ShelterContactsUpdated) EventType() string    { return TypeShelterContactsUpdated }
func (ShelterPhotoAdded) EventType() string         { return TypeShelterPhotoAdded }
func (ShelterPhotoRemoved) EventType() string       { return TypeShelterPhotoRemoved }
func (ShelterSocialMediaUpdated) EventType() string { return TypeShelterSocialMediaUpdated }
