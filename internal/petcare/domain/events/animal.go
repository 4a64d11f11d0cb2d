package events

import "github.com/google/uuid"

const (
	TypeAnimalCreated                     = "AnimalCreated"
	TypeAnimalStatusChanged               = "AnimalStatusChanged"
	TypeAnimalAdopted                     = "AnimalAdopted"
	TypeAnimalMicrochipAttached           = "AnimalMicrochipAttached"
	TypeAnimalMediaAdded                  = "AnimalMediaAdded"
	TypeAnimalMediaRemoved                = "AnimalMediaRemoved"
	TypeAnimalCharacteristicsUpdated      = "AnimalCharacteristicsUpdated"
	TypeAnimalAdoptionRequirementsUpdated = "AnimalAdoptionRequirementsUpdated"
	TypeAnimalDescriptionUpdated          = "AnimalDescriptionUpdated"
	TypeAnimalMedicalFlagsUpdated         = "AnimalMedicalFlagsUpdated"
)

// Виды медиафайлов животного.
const (
	MediaPhoto = "photo"
	MediaVideo = "video"
)

type AnimalCreated struct {
	Envelope
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	UserID    uuid.UUID `json:"user_id"`
	BreedID   uuid.UUID `json:"breed_id"`
	ShelterID uuid.UUID `json:"shelter_id"`
	Status    string    `json:"status"`
}

type AnimalStatusChanged struct {
	Envelope
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// AnimalAdopted дополняет AnimalStatusChanged при переходе в статус Adopted.
type AnimalAdopted struct {
	Envelope
	ShelterID uuid.UUID `json:"shelter_id"`
}

type AnimalMicrochipAttached struct {
	Envelope
	MicrochipID string `json:"microchip_id"`
}

type AnimalMediaAdded struct {
	Envelope
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

type AnimalMediaRemoved struct {
	Envelope
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

type AnimalCharacteristicsUpdated struct {
	Envelope
	Weight *float64 `json:"weight,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Color  string   `json:"color,omitempty"`
}

type AnimalAdoptionRequirementsUpdated struct {
	Envelope
	Requirements string `json:"requirements"`
}

type AnimalDescriptionUpdated struct {
	Envelope
	Description  string `json:"description"`
	HealthStatus string `json:"health_status"`
}

type AnimalMedicalFlagsUpdated struct {
	Envelope
	IsSterilized  bool `json:"is_sterilized"`
	HaveDocuments bool `json:"have_documents"`
}

func (AnimalCreated) EventType() string                { return TypeAnimalCreated }
func (AnimalStatusChanged) EventType() string          { return TypeAnimalStatusChanged }
func (AnimalAdopted) EventType() string                { return TypeAnimalAdopted }
func (AnimalMicrochipAttached) EventType() string      { return TypeAnimalMicrochipAttached }
func (AnimalMediaAdded) EventType() string             { return TypeAnimalMediaAdded }
func (AnimalMediaRemoved) EventType() string           { return TypeAnimalMediaRemoved }
func (AnimalCharacteristicsUpdated) EventType() string { return TypeAnimalCharacteristicsUpdated }
func (AnimalAdoptionRequirementsUpdated) EventType() string {
	return TypeAnimalAdoptionRequirementsUpdated
}

func (AnimalDescriptionUpdated) EventType() string  { return TypeAnimalDescriptionUpdated }
func (AnimalMedicalFlagsUpdated) EventType() string { return TypeAnimalMedicalFlagsUpdated }
