package events

import "github.com/google/uuid"

const (
	TypeAdoptionApplicationCreated       = "AdoptionApplicationCreated"
	TypeAdoptionApplicationStatusChanged = "AdoptionApplicationStatusChanged"
	TypeAdoptionApplicationApproved      = "AdoptionApplicationApproved"
	TypeAdoptionApplicationRejected      = "AdoptionApplicationRejected"
	TypeAdoptionApplicationNotesUpdated  = "AdoptionApplicationNotesUpdated"
)

type AdoptionApplicationCreated struct {
	Envelope
	UserID   uuid.UUID `json:"user_id"`
	AnimalID uuid.UUID `json:"animal_id"`
}

type AdoptionApplicationStatusChanged struct {
	Envelope
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy uuid.UUID `json:"changed_by"`
}

type AdoptionApplicationApproved struct {
	Envelope
	ApplicationID uuid.UUID `json:"application_id"`
	UserID        uuid.UUID `json:"user_id"`
	AnimalID      uuid.UUID `json:"animal_id"`
	ApprovedBy    uuid.UUID `json:"approved_by"`
}

type AdoptionApplicationRejected struct {
	Envelope
	ApplicationID uuid.UUID `json:"application_id"`
	UserID        uuid.UUID `json:"user_id"`
	AnimalID      uuid.UUID `json:"animal_id"`
	RejectedBy    uuid.UUID `json:"rejected_by"`
	Reason        string    `json:"reason"`
}

type AdoptionApplicationNotesUpdated struct {
	Envelope
	Notes string `json:"notes"`
}

func (AdoptionApplicationCreated) EventType() string { return TypeAdoptionApplicationCreated }
func (AdoptionApplicationStatusChanged) EventType() string {
	return TypeAdoptionApplicationStatusChanged
}

func (AdoptionApplicationApproved) EventType() string { return TypeAdoptionApplicationApproved }
func (AdoptionApplicationRejected) EventType() string { return TypeAdoptionApplicationRejected }
func (AdoptionApplicationNotesUpdated) EventType() string {
	return TypeAdoptionApplicationNotesUpdated
}
