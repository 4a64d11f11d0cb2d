package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeVolunteerTaskCreated       = "VolunteerTaskCreated"
	TypeVolunteerTaskStatusUpdated = "VolunteerTaskStatusUpdated"
	TypeVolunteerTaskInfoUpdated   = "VolunteerTaskInfoUpdated"
	TypeVolunteerTaskSkillSet      = "VolunteerTaskSkillSet"
	TypeVolunteerTaskSkillRemoved  = "VolunteerTaskSkillRemoved"
)

type VolunteerTaskCreated struct {
	Envelope
	ShelterID          uuid.UUID `json:"shelter_id"`
	Title              string    `json:"title"`
	Date               time.Time `json:"date"`
	RequiredVolunteers int       `json:"required_volunteers"`
	PointsReward       int       `json:"points_reward"`
	Status             string    `json:"status"`
}

type VolunteerTaskStatusUpdated struct {
	Envelope
	ShelterID uuid.UUID `json:"shelter_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
}

type VolunteerTaskInfoUpdated struct {
	Envelope
	Title              string    `json:"title"`
	Date               time.Time `json:"date"`
	RequiredVolunteers int       `json:"required_volunteers"`
	PointsReward       int       `json:"points_reward"`
}

type VolunteerTaskSkillSet struct {
	Envelope
	Skill       string `json:"skill"`
	Description string `json:"description,omitempty"`
}

type VolunteerTaskSkillRemoved struct {
	Envelope
	Skill string `json:"skill"`
}

func (VolunteerTaskCreated) EventType() string       { return TypeVolunteerTaskCreated }
func (VolunteerTaskStatusUpdated) EventType() string { return TypeVolunteerTaskStatusUpdated }
func (VolunteerTaskInfoUpdated) EventType() string   { return TypeVolunteerTaskInfoUpdated }
func (VolunteerTaskSkillSet) EventType() string      { return TypeVolunteerTaskSkillSet }
func (VolunteerTaskSkillRemoved) EventType() string  { return TypeVolunteerTaskSkillRemoved }
