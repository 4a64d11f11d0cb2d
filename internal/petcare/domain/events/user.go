package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeUserCreated             = "UserCreated"
	TypeUserProfileUpdated      = "UserProfileUpdated"
	TypeUserEmailChanged        = "UserEmailChanged"
	TypeUserPasswordChanged     = "UserPasswordChanged"
	TypeUserRoleChanged         = "UserRoleChanged"
	TypeUserPointsAdded         = "UserPointsAdded"
	TypeUserPointsDeducted      = "UserPointsDeducted"
	TypeUserLoggedIn            = "UserLoggedIn"
	TypeUserShelterSubscribed   = "UserShelterSubscribed"
	TypeUserShelterUnsubscribed = "UserShelterUnsubscribed"
	TypeUserPreferenceSet       = "UserPreferenceSet"
)

type UserCreated struct {
	Envelope
	Email string `json:"email"`
	Role  string `json:"role"`
}

type UserProfileUpdated struct {
	Envelope
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	ProfilePhoto string `json:"profile_photo,omitempty"`
	Language     string `json:"language"`
}

type UserEmailChanged struct {
	Envelope
	OldEmail string `json:"old_email"`
	NewEmail string `json:"new_email"`
}

// UserPasswordChanged не содержит хэш пароля.
type UserPasswordChanged struct {
	Envelope
}

type UserRoleChanged struct {
	Envelope
	OldRole string `json:"old_role"`
	NewRole string `json:"new_role"`
}

type UserPointsAdded struct {
	Envelope
	Points int `json:"points"`
	Total  int `json:"total"`
}

type UserPointsDeducted struct {
	Envelope
	Points int `json:"points"`
	Total  int `json:"total"`
}

type UserLoggedIn struct {
	Envelope
	At time.Time `json:"at"`
}

type UserShelterSubscribed struct {
	Envelope
	ShelterID uuid.UUID `json:"shelter_id"`
}

type UserShelterUnsubscribed struct {
	Envelope
	ShelterID uuid.UUID `json:"shelter_id"`
}

type UserPreferenceSet struct {
	Envelope
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (UserCreated) EventType() string             { return TypeUserCreated }
func (UserProfileUpdated) EventType() string      { return TypeUserProfileUpdated }
func (UserEmailChanged) EventType() string        { return TypeUserEmailChanged }
func (UserPasswordChanged) EventType() string     { return TypeUserPasswordChanged }
func (UserRoleChanged) EventType() string         { return TypeUserRoleChanged }
func (UserPointsAdded) EventType() string         { return TypeUserPointsAdded }
func (UserPointsDeducted) EventType() string      { return TypeUserPointsDeducted }
func (UserLoggedIn) EventType() string            { return TypeUserLoggedIn }
func (UserShelterSubscribed) EventType() string   { return TypeUserShelterSubscribed }
func (UserShelterUnsubscribed) EventType() string { return TypeUserShelterUnsubscribed }
func (UserPreferenceSet) EventType() string       { return TypeUserPreferenceSet }
