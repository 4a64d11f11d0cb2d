package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeDonationCreated            = "DonationCreated"
	TypeDonationStatusChanged      = "DonationStatusChanged"
	TypeDonationCompleted          = "DonationCompleted"
	TypeDonationFailed             = "DonationFailed"
	TypeRecurringDonationScheduled = "RecurringDonationScheduled"
	TypeDonationReportUpdated      = "DonationReportUpdated"
	TypeDonationTransactionIDSet   = "DonationTransactionIDSet"
)

// Суммы передаются строкой, чтобы не терять точность decimal.
type DonationCreated struct {
	Envelope
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	ShelterID   *uuid.UUID `json:"shelter_id,omitempty"`
	Amount      string     `json:"amount"`
	Currency    string     `json:"currency"`
	IsRecurring bool       `json:"is_recurring"`
	IsAnonymous bool       `json:"is_anonymous"`
}

type DonationStatusChanged struct {
	Envelope
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	TransactionID  string `json:"transaction_id,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

type DonationCompleted struct {
	Envelope
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
}

type DonationFailed struct {
	Envelope
	Reason string `json:"reason"`
}

type RecurringDonationScheduled struct {
	Envelope
	NextDonationDate time.Time  `json:"next_donation_date"`
	UserID           *uuid.UUID `json:"user_id,omitempty"`
	ShelterID        *uuid.UUID `json:"shelter_id,omitempty"`
	Amount           string     `json:"amount"`
	Currency         string     `json:"currency"`
}

type DonationReportUpdated struct {
	Envelope
	Report string `json:"report"`
}

type DonationTransactionIDSet struct {
	Envelope
	TransactionID string `json:"transaction_id"`
}

func (DonationCreated) EventType() string            { return TypeDonationCreated }
func (DonationStatusChanged) EventType() string      { return TypeDonationStatusChanged }
func (DonationCompleted) EventType() string          { return TypeDonationCompleted }
func (DonationFailed) EventType() string             { return TypeDonationFailed }
func (RecurringDonationScheduled) EventType() string { return TypeRecurringDonationScheduled }
func (DonationReportUpdated) EventType() string      { return TypeDonationReportUpdated }
func (DonationTransactionIDSet) EventType() string   { return TypeDonationTransactionIDSet }
