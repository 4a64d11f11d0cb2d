package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/events"
)

// ApplicationStatus - статус заявки на усыновление.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationApproved ApplicationStatus = "Approved"
	ApplicationRejected ApplicationStatus = "Rejected"
)

var (
	ErrEmptyAdminID          = domainerr.InvalidArgument("admin id cannot be empty")
	ErrEmptyRejectionReason  = domainerr.InvalidArgument("rejection reason cannot be empty")
	ErrEmptyAdminNotes       = domainerr.InvalidArgument("admin notes cannot be empty")
	ErrApplicationNotPending = domainerr.InvalidState("only pending applications can be approved or rejected")
)

// AdoptionApplication - заявка пользователя на усыновление животного.
// Из Pending возможен ровно один переход: в Approved или в Rejected.
type AdoptionApplication struct {
	AggregateRoot
	userID          uuid.UUID
	animalID        uuid.UUID
	applicationDate time.Time
	status          ApplicationStatus
	comment         string
	adminNotes      string
	rejectionReason string
	reviewedBy      *uuid.UUID
}

// CreateAdoptionApplication создает заявку в статусе Pending.
func CreateAdoptionApplication(userID, animalID uuid.UUID, comment string) (*AdoptionApplication, error) {
	if userID == uuid.Nil {
		return nil, ErrEmptyUserID
	}
	if animalID == uuid.Nil {
		return nil, ErrEmptyAnimalID
	}

	a := &AdoptionApplication{
		AggregateRoot:   newAggregateRoot(uuid.Nil),
		userID:          userID,
		animalID:        animalID,
		applicationDate: nowFunc(),
		status:          ApplicationPending,
		comment:         strings.TrimSpace(comment),
	}
	a.record(events.AdoptionApplicationCreated{Envelope: a.nextEnvelope(), UserID: userID, AnimalID: animalID})
	a.bumpVersion()
	return a, nil
}

func (a *AdoptionApplication) UserID() uuid.UUID { return a.userID }

func (a *AdoptionApplication) AnimalID() uuid.UUID { return a.animalID }

func (a *AdoptionApplication) ApplicationDate() time.Time { return a.applicationDate }

func (a *AdoptionApplication) Status() ApplicationStatus { return a.status }

func (a *AdoptionApplication) Comment() string { return a.comment }

func (a *AdoptionApplication) AdminNotes() string { return a.adminNotes }

func (a *AdoptionApplication) RejectionReason() string { return a.rejectionReason }

// ReviewedBy - администратор, принявший решение по заявке.
func (a *AdoptionApplication) ReviewedBy() *uuid.UUID { return a.reviewedBy }

func (a *AdoptionApplication) Approve(adminID uuid.UUID) error {
	if adminID == uuid.Nil {
		return ErrEmptyAdminID
	}
	if a.status != ApplicationPending {
		return ErrApplicationNotPending
	}

	a.status = ApplicationApproved
	a.reviewedBy = &adminID
	a.record(
		events.AdoptionApplicationStatusChanged{
			Envelope:  a.nextEnvelope(),
			OldStatus: string(ApplicationPending),
			NewStatus: string(ApplicationApproved),
			ChangedBy: adminID,
		},
		events.AdoptionApplicationApproved{
			Envelope:      a.nextEnvelope(),
			ApplicationID: a.id,
			UserID:        a.userID,
			AnimalID:      a.animalID,
			ApprovedBy:    adminID,
		},
	)
	a.bumpVersion()
	return nil
}

func (a *AdoptionApplication) Reject(adminID uuid.UUID, reason string) error {
	if adminID == uuid.Nil {
		return ErrEmptyAdminID
	}
	r := strings.TrimSpace(reason)
	if r == "" {
		return ErrEmptyRejectionReason
	}
	if a.status != ApplicationPending {
		return ErrApplicationNotPending
	}

	a.status = ApplicationRejected
	a.rejectionReason = r
	a.reviewedBy = &adminID
	a.record(
		events.AdoptionApplicationStatusChanged{
			Envelope:  a.nextEnvelope(),
			OldStatus: string(ApplicationPending),
			NewStatus: string(ApplicationRejected),
			ChangedBy: adminID,
		},
		events.AdoptionApplicationRejected{
			Envelope:      a.nextEnvelope(),
			ApplicationID: a.id,
			UserID:        a.userID,
			AnimalID:      a.animalID,
			RejectedBy:    adminID,
			Reason:        r,
		},
	)
	a.bumpVersion()
	return nil
}

func (a *AdoptionApplication) AddAdminNotes(notes string) error {
	n := strings.TrimSpace(notes)
	if n == "" {
		return ErrEmptyAdminNotes
	}

	a.adminNotes = n
	a.record(events.AdoptionApplicationNotesUpdated{Envelope: a.nextEnvelope(), Notes: n})
	a.bumpVersion()
	return nil
}

// AdoptionApplicationState - полное состояние заявки для слоя хранения.
type AdoptionApplicationState struct {
	AggregateState
	UserID          uuid.UUID
	AnimalID        uuid.UUID
	ApplicationDate time.Time
	Status          ApplicationStatus
	Comment         string
	AdminNotes      string
	RejectionReason string
	ReviewedBy      *uuid.UUID
}

func (a *AdoptionApplication) Snapshot() AdoptionApplicationState {
	return AdoptionApplicationState{
		AggregateState:  a.rootState(),
		UserID:          a.userID,
		AnimalID:        a.animalID,
		ApplicationDate: a.applicationDate,
		Status:          a.status,
		Comment:         a.comment,
		AdminNotes:      a.adminNotes,
		RejectionReason: a.rejectionReason,
		ReviewedBy:      a.reviewedBy,
	}
}

// RestoreAdoptionApplication восстанавливает заявку из хранилища без проверок и без событий.
func RestoreAdoptionApplication(s AdoptionApplicationState) *AdoptionApplication {
	return &AdoptionApplication{
		AggregateRoot:   restoreRoot(s.AggregateState),
		userID:          s.UserID,
		animalID:        s.AnimalID,
		applicationDate: s.ApplicationDate,
		status:          s.Status,
		comment:         s.Comment,
		adminNotes:      s.AdminNotes,
		rejectionReason: s.RejectionReason,
		reviewedBy:      s.ReviewedBy,
	}
}
