package entities

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
)

// AidCategory - вид помощи, которую просят для животного.
type AidCategory string

const (
	AidFood      AidCategory = "Food"
	AidMedical   AidCategory = "Medical"
	AidEquipment AidCategory = "Equipment"
	AidOther     AidCategory = "Other"
)

// AidStatus - статус запроса о помощи.
type AidStatus string

const (
	AidOpen       AidStatus = "Open"
	AidInProgress AidStatus = "InProgress"
	AidFulfilled  AidStatus = "Fulfilled"
	AidCancelled  AidStatus = "Cancelled"
)

func (c AidCategory) valid() bool {
	switch c {
	case AidFood, AidMedical, AidEquipment, AidOther:
		return true
	}
	return false
}

func (s AidStatus) valid() bool {
	switch s {
	case AidOpen, AidInProgress, AidFulfilled, AidCancelled:
		return true
	}
	return false
}

var (
	ErrInvalidAidCategory  = domainerr.InvalidArgument("unknown aid category")
	ErrInvalidAidStatus    = domainerr.InvalidArgument("unknown aid request status")
	ErrNegativeAidCost     = domainerr.InvalidArgument("estimated cost cannot be negative")
	ErrAidRequesterMissing = domainerr.InvalidArgument("aid request needs a user or a shelter")
)

// NewAnimalAidRequestParams - входные данные для CreateAnimalAidRequest.
// Запрос подает пользователь, приют или оба. Пустой Status означает Open.
type NewAnimalAidRequestParams struct {
	ID            uuid.UUID
	UserID        *uuid.UUID
	ShelterID     *uuid.UUID
	Title         string
	Description   string
	Category      AidCategory
	Status        AidStatus
	EstimatedCost *decimal.Decimal
	Photos        []string
}

// AnimalAidRequest - запрос о помощи животному.
type AnimalAidRequest struct {
	AggregateRoot
	userID        *uuid.UUID
	shelterID     *uuid.UUID
	title         vo.Title
	description   string
	category      AidCategory
	status        AidStatus
	estimatedCost *decimal.Decimal
	photos        []string
}

func checkAidCost(cost *decimal.Decimal) (*decimal.Decimal, error) {
	if cost == nil {
		return nil, nil
	}
	if cost.IsNegative() {
		return nil, ErrNegativeAidCost
	}
	c := cost.Round(2)
	return &c, nil
}

// CreateAnimalAidRequest проверяет параметры и создает запрос с событием AnimalAidRequested.
func CreateAnimalAidRequest(p NewAnimalAidRequestParams) (*AnimalAidRequest, error) {
	if (p.UserID == nil || *p.UserID == uuid.Nil) && (p.ShelterID == nil || *p.ShelterID == uuid.Nil) {
		return nil, ErrAidRequesterMissing
	}
	title, err := vo.NewTitle(p.Title)
	if err != nil {
		return nil, err
	}
	if !p.Category.valid() {
		return nil, ErrInvalidAidCategory
	}
	status := p.Status
	if status == "" {
		status = AidOpen
	}
	if !status.valid() {
		return nil, ErrInvalidAidStatus
	}
	cost, err := checkAidCost(p.EstimatedCost)
	if err != nil {
		return nil, err
	}
	photos, err := cleanMediaList(p.Photos)
	if err != nil {
		return nil, err
	}

	r := &AnimalAidRequest{
		AggregateRoot: newAggregateRoot(p.ID),
		userID:        clonePtr(p.UserID),
		shelterID:     clonePtr(p.ShelterID),
		title:         title,
		description:   strings.TrimSpace(p.Description),
		category:      p.Category,
		status:        status,
		estimatedCost: cost,
		photos:        photos,
	}
	r.record(events.AnimalAidRequested{
		Envelope:      r.nextEnvelope(),
		UserID:        r.userID,
		ShelterID:     r.shelterID,
		Title:         title.String(),
		Category:      string(p.Category),
		EstimatedCost: decimalString(cost),
	})
	r.bumpVersion()
	return r, nil
}

func decimalString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

func (r *AnimalAidRequest) UserID() *uuid.UUID { return clonePtr(r.userID) }

func (r *AnimalAidRequest) ShelterID() *uuid.UUID { return clonePtr(r.shelterID) }

func (r *AnimalAidRequest) Title() vo.Title { return r.title }

func (r *AnimalAidRequest) Description() string { return r.description }

func (r *AnimalAidRequest) Category() AidCategory { return r.category }

func (r *AnimalAidRequest) Status() AidStatus { return r.status }

func (r *AnimalAidRequest) Photos() []string { return slices.Clone(r.photos) }

// EstimatedCost возвращает оценку стоимости, если она указана.
func (r *AnimalAidRequest) EstimatedCost() (decimal.Decimal, bool) {
	if r.estimatedCost == nil {
		return decimal.Zero, false
	}
	return *r.estimatedCost, true
}

func (r *AnimalAidRequest) UpdateStatus(status AidStatus) error {
	if !status.valid() {
		return ErrInvalidAidStatus
	}
	if status == r.status {
		return nil
	}

	old := r.status
	r.status = status
	r.record(events.AnimalAidStatusChanged{
		Envelope:  r.nextEnvelope(),
		OldStatus: string(old),
		NewStatus: string(status),
	})
	r.bumpVersion()
	return nil
}

// UpdateEstimatedCost меняет оценку стоимости; nil снимает ее.
func (r *AnimalAidRequest) UpdateEstimatedCost(cost *decimal.Decimal) error {
	c, err := checkAidCost(cost)
	if err != nil {
		return err
	}
	if decimalString(c) == decimalString(r.estimatedCost) {
		return nil
	}

	r.estimatedCost = c
	r.record(events.AnimalAidCostUpdated{Envelope: r.nextEnvelope(), EstimatedCost: decimalString(c)})
	r.bumpVersion()
	return nil
}

func (r *AnimalAidRequest) AddPhoto(url string) error {
	u, err := checkNewMedia(r.photos, url)
	if err != nil {
		return err
	}

	r.photos = append(r.photos, u)
	r.record(events.AnimalAidPhotoAdded{Envelope: r.nextEnvelope(), URL: u})
	r.bumpVersion()
	return nil
}

func (r *AnimalAidRequest) RemovePhoto(url string) error {
	i, err := mediaIndex(r.photos, url)
	if err != nil {
		return err
	}

	removed := r.photos[i]
	r.photos = slices.Delete(r.photos, i, i+1)
	r.record(events.AnimalAidPhotoRemoved{Envelope: r.nextEnvelope(), URL: removed})
	r.bumpVersion()
	return nil
}

// AnimalAidRequestState - полное состояние запроса для слоя хранения.
type AnimalAidRequestState struct {
	AggregateState
	UserID        *uuid.UUID
	ShelterID     *uuid.UUID
	Title         vo.Title
	Description   string
	Category      AidCategory
	Status        AidStatus
	EstimatedCost *decimal.Decimal
	Photos        []string
}

func (r *AnimalAidRequest) Snapshot() AnimalAidRequestState {
	return AnimalAidRequestState{
		AggregateState: r.rootState(),
		UserID:         clonePtr(r.userID),
		ShelterID:      clonePtr(r.shelterID),
		Title:          r.title,
		Description:    r.description,
		Category:       r.category,
		Status:         r.status,
		EstimatedCost:  clonePtr(r.estimatedCost),
		Photos:         slices.Clone(r.photos),
	}
}

// RestoreAnimalAidRequest восстанавливает запрос из хранилища без проверок и без событий.
func RestoreAnimalAidRequest(s AnimalAidRequestState) *AnimalAidRequest {
	return &AnimalAidRequest{
		AggregateRoot: restoreRoot(s.AggregateState),
		userID:        clonePtr(s.UserID),
		shelterID:     clonePtr(s.ShelterID),
		title:         s.Title,
		description:   s.Description,
		category:      s.Category,
		status:        s.Status,
		estimatedCost: clonePtr(s.EstimatedCost),
		photos:        slices.Clone(s.Photos),
	}
}
