package entities

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
)

// LostPetStatus - статус объявления о пропавшем животном.
type LostPetStatus string

const (
	LostPetLost     LostPetStatus = "Lost"
	LostPetFound    LostPetStatus = "Found"
	LostPetReunited LostPetStatus = "Reunited"
)

func (s LostPetStatus) valid() bool {
	switch s {
	case LostPetLost, LostPetFound, LostPetReunited:
		return true
	}
	return false
}

var (
	ErrInvalidLostPetStatus = domainerr.InvalidArgument("unknown lost pet status")
	ErrLastSeenInFuture     = domainerr.InvalidArgument("last seen date cannot be in the future")
	ErrLostPetClosed        = domainerr.InvalidState("pet is already reunited with the owner")
	ErrMicrochipAlreadySet  = domainerr.InvalidState("microchip id is already set")
)

// NewLostPetParams - входные данные для ReportLostPet.
// Вознаграждение не задается, если RewardAmount равен nil.
type NewLostPetParams struct {
	ID             uuid.UUID
	Slug           string
	UserID         uuid.UUID
	Name           string
	BreedID        *uuid.UUID
	Description    string
	Latitude       float64
	Longitude      float64
	LastSeenDate   time.Time
	Photos         []string
	RewardAmount   *decimal.Decimal
	RewardCurrency string
	MicrochipID    string
}

// LostPet - объявление о пропавшем животном.
type LostPet struct {
	AggregateRoot
	slug         vo.Slug
	userID       uuid.UUID
	name         string
	breedID      *uuid.UUID
	description  string
	lastSeen     vo.Coordinates
	lastSeenDate time.Time
	photos       []string
	status       LostPetStatus
	reward       *vo.Money
	microchipID  *vo.MicrochipID
}

// ReportLostPet проверяет параметры и создает объявление с событием LostPetReported.
func ReportLostPet(p NewLostPetParams) (*LostPet, error) {
	slug, err := vo.NewSlug(p.Slug)
	if err != nil {
		return nil, err
	}
	if p.UserID == uuid.Nil {
		return nil, ErrEmptyUserID
	}
	coords, err := vo.NewCoordinates(p.Latitude, p.Longitude)
	if err != nil {
		return nil, err
	}
	seen, err := checkLastSeen(p.LastSeenDate)
	if err != nil {
		return nil, err
	}
	photos, err := cleanMediaList(p.Photos)
	if err != nil {
		return nil, err
	}

	var reward *vo.Money
	if p.RewardAmount != nil {
		m, err := vo.NewMoney(*p.RewardAmount, p.RewardCurrency)
		if err != nil {
			return nil, err
		}
		reward = &m
	}

	var chip *vo.MicrochipID
	if strings.TrimSpace(p.MicrochipID) != "" {
		c, err := vo.NewMicrochipID(p.MicrochipID)
		if err != nil {
			return nil, err
		}
		chip = &c
	}

	l := &LostPet{
		AggregateRoot: newAggregateRoot(p.ID),
		slug:          slug,
		userID:        p.UserID,
		name:          strings.TrimSpace(p.Name),
		breedID:       p.BreedID,
		description:   strings.TrimSpace(p.Description),
		lastSeen:      coords,
		lastSeenDate:  seen,
		photos:        photos,
		status:        LostPetLost,
		reward:        reward,
		microchipID:   chip,
	}
	l.record(events.LostPetReported{
		Envelope:     l.nextEnvelope(),
		Slug:         slug.String(),
		UserID:       p.UserID,
		Latitude:     coords.Latitude(),
		Longitude:    coords.Longitude(),
		LastSeenDate: seen,
	})
	l.bumpVersion()
	return l, nil
}

func checkLastSeen(date time.Time) (time.Time, error) {
	now := nowFunc()
	if date.IsZero() {
		return now, nil
	}
	d := date.UTC().Truncate(time.Microsecond)
	if d.After(now) {
		return time.Time{}, ErrLastSeenInFuture
	}
	return d, nil
}

func (l *LostPet) Slug() vo.Slug { return l.slug }

func (l *LostPet) UserID() uuid.UUID { return l.userID }

func (l *LostPet) Name() string { return l.name }

func (l *LostPet) BreedID() *uuid.UUID { return l.breedID }

func (l *LostPet) Description() string { return l.description }

func (l *LostPet) LastSeenLocation() vo.Coordinates { return l.lastSeen }

func (l *LostPet) LastSeenDate() time.Time { return l.lastSeenDate }

func (l *LostPet) Photos() []string { return slices.Clone(l.photos) }

func (l *LostPet) Status() LostPetStatus { return l.status }

// Reward возвращает вознаграждение, если оно назначено.
func (l *LostPet) Reward() (vo.Money, bool) {
	if l.reward == nil {
		return vo.Money{}, false
	}
	return *l.reward, true
}

// MicrochipID возвращает номер микрочипа, если он известен.
func (l *LostPet) MicrochipID() (vo.MicrochipID, bool) {
	if l.microchipID == nil {
		return vo.MicrochipID{}, false
	}
	return *l.microchipID, true
}

// ChangeStatus меняет статус объявления. Reunited - конечный статус.
func (l *LostPet) ChangeStatus(status LostPetStatus) error {
	if !status.valid() {
		return ErrInvalidLostPetStatus
	}
	if status == l.status {
		return nil
	}
	if l.status == LostPetReunited {
		return ErrLostPetClosed
	}

	old := l.status
	l.status = status
	l.record(events.LostPetStatusChanged{
		Envelope:  l.nextEnvelope(),
		OldStatus: string(old),
		NewStatus: string(status),
	})
	l.bumpVersion()
	return nil
}

func (l *LostPet) SetMicrochip(microchipID string) error {
	chip, err := vo.NewMicrochipID(microchipID)
	if err != nil {
		return err
	}
	if l.microchipID != nil && vo.Equal(*l.microchipID, chip) {
		return ErrMicrochipAlreadySet
	}

	l.microchipID = &chip
	l.record(events.LostPetMicrochipSet{Envelope: l.nextEnvelope(), MicrochipID: chip.String()})
	l.bumpVersion()
	return nil
}

func (l *LostPet) UpdateLastSeen(latitude, longitude float64, date time.Time) error {
	coords, err := vo.NewCoordinates(latitude, longitude)
	if err != nil {
		return err
	}
	seen, err := checkLastSeen(date)
	if err != nil {
		return err
	}

	l.lastSeen = coords
	l.lastSeenDate = seen
	l.record(events.LostPetLastSeenUpdated{
		Envelope:     l.nextEnvelope(),
		Latitude:     coords.Latitude(),
		Longitude:    coords.Longitude(),
		LastSeenDate: seen,
	})
	l.bumpVersion()
	return nil
}

func (l *LostPet) UpdateReward(amount decimal.Decimal, currency string) error {
	m, err := vo.NewMoney(amount, currency)
	if err != nil {
		return err
	}
	if l.reward != nil && m.Equals(*l.reward) {
		return nil
	}

	l.reward = &m
	l.record(events.LostPetRewardUpdated{
		Envelope: l.nextEnvelope(),
		Amount:   m.Amount().String(),
		Currency: m.Currency(),
	})
	l.bumpVersion()
	return nil
}

func (l *LostPet) AddPhoto(url string) error {
	u, err := checkNewMedia(l.photos, url)
	if err != nil {
		return err
	}

	l.photos = append(l.photos, u)
	l.record(events.LostPetPhotoAdded{Envelope: l.nextEnvelope(), URL: u})
	l.bumpVersion()
	return nil
}

// LostPetState - полное состояние объявления для слоя хранения.
type LostPetState struct {
	AggregateState
	Slug         vo.Slug
	UserID       uuid.UUID
	Name         string
	BreedID      *uuid.UUID
	Description  string
	LastSeen     vo.Coordinates
	LastSeenDate time.Time
	Photos       []string
	Status       LostPetStatus
	Reward       *vo.Money
	MicrochipID  *vo.MicrochipID
}

func (l *LostPet) Snapshot() LostPetState {
	return LostPetState{
		AggregateState: l.rootState(),
		Slug:           l.slug,
		UserID:         l.userID,
		Name:           l.name,
		BreedID:        l.breedID,
		Description:    l.description,
		LastSeen:       l.lastSeen,
		LastSeenDate:   l.lastSeenDate,
		Photos:         slices.Clone(l.photos),
		Status:         l.status,
		Reward:         l.reward,
		MicrochipID:    l.microchipID,
	}
}

// RestoreLostPet восстанавливает объявление из хранилища без проверок и без событий.
func RestoreLostPet(s LostPetState) *LostPet {
	return &LostPet{
		AggregateRoot: restoreRoot(s.AggregateState),
		slug:          s.Slug,
		userID:        s.UserID,
		name:          s.Name,
		breedID:       s.BreedID,
		description:   s.Description,
		lastSeen:      s.LastSeen,
		lastSeenDate:  s.LastSeenDate,
		photos:        slices.Clone(s.Photos),
		status:        s.Status,
		reward:        s.Reward,
		microchipID:   s.MicrochipID,
	}
}
