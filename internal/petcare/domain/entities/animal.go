package entities

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
)

// AnimalStatus - статус животного в приюте.
type AnimalStatus string

const (
	AnimalAvailable   AnimalStatus = "Available"
	AnimalReserved    AnimalStatus = "Reserved"
	AnimalAdopted     AnimalStatus = "Adopted"
	AnimalInTreatment AnimalStatus = "InTreatment"
)

func (s AnimalStatus) valid() bool {
	switch s {
	case AnimalAvailable, AnimalReserved, AnimalAdopted, AnimalInTreatment:
		return true
	}
	return false
}

// AnimalGender - пол животного.
type AnimalGender string

const (
	GenderMale    AnimalGender = "Male"
	GenderFemale  AnimalGender = "Female"
	GenderUnknown AnimalGender = "Unknown"
)

func (g AnimalGender) valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

// MinAdoptionRequirementsLength - минимальная длина требований к усыновителю.
const MinAdoptionRequirementsLength = 10

var (
	ErrEmptyUserID          = domainerr.InvalidArgument("user id cannot be empty")
	ErrEmptyBreedID         = domainerr.InvalidArgument("breed id cannot be empty")
	ErrEmptyShelterID       = domainerr.InvalidArgument("shelter id cannot be empty")
	ErrInvalidIDNumber      = domainerr.InvalidArgument("animal id number must be positive")
	ErrInvalidAnimalStatus  = domainerr.InvalidArgument("unknown animal status")
	ErrInvalidGender        = domainerr.InvalidArgument("unknown animal gender")
	ErrRequirementsTooShort = domainerr.InvalidArgument("adoption requirements must be at least %d characters", MinAdoptionRequirementsLength)

	ErrMicrochipAlreadyAttached = domainerr.InvalidState("animal already has a microchip")
)

// NewAnimalParams - входные данные для CreateAnimal.
type NewAnimalParams struct {
	ID                   uuid.UUID
	Slug                 string
	Name                 string
	UserID               uuid.UUID
	BreedID              uuid.UUID
	ShelterID            uuid.UUID
	Birthday             *time.Time
	Gender               AnimalGender
	Description          string
	HealthStatus         string
	Photos               []string
	Videos               []string
	Status               AnimalStatus
	AdoptionRequirements string
	MicrochipID          string
	IDNumber             int
	Weight               *float64
	Height               *float64
	Color                string
	IsSterilized         bool
	HaveDocuments        bool
}

// Animal - животное, размещенное в приюте.
type Animal struct {
	AggregateRoot
	slug                 vo.Slug
	name                 vo.Name
	userID               uuid.UUID
	breedID              uuid.UUID
	shelterID            uuid.UUID
	birthday             *vo.Birthday
	gender               AnimalGender
	description          string
	healthStatus         string
	photos               []string
	videos               []string
	status               AnimalStatus
	adoptionRequirements string
	microchipID          *vo.MicrochipID
	idNumber             int
	characteristics      vo.PhysicalCharacteristics
	isSterilized         bool
	haveDocuments        bool
}

// CreateAnimal проверяет параметры и создает животное с событием AnimalCreated.
func CreateAnimal(p NewAnimalParams) (*Animal, error) {
	slug, err := vo.NewSlug(p.Slug)
	if err != nil {
		return nil, err
	}
	name, err := vo.NewName(p.Name)
	if err != nil {
		return nil, err
	}
	switch {
	case p.UserID == uuid.Nil:
		return nil, ErrEmptyUserID
	case p.BreedID == uuid.Nil:
		return nil, ErrEmptyBreedID
	case p.ShelterID == uuid.Nil:
		return nil, ErrEmptyShelterID
	case p.IDNumber <= 0:
		return nil, ErrInvalidIDNumber
	}

	var birthday *vo.Birthday
	if p.Birthday != nil {
		b, err := vo.NewBirthday(*p.Birthday, nowFunc())
		if err != nil {
			return nil, err
		}
		birthday = &b
	}

	gender := p.Gender
	if gender == "" {
		gender = GenderUnknown
	}
	if !gender.valid() {
		return nil, ErrInvalidGender
	}

	status := p.Status
	if status == "" {
		status = AnimalAvailable
	}
	if !status.valid() {
		return nil, ErrInvalidAnimalStatus
	}

	requirements := strings.TrimSpace(p.AdoptionRequirements)
	if requirements != "" && len([]rune(requirements)) < MinAdoptionRequirementsLength {
		return nil, ErrRequirementsTooShort
	}

	var chip *vo.MicrochipID
	if strings.TrimSpace(p.MicrochipID) != "" {
		c, err := vo.NewMicrochipID(p.MicrochipID)
		if err != nil {
			return nil, err
		}
		chip = &c
	}

	characteristics, err := vo.NewPhysicalCharacteristics(p.Weight, p.Height, p.Color)
	if err != nil {
		return nil, err
	}
	photos, err := cleanMediaList(p.Photos)
	if err != nil {
		return nil, err
	}
	videos, err := cleanMediaList(p.Videos)
	if err != nil {
		return nil, err
	}

	a := &Animal{
		AggregateRoot:        newAggregateRoot(p.ID),
		slug:                 slug,
		name:                 name,
		userID:               p.UserID,
		breedID:              p.BreedID,
		shelterID:            p.ShelterID,
		birthday:             birthday,
		gender:               gender,
		description:          strings.TrimSpace(p.Description),
		healthStatus:         strings.TrimSpace(p.HealthStatus),
		photos:               photos,
		videos:               videos,
		status:               status,
		adoptionRequirements: requirements,
		microchipID:          chip,
		idNumber:             p.IDNumber,
		characteristics:      characteristics,
		isSterilized:         p.IsSterilized,
		haveDocuments:        p.HaveDocuments,
	}
	a.record(events.AnimalCreated{
		Envelope:  a.nextEnvelope(),
		Slug:      slug.String(),
		Name:      name.String(),
		UserID:    a.userID,
		BreedID:   a.breedID,
		ShelterID: a.shelterID,
		Status:    string(status),
	})
	a.bumpVersion()
	return a, nil
}

func (a *Animal) Slug() vo.Slug { return a.slug }

func (a *Animal) Name() vo.Name { return a.name }

func (a *Animal) UserID() uuid.UUID { return a.userID }

func (a *Animal) BreedID() uuid.UUID { return a.breedID }

func (a *Animal) ShelterID() uuid.UUID { return a.shelterID }

// Birthday возвращает дату рождения, если она известна.
func (a *Animal) Birthday() (vo.Birthday, bool) {
	if a.birthday == nil {
		return vo.Birthday{}, false
	}
	return *a.birthday, true
}

func (a *Animal) Gender() AnimalGender { return a.gender }

func (a *Animal) Description() string { return a.description }

func (a *Animal) HealthStatus() string { return a.healthStatus }

func (a *Animal) Photos() []string { return slices.Clone(a.photos) }

func (a *Animal) Videos() []string { return slices.Clone(a.videos) }

func (a *Animal) Status() AnimalStatus { return a.status }

func (a *Animal) AdoptionRequirements() string { return a.adoptionRequirements }

// MicrochipID возвращает номер микрочипа, если он установлен.
func (a *Animal) MicrochipID() (vo.MicrochipID, bool) {
	if a.microchipID == nil {
		return vo.MicrochipID{}, false
	}
	return *a.microchipID, true
}

func (a *Animal) IDNumber() int { return a.idNumber }

func (a *Animal) Characteristics() vo.PhysicalCharacteristics { return a.characteristics }

func (a *Animal) IsSterilized() bool { return a.isSterilized }

func (a *Animal) HaveDocuments() bool { return a.haveDocuments }

// CanBeAdopted сообщает, доступно ли животное для усыновления.
func (a *Animal) CanBeAdopted() bool { return a.status == AnimalAvailable }

func (a *Animal) HasMicrochip() bool { return a.microchipID != nil }

// ChangeStatus меняет статус. Повторная установка того же статуса ничего не делает.
// Переход в Adopted дополнительно порождает AnimalAdopted.
func (a *Animal) ChangeStatus(status AnimalStatus) error {
	if !status.valid() {
		return ErrInvalidAnimalStatus
	}
	if status == a.status {
		return nil
	}

	old := a.status
	a.status = status
	a.record(events.AnimalStatusChanged{
		Envelope:  a.nextEnvelope(),
		OldStatus: string(old),
		NewStatus: string(status),
	})
	if status == AnimalAdopted {
		a.record(events.AnimalAdopted{Envelope: a.nextEnvelope(), ShelterID: a.shelterID})
	}
	a.bumpVersion()
	return nil
}

func (a *Animal) AttachMicrochip(microchipID string) error {
	if a.microchipID != nil {
		return ErrMicrochipAlreadyAttached
	}
	chip, err := vo.NewMicrochipID(microchipID)
	if err != nil {
		return err
	}

	a.microchipID = &chip
	a.record(events.AnimalMicrochipAttached{Envelope: a.nextEnvelope(), MicrochipID: chip.String()})
	a.bumpVersion()
	return nil
}

func (a *Animal) AddPhoto(url string) error {
	return a.addMedia(&a.photos, events.MediaPhoto, url)
}

func (a *Animal) RemovePhoto(url string) error {
	return a.removeMedia(&a.photos, events.MediaPhoto, url)
}

func (a *Animal) AddVideo(url string) error {
	return a.addMedia(&a.videos, events.MediaVideo, url)
}

func (a *Animal) RemoveVideo(url string) error {
	return a.removeMedia(&a.videos, events.MediaVideo, url)
}

func (a *Animal) addMedia(list *[]string, kind, url string) error {
	u, err := checkNewMedia(*list, url)
	if err != nil {
		return err
	}

	*list = append(*list, u)
	a.record(events.AnimalMediaAdded{Envelope: a.nextEnvelope(), Kind: kind, URL: u})
	a.bumpVersion()
	return nil
}

func (a *Animal) removeMedia(list *[]string, kind, url string) error {
	i, err := mediaIndex(*list, url)
	if err != nil {
		return err
	}

	u := (*list)[i]
	*list = slices.Delete(*list, i, i+1)
	a.record(events.AnimalMediaRemoved{Envelope: a.nextEnvelope(), Kind: kind, URL: u})
	a.bumpVersion()
	return nil
}

// UpdateCharacteristics заменяет физические характеристики целиком.
func (a *Animal) UpdateCharacteristics(weight, height *float64, color string) error {
	c, err := vo.NewPhysicalCharacteristics(weight, height, color)
	if err != nil {
		return err
	}

	a.characteristics = c
	a.record(events.AnimalCharacteristicsUpdated{
		Envelope: a.nextEnvelope(),
		Weight:   c.WeightPtr(),
		Height:   c.HeightPtr(),
		Color:    c.Color(),
	})
	a.bumpVersion()
	return nil
}

func (a *Animal) UpdateAdoptionRequirements(requirements string) error {
	r := strings.TrimSpace(requirements)
	if len([]rune(r)) < MinAdoptionRequirementsLength {
		return ErrRequirementsTooShort
	}

	a.adoptionRequirements = r
	a.record(events.AnimalAdoptionRequirementsUpdated{Envelope: a.nextEnvelope(), Requirements: r})
	a.bumpVersion()
	return nil
}

func (a *Animal) UpdateDescription(description, healthStatus string) error {
	a.description = strings.TrimSpace(description)
	a.healthStatus = strings.TrimSpace(healthStatus)
	a.record(events.AnimalDescriptionUpdated{
		Envelope:     a.nextEnvelope(),
		Description:  a.description,
		HealthStatus: a.healthStatus,
	})
	a.bumpVersion()
	return nil
}

func (a *Animal) UpdateMedicalFlags(isSterilized, haveDocuments bool) error {
	a.isSterilized = isSterilized
	a.haveDocuments = haveDocuments
	a.record(events.AnimalMedicalFlagsUpdated{
		Envelope:      a.nextEnvelope(),
		IsSterilized:  isSterilized,
		HaveDocuments: haveDocuments,
	})
	a.bumpVersion()
	return nil
}

// AnimalState - полное состояние животного для слоя хранения.
type AnimalState struct {
	AggregateState
	Slug                 vo.Slug
	Name                 vo.Name
	UserID               uuid.UUID
	BreedID              uuid.UUID
	ShelterID            uuid.UUID
	Birthday             *vo.Birthday
	Gender               AnimalGender
	Description          string
	HealthStatus         string
	Photos               []string
	Videos               []string
	Status               AnimalStatus
	AdoptionRequirements string
	MicrochipID          *vo.MicrochipID
	IDNumber             int
	Characteristics      vo.PhysicalCharacteristics
	IsSterilized         bool
	HaveDocuments        bool
}

func (a *Animal) Snapshot() AnimalState {
	return AnimalState{
		AggregateState:       a.rootState(),
		Slug:                 a.slug,
		Name:                 a.name,
		UserID:               a.userID,
		BreedID:              a.breedID,
		ShelterID:            a.shelterID,
		Birthday:             a.birthday,
		Gender:               a.gender,
		Description:          a.description,
		HealthStatus:         a.healthStatus,
		Photos:               slices.Clone(a.photos),
		Videos:               slices.Clone(a.videos),
		Status:               a.status,
		AdoptionRequirements: a.adoptionRequirements,
		MicrochipID:          a.microchipID,
		IDNumber:             a.idNumber,
		Characteristics:      a.characteristics,
		IsSterilized:         a.isSterilized,
		HaveDocuments:        a.haveDocuments,
	}
}

// RestoreAnimal восстанавливает животное из хранилища без проверок и без событий.
// Используется только адаптерами хранения.
func RestoreAnimal(s AnimalState) *Animal {
	return &Animal{
		AggregateRoot:        restoreRoot(s.AggregateState),
		slug:                 s.Slug,
		name:                 s.Name,
		userID:               s.UserID,
		breedID:              s.BreedID,
		shelterID:            s.ShelterID,
		birthday:             s.Birthday,
		gender:               s.Gender,
		description:          s.Description,
		healthStatus:         s.HealthStatus,
		photos:               slices.Clone(s.Photos),
		videos:               slices.Clone(s.Videos),
		status:               s.Status,
		adoptionRequirements: s.AdoptionRequirements,
		microchipID:          s.MicrochipID,
		idNumber:             s.IDNumber,
		characteristics:      s.Characteristics,
		isSterilized:         s.IsSterilized,
		haveDocuments:        s.HaveDocuments,
	}
}
