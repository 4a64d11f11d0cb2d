package entities

import (
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
)

var (
	ErrInvalidCapacity      = domainerr.InvalidArgument("shelter capacity must be positive")
	ErrInvalidOccupancy     = domainerr.InvalidArgument("shelter occupancy must be within [0, capacity]")
	ErrEmptyAnimalID        = domainerr.InvalidArgument("animal id cannot be empty")
	ErrEmptySocialPlatform  = domainerr.InvalidArgument("social media platform cannot be empty")
	ErrEmptySocialMediaURL  = domainerr.InvalidArgument("social media url cannot be empty")
	ErrShelterFull          = domainerr.InvalidState("shelter is at full capacity")
	ErrShelterEmpty         = domainerr.InvalidState("shelter has no animals")
	ErrAnimalAlreadyHoused  = domainerr.InvalidState("animal is already in the shelter")
	ErrAnimalNotHoused      = domainerr.InvalidState("animal is not in the shelter")
	ErrCapacityBelowResidue = domainerr.InvalidState("capacity cannot be less than current occupancy")
	ErrSocialMediaNotFound  = domainerr.InvalidState("social media platform is not set")
)

// NewShelterParams - входные данные для CreateShelter.
type NewShelterParams struct {
	ID                 uuid.UUID
	Slug               string
	Name               string
	Address            string
	Latitude           float64
	Longitude          float64
	Email              string
	Phone              string
	AlternativeContact string
	Description        string
	Capacity           int
	CurrentOccupancy   int
	Photos             []string
	VirtualTourURL     string
	WorkingHours       string
	SocialMedia        map[string]string
	ManagerID          *uuid.UUID
}

// Shelter - приют. Инвариант: 0 <= occupancy <= capacity.
//
// Животные, добавленные через AddAnimal, учитываются по идентификатору.
// Начальная заполненность при создании учитывается без идентификаторов,
// такие места освобождаются RemoveAnimal с любым неизвестным идентификатором.
type Shelter struct {
	AggregateRoot
	slug           vo.Slug
	name           vo.Name
	address        vo.Address
	coordinates    vo.Coordinates
	contacts       vo.ContactInfo
	description    string
	capacity       int
	occupancy      int
	animalIDs      []uuid.UUID
	photos         []string
	virtualTourURL string
	workingHours   string
	socialMedia    map[string]string
	managerID      *uuid.UUID
}

// CreateShelter проверяет параметры и создает приют с событием ShelterCreated.
func CreateShelter(p NewShelterParams) (*Shelter, error) {
	slug, err := vo.NewSlug(p.Slug)
	if err != nil {
		return nil, err
	}
	name, err := vo.NewName(p.Name)
	if err != nil {
		return nil, err
	}
	address, err := vo.NewAddress(p.Address)
	if err != nil {
		return nil, err
	}
	coords, err := vo.NewCoordinates(p.Latitude, p.Longitude)
	if err != nil {
		return nil, err
	}
	contacts, err := newContactInfo(p.Email, p.Phone, p.AlternativeContact)
	if err != nil {
		return nil, err
	}
	if p.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if p.CurrentOccupancy < 0 || p.CurrentOccupancy > p.Capacity {
		return nil, ErrInvalidOccupancy
	}
	photos, err := cleanMediaList(p.Photos)
	if err != nil {
		return nil, err
	}
	social := make(map[string]string, len(p.SocialMedia))
	for platform, url := range p.SocialMedia {
		pl, u, err := cleanSocialMedia(platform, url)
		if err != nil {
			return nil, err
		}
		social[pl] = u
	}

	s := &Shelter{
		AggregateRoot:  newAggregateRoot(p.ID),
		slug:           slug,
		name:           name,
		address:        address,
		coordinates:    coords,
		contacts:       contacts,
		description:    strings.TrimSpace(p.Description),
		capacity:       p.Capacity,
		occupancy:      p.CurrentOccupancy,
		photos:         photos,
		virtualTourURL: strings.TrimSpace(p.VirtualTourURL),
		workingHours:   strings.TrimSpace(p.WorkingHours),
		socialMedia:    social,
		managerID:      p.ManagerID,
	}
	s.record(events.ShelterCreated{
		Envelope:  s.nextEnvelope(),
		Slug:      slug.String(),
		Name:      name.String(),
		Capacity:  s.capacity,
		Occupancy: s.occupancy,
		ManagerID: s.managerID,
	})
	s.bumpVersion()
	return s, nil
}

func newContactInfo(email, phone, alternative string) (vo.ContactInfo, error) {
	e, err := vo.NewEmail(email)
	if err != nil {
		return vo.ContactInfo{}, err
	}
	ph, err := vo.NewPhoneNumber(phone)
	if err != nil {
		return vo.ContactInfo{}, err
	}
	return vo.NewContactInfo(e, ph, alternative)
}

func cleanSocialMedia(platform, url string) (string, string, error) {
	pl := strings.ToLower(strings.TrimSpace(platform))
	if pl == "" {
		return "", "", ErrEmptySocialPlatform
	}
	u := strings.TrimSpace(url)
	if u == "" {
		return "", "", ErrEmptySocialMediaURL
	}
	return pl, u, nil
}

func (s *Shelter) Slug() vo.Slug { return s.slug }

func (s *Shelter) Name() vo.Name { return s.name }

func (s *Shelter) Address() vo.Address { return s.address }

func (s *Shelter) Coordinates() vo.Coordinates { return s.coordinates }

func (s *Shelter) Contacts() vo.ContactInfo { return s.contacts }

func (s *Shelter) Description() string { return s.description }

func (s *Shelter) Capacity() int { return s.capacity }

func (s *Shelter) CurrentOccupancy() int { return s.occupancy }

// AnimalIDs возвращает идентификаторы животных, добавленных через AddAnimal.
func (s *Shelter) AnimalIDs() []uuid.UUID { return slices.Clone(s.animalIDs) }

func (s *Shelter) Photos() []string { return slices.Clone(s.photos) }

func (s *Shelter) VirtualTourURL() string { return s.virtualTourURL }

func (s *Shelter) WorkingHours() string { return s.workingHours }

func (s *Shelter) SocialMedia() map[string]string { return maps.Clone(s.socialMedia) }

func (s *Shelter) ManagerID() *uuid.UUID { return s.managerID }

func (s *Shelter) HasFreeCapacity() bool { return s.occupancy < s.capacity }

func (s *Shelter) AvailableCapacity() int { return s.capacity - s.occupancy }

// HousesAnimal сообщает, учтено ли животное в приюте по идентификатору.
func (s *Shelter) HousesAnimal(animalID uuid.UUID) bool {
	return slices.Contains(s.animalIDs, animalID)
}

func (s *Shelter) AddAnimal(animalID uuid.UUID) error {
	if animalID == uuid.Nil {
		return ErrEmptyAnimalID
	}
	if !s.HasFreeCapacity() {
		return ErrShelterFull
	}
	if s.HousesAnimal(animalID) {
		return ErrAnimalAlreadyHoused
	}

	s.animalIDs = append(s.animalIDs, animalID)
	s.occupancy++
	s.record(events.ShelterAnimalAdded{
		Envelope:  s.nextEnvelope(),
		AnimalID:  animalID,
		Occupancy: s.occupancy,
	})
	s.bumpVersion()
	return nil
}

func (s *Shelter) RemoveAnimal(animalID uuid.UUID) error {
	if animalID == uuid.Nil {
		return ErrEmptyAnimalID
	}
	if s.occupancy == 0 {
		return ErrShelterEmpty
	}

	i := slices.Index(s.animalIDs, animalID)
	switch {
	case i >= 0:
		s.animalIDs = slices.Delete(s.animalIDs, i, i+1)
	case s.occupancy > len(s.animalIDs):
		// место из начальной заполненности
	default:
		return ErrAnimalNotHoused
	}

	s.occupancy--
	s.record(events.ShelterAnimalRemoved{
		Envelope:  s.nextEnvelope(),
		AnimalID:  animalID,
		Occupancy: s.occupancy,
	})
	s.bumpVersion()
	return nil
}

func (s *Shelter) ChangeCapacity(capacity int) error {
	if capacity <= 0 {
		return ErrInvalidCapacity
	}
	if capacity < s.occupancy {
		return ErrCapacityBelowResidue
	}
	if capacity == s.capacity {
		return nil
	}

	old := s.capacity
	s.capacity = capacity
	s.record(events.ShelterCapacityChanged{
		Envelope:    s.nextEnvelope(),
		OldCapacity: old,
		NewCapacity: capacity,
	})
	s.bumpVersion()
	return nil
}

func (s *Shelter) UpdateContacts(email, phone, alternative string) error {
	contacts, err := newContactInfo(email, phone, alternative)
	if err != nil {
		return err
	}

	s.contacts = contacts
	s.record(events.ShelterContactsUpdated{
		Envelope:    s.nextEnvelope(),
		Email:       contacts.Email().String(),
		Phone:       contacts.Phone().String(),
		Alternative: contacts.Alternative(),
	})
	s.bumpVersion()
	return nil
}

func (s *Shelter) AddPhoto(url string) error {
	u, err := checkNewMedia(s.photos, url)
	if err != nil {
		return err
	}

	s.photos = append(s.photos, u)
	s.record(events.ShelterPhotoAdded{Envelope: s.nextEnvelope(), URL: u})
	s.bumpVersion()
	return nil
}

func (s *Shelter) RemovePhoto(url string) error {
	i, err := mediaIndex(s.photos, url)
	if err != nil {
		return err
	}

	u := s.photos[i]
	s.photos = slices.Delete(s.photos, i, i+1)
	s.record(events.ShelterPhotoRemoved{Envelope: s.nextEnvelope(), URL: u})
	s.bumpVersion()
	return nil
}

func (s *Shelter) SetSocialMedia(platform, url string) error {
	pl, u, err := cleanSocialMedia(platform, url)
	if err != nil {
		return err
	}
	if s.socialMedia[pl] == u {
		return nil
	}

	if s.socialMedia == nil {
		s.socialMedia = make(map[string]string)
	}
	s.socialMedia[pl] = u
	s.record(events.ShelterSocialMediaUpdated{Envelope: s.nextEnvelope(), Platform: pl, URL: u})
	s.bumpVersion()
	return nil
}

func (s *Shelter) RemoveSocialMedia(platform string) error {
	pl := strings.ToLower(strings.TrimSpace(platform))
	if pl == "" {
		return ErrEmptySocialPlatform
	}
	if _, ok := s.socialMedia[pl]; !ok {
		return ErrSocialMediaNotFound
	}

	delete(s.socialMedia, pl)
	s.record(events.ShelterSocialMediaUpdated{Envelope: s.nextEnvelope(), Platform: pl})
	s.bumpVersion()
	return nil
}

// ShelterState - полное состояние приюта для слоя хранения.
type ShelterState struct {
	AggregateState
	Slug             vo.Slug
	Name             vo.Name
	Address          vo.Address
	Coordinates      vo.Coordinates
	Contacts         vo.ContactInfo
	Description      string
	Capacity         int
	CurrentOccupancy int
	AnimalIDs        []uuid.UUID
	Photos           []string
	VirtualTourURL   string
	WorkingHours     string
	SocialMedia      map[string]string
	ManagerID        *uuid.UUID
}

func (s *Shelter) Snapshot() ShelterState {
	return ShelterState{
		AggregateState:   s.rootState(),
		Slug:             s.slug,
		Name:             s.name,
		Address:          s.address,
		Coordinates:      s.coordinates,
		Contacts:         s.contacts,
		Description:      s.description,
		Capacity:         s.capacity,
		CurrentOccupancy: s.occupancy,
		AnimalIDs:        slices.Clone(s.animalIDs),
		Photos:           slices.Clone(s.photos),
		VirtualTourURL:   s.virtualTourURL,
		WorkingHours:     s.workingHours,
		SocialMedia:      maps.Clone(s.socialMedia),
		ManagerID:        s.managerID,
	}
}

// RestoreShelter восстанавливает приют из хранилища без проверок и без событий.
func RestoreShelter(st ShelterState) *Shelter {
	return &Shelter{
		AggregateRoot:  restoreRoot(st.AggregateState),
		slug:           st.Slug,
		name:           st.Name,
		address:        st.Address,
		coordinates:    st.Coordinates,
		contacts:       st.Contacts,
		description:    st.Description,
		capacity:       st.Capacity,
		occupancy:      st.CurrentOccupancy,
		animalIDs:      slices.Clone(st.AnimalIDs),
		photos:         slices.Clone(st.Photos),
		virtualTourURL: st.VirtualTourURL,
		workingHours:   st.WorkingHours,
		socialMedia:    maps.Clone(st.SocialMedia),
		managerID:      st.ManagerID,
	}
}
