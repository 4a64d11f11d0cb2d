package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"petcare/internal/petcare/domain/entities"
	vo "petcare/internal/petcare/domain/valueobjects"
)

// ErrCorruptedDocument возвращается, если сохраненный документ не проходит
// проверки объектов-значений при восстановлении агрегата.
var ErrCorruptedDocument = errors.New("corrupted aggregate document")

func corrupted(err error) error {
	return fmt.Errorf("%w: %w", ErrCorruptedDocument, err)
}

type moneyDocument struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func toMoneyDocument(m vo.Money) moneyDocument {
	return moneyDocument{Amount: m.Amount(), Currency: m.Currency()}
}

func (d moneyDocument) money() (vo.Money, error) {
	return vo.NewMoney(d.Amount, d.Currency)
}

func microchipString(m *vo.MicrochipID) string {
	if m == nil {
		return ""
	}
	return m.String()
}

func optionalMicrochip(value string) (*vo.MicrochipID, error) {
	if value == "" {
		return nil, nil
	}
	m, err := vo.NewMicrochipID(value)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type animalDocument struct {
	Slug                 string     `json:"slug"`
	Name                 string     `json:"name"`
	UserID               uuid.UUID  `json:"user_id"`
	BreedID              uuid.UUID  `json:"breed_id"`
	ShelterID            uuid.UUID  `json:"shelter_id"`
	Birthday             *time.Time `json:"birthday,omitempty"`
	Gender               string     `json:"gender"`
	Description          string     `json:"description"`
	HealthStatus         string     `json:"health_status"`
	Photos               []string   `json:"photos"`
	Videos               []string   `json:"videos"`
	Status               string     `json:"status"`
	AdoptionRequirements string     `json:"adoption_requirements"`
	MicrochipID          string     `json:"microchip_id,omitempty"`
	IDNumber             int        `json:"id_number"`
	Weight               *float64   `json:"weight,omitempty"`
	Height               *float64   `json:"height,omitempty"`
	Color                string     `json:"color"`
	IsSterilized         bool       `json:"is_sterilized"`
	HaveDocuments        bool       `json:"have_documents"`
}

func encodeAnimal(a *entities.Animal) (entities.AggregateState, any) {
	s := a.Snapshot()
	doc := animalDocument{
		Slug:                 s.Slug.String(),
		Name:                 s.Name.String(),
		UserID:               s.UserID,
		BreedID:              s.BreedID,
		ShelterID:            s.ShelterID,
		Gender:               string(s.Gender),
		Description:          s.Description,
		HealthStatus:         s.HealthStatus,
		Photos:               s.Photos,
		Videos:               s.Videos,
		Status:               string(s.Status),
		AdoptionRequirements: s.AdoptionRequirements,
		MicrochipID:          microchipString(s.MicrochipID),
		IDNumber:             s.IDNumber,
		Weight:               s.Characteristics.WeightPtr(),
		Height:               s.Characteristics.HeightPtr(),
		Color:                s.Characteristics.Color(),
		IsSterilized:         s.IsSterilized,
		HaveDocuments:        s.HaveDocuments,
	}
	if s.Birthday != nil {
		d := s.Birthday.Date()
		doc.Birthday = &d
	}
	return s.AggregateState, doc
}

func decodeAnimal(root entities.AggregateState, data []byte) (*entities.Animal, error) {
	var doc animalDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupted(err)
	}

	slug, err := vo.NewSlug(doc.Slug)
	if err != nil {
		return nil, corrupted(err)
	}
	name, err := vo.NewName(doc.Name)
	if err != nil {
		return nil, corrupted(err)
	}
	chip, err := optionalMicrochip(doc.MicrochipID)
	if err != nil {
		return nil, corrupted(err)
	}
	chars, err := vo.NewPhysicalCharacteristics(doc.Weight, doc.Height, doc.Color)
	if err != nil {
		return nil, corrupted(err)
	}
	var birthday *vo.Birthday
	if doc.Birthday != nil {
		// Дата проверялась при создании, поэтому сверяется сама с собой.
		b, err := vo.NewBirthday(*doc.Birthday, *doc.Birthday)
		if err != nil {
			return nil, corrupted(err)
		}
		birthday = &b
	}

	return entities.RestoreAnimal(entities.AnimalState{
		AggregateState:       root,
		Slug:                 slug,
		Name:                 name,
		UserID:               doc.UserID,
		BreedID:              doc.BreedID,
		ShelterID:            doc.ShelterID,
		Birthday:             birthday,
		Gender:               entities.AnimalGender(doc.Gender),
		Description:          doc.Description,
		HealthStatus:         doc.HealthStatus,
		Photos:               doc.Photos,
		Videos:               doc.Videos,
		Status:               entities.AnimalStatus(doc.Status),
		AdoptionRequirements: doc.AdoptionRequirements,
		MicrochipID:          chip,
		IDNumber:             doc.IDNumber,
		Characteristics:      chars,
		IsSterilized:         doc.IsSterilized,
		HaveDocuments:        doc.HaveDocuments,
	}), nil
}

type shelterDocument struct {
	Slug               string            `json:"slug"`
	Name               string            `json:"name"`
	Address            string            `json:"address"`
	Latitude           float64           `json:"latitude"`
	Longitude          float64           `json:"longitude"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone"`
	AlternativeContact string            `json:"alternative_contact,omitempty"`
	Description        string            `json:"description"`
	Capacity           int               `json:"capacity"`
	CurrentOccupancy   int               `json:"current_occupancy"`
	AnimalIDs          []uuid.UUID       `json:"animal_ids"`
	Photos             []string          `json:"photos"`
	VirtualTourURL     string            `json:"virtual_tour_url,omitempty"`
	WorkingHours       string            `json:"working_hours,omitempty"`
	SocialMedia        map[string]string `json:"social_media,omitempty"`
	ManagerID          *uuid.UUID        `json:"manager_id,omitempty"`
}

func encodeShelter(s *entities.Shelter) (entities.AggregateState, any) {
	st := s.Snapshot()
	return st.AggregateState, shelterDocument{
		Slug:               st.Slug.String(),
		Name:               st.Name.String(),
		Address:            st.Address.String(),
		Latitude:           st.Coordinates.Latitude(),
		Longitude:          st.Coordinates.Longitude(),
		Email:              st.Contacts.Email().String(),
		Phone:              st.Contacts.Phone().String(),
		AlternativeContact: st.Contacts.Alternative(),
		Description:        st.Description,
		Capacity:           st.Capacity,
		CurrentOccupancy:   st.CurrentOccupancy,
		AnimalIDs:          st.AnimalIDs,
		Photos:             st.Photos,
		VirtualTourURL:     st.VirtualTourURL,
		WorkingHours:       st.WorkingHours,
		SocialMedia:        st.SocialMedia,
		ManagerID:          st.ManagerID,
	}
}

func decodeShelter(root entities.AggregateState, data []byte) (*entities.Shelter, error) {
	var doc shelterDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupted(err)
	}

	slug, err := vo.NewSlug(doc.Slug)
	if err != nil {
		return nil, corrupted(err)
	}
	name, err := vo.NewName(doc.Name)
	if err != nil {
		return nil, corrupted(err)
	}
	address, err := vo.NewAddress(doc.Address)
	if err != nil {
		return nil, corrupted(err)
	}
	coords, err := vo.NewCoordinates(doc.Latitude, doc.Longitude)
	if err != nil {
		return nil, corrupted(err)
	}
	email, err := vo.NewEmail(doc.Email)
	if err != nil {
		return nil, corrupted(err)
	}
	phone, err := vo.NewPhoneNumber(doc.Phone)
	if err != nil {
		return nil, corrupted(err)
	}
	contacts, err := vo.NewContactInfo(email, phone, doc.AlternativeContact)
	if err != nil {
		return nil, corrupted(err)
	}

	return entities.RestoreShelter(entities.ShelterState{
		AggregateState:   root,
		Slug:             slug,
		Name:             name,
		Address:          address,
		Coordinates:      coords,
		Contacts:         contacts,
		Description:      doc.Description,
		Capacity:         doc.Capacity,
		CurrentOccupancy: doc.CurrentOccupancy,
		AnimalIDs:        doc.AnimalIDs,
		Photos:           doc.Photos,
		VirtualTourURL:   doc.VirtualTourURL,
		WorkingHours:     doc.WorkingHours,
		SocialMedia:      doc.SocialMedia,
		ManagerID:        doc.ManagerID,
	}), nil
}

type userDocument struct {
	Email                string            `json:"email"`
	PasswordHash         string            `json:"password_hash"`
	FirstName            string            `json:"first_name"`
	LastName             string            `json:"last_name"`
	Phone                string            `json:"phone"`
	Role                 string            `json:"role"`
	Preferences          map[string]string `json:"preferences,omitempty"`
	Points               int               `json:"points"`
	LastLogin            *time.Time        `json:"last_login,omitempty"`
	ProfilePhoto         string            `json:"profile_photo,omitempty"`
	Language             string            `json:"language"`
	SubscribedShelterIDs []uuid.UUID       `json:"subscribed_shelter_ids,omitempty"`
}

func encodeUser(u *entities.User) (entities.AggregateState, any) {
	s := u.Snapshot()
	return s.AggregateState, userDocument{
		Email:                s.Email.String(),
		PasswordHash:         s.PasswordHash,
		FirstName:            s.Name.FirstName(),
		LastName:             s.Name.LastName(),
		Phone:                s.Phone.String(),
		Role:                 string(s.Role),
		Preferences:          s.Preferences,
		Points:               s.Points,
		LastLogin:            s.LastLogin,
		ProfilePhoto:         s.ProfilePhoto,
		Language:             s.Language,
		SubscribedShelterIDs: s.SubscribedShelterIDs,
	}
}

func decodeUser(root entities.AggregateState, data []byte) (*entities.User, error) {
	var doc userDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupted(err)
	}

	email, err := vo.NewEmail(doc.Email)
	if err != nil {
		return nil, corrupted(err)
	}
	name, err := vo.NewPersonName(doc.FirstName, doc.LastName)
	if err != nil {
		return nil, corrupted(err)
	}
	phone, err := vo.NewPhoneNumber(doc.Phone)
	if err != nil {
		return nil, corrupted(err)
	}

	return entities.RestoreUser(entities.UserState{
		AggregateState:       root,
		Email:                email,
		PasswordHash:         doc.PasswordHash,
		Name:                 name,
		Phone:                phone,
		Role:                 entities.UserRole(doc.Role),
		Preferences:          doc.Preferences,
		Points:               doc.Points,
		LastLogin:            doc.LastLogin,
		ProfilePhoto:         doc.ProfilePhoto,
		Language:             doc.Language,
		SubscribedShelterIDs: doc.SubscribedShelterIDs,
	}), nil
}

type donationDocument struct {
	UserID          *uuid.UUID    `json:"user_id,omitempty"`
	ShelterID       *uuid.UUID    `json:"shelter_id,omitempty"`
	Amount          moneyDocument `json:"amount"`
	PaymentMethodID uuid.UUID     `json:"payment_method_id"`
	Status          string        `json:"status"`
	TransactionID   string        `json:"transaction_id,omitempty"`
	Purpose         string        `json:"purpose,omitempty"`
	IsRecurring     bool          `json:"is_recurring"`
	IsAnonymous     bool          `json:"is_anonymous"`
	DonationDate    time.Time     `json:"donation_date"`
	Report          string        `json:"report,omitempty"`
}

func encodeDonation(d *entities.Donation) (entities.AggregateState, any) {
	s := d.Snapshot()
	return s.AggregateState, donationDocument{
		UserID:          s.UserID,
		ShelterID:       s.ShelterID,
		Amount:          toMoneyDocument(s.Amount),
		PaymentMethodID: s.PaymentMethodID,
		Status:          string(s.Status),
		TransactionID:   s.TransactionID,
		Purpose:         s.Purpose,
		IsRecurring:     s.IsRecurring,
		IsAnonymous:     s.IsAnonymous,
		DonationDate:    s.DonationDate,
		Report:          s.Report,
	}
}

func decodeDonation(root entities.AggregateState, data []byte) (*entities.Donation, error) {
	var doc donationDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupted(err)
	}

	amount, err := doc.Amount.money()
	if err != nil {
		return nil, corrupted(err)
	}

	return entities.RestoreDonation(entities.DonationState{
		AggregateState:  root,
		UserID:          doc.UserID,
		ShelterID:       doc.ShelterID,
		Amount:          amount,
		PaymentMethodID: doc.PaymentMethodID,
		Status:          entities.DonationStatus(doc.Status),
		TransactionID:   doc.TransactionID,
		Purpose:         doc.Purpose,
		IsRecurring:     doc.IsRecurring,
		IsAnonymous:     doc.IsAnonymous,
		DonationDate:    doc.DonationDate,
		Report:          doc.Report,
	}), nil
}

type adoptionApplicationDocument struct {
	UserID          uuid.UUID  `json:"user_id"`
	AnimalID        uuid.UUID  `json:"animal_id"`
	ApplicationDate time.Time  `json:"application_date"`
	Status          string     `json:"status"`
	Comment         string     `json:"comment,omitempty"`
	AdminNotes      string     `json:"admin_notes,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ReviewedBy      *uuid.UUID `json:"reviewed_by,omitempty"`
}

func encodeAdoptionApplication(a *entities.AdoptionApplication) (entities.AggregateState, any) {
	s := a.Snapshot()
	return s.AggregateState, adoptionApplicationDocument{
		UserID:          s.UserID,
		AnimalID:        s.AnimalID,
		ApplicationDate: s.ApplicationDate,
		Status:          string(s.Status),
		Comment:         s.Comment,
		AdminNotes:      s.AdminNotes,
		RejectionReason: s.RejectionReason,
		ReviewedBy:      s.ReviewedBy,
	}
}

func decodeAdoptionApplication(root entities.AggregateState, data []byte) (*entities.AdoptionApplication, error) {
	var doc adoptionApplicationDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupted(err)
	}

	return entities.RestoreAdoptionApplication(entities.AdoptionApplicationState{
		AggregateState:  root,
		UserID:          doc.UserID,
		AnimalID:        doc.AnimalID,
		ApplicationDate: doc.ApplicationDate,
		Status:          entities.ApplicationStatus(doc.Status),
		Comment:         doc.Comment,
		AdminNotes:      doc.AdminNotes,
		RejectionReason: doc.RejectionReason,
		ReviewedBy:      doc.ReviewedBy,
	}), nil
}

type lostPetDocument struct {
	Slug         string         `json:"slug"`
	UserID       uuid.UUID      `json:"user_id"`
	Name         string         `json:"name,omitempty"`
	BreedID      *uuid.UUID     `json:"breed_id,omitempty"`
	Description  string         `json:"description,omitempty"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	LastSeenDate time.Time      `json:"last_seen_date"`
	Photos       []string       `json:"photos"`
	Status       string         `json:"status"`
	Reward       *moneyDocument `json:"reward,omitempty"`
	MicrochipID  string         `json:"microchip_id,omitempty"`
}

func encodeLostPet(l *entities.LostPet) (entities.AggregateState, any) {
	s := l.Snapshot()
	doc := lostPetDocument{
		Slug:         s.Slug.String(),
		UserID:       s.UserID,
		Name:         s.Name,
		BreedID:      s.BreedID,
		Description:  s.Description,
		Latitude:     s.LastSeen.Latitude(),
		Longitude:    s.LastSeen.Longitude(),
		LastSeenDate: s.LastSeenDate,
		Photos:       s.Photos,
		Status:       string(s.Status),
		MicrochipID:  microchipString(s.MicrochipID),
	}
	if s.Reward != nil {
		r := toMoneyDocument(*s.Reward)
		doc.Reward = &r
	}
	return s.AggregateState, doc
}

func decodeLostPet(root entities.AggregateState, data []byte) (*entities.LostPet, error) {
	var doc lostPetDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupted(err)
	}

	slug, err := vo.NewSlug(doc.Slug)
	if err != nil {
		return nil, corrupted(err)
	}
	coords, err := vo.NewCoordinates(doc.Latitude, doc.Longitude)
	if err != nil {
		return nil, corrupted(err)
	}
	chip, err := optionalMicrochip(doc.MicrochipID)
	if err != nil {
		return nil, corrupted(err)
	}
	var reward *vo.Money
	if doc.Reward != nil {
		m, err := doc.Reward.money()
		if err != nil {
			return nil, corrupted(err)
		}
		reward = &m
	}

	return entities.RestoreLostPet(entities.LostPetState{
		AggregateState: root,
		Slug:           slug,
		UserID:         doc.UserID,
		Name:           doc.Name,
		BreedID:        doc.BreedID,
		Description:    doc.Description,
		LastSeen:       coords,
		LastSeenDate:   doc.LastSeenDate,
		Photos:         doc.Photos,
		Status:         entities.LostPetStatus(doc.Status),
		Reward:         reward,
		MicrochipID:    chip,
	}), nil
}

type coordinatesDocument struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type volunteerTaskDocument struct {
	ShelterID          uuid.UUID            `json:"shelter_id"`
	Title              string               `json:"title"`
	Description        string               `json:"description,omitempty"`
	Date               time.Time            `json:"date"`
	Duration           *int                 `json:"duration,omitempty"`
	RequiredVolunteers int                  `json:"required_volunteers"`
	Status             string               `json:"status"`
	PointsReward       int                  `json:"points_reward"`
	Location           *coordinatesDocument `json:"location,omitempty"`
	Skills             map[string]string    `json:"skills"`
}

func encodeVolunteerTask(t *entities.VolunteerTask) (entities.AggregateState, any) {
	s := t.Snapshot()
	doc := volunteerTaskDocument{
		ShelterID:          s.ShelterID,
		Title:              s.Title.String(),
		Description:        s.Description,
		Date:               s.Date,
		Duration:           s.Duration,
		RequiredVolunteers: s.RequiredVolunteers,
		Status:             string(s.Status),
		PointsReward:       s.PointsReward,
		Skills:             s.Skills,
	}
	if s.Location != nil {
		doc.Location = &coordinatesDocument{Latitude: s.Location.Latitude(), Longitude: s.Location.Longitude()}
	}
	return s.AggregateState, doc
}

func decodeVolunteerTask(root entities.AggregateState, data []byte) (*entities.VolunteerTask, error) {
	var doc volunteerTaskDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupted(err)
	}

	title, err := vo.NewTitle(doc.Title)
	if err != nil {
		return nil, corrupted(err)
	}
	var location *vo.Coordinates
	if doc.Location != nil {
		c, err := vo.NewCoordinates(doc.Location.Latitude, doc.Location.Longitude)
		if err != nil {
			return nil, corrupted(err)
		}
		location = &c
	}

	return entities.RestoreVolunteerTask(entities.VolunteerTaskState{
		AggregateState:     root,
		ShelterID:          doc.ShelterID,
		Title:              title,
		Description:        doc.Description,
		Date:               doc.Date,
		Duration:           doc.Duration,
		RequiredVolunteers: doc.RequiredVolunteers,
		Status:             entities.VolunteerTaskStatus(doc.Status),
		PointsReward:       doc.PointsReward,
		Location:           location,
		Skills:             doc.Skills,
	}), nil
}

type articleDocument struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	AuthorID    *uuid.UUID `json:"author_id,omitempty"`
	Status      string     `json:"status"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func encodeArticle(a *entities.Article) (entities.AggregateState, any) {
	s := a.Snapshot()
	return s.AggregateState, articleDocument{
		Slug:        s.Slug.String(),
		Title:       s.Title.String(),
		Content:     s.Content,
		CategoryID:  s.CategoryID,
		AuthorID:    s.AuthorID,
		Status:      string(s.Status),
		Thumbnail:   s.Thumbnail,
		PublishedAt: s.PublishedAt,
	}
}

func decodeArticle(root entities.AggregateState, data []byte) (*entities.Article, error) {
	var doc articleDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupted(err)
	}

	slug, err := vo.NewSlug(doc.Slug)
	if err != nil {
		return nil, corrupted(err)
	}
	title, err := vo.NewTitle(doc.Title)
	if err != nil {
		return nil, corrupted(err)
	}

	return entities.RestoreArticle(entities.ArticleState{
		AggregateState: root,
		Slug:           slug,
		Title:          title,
		Content:        doc.Content,
		CategoryID:     doc.CategoryID,
		AuthorID:       doc.AuthorID,
		Status:         entities.ArticleStatus(doc.Status),
		Thumbnail:      doc.Thumbnail,
		PublishedAt:    doc.PublishedAt,
	}), nil
}

type animalAidRequestDocument struct {
	UserID        *uuid.UUID       `json:"user_id,omitempty"`
	ShelterID     *uuid.UUID       `json:"shelter_id,omitempty"`
	Title         string           `json:"title"`
	Description   string           `json:"description,omitempty"`
	Category      string           `json:"category"`
	Status        string           `json:"status"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost,omitempty"`
	Photos        []string         `json:"photos"`
}

func encodeAnimalAidRequest(r *entities.AnimalAidRequest) (entities.AggregateState, any) {
	s := r.Snapshot()
	return s.AggregateState, animalAidRequestDocument{
		UserID:        s.UserID,
		ShelterID:     s.ShelterID,
		Title:         s.Title.String(),
		Description:   s.Description,
		Category:      string(s.Category),
		Status:        string(s.Status),
		EstimatedCost: s.EstimatedCost,
		Photos:        s.Photos,
	}
}

func decodeAnimalAidRequest(root entities.AggregateState, data []byte) (*entities.AnimalAidRequest, error) {
	var doc animalAidRequestDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupted(err)
	}

	title, err := vo.NewTitle(doc.Title)
	if err != nil {
		return nil, corrupted(err)
	}
	if doc.EstimatedCost != nil && doc.EstimatedCost.IsNegative() {
		return nil, corrupted(entities.ErrNegativeAidCost)
	}

	return entities.RestoreAnimalAidRequest(entities.AnimalAidRequestState{
		AggregateState: root,
		UserID:         doc.UserID,
		ShelterID:      doc.ShelterID,
		Title:          title,
		Description:    doc.Description,
		Category:       entities.AidCategory(doc.Category),
		Status:         entities.AidStatus(doc.Status),
		EstimatedCost:  doc.EstimatedCost,
		Photos:         doc.Photos,
	}), nil
}

type successStoryDocument struct {
	AnimalID    uuid.UUID  `json:"animal_id"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Photos      []string   `json:"photos"`
	Videos      []string   `json:"videos"`
	Views       int        `json:"views"`
	PublishedAt time.Time  `json:"published_at"`
}

func encodeSuccessStory(st *entities.SuccessStory) (entities.AggregateState, any) {
	s := st.Snapshot()
	return s.AggregateState, successStoryDocument{
		AnimalID:    s.AnimalID,
		UserID:      s.UserID,
		Title:       s.Title.String(),
		Content:     s.Content,
		Photos:      s.Photos,
		Videos:      s.Videos,
		Views:       s.Views,
		PublishedAt: s.PublishedAt,
	}
}

func decodeSuccessStory(root entities.AggregateState, data []byte) (*entities.SuccessStory, error) {
	var doc successStoryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupted(err)
	}

	title, err := vo.NewTitle(doc.Title)
	if err != nil {
		return nil, corrupted(err)
	}

	return entities.RestoreSuccessStory(entities.SuccessStoryState{
		AggregateState: root,
		AnimalID:       doc.AnimalID,
		UserID:         doc.UserID,
		Title:          title,
		Content:        doc.Content,
		Photos:         doc.Photos,
		Videos:         doc.Videos,
		Views:          doc.Views,
		PublishedAt:    doc.PublishedAt,
	}), nil
}
