package app_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"petcare/internal/petcare/app"
	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
	"petcare/internal/petcare/ports/services"
	"petcare/internal/petcare/resilience"
)

var (
	ErrDatabaseOperation = errors.New("database error")
	ErrServiceDown       = errors.New("service unavailable")
)

type mockRepository[A entities.Aggregate] struct {
	mock.Mock
}

func (m *mockRepository[A]) FindByID(ctx context.Context, id uuid.UUID) (A, error) {
	args := m.Called(ctx, id)
	aggregate, _ := args.Get(0).(A)
	return aggregate, args.Error(1)
}

func (m *mockRepository[A]) Save(ctx context.Context, aggregate A, expectedVersion int) error {
	return m.Called(ctx, aggregate, expectedVersion).Error(0)
}

type mockShelterRepository struct {
	mockRepository[*entities.Shelter]
}

func (m *mockShelterRepository) FindBySlug(ctx context.Context, slug string) (*entities.Shelter, error) {
	args := m.Called(ctx, slug)
	shelter, _ := args.Get(0).(*entities.Shelter)
	return shelter, args.Error(1)
}

type mockArticleRepository struct {
	mockRepository[*entities.Article]
}

func (m *mockArticleRepository) FindBySlug(ctx context.Context, slug string) (*entities.Article, error) {
	args := m.Called(ctx, slug)
	article, _ := args.Get(0).(*entities.Article)
	return article, args.Error(1)
}

type mockUserRepository struct {
	mockRepository[*entities.User]
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

type mockOutbox struct {
	mock.Mock
}

func (m *mockOutbox) FetchUndispatched(ctx context.Context, limit int, skip []uuid.UUID) ([]events.Event, error) {
	args := m.Called(ctx, limit, skip)
	evts, _ := args.Get(0).([]events.Event)
	return evts, args.Error(1)
}

func (m *mockOutbox) MarkDispatched(ctx context.Context, eventIDs []uuid.UUID) error {
	return m.Called(ctx, eventIDs).Error(0)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockDispatcher) DispatchAll(ctx context.Context, evts []events.Event) error {
	return m.Called(ctx, evts).Error(0)
}

type mockSlugRegistry struct {
	mock.Mock
}

func (m *mockSlugRegistry) Reserve(ctx context.Context, scope, slug string) (bool, error) {
	args := m.Called(ctx, scope, slug)
	return args.Bool(0), args.Error(1)
}

func (m *mockSlugRegistry) Release(ctx context.Context, scope, slug string) error {
	return m.Called(ctx, scope, slug).Error(0)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

func (m *mockPasswordService) NeedsRehash(hash string) bool {
	return m.Called(hash).Bool(0)
}

type mockFileStorage struct {
	mock.Mock
}

func (m *mockFileStorage) Upload(ctx context.Context, r io.Reader, name string, maxBytes int64, allowedExtensions []string) (string, error) {
	args := m.Called(ctx, r, name, maxBytes, allowedExtensions)
	return args.String(0), args.Error(1)
}

func (m *mockFileStorage) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type mockPaymentProcessor struct {
	mock.Mock
}

func (m *mockPaymentProcessor) Charge(ctx context.Context, req services.PaymentRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Geocode(ctx context.Context, address vo.Address) (vo.Coordinates, error) {
	args := m.Called(ctx, address)
	coords, _ := args.Get(0).(vo.Coordinates)
	return coords, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyUser(ctx context.Context, userID uuid.UUID, subject, message string) error {
	return m.Called(ctx, userID, subject, message).Error(0)
}

type mockAuditLogger struct {
	mock.Mock
}

func (m *mockAuditLogger) LogEvent(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

type mockAnimalUseCase struct {
	mock.Mock
}

func (m *mockAnimalUseCase) Register(ctx context.Context, params entities.NewAnimalParams) (*entities.Animal, error) {
	args := m.Called(ctx, params)
	animal, _ := args.Get(0).(*entities.Animal)
	return animal, args.Error(1)
}

func (m *mockAnimalUseCase) ChangeStatus(ctx context.Context, animalID uuid.UUID, status entities.AnimalStatus) (*entities.Animal, error) {
	args := m.Called(ctx, animalID, status)
	animal, _ := args.Get(0).(*entities.Animal)
	return animal, args.Error(1)
}

func (m *mockAnimalUseCase) AttachMicrochip(ctx context.Context, animalID uuid.UUID, microchipID string) (*entities.Animal, error) {
	args := m.Called(ctx, animalID, microchipID)
	animal, _ := args.Get(0).(*entities.Animal)
	return animal, args.Error(1)
}

func (m *mockAnimalUseCase) UploadPhoto(ctx context.Context, animalID uuid.UUID, r io.Reader, fileName string) (*entities.Animal, error) {
	args := m.Called(ctx, animalID, r, fileName)
	animal, _ := args.Get(0).(*entities.Animal)
	return animal, args.Error(1)
}

// commitMocks - диспетчер и журнал событий для Committer.
type commitMocks struct {
	dispatcher *mockDispatcher
	outbox     *mockOutbox
}

func newCommitter() (*app.Committer, *commitMocks) {
	m := &commitMocks{dispatcher: new(mockDispatcher), outbox: new(mockOutbox)}
	return app.NewCommitter(m.dispatcher, m.outbox, resilience.ConflictRetryConfig(3, time.Millisecond)), m
}

// expectPublish ожидает доставку событий указанных типов и отметку о доставке.
func (m *commitMocks) expectPublish(types ...string) {
	m.dispatcher.On("DispatchAll", mock.Anything, mock.MatchedBy(func(evts []events.Event) bool {
		return equalTypes(evts, types)
	})).Return(nil).Once()
	m.outbox.On("MarkDispatched", mock.Anything, mock.MatchedBy(func(ids []uuid.UUID) bool {
		return len(ids) == len(types)
	})).Return(nil).Once()
}

func (m *commitMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.dispatcher.AssertExpectations(t)
	m.outbox.AssertExpectations(t)
}

func equalTypes(evts []events.Event, types []string) bool {
	if len(evts) != len(types) {
		return false
	}
	for i, e := range evts {
		if e.EventType() != types[i] {
			return false
		}
	}
	return true
}

func animalParams() entities.NewAnimalParams {
	return entities.NewAnimalParams{
		Slug:      "Barsik",
		Name:      "Барсик",
		UserID:    uuid.New(),
		BreedID:   uuid.New(),
		ShelterID: uuid.New(),
		IDNumber:  1,
	}
}

func newAnimal(t *testing.T) *entities.Animal {
	t.Helper()
	a, err := entities.CreateAnimal(animalParams())
	require.NoError(t, err)
	a.ClearEvents()
	return a
}

// copyAnimal возвращает независимую копию, как при повторном чтении из хранилища.
func copyAnimal(a *entities.Animal) *entities.Animal {
	return entities.RestoreAnimal(a.Snapshot())
}

func shelterParams() entities.NewShelterParams {
	return entities.NewShelterParams{
		Name:      "Добрі руки",
		Slug:      "Dobri Ruky",
		Address:   "вул. Шевченка, 10, м. Київ",
		Latitude:  50.4501,
		Longitude: 30.5234,
		Email:     "info@dobri-ruky.org",
		Phone:     "+380501234567",
		Capacity:  2,
	}
}

func newShelter(t *testing.T) *entities.Shelter {
	t.Helper()
	s, err := entities.CreateShelter(shelterParams())
	require.NoError(t, err)
	s.ClearEvents()
	return s
}

func userParams() entities.NewUserParams {
	return entities.NewUserParams{
		Email:     "Olena@Example.com",
		FirstName: "Олена",
		LastName:  "Петренко",
		Phone:     "+380501234567",
	}
}

func newUser(t *testing.T) *entities.User {
	t.Helper()
	p := userParams()
	p.PasswordHash = "$2a$10$old"
	u, err := entities.CreateUser(p)
	require.NoError(t, err)
	u.ClearEvents()
	return u
}

func donationParams() entities.NewDonationParams {
	shelterID := uuid.New()
	return entities.NewDonationParams{
		ShelterID:       &shelterID,
		Amount:          decimal.NewFromInt(250),
		Currency:        "UAH",
		PaymentMethodID: uuid.New(),
		Purpose:         "корм",
	}
}

func newDonation(t *testing.T, modify ...func(p *entities.NewDonationParams)) *entities.Donation {
	t.Helper()
	p := donationParams()
	for _, m := range modify {
		m(&p)
	}
	d, err := entities.CreateDonation(p)
	require.NoError(t, err)
	d.ClearEvents()
	return d
}

func newApplication(t *testing.T) *entities.AdoptionApplication {
	t.Helper()
	a, err := entities.CreateAdoptionApplication(uuid.New(), uuid.New(), "Маємо великий двір")
	require.NoError(t, err)
	a.ClearEvents()
	return a
}

func lostPetParams() entities.NewLostPetParams {
	return entities.NewLostPetParams{
		UserID:    uuid.New(),
		Name:      "Rex",
		Latitude:  50.45,
		Longitude: 30.52,
	}
}

func newLostPet(t *testing.T) *entities.LostPet {
	t.Helper()
	p := lostPetParams()
	p.Slug = "rex"
	l, err := entities.ReportLostPet(p)
	require.NoError(t, err)
	l.ClearEvents()
	return l
}

func taskParams() entities.NewVolunteerTaskParams {
	return entities.NewVolunteerTaskParams{
		VolunteerTaskDetails: entities.VolunteerTaskDetails{
			Title:              "Вигул собак",
			Date:               time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
			RequiredVolunteers: 2,
			PointsReward:       5,
		},
		ShelterID: uuid.New(),
	}
}

func newVolunteerTask(t *testing.T) *entities.VolunteerTask {
	t.Helper()
	task, err := entities.CreateVolunteerTask(taskParams())
	require.NoError(t, err)
	task.ClearEvents()
	return task
}

func newArticle(t *testing.T) *entities.Article {
	t.Helper()
	a, err := entities.CreateArticle(entities.NewArticleParams{
		Slug:    "kitten-care",
		Title:   "Догляд за кошеням",
		Content: "Годуйте часто і потроху",
	})
	require.NoError(t, err)
	a.ClearEvents()
	return a
}

func aidRequestParams() entities.NewAnimalAidRequestParams {
	userID := uuid.New()
	return entities.NewAnimalAidRequestParams{
		UserID:   &userID,
		Title:    "Корм для котів",
		Category: entities.AidFood,
	}
}

func newAidRequest(t *testing.T) *entities.AnimalAidRequest {
	t.Helper()
	r, err := entities.CreateAnimalAidRequest(aidRequestParams())
	require.NoError(t, err)
	r.ClearEvents()
	return r
}

func newSuccessStory(t *testing.T) *entities.SuccessStory {
	t.Helper()
	s, err := entities.PublishSuccessStory(entities.NewSuccessStoryParams{
		AnimalID: uuid.New(),
		Title:    "Барсик вдома",
		Content:  "Тепер спить на дивані",
	})
	require.NoError(t, err)
	s.ClearEvents()
	return s
}
