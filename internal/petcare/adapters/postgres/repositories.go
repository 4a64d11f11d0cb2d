package postgres

import (
	"context"
	"strings"

	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
	"petcare/internal/petcare/ports/repositories"
)

// AnimalRepository хранит животных в таблице animals.
type AnimalRepository struct {
	*store[*entities.Animal]
}

// NewAnimalRepository создает новый экземпляр репозитория животных.
func NewAnimalRepository(pool PgxPoolInterface) repositories.AnimalRepository {
	return &AnimalRepository{newStore(pool, tableAnimals, events.AggregateAnimal, encodeAnimal, decodeAnimal)}
}

// ShelterRepository хранит приюты в таблице shelters.
type ShelterRepository struct {
	*store[*entities.Shelter]
}

// NewShelterRepository создает новый экземпляр репозитория приютов.
func NewShelterRepository(pool PgxPoolInterface) repositories.ShelterRepository {
	return &ShelterRepository{newStore(pool, tableShelters, events.AggregateShelter, encodeShelter, decodeShelter)}
}

// FindBySlug находит приют по slug.
func (r *ShelterRepository) FindBySlug(ctx context.Context, slug string) (*entities.Shelter, error) {
	return r.findByField(ctx, "FindBySlug", "slug", slug)
}

// UserRepository хранит пользователей в таблице users.
type UserRepository struct {
	*store[*entities.User]
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{newStore(pool, tableUsers, events.AggregateUser, encodeUser, decodeUser)}
}

// FindByEmail находит пользователя по email без учета регистра.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findByField(ctx, "FindByEmail", "email", strings.ToLower(strings.TrimSpace(email)))
}

// DonationRepository хранит пожертвования в таблице donations.
type DonationRepository struct {
	*store[*entities.Donation]
}

// NewDonationRepository создает новый экземпляр репозитория пожертвований.
func NewDonationRepository(pool PgxPoolInterface) repositories.DonationRepository {
	return &DonationRepository{newStore(pool, tableDonations, events.AggregateDonation, encodeDonation, decodeDonation)}
}

// AdoptionApplicationRepository хранит заявки в таблице adoption_applications.
type AdoptionApplicationRepository struct {
	*store[*entities.AdoptionApplication]
}

// NewAdoptionApplicationRepository создает новый экземпляр репозитория заявок.
func NewAdoptionApplicationRepository(pool PgxPoolInterface) repositories.AdoptionApplicationRepository {
	return &AdoptionApplicationRepository{newStore(pool, tableAdoptionApplications,
		events.AggregateAdoptionApplication, encodeAdoptionApplication, decodeAdoptionApplication)}
}

// LostPetRepository хранит объявления в таблице lost_pets.
type LostPetRepository struct {
	*store[*entities.LostPet]
}

// NewLostPetRepository создает новый экземпляр репозитория объявлений о пропавших животных.
func NewLostPetRepository(pool PgxPoolInterface) repositories.LostPetRepository {
	return &LostPetRepository{newStore(pool, tableLostPets, events.AggregateLostPet, encodeLostPet, decodeLostPet)}
}

// VolunteerTaskRepository хранит волонтерские задачи в таблице volunteer_tasks.
type VolunteerTaskRepository struct {
	*store[*entities.VolunteerTask]
}

func NewVolunteerTaskRepository(pool PgxPoolInterface) repositories.VolunteerTaskRepository {
	return &VolunteerTaskRepository{newStore(pool, tableVolunteerTasks,
		events.AggregateVolunteerTask, encodeVolunteerTask, decodeVolunteerTask)}
}

// ArticleRepository хранит статьи в таблице articles.
type ArticleRepository struct {
	*store[*entities.Article]
}

func NewArticleRepository(pool PgxPoolInterface) repositories.ArticleRepository {
	return &ArticleRepository{newStore(pool, tableArticles, events.AggregateArticle, encodeArticle, decodeArticle)}
}

// FindBySlug находит статью по slug.
func (r *ArticleRepository) FindBySlug(ctx context.Context, slug string) (*entities.Article, error) {
	return r.findByField(ctx, "FindBySlug", "slug", slug)
}

// AnimalAidRequestRepository хранит запросы о помощи в таблице animal_aid_requests.
type AnimalAidRequestRepository struct {
	*store[*entities.AnimalAidRequest]
}

func NewAnimalAidRequestRepository(pool PgxPoolInterface) repositories.AnimalAidRequestRepository {
	return &AnimalAidRequestRepository{newStore(pool, tableAnimalAidRequests,
		events.AggregateAnimalAidRequest, encodeAnimalAidRequest, decodeAnimalAidRequest)}
}

// SuccessStoryRepository хранит истории в таблице success_stories.
type SuccessStoryRepository struct {
	*store[*entities.SuccessStory]
}

func NewSuccessStoryRepository(pool PgxPoolInterface) repositories.SuccessStoryRepository {
	return &SuccessStoryRepository{newStore(pool, tableSuccessStories,
		events.AggregateSuccessStory, encodeSuccessStory, decodeSuccessStory)}
}
