package postgres

import (
	"petcare/internal/petcare/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	animalRepo      repositories.AnimalRepository
	shelterRepo     repositories.ShelterRepository
	userRepo        repositories.UserRepository
	donationRepo    repositories.DonationRepository
	applicationRepo repositories.AdoptionApplicationRepository
	lostPetRepo     repositories.LostPetRepository
	taskRepo        repositories.VolunteerTaskRepository
	articleRepo     repositories.ArticleRepository
	aidRequestRepo  repositories.AnimalAidRequestRepository
	storyRepo       repositories.SuccessStoryRepository
	outboxRepo      repositories.OutboxRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		animalRepo:      NewAnimalRepository(pool),
		shelterRepo:     NewShelterRepository(pool),
		userRepo:        NewUserRepository(pool),
		donationRepo:    NewDonationRepository(pool),
		applicationRepo: NewAdoptionApplicationRepository(pool),
		lostPetRepo:     NewLostPetRepository(pool),
		taskRepo:        NewVolunteerTaskRepository(pool),
		articleRepo:     NewArticleRepository(pool),
		aidRequestRepo:  NewAnimalAidRequestRepository(pool),
		storyRepo:       NewSuccessStoryRepository(pool),
		outboxRepo:      NewOutboxRepository(pool),
	}
}

// AnimalRepository возвращает репозиторий животных.
func (f *RepositoryFactory) AnimalRepository() repositories.AnimalRepository {
	return f.animalRepo
}

// ShelterRepository возвращает репозиторий приютов.
func (f *RepositoryFactory) ShelterRepository() repositories.ShelterRepository {
	return f.shelterRepo
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// DonationRepository возвращает репозиторий пожертвований.
func (f *RepositoryFactory) DonationRepository() repositories.DonationRepository {
	return f.donationRepo
}

// AdoptionApplicationRepository возвращает репозиторий заявок на усыновление.
func (f *RepositoryFactory) AdoptionApplicationRepository() repositories.AdoptionApplicationRepository {
	return f.applicationRepo
}

// LostPetRepository возвращает репозиторий объявлений о пропавших животных.
func (f *RepositoryFactory) LostPetRepository() repositories.LostPetRepository {
	return f.lostPetRepo
}

func (f *RepositoryFactory) VolunteerTaskRepository() repositories.VolunteerTaskRepository {
	return f.taskRepo
}

func (f *RepositoryFactory) ArticleRepository() repositories.ArticleRepository {
	return f.articleRepo
}

func (f *RepositoryFactory) AnimalAidRequestRepository() repositories.AnimalAidRequestRepository {
	return f.aidRequestRepo
}

func (f *RepositoryFactory) SuccessStoryRepository() repositories.SuccessStoryRepository {
	return f.storyRepo
}

// OutboxRepository возвращает репозиторий журнала событий.
func (f *RepositoryFactory) OutboxRepository() repositories.OutboxRepository {
	return f.outboxRepo
}
