package repositories

import (
	"context"

	"github.com/google/uuid"

	"petcare/internal/petcare/domain/entities"
)

// Repository - граница сохранения агрегата с оптимистичной блокировкой.
//
// Save записывает агрегат, только если сохраненная версия равна expectedVersion
// (0 для нового агрегата), и вместе с ним записывает его ожидающие события.
// При расхождении версий возвращается domainerr.ErrConcurrencyConflict.
// FindByID возвращает domainerr.ErrNotFound, если агрегата нет.
type Repository[A entities.Aggregate] interface {
	FindByID(ctx context.Context, id uuid.UUID) (A, error)

	Save(ctx context.Context, aggregate A, expectedVersion int) error
}

// AnimalRepository определяет операции хранения животных.
type AnimalRepository interface {
	Repository[*entities.Animal]
}

// ShelterRepository определяет операции хранения приютов.
type ShelterRepository interface {
	Repository[*entities.Shelter]

	FindBySlug(ctx context.Context, slug string) (*entities.Shelter, error)
}

// UserRepository определяет операции хранения пользователей.
type UserRepository interface {
	Repository[*entities.User]

	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}

// DonationRepository определяет операции хранения пожертвований.
type DonationRepository interface {
	Repository[*entities.Donation]
}

// AdoptionApplicationRepository определяет операции хранения заявок на усыновление.
type AdoptionApplicationRepository interface {
	Repository[*entities.AdoptionApplication]
}

// LostPetRepository определяет операции хранения объявлений о пропавших животных.
type LostPetRepository interface {
	Repository[*entities.LostPet]
}

// VolunteerTaskRepository определяет операции хранения волонтерских задач.
type VolunteerTaskRepository interface {
	Repository[*entities.VolunteerTask]
}

// ArticleRepository определяет операции хранения статей.
type ArticleRepository interface {
	Repository[*entities.Article]

	FindBySlug(ctx context.Context, slug string) (*entities.Article, error)
}

// AnimalAidRequestRepository определяет операции хранения запросов о помощи.
type AnimalAidRequestRepository interface {
	Repository[*entities.AnimalAidRequest]
}

// SuccessStoryRepository определяет операции хранения историй успеха.
type SuccessStoryRepository interface {
	Repository[*entities.SuccessStory]
}
