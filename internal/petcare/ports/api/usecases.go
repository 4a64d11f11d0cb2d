// Package api описывает входные порты сервиса: сценарии использования агрегатов.
package api

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"petcare/internal/petcare/domain/entities"
)

// AdoptionUseCase определяет операции над заявками на усыновление.
type AdoptionUseCase interface {
	Submit(ctx context.Context, userID, animalID uuid.UUID, comment string) (*entities.AdoptionApplication, error)

	Approve(ctx context.Context, applicationID, adminID uuid.UUID) (*entities.AdoptionApplication, error)

	Reject(ctx context.Context, applicationID, adminID uuid.UUID, reason string) (*entities.AdoptionApplication, error)

	AddAdminNotes(ctx context.Context, applicationID uuid.UUID, notes string) (*entities.AdoptionApplication, error)
}

// DonationUseCase определяет операции над пожертвованиями.
type DonationUseCase interface {
	Create(ctx context.Context, params entities.NewDonationParams) (*entities.Donation, error)

	// Process списывает средства и завершает пожертвование.
	// При отказе платежа пожертвование помечается неуспешным.
	Process(ctx context.Context, donationID uuid.UUID) (*entities.Donation, error)
}

// ShelterUseCase определяет операции над приютами.
type ShelterUseCase interface {
	// Register создает приют. Slug выводится из названия, если не задан явно.
	Register(ctx context.Context, params entities.NewShelterParams) (*entities.Shelter, error)

	AdmitAnimal(ctx context.Context, shelterID, animalID uuid.UUID) (*entities.Shelter, error)

	ReleaseAnimal(ctx context.Context, shelterID, animalID uuid.UUID) (*entities.Shelter, error)

	ChangeCapacity(ctx context.Context, shelterID uuid.UUID, capacity int) (*entities.Shelter, error)
}

// AnimalUseCase определяет операции над животными.
type AnimalUseCase interface {
	Register(ctx context.Context, params entities.NewAnimalParams) (*entities.Animal, error)

	ChangeStatus(ctx context.Context, animalID uuid.UUID, status entities.AnimalStatus) (*entities.Animal, error)

	AttachMicrochip(ctx context.Context, animalID uuid.UUID, microchipID string) (*entities.Animal, error)

	UploadPhoto(ctx context.Context, animalID uuid.UUID, r io.Reader, fileName string) (*entities.Animal, error)
}

// UserUseCase определяет операции над пользователями.
type UserUseCase interface {
	// Register принимает пароль в открытом виде и сохраняет только его хэш.
	Register(ctx context.Context, params entities.NewUserParams, password string) (*entities.User, error)

	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) (*entities.User, error)

	// Authenticate проверяет пароль и отмечает вход пользователя.
	Authenticate(ctx context.Context, email, password string) (*entities.User, error)

	AwardPoints(ctx context.Context, userID uuid.UUID, points int) (*entities.User, error)

	ChangeRole(ctx context.Context, userID uuid.UUID, role entities.UserRole) (*entities.User, error)
}

// LostPetUseCase определяет операции над объявлениями о пропавших животных.
type LostPetUseCase interface {
	Report(ctx context.Context, params entities.NewLostPetParams) (*entities.LostPet, error)

	MarkFound(ctx context.Context, lostPetID uuid.UUID) (*entities.LostPet, error)

	MarkReunited(ctx context.Context, lostPetID uuid.UUID) (*entities.LostPet, error)
}

// VolunteerTaskUseCase определяет операции над волонтерскими задачами.
type VolunteerTaskUseCase interface {
	Create(ctx context.Context, params entities.NewVolunteerTaskParams) (*entities.VolunteerTask, error)

	ChangeStatus(ctx context.Context, taskID uuid.UUID, status entities.VolunteerTaskStatus) (*entities.VolunteerTask, error)

	UpdateInfo(ctx context.Context, taskID uuid.UUID, details entities.VolunteerTaskDetails) (*entities.VolunteerTask, error)

	SetSkill(ctx context.Context, taskID uuid.UUID, skill, description string) (*entities.VolunteerTask, error)

	RemoveSkill(ctx context.Context, taskID uuid.UUID, skill string) (*entities.VolunteerTask, error)
}

// ArticleUseCase определяет операции над статьями.
type ArticleUseCase interface {
	// Write создает статью; slug выводится из заголовка, если не задан явно.
	Write(ctx context.Context, params entities.NewArticleParams) (*entities.Article, error)

	Edit(ctx context.Context, articleID uuid.UUID, changes entities.ArticleChanges) (*entities.Article, error)

	Publish(ctx context.Context, articleID uuid.UUID) (*entities.Article, error)

	Archive(ctx context.Context, articleID uuid.UUID) (*entities.Article, error)

	GetBySlug(ctx context.Context, slug string) (*entities.Article, error)
}

// AnimalAidUseCase определяет операции над запросами о помощи.
type AnimalAidUseCase interface {
	Request(ctx context.Context, params entities.NewAnimalAidRequestParams) (*entities.AnimalAidRequest, error)

	ChangeStatus(ctx context.Context, requestID uuid.UUID, status entities.AidStatus) (*entities.AnimalAidRequest, error)

	UpdateEstimatedCost(ctx context.Context, requestID uuid.UUID, cost *decimal.Decimal) (*entities.AnimalAidRequest, error)
}

// SuccessStoryUseCase определяет операции над историями успеха.
type SuccessStoryUseCase interface {
	// Publish принимает историю только об усыновленном животном.
	Publish(ctx context.Context, params entities.NewSuccessStoryParams) (*entities.SuccessStory, error)

	RecordView(ctx context.Context, storyID uuid.UUID) (*entities.SuccessStory, error)
}
