package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/ports/api"
	"petcare/internal/petcare/ports/repositories"
	"petcare/pkg/logger"
)

const (
	methodSubmit        = "Submit"
	methodApprove       = "Approve"
	methodReject        = "Reject"
	methodAddAdminNotes = "AddAdminNotes"

	msgSubmittingApplication = "submitting adoption application"
	msgApplicationSubmitted  = "adoption application submitted"
	msgApplicationReviewed   = "adoption application reviewed"

	msgErrAnimalNotAdoptable = "animal cannot be adopted"

	errCtxFetchingAnimal      = "fetching animal"
	errCtxCreatingApplication = "creating adoption application"
	errCtxUpdatingApplication = "updating adoption application"
)

// ErrAnimalNotAdoptable возвращается при подаче заявки на недоступное животное.
var ErrAnimalNotAdoptable = domainerr.InvalidState("animal is not available for adoption")

// AdoptionUseCaseImpl реализует интерфейс AdoptionUseCase.
type AdoptionUseCaseImpl struct {
	applications repositories.AdoptionApplicationRepository
	animals      repositories.AnimalRepository
	committer    *Committer
}

// NewAdoptionUseCase создает новый экземпляр сервиса заявок на усыновление.
func NewAdoptionUseCase(
	applications repositories.AdoptionApplicationRepository,
	animals repositories.AnimalRepository,
	committer *Committer,
) api.AdoptionUseCase {
	return &AdoptionUseCaseImpl{
		applications: applications,
		animals:      animals,
		committer:    committer,
	}
}

// Submit создает заявку, если животное доступно для усыновления.
func (u *AdoptionUseCaseImpl) Submit(ctx context.Context, userID, animalID uuid.UUID, comment string) (*entities.AdoptionApplication, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodSubmit),
		zap.String("userID", userID.String()),
		zap.String("animalID", animalID.String()),
	)
	log.Debug(ctx, msgSubmittingApplication)

	application, err := entities.CreateAdoptionApplication(userID, animalID, comment)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingApplication, err)
	}

	animal, err := u.animals.FindByID(ctx, animalID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingAnimal, err)
	}
	if !animal.CanBeAdopted() {
		log.Debug(ctx, msgErrAnimalNotAdoptable, zap.String("status", string(animal.Status())))
		return nil, ErrAnimalNotAdoptable
	}

	if err := create[*entities.AdoptionApplication](ctx, u.committer, u.applications, application); err != nil {
		log.Error(ctx, errCtxCreatingApplication, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingApplication, err)
	}

	log.Info(ctx, msgApplicationSubmitted, zap.String("applicationID", application.ID().String()))
	return application, nil
}

// Approve одобряет заявку. Животное помечается усыновленным обработчиком события.
func (u *AdoptionUseCaseImpl) Approve(ctx context.Context, applicationID, adminID uuid.UUID) (*entities.AdoptionApplication, error) {
	return u.review(ctx, methodApprove, applicationID, func(a *entities.AdoptionApplication) error {
		return a.Approve(adminID)
	})
}

func (u *AdoptionUseCaseImpl) Reject(ctx context.Context, applicationID, adminID uuid.UUID, reason string) (*entities.AdoptionApplication, error) {
	return u.review(ctx, methodReject, applicationID, func(a *entities.AdoptionApplication) error {
		return a.Reject(adminID, reason)
	})
}

func (u *AdoptionUseCaseImpl) AddAdminNotes(ctx context.Context, applicationID uuid.UUID, notes string) (*entities.AdoptionApplication, error) {
	return u.review(ctx, methodAddAdminNotes, applicationID, func(a *entities.AdoptionApplication) error {
		return a.AddAdminNotes(notes)
	})
}

func (u *AdoptionUseCaseImpl) review(
	ctx context.Context,
	method string,
	applicationID uuid.UUID,
	mutate func(*entities.AdoptionApplication) error,
) (*entities.AdoptionApplication, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("applicationID", applicationID.String()))

	application, err := update[*entities.AdoptionApplication](ctx, u.committer, u.applications, applicationID, mutate)
	if err != nil {
		log.Debug(ctx, errCtxUpdatingApplication, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingApplication, err)
	}

	log.Info(ctx, msgApplicationReviewed, zap.String("status", string(application.Status())))
	return application, nil
}
