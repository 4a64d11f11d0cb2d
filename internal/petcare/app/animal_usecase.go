package app

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
	"petcare/internal/petcare/ports/api"
	"petcare/internal/petcare/ports/repositories"
	"petcare/internal/petcare/ports/services"
	"petcare/pkg/logger"
)

// MaxPhotoBytes - максимальный размер фотографии животного.
const MaxPhotoBytes int64 = 10 << 20

var allowedPhotoExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

const (
	methodRegisterAnimal  = "RegisterAnimal"
	methodChangeStatus    = "ChangeAnimalStatus"
	methodAttachMicrochip = "AttachMicrochip"
	methodUploadPhoto     = "UploadPhoto"

	msgAnimalRegistered = "animal registered"
	msgAnimalUpdated    = "animal updated"
	msgPhotoUploaded    = "photo uploaded"

	msgErrPhotoCleanup = "failed to delete orphaned photo"

	errCtxCreatingAnimal = "creating animal"
	errCtxUpdatingAnimal = "updating animal"
	errCtxUploadingPhoto = "uploading photo"
)

// AnimalUseCaseImpl реализует интерфейс AnimalUseCase.
type AnimalUseCaseImpl struct {
	animals   repositories.AnimalRepository
	slugs     services.SlugRegistry
	storage   services.FileStorage
	committer *Committer
}

// NewAnimalUseCase создает новый экземпляр сервиса животных.
func NewAnimalUseCase(
	animals repositories.AnimalRepository,
	slugs services.SlugRegistry,
	storage services.FileStorage,
	committer *Committer,
) api.AnimalUseCase {
	return &AnimalUseCaseImpl{
		animals:   animals,
		slugs:     slugs,
		storage:   storage,
		committer: committer,
	}
}

// Register создает животное. Slug выводится из клички, если не задан явно.
func (u *AnimalUseCaseImpl) Register(ctx context.Context, params entities.NewAnimalParams) (*entities.Animal, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegisterAnimal))

	slug, err := reserveSlug(ctx, u.slugs, events.AggregateAnimal, slugSource(params.Slug, params.Name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingAnimal, err)
	}
	params.Slug = slug.String()

	animal, err := entities.CreateAnimal(params)
	if err == nil {
		err = create[*entities.Animal](ctx, u.committer, u.animals, animal)
	}
	if err != nil {
		releaseSlug(ctx, u.slugs, events.AggregateAnimal, slug)
		log.Debug(ctx, errCtxCreatingAnimal, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingAnimal, err)
	}

	log.Info(ctx, msgAnimalRegistered,
		zap.String("animalID", animal.ID().String()),
		zap.String("slug", slug.String()))
	return animal, nil
}

func (u *AnimalUseCaseImpl) ChangeStatus(ctx context.Context, animalID uuid.UUID, status entities.AnimalStatus) (*entities.Animal, error) {
	return u.change(ctx, methodChangeStatus, animalID, func(a *entities.Animal) error {
		return a.ChangeStatus(status)
	})
}

func (u *AnimalUseCaseImpl) AttachMicrochip(ctx context.Context, animalID uuid.UUID, microchipID string) (*entities.Animal, error) {
	return u.change(ctx, methodAttachMicrochip, animalID, func(a *entities.Animal) error {
		return a.AttachMicrochip(microchipID)
	})
}

// UploadPhoto сохраняет файл в хранилище и добавляет его URL к фотографиям животного.
// Если животное не удалось обновить, загруженный файл удаляется.
func (u *AnimalUseCaseImpl) UploadPhoto(ctx context.Context, animalID uuid.UUID, r io.Reader, fileName string) (*entities.Animal, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUploadPhoto), zap.String("animalID", animalID.String()))

	url, err := u.storage.Upload(ctx, r, fileName, MaxPhotoBytes, allowedPhotoExtensions)
	if err != nil {
		log.Debug(ctx, errCtxUploadingPhoto, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUploadingPhoto, err)
	}
	log.Debug(ctx, msgPhotoUploaded, zap.String("url", url))

	animal, err := u.change(ctx, methodUploadPhoto, animalID, func(a *entities.Animal) error {
		return a.AddPhoto(url)
	})
	if err != nil {
		if delErr := u.storage.Delete(ctx, url); delErr != nil {
			log.Warn(ctx, msgErrPhotoCleanup, zap.String("url", url), zap.Error(delErr))
		}
		return nil, err
	}
	return animal, nil
}

func (u *AnimalUseCaseImpl) change(
	ctx context.Context,
	method string,
	animalID uuid.UUID,
	mutate func(*entities.Animal) error,
) (*entities.Animal, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("animalID", animalID.String()))

	animal, err := update[*entities.Animal](ctx, u.committer, u.animals, animalID, mutate)
	if err != nil {
		log.Debug(ctx, errCtxUpdatingAnimal, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingAnimal, err)
	}

	log.Info(ctx, msgAnimalUpdated,
		zap.String("status", string(animal.Status())),
		zap.Int("version", animal.Version()))
	return animal, nil
}
