package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
	"petcare/internal/petcare/ports/api"
	"petcare/internal/petcare/ports/repositories"
	"petcare/internal/petcare/ports/services"
	"petcare/pkg/logger"
)

const (
	methodRegisterShelter = "RegisterShelter"
	methodAdmitAnimal     = "AdmitAnimal"
	methodReleaseAnimal   = "ReleaseAnimal"
	methodChangeCapacity  = "ChangeCapacity"

	msgRegisteringShelter = "registering shelter"
	msgShelterGeocoded    = "shelter address geocoded"
	msgShelterRegistered  = "shelter registered"
	msgShelterUpdated     = "shelter updated"

	errCtxGeocoding       = "geocoding shelter address"
	errCtxCreatingShelter = "creating shelter"
	errCtxUpdatingShelter = "updating shelter"
)

// ShelterUseCaseImpl реализует интерфейс ShelterUseCase.
type ShelterUseCaseImpl struct {
	shelters  repositories.ShelterRepository
	slugs     services.SlugRegistry
	geocoder  services.GeolocationService
	committer *Committer
}

// NewShelterUseCase создает новый экземпляр сервиса приютов.
// geocoder может быть nil, тогда координаты берутся только из параметров.
func NewShelterUseCase(
	shelters repositories.ShelterRepository,
	slugs services.SlugRegistry,
	geocoder services.GeolocationService,
	committer *Committer,
) api.ShelterUseCase {
	return &ShelterUseCaseImpl{
		shelters:  shelters,
		slugs:     slugs,
		geocoder:  geocoder,
		committer: committer,
	}
}

// Register создает приют. Если координаты не заданы, они определяются по адресу.
func (u *ShelterUseCaseImpl) Register(ctx context.Context, params entities.NewShelterParams) (*entities.Shelter, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegisterShelter))
	log.Debug(ctx, msgRegisteringShelter, zap.String("name", params.Name))

	if params.Latitude == 0 && params.Longitude == 0 && u.geocoder != nil {
		address, err := vo.NewAddress(params.Address)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtxCreatingShelter, err)
		}
		coords, err := u.geocoder.Geocode(ctx, address)
		if err != nil {
			log.Error(ctx, errCtxGeocoding, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxGeocoding, err)
		}
		params.Latitude, params.Longitude = coords.Latitude(), coords.Longitude()
		log.Debug(ctx, msgShelterGeocoded,
			zap.Float64("latitude", params.Latitude),
			zap.Float64("longitude", params.Longitude))
	}

	slug, err := reserveSlug(ctx, u.slugs, events.AggregateShelter, slugSource(params.Slug, params.Name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingShelter, err)
	}
	params.Slug = slug.String()

	shelter, err := entities.CreateShelter(params)
	if err == nil {
		err = create[*entities.Shelter](ctx, u.committer, u.shelters, shelter)
	}
	if err != nil {
		releaseSlug(ctx, u.slugs, events.AggregateShelter, slug)
		log.Debug(ctx, errCtxCreatingShelter, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingShelter, err)
	}

	log.Info(ctx, msgShelterRegistered,
		zap.String("shelterID", shelter.ID().String()),
		zap.String("slug", slug.String()))
	return shelter, nil
}

func (u *ShelterUseCaseImpl) AdmitAnimal(ctx context.Context, shelterID, animalID uuid.UUID) (*entities.Shelter, error) {
	return u.change(ctx, methodAdmitAnimal, shelterID, func(s *entities.Shelter) error {
		return s.AddAnimal(animalID)
	})
}

func (u *ShelterUseCaseImpl) ReleaseAnimal(ctx context.Context, shelterID, animalID uuid.UUID) (*entities.Shelter, error) {
	return u.change(ctx, methodReleaseAnimal, shelterID, func(s *entities.Shelter) error {
		return s.RemoveAnimal(animalID)
	})
}

func (u *ShelterUseCaseImpl) ChangeCapacity(ctx context.Context, shelterID uuid.UUID, capacity int) (*entities.Shelter, error) {
	return u.change(ctx, methodChangeCapacity, shelterID, func(s *entities.Shelter) error {
		return s.ChangeCapacity(capacity)
	})
}

func (u *ShelterUseCaseImpl) change(
	ctx context.Context,
	method string,
	shelterID uuid.UUID,
	mutate func(*entities.Shelter) error,
) (*entities.Shelter, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("shelterID", shelterID.String()))

	shelter, err := update[*entities.Shelter](ctx, u.committer, u.shelters, shelterID, mutate)
	if err != nil {
		log.Debug(ctx, errCtxUpdatingShelter, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingShelter, err)
	}

	log.Info(ctx, msgShelterUpdated,
		zap.Int("capacity", shelter.Capacity()),
		zap.Int("occupancy", shelter.CurrentOccupancy()))
	return shelter, nil
}
