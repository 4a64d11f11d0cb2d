package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/ports/api"
	"petcare/internal/petcare/ports/repositories"
	"petcare/pkg/logger"
)

const (
	methodRequestAid      = "RequestAid"
	methodChangeAidStatus = "ChangeAidStatus"
	methodUpdateAidCost   = "UpdateAidCost"
	methodPublishStory    = "PublishSuccessStory"
	methodRecordStoryView = "RecordStoryView"

	msgAidRequested = "animal aid requested"
	msgAidUpdated   = "animal aid request updated"
	msgStoryPosted  = "success story published"

	errCtxCreatingAid   = "creating aid request"
	errCtxUpdatingAid   = "updating aid request"
	errCtxCreatingStory = "publishing success story"
	errCtxUpdatingStory = "updating success story"
	errCtxLoadingAnimal = "loading animal"
)

// ErrAnimalNotAdopted возвращается при попытке рассказать историю
// о животном, которое еще не нашло дом.
var ErrAnimalNotAdopted = domainerr.InvalidState("success story requires an adopted animal")

// AnimalAidUseCaseImpl реализует интерфейс AnimalAidUseCase.
type AnimalAidUseCaseImpl struct {
	requests  repositories.AnimalAidRequestRepository
	committer *Committer
}

func NewAnimalAidUseCase(requests repositories.AnimalAidRequestRepository, committer *Committer) api.AnimalAidUseCase {
	return &AnimalAidUseCaseImpl{requests: requests, committer: committer}
}

func (u *AnimalAidUseCaseImpl) Request(
	ctx context.Context,
	params entities.NewAnimalAidRequestParams,
) (*entities.AnimalAidRequest, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRequestAid), zap.String("category", string(params.Category)))

	request, err := entities.CreateAnimalAidRequest(params)
	if err == nil {
		err = create[*entities.AnimalAidRequest](ctx, u.committer, u.requests, request)
	}
	if err != nil {
		log.Debug(ctx, errCtxCreatingAid, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingAid, err)
	}

	log.Info(ctx, msgAidRequested, zap.String("requestID", request.ID().String()))
	return request, nil
}

func (u *AnimalAidUseCaseImpl) ChangeStatus(
	ctx context.Context,
	requestID uuid.UUID,
	status entities.AidStatus,
) (*entities.AnimalAidRequest, error) {
	return u.change(ctx, methodChangeAidStatus, requestID, func(r *entities.AnimalAidRequest) error {
		return r.UpdateStatus(status)
	})
}

func (u *AnimalAidUseCaseImpl) UpdateEstimatedCost(
	ctx context.Context,
	requestID uuid.UUID,
	cost *decimal.Decimal,
) (*entities.AnimalAidRequest, error) {
	return u.change(ctx, methodUpdateAidCost, requestID, func(r *entities.AnimalAidRequest) error {
		return r.UpdateEstimatedCost(cost)
	})
}

func (u *AnimalAidUseCaseImpl) change(
	ctx context.Context,
	method string,
	requestID uuid.UUID,
	mutate func(*entities.AnimalAidRequest) error,
) (*entities.AnimalAidRequest, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("requestID", requestID.String()))

	request, err := update[*entities.AnimalAidRequest](ctx, u.committer, u.requests, requestID, mutate)
	if err != nil {
		log.Debug(ctx, errCtxUpdatingAid, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingAid, err)
	}

	log.Info(ctx, msgAidUpdated, zap.String("status", string(request.Status())))
	return request, nil
}

// SuccessStoryUseCaseImpl реализует интерфейс SuccessStoryUseCase.
type SuccessStoryUseCaseImpl struct {
	stories   repositories.SuccessStoryRepository
	animals   repositories.AnimalRepository
	committer *Committer
}

func NewSuccessStoryUseCase(
	stories repositories.SuccessStoryRepository,
	animals repositories.AnimalRepository,
	committer *Committer,
) api.SuccessStoryUseCase {
	return &SuccessStoryUseCaseImpl{
		stories:   stories,
		animals:   animals,
		committer: committer,
	}
}

func (u *SuccessStoryUseCaseImpl) Publish(
	ctx context.Context,
	params entities.NewSuccessStoryParams,
) (*entities.SuccessStory, error) {
	log := logger.Log(ctx).With(zap.String("method", methodPublishStory), zap.String("animalID", params.AnimalID.String()))

	animal, err := u.animals.FindByID(ctx, params.AnimalID)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errCtxCreatingStory, errCtxLoadingAnimal, err)
	}
	if animal.Status() != entities.AnimalAdopted {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingStory, ErrAnimalNotAdopted)
	}

	story, err := entities.PublishSuccessStory(params)
	if err == nil {
		err = create[*entities.SuccessStory](ctx, u.committer, u.stories, story)
	}
	if err != nil {
		log.Debug(ctx, errCtxCreatingStory, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingStory, err)
	}

	log.Info(ctx, msgStoryPosted, zap.String("storyID", story.ID().String()))
	return story, nil
}

func (u *SuccessStoryUseCaseImpl) RecordView(ctx context.Context, storyID uuid.UUID) (*entities.SuccessStory, error) {
	story, err := update[*entities.SuccessStory](ctx, u.committer, u.stories, storyID, func(s *entities.SuccessStory) error {
		s.RecordView()
		return nil
	})
	if err != nil {
		logger.Log(ctx).Debug(ctx, errCtxUpdatingStory,
			zap.String("method", methodRecordStoryView),
			zap.String("storyID", storyID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingStory, err)
	}
	return story, nil
}
