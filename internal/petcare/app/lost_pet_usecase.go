package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
	"petcare/internal/petcare/ports/api"
	"petcare/internal/petcare/ports/repositories"
	"petcare/internal/petcare/ports/services"
	"petcare/pkg/logger"
)

const (
	methodReportLostPet = "ReportLostPet"
	methodMarkFound     = "MarkFound"
	methodMarkReunited  = "MarkReunited"

	msgLostPetReported = "lost pet reported"
	msgLostPetUpdated  = "lost pet status updated"

	errCtxCreatingLostPet = "creating lost pet report"
	errCtxUpdatingLostPet = "updating lost pet report"

	// defaultLostPetSlug используется, когда у животного нет клички.
	defaultLostPetSlug = "lost-pet"
)

// LostPetUseCaseImpl реализует интерфейс LostPetUseCase.
type LostPetUseCaseImpl struct {
	lostPets  repositories.LostPetRepository
	slugs     services.SlugRegistry
	committer *Committer
}

// NewLostPetUseCase создает новый экземпляр сервиса объявлений о пропавших животных.
func NewLostPetUseCase(
	lostPets repositories.LostPetRepository,
	slugs services.SlugRegistry,
	committer *Committer,
) api.LostPetUseCase {
	return &LostPetUseCaseImpl{
		lostPets:  lostPets,
		slugs:     slugs,
		committer: committer,
	}
}

func (u *LostPetUseCaseImpl) Report(ctx context.Context, params entities.NewLostPetParams) (*entities.LostPet, error) {
	log := logger.Log(ctx).With(zap.String("method", methodReportLostPet), zap.String("userID", params.UserID.String()))

	slug, err := reserveSlug(ctx, u.slugs, events.AggregateLostPet, slugSource(params.Slug, params.Name, defaultLostPetSlug))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingLostPet, err)
	}
	params.Slug = slug.String()

	lostPet, err := entities.ReportLostPet(params)
	if err == nil {
		err = create[*entities.LostPet](ctx, u.committer, u.lostPets, lostPet)
	}
	if err != nil {
		releaseSlug(ctx, u.slugs, events.AggregateLostPet, slug)
		log.Debug(ctx, errCtxCreatingLostPet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingLostPet, err)
	}

	log.Info(ctx, msgLostPetReported,
		zap.String("lostPetID", lostPet.ID().String()),
		zap.String("slug", slug.String()))
	return lostPet, nil
}

func (u *LostPetUseCaseImpl) MarkFound(ctx context.Context, lostPetID uuid.UUID) (*entities.LostPet, error) {
	return u.changeStatus(ctx, methodMarkFound, lostPetID, entities.LostPetFound)
}

func (u *LostPetUseCaseImpl) MarkReunited(ctx context.Context, lostPetID uuid.UUID) (*entities.LostPet, error) {
	return u.changeStatus(ctx, methodMarkReunited, lostPetID, entities.LostPetReunited)
}

func (u *LostPetUseCaseImpl) changeStatus(
	ctx context.Context,
	method string,
	lostPetID uuid.UUID,
	status entities.LostPetStatus,
) (*entities.LostPet, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("lostPetID", lostPetID.String()))

	lostPet, err := update[*entities.LostPet](ctx, u.committer, u.lostPets, lostPetID, func(l *entities.LostPet) error {
		return l.ChangeStatus(status)
	})
	if err != nil {
		log.Debug(ctx, errCtxUpdatingLostPet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingLostPet, err)
	}

	log.Info(ctx, msgLostPetUpdated, zap.String("status", string(lostPet.Status())))
	return lostPet, nil
}
