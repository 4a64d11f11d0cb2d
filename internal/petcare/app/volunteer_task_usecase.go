package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/ports/api"
	"petcare/internal/petcare/ports/repositories"
	"petcare/pkg/logger"
)

const (
	methodCreateTask       = "CreateVolunteerTask"
	methodChangeTaskStatus = "ChangeTaskStatus"
	methodUpdateTaskInfo   = "UpdateTaskInfo"
	methodSetTaskSkill     = "SetTaskSkill"
	methodRemoveTaskSkill  = "RemoveTaskSkill"

	msgTaskCreated = "volunteer task created"
	msgTaskUpdated = "volunteer task updated"

	errCtxCreatingTask = "creating volunteer task"
	errCtxUpdatingTask = "updating volunteer task"
)

// VolunteerTaskUseCaseImpl реализует интерфейс VolunteerTaskUseCase.
type VolunteerTaskUseCaseImpl struct {
	tasks     repositories.VolunteerTaskRepository
	committer *Committer
}

func NewVolunteerTaskUseCase(tasks repositories.VolunteerTaskRepository, committer *Committer) api.VolunteerTaskUseCase {
	return &VolunteerTaskUseCaseImpl{tasks: tasks, committer: committer}
}

func (u *VolunteerTaskUseCaseImpl) Create(
	ctx context.Context,
	params entities.NewVolunteerTaskParams,
) (*entities.VolunteerTask, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateTask), zap.String("shelterID", params.ShelterID.String()))

	task, err := entities.CreateVolunteerTask(params)
	if err == nil {
		err = create[*entities.VolunteerTask](ctx, u.committer, u.tasks, task)
	}
	if err != nil {
		log.Debug(ctx, errCtxCreatingTask, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingTask, err)
	}

	log.Info(ctx, msgTaskCreated, zap.String("taskID", task.ID().String()))
	return task, nil
}

func (u *VolunteerTaskUseCaseImpl) ChangeStatus(
	ctx context.Context,
	taskID uuid.UUID,
	status entities.VolunteerTaskStatus,
) (*entities.VolunteerTask, error) {
	return u.change(ctx, methodChangeTaskStatus, taskID, func(t *entities.VolunteerTask) error {
		return t.UpdateStatus(status)
	})
}

func (u *VolunteerTaskUseCaseImpl) UpdateInfo(
	ctx context.Context,
	taskID uuid.UUID,
	details entities.VolunteerTaskDetails,
) (*entities.VolunteerTask, error) {
	return u.change(ctx, methodUpdateTaskInfo, taskID, func(t *entities.VolunteerTask) error {
		return t.UpdateInfo(details)
	})
}

func (u *VolunteerTaskUseCaseImpl) SetSkill(
	ctx context.Context,
	taskID uuid.UUID,
	skill, description string,
) (*entities.VolunteerTask, error) {
	return u.change(ctx, methodSetTaskSkill, taskID, func(t *entities.VolunteerTask) error {
		return t.SetSkill(skill, description)
	})
}

// RemoveSkill удаляет навык; отсутствующий навык не считается ошибкой.
func (u *VolunteerTaskUseCaseImpl) RemoveSkill(
	ctx context.Context,
	taskID uuid.UUID,
	skill string,
) (*entities.VolunteerTask, error) {
	return u.change(ctx, methodRemoveTaskSkill, taskID, func(t *entities.VolunteerTask) error {
		_, err := t.RemoveSkill(skill)
		return err
	})
}

func (u *VolunteerTaskUseCaseImpl) change(
	ctx context.Context,
	method string,
	taskID uuid.UUID,
	mutate func(*entities.VolunteerTask) error,
) (*entities.VolunteerTask, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("taskID", taskID.String()))

	task, err := update[*entities.VolunteerTask](ctx, u.committer, u.tasks, taskID, mutate)
	if err != nil {
		log.Debug(ctx, errCtxUpdatingTask, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingTask, err)
	}

	log.Info(ctx, msgTaskUpdated,
		zap.String("status", string(task.Status())),
		zap.Int("version", task.Version()))
	return task, nil
}
