package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"petcare/internal/petcare/app"
	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
	"petcare/internal/petcare/ports/api"
)

func newVolunteerTaskUseCase() (api.VolunteerTaskUseCase, *mockRepository[*entities.VolunteerTask], *commitMocks) {
	committer, cm := newCommitter()
	repo := new(mockRepository[*entities.VolunteerTask])
	return app.NewVolunteerTaskUseCase(repo, committer), repo, cm
}

func TestVolunteerTaskCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("задача сохраняется", func(t *testing.T) {
		uc, repo, cm := newVolunteerTaskUseCase()
		repo.On("Save", mock.Anything, mock.Anything, 0).Return(nil).Once()
		cm.expectPublish(events.TypeVolunteerTaskCreated)

		task, err := uc.Create(ctx, taskParams())

		require.NoError(t, err)
		assert.Equal(t, entities.VolunteerTaskOpen, task.Status())
		assert.Equal(t, 1, task.Version())
		repo.AssertExpectations(t)
		cm.assertExpectations(t)
	})

	t.Run("некорректная задача не сохраняется", func(t *testing.T) {
		uc, repo, _ := newVolunteerTaskUseCase()
		p := taskParams()
		p.RequiredVolunteers = 0

		_, err := uc.Create(ctx, p)

		assert.ErrorIs(t, err, entities.ErrInvalidRequiredCount)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ошибка сохранения", func(t *testing.T) {
		uc, repo, _ := newVolunteerTaskUseCase()
		repo.On("Save", mock.Anything, mock.Anything, 0).Return(ErrDatabaseOperation).Once()

		_, err := uc.Create(ctx, taskParams())

		assert.ErrorIs(t, err, ErrDatabaseOperation)
	})
}

func TestVolunteerTaskChanges(t *testing.T) {
	ctx := context.Background()

	t.Run("смена статуса", func(t *testing.T) {
		uc, repo, cm := newVolunteerTaskUseCase()
		stored := newVolunteerTask(t)
		repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil).Once()
		repo.On("Save", mock.Anything, stored, 1).Return(nil).Once()
		cm.expectPublish(events.TypeVolunteerTaskStatusUpdated)

		task, err := uc.ChangeStatus(ctx, stored.ID(), entities.VolunteerTaskInProgress)

		require.NoError(t, err)
		assert.Equal(t, entities.VolunteerTaskInProgress, task.Status())
		repo.AssertExpectations(t)
		cm.assertExpectations(t)
	})

	t.Run("завершенная задача не меняется", func(t *testing.T) {
		uc, repo, _ := newVolunteerTaskUseCase()
		stored := newVolunteerTask(t)
		require.NoError(t, stored.UpdateStatus(entities.VolunteerTaskCompleted))
		stored.ClearEvents()
		repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil).Once()

		_, err := uc.SetSkill(ctx, stored.ID(), "Вигул", "Досвід з великими собаками")

		assert.ErrorIs(t, err, entities.ErrVolunteerTaskClosed)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("навык добавляется и удаляется", func(t *testing.T) {
		uc, repo, cm := newVolunteerTaskUseCase()
		stored := newVolunteerTask(t)
		repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil).Twice()
		repo.On("Save", mock.Anything, stored, 1).Return(nil).Once()
		repo.On("Save", mock.Anything, stored, 2).Return(nil).Once()
		cm.expectPublish(events.TypeVolunteerTaskSkillSet)
		cm.expectPublish(events.TypeVolunteerTaskSkillRemoved)

		_, err := uc.SetSkill(ctx, stored.ID(), "Вигул", "")
		require.NoError(t, err)
		task, err := uc.RemoveSkill(ctx, stored.ID(), "Вигул")

		require.NoError(t, err)
		assert.Empty(t, task.Skills())
		repo.AssertExpectations(t)
		cm.assertExpectations(t)
	})

	t.Run("удаление отсутствующего навыка ничего не сохраняет", func(t *testing.T) {
		uc, repo, _ := newVolunteerTaskUseCase()
		stored := newVolunteerTask(t)
		repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil).Once()

		task, err := uc.RemoveSkill(ctx, stored.ID(), "Ветеринарія")

		require.NoError(t, err)
		assert.Equal(t, 1, task.Version())
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("обновление сведений", func(t *testing.T) {
		uc, repo, cm := newVolunteerTaskUseCase()
		stored := newVolunteerTask(t)
		details := taskParams().VolunteerTaskDetails
		details.RequiredVolunteers = 4
		repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil).Once()
		repo.On("Save", mock.Anything, stored, 1).Return(nil).Once()
		cm.expectPublish(events.TypeVolunteerTaskInfoUpdated)

		task, err := uc.UpdateInfo(ctx, stored.ID(), details)

		require.NoError(t, err)
		assert.Equal(t, 4, task.RequiredVolunteers())
		cm.assertExpectations(t)
	})
}
