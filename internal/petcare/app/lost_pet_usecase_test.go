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

type lostPetMocks struct {
	repo   *mockRepository[*entities.LostPet]
	slugs  *mockSlugRegistry
	commit *commitMocks
}

func newLostPetUseCase() (api.LostPetUseCase, *lostPetMocks) {
	committer, cm := newCommitter()
	m := &lostPetMocks{
		repo:   new(mockRepository[*entities.LostPet]),
		slugs:  new(mockSlugRegistry),
		commit: cm,
	}
	return app.NewLostPetUseCase(m.repo, m.slugs, committer), m
}

func (m *lostPetMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.repo.AssertExpectations(t)
	m.slugs.AssertExpectations(t)
	m.commit.assertExpectations(t)
}

func TestLostPetReport(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		modify       func(p *entities.NewLostPetParams)
		expectedSlug string
	}{
		{
			name:         "slug из клички",
			modify:       func(*entities.NewLostPetParams) {},
			expectedSlug: "rex",
		},
		{
			name:         "кириллическая кличка транслитерируется",
			modify:       func(p *entities.NewLostPetParams) { p.Name = "Рекс" },
			expectedSlug: "reks",
		},
		{
			name:         "без клички используется запасной slug",
			modify:       func(p *entities.NewLostPetParams) { p.Name = "" },
			expectedSlug: "lost-pet",
		},
		{
			name:         "явный slug важнее клички",
			modify:       func(p *entities.NewLostPetParams) { p.Slug = "Rex Kyiv" },
			expectedSlug: "rex-kyiv",
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			uc, m := newLostPetUseCase()
			p := lostPetParams()
			ttt.modify(&p)

			m.slugs.On("Reserve", mock.Anything, events.AggregateLostPet, ttt.expectedSlug).Return(true, nil).Once()
			m.repo.On("Save", mock.Anything, mock.Anything, 0).Return(nil).Once()
			m.commit.expectPublish(events.TypeLostPetReported)

			lostPet, err := uc.Report(ctx, p)

			require.NoError(t, err)
			assert.Equal(t, ttt.expectedSlug, lostPet.Slug().String())
			assert.Equal(t, entities.LostPetLost, lostPet.Status())
			m.assertExpectations(t)
		})
	}

	t.Run("ошибка сохранения освобождает slug", func(t *testing.T) {
		uc, m := newLostPetUseCase()

		m.slugs.On("Reserve", mock.Anything, events.AggregateLostPet, "rex").Return(true, nil).Once()
		m.repo.On("Save", mock.Anything, mock.Anything, 0).Return(ErrDatabaseOperation).Once()
		m.slugs.On("Release", mock.Anything, events.AggregateLostPet, "rex").Return(nil).Once()

		_, err := uc.Report(ctx, lostPetParams())

		assert.ErrorIs(t, err, ErrDatabaseOperation)
		m.assertExpectations(t)
	})

	t.Run("координаты вне диапазона", func(t *testing.T) {
		uc, m := newLostPetUseCase()
		p := lostPetParams()
		p.Latitude = 91

		m.slugs.On("Reserve", mock.Anything, events.AggregateLostPet, "rex").Return(true, nil).Once()
		m.slugs.On("Release", mock.Anything, events.AggregateLostPet, "rex").Return(ErrServiceDown).Once()

		_, err := uc.Report(ctx, p)

		assert.Error(t, err)
		m.assertExpectations(t)
	})
}

func TestLostPetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("животное найдено", func(t *testing.T) {
		uc, m := newLostPetUseCase()
		stored := newLostPet(t)

		m.repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil).Once()
		m.repo.On("Save", mock.Anything, stored, 1).Return(nil).Once()
		m.commit.expectPublish(events.TypeLostPetStatusChanged)

		lostPet, err := uc.MarkFound(ctx, stored.ID())

		require.NoError(t, err)
		assert.Equal(t, entities.LostPetFound, lostPet.Status())
		m.assertExpectations(t)
	})

	t.Run("после воссоединения объявление закрыто", func(t *testing.T) {
		uc, m := newLostPetUseCase()
		stored := newLostPet(t)

		m.repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil).Twice()
		m.repo.On("Save", mock.Anything, stored, 1).Return(nil).Once()
		m.commit.expectPublish(events.TypeLostPetStatusChanged)

		_, err := uc.MarkReunited(ctx, stored.ID())
		require.NoError(t, err)

		_, err = uc.MarkFound(ctx, stored.ID())

		assert.ErrorIs(t, err, entities.ErrLostPetClosed)
		assert.Equal(t, entities.LostPetReunited, stored.Status())
		m.assertExpectations(t)
	})
}
