package app_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"petcare/internal/petcare/app"
	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
	"petcare/internal/petcare/ports/api"
)

type shelterMocks struct {
	repo     *mockShelterRepository
	slugs    *mockSlugRegistry
	geocoder *mockGeocoder
	commit   *commitMocks
}

func newShelterUseCase(withGeocoder bool) (api.ShelterUseCase, *shelterMocks) {
	committer, cm := newCommitter()
	m := &shelterMocks{
		repo:     new(mockShelterRepository),
		slugs:    new(mockSlugRegistry),
		geocoder: new(mockGeocoder),
		commit:   cm,
	}
	if !withGeocoder {
		return app.NewShelterUseCase(m.repo, m.slugs, nil, committer), m
	}
	return app.NewShelterUseCase(m.repo, m.slugs, m.geocoder, committer), m
}

func (m *shelterMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.repo.AssertExpectations(t)
	m.slugs.AssertExpectations(t)
	m.geocoder.AssertExpectations(t)
	m.commit.assertExpectations(t)
}

func TestShelterRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("координаты из параметров", func(t *testing.T) {
		uc, m := newShelterUseCase(true)

		m.slugs.On("Reserve", mock.Anything, events.AggregateShelter, "dobri-ruky").Return(true, nil).Once()
		m.repo.On("Save", mock.Anything, mock.Anything, 0).Return(nil).Once()
		m.commit.expectPublish(events.TypeShelterCreated)

		shelter, err := uc.Register(ctx, shelterParams())

		require.NoError(t, err)
		assert.Equal(t, "dobri-ruky", shelter.Slug().String())
		assert.InDelta(t, 50.4501, shelter.Coordinates().Latitude(), 1e-9)
		m.geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("координаты определяются по адресу", func(t *testing.T) {
		uc, m := newShelterUseCase(true)
		p := shelterParams()
		p.Latitude, p.Longitude = 0, 0
		coords, err := vo.NewCoordinates(49.8397, 24.0297)
		require.NoError(t, err)

		m.geocoder.On("Geocode", mock.Anything, mock.MatchedBy(func(a vo.Address) bool {
			return a.City() == "Київ"
		})).Return(coords, nil).Once()
		m.slugs.On("Reserve", mock.Anything, events.AggregateShelter, "dobri-ruky").Return(true, nil).Once()
		m.repo.On("Save", mock.Anything, mock.Anything, 0).Return(nil).Once()
		m.commit.expectPublish(events.TypeShelterCreated)

		shelter, err := uc.Register(ctx, p)

		require.NoError(t, err)
		assert.True(t, coords.Equals(shelter.Coordinates()))
		m.assertExpectations(t)
	})

	t.Run("ошибка геокодирования", func(t *testing.T) {
		uc, m := newShelterUseCase(true)
		p := shelterParams()
		p.Latitude, p.Longitude = 0, 0

		m.geocoder.On("Geocode", mock.Anything, mock.Anything).Return(nil, ErrServiceDown).Once()

		_, err := uc.Register(ctx, p)

		assert.ErrorIs(t, err, ErrServiceDown)
		m.slugs.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("без геокодера используются нулевые координаты", func(t *testing.T) {
		uc, m := newShelterUseCase(false)
		p := shelterParams()
		p.Latitude, p.Longitude = 0, 0

		m.slugs.On("Reserve", mock.Anything, events.AggregateShelter, "dobri-ruky").Return(true, nil).Once()
		m.repo.On("Save", mock.Anything, mock.Anything, 0).Return(nil).Once()
		m.commit.expectPublish(events.TypeShelterCreated)

		shelter, err := uc.Register(ctx, p)

		require.NoError(t, err)
		assert.Zero(t, shelter.Coordinates().Latitude())
		m.assertExpectations(t)
	})

	t.Run("некорректная вместимость освобождает slug", func(t *testing.T) {
		uc, m := newShelterUseCase(false)
		p := shelterParams()
		p.Capacity = 0

		m.slugs.On("Reserve", mock.Anything, events.AggregateShelter, "dobri-ruky").Return(true, nil).Once()
		m.slugs.On("Release", mock.Anything, events.AggregateShelter, "dobri-ruky").Return(nil).Once()

		_, err := uc.Register(ctx, p)

		assert.ErrorIs(t, err, entities.ErrInvalidCapacity)
		m.assertExpectations(t)
	})

	t.Run("все варианты slug заняты", func(t *testing.T) {
		uc, m := newShelterUseCase(false)

		m.slugs.On("Reserve", mock.Anything, events.AggregateShelter, mock.Anything).Return(false, nil)

		_, err := uc.Register(ctx, shelterParams())

		assert.ErrorIs(t, err, app.ErrSlugExhausted)
		m.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestShelterOccupancy(t *testing.T) {
	ctx := context.Background()

	t.Run("животное принимается в приют", func(t *testing.T) {
		uc, m := newShelterUseCase(false)
		stored := newShelter(t)
		animalID := uuid.New()

		m.repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil).Once()
		m.repo.On("Save", mock.Anything, stored, 1).Return(nil).Once()
		m.commit.expectPublish(events.TypeShelterAnimalAdded)

		shelter, err := uc.AdmitAnimal(ctx, stored.ID(), animalID)

		require.NoError(t, err)
		assert.True(t, shelter.HousesAnimal(animalID))
		assert.Equal(t, 1, shelter.CurrentOccupancy())
		m.assertExpectations(t)
	})

	t.Run("переполненный приют отказывает", func(t *testing.T) {
		uc, m := newShelterUseCase(false)
		stored := newShelter(t)
		require.NoError(t, stored.AddAnimal(uuid.New()))
		require.NoError(t, stored.AddAnimal(uuid.New()))
		stored.ClearEvents()

		m.repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil).Once()

		_, err := uc.AdmitAnimal(ctx, stored.ID(), uuid.New())

		assert.ErrorIs(t, err, entities.ErrShelterFull)
		assert.ErrorIs(t, err, domainerr.ErrInvalidState)
		m.assertExpectations(t)
	})

	t.Run("животное выпускается из приюта", func(t *testing.T) {
		uc, m := newShelterUseCase(false)
		stored := newShelter(t)
		animalID := uuid.New()
		require.NoError(t, stored.AddAnimal(animalID))
		stored.ClearEvents()

		m.repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil).Once()
		m.repo.On("Save", mock.Anything, stored, 2).Return(nil).Once()
		m.commit.expectPublish(events.TypeShelterAnimalRemoved)

		shelter, err := uc.ReleaseAnimal(ctx, stored.ID(), animalID)

		require.NoError(t, err)
		assert.Zero(t, shelter.CurrentOccupancy())
		m.assertExpectations(t)
	})

	t.Run("вместимость меньше заполненности запрещена", func(t *testing.T) {
		uc, m := newShelterUseCase(false)
		stored := newShelter(t)
		require.NoError(t, stored.AddAnimal(uuid.New()))
		require.NoError(t, stored.AddAnimal(uuid.New()))
		stored.ClearEvents()

		m.repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil).Once()

		_, err := uc.ChangeCapacity(ctx, stored.ID(), 1)

		assert.ErrorIs(t, err, entities.ErrCapacityBelowResidue)
		m.assertExpectations(t)
	})

	t.Run("вместимость увеличивается", func(t *testing.T) {
		uc, m := newShelterUseCase(false)
		stored := newShelter(t)

		m.repo.On("FindByID", mock.Anything, stored.ID()).Return(stored, nil).Once()
		m.repo.On("Save", mock.Anything, stored, 1).Return(nil).Once()
		m.commit.expectPublish(events.TypeShelterCapacityChanged)

		shelter, err := uc.ChangeCapacity(ctx, stored.ID(), 10)

		require.NoError(t, err)
		assert.Equal(t, 10, shelter.Capacity())
		m.assertExpectations(t)
	})
}
