package entities_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
)

func animalParams() entities.NewAnimalParams {
	weight := 4.2
	return entities.NewAnimalParams{
		Slug:      "Мурчик",
		Name:      "Мурчик",
		UserID:    uuid.New(),
		BreedID:   uuid.New(),
		ShelterID: uuid.New(),
		IDNumber:  17,
		Weight:    &weight,
		Color:     "рудий",
	}
}

func newAnimal(t *testing.T) *entities.Animal {
	t.Helper()
	a, err := entities.CreateAnimal(animalParams())
	require.NoError(t, err)
	a.ClearEvents()
	return a
}

func eventTypes(evts []events.Event) []string {
	types := make([]string, len(evts))
	for i, e := range evts {
		types[i] = e.EventType()
	}
	return types
}

func TestCreateAnimal(t *testing.T) {
	t.Run("значения по умолчанию и событие создания", func(t *testing.T) {
		a, err := entities.CreateAnimal(animalParams())
		require.NoError(t, err)

		assert.Equal(t, "murchyk", a.Slug().String())
		assert.Equal(t, entities.AnimalAvailable, a.Status())
		assert.Equal(t, entities.GenderUnknown, a.Gender())
		assert.Equal(t, 1, a.Version())
		assert.True(t, a.CanBeAdopted())
		assert.False(t, a.HasMicrochip())

		pending := a.PendingEvents()
		require.Len(t, pending, 1)
		created, ok := pending[0].(events.AnimalCreated)
		require.True(t, ok)
		assert.Equal(t, a.ID(), created.AggregateID)
		assert.Equal(t, 1, created.AggregateVersion)
		assert.Equal(t, "murchyk", created.Slug)
	})

	tests := []struct {
		name   string
		modify func(p *entities.NewAnimalParams)
		err    error
	}{
		{"пустой пользователь", func(p *entities.NewAnimalParams) { p.UserID = uuid.Nil }, entities.ErrEmptyUserID},
		{"пустая порода", func(p *entities.NewAnimalParams) { p.BreedID = uuid.Nil }, entities.ErrEmptyBreedID},
		{"пустой приют", func(p *entities.NewAnimalParams) { p.ShelterID = uuid.Nil }, entities.ErrEmptyShelterID},
		{"нулевой номер", func(p *entities.NewAnimalParams) { p.IDNumber = 0 }, entities.ErrInvalidIDNumber},
		{"неизвестный статус", func(p *entities.NewAnimalParams) { p.Status = "Lost" }, entities.ErrInvalidAnimalStatus},
		{"короткие требования", func(p *entities.NewAnimalParams) { p.AdoptionRequirements = "двір" }, entities.ErrRequirementsTooShort},
		{"дубликат фото", func(p *entities.NewAnimalParams) { p.Photos = []string{"a.jpg", "a.jpg"} }, entities.ErrMediaExists},
		{"дата рождения в будущем", func(p *entities.NewAnimalParams) {
			future := time.Now().AddDate(0, 1, 0)
			p.Birthday = &future
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := animalParams()
			tt.modify(&p)

			a, err := entities.CreateAnimal(p)

			assert.Nil(t, a)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestAnimalChangeStatus(t *testing.T) {
	t.Run("тот же статус ничего не меняет", func(t *testing.T) {
		a := newAnimal(t)

		require.NoError(t, a.ChangeStatus(entities.AnimalAvailable))

		assert.Equal(t, 1, a.Version())
		assert.Empty(t, a.PendingEvents())
	})

	t.Run("переход в Adopted порождает два события и одну версию", func(t *testing.T) {
		a := newAnimal(t)

		require.NoError(t, a.ChangeStatus(entities.AnimalAdopted))

		assert.Equal(t, 2, a.Version())
		assert.False(t, a.CanBeAdopted())
		pending := a.PendingEvents()
		assert.Equal(t, []string{events.TypeAnimalStatusChanged, events.TypeAnimalAdopted}, eventTypes(pending))
		for _, e := range pending {
			assert.Equal(t, 2, e.Meta().AggregateVersion)
		}
		assert.NotEqual(t, pending[0].Meta().EventID, pending[1].Meta().EventID)
	})

	t.Run("неизвестный статус не меняет агрегат", func(t *testing.T) {
		a := newAnimal(t)

		err := a.ChangeStatus("Sold")

		assert.ErrorIs(t, err, entities.ErrInvalidAnimalStatus)
		assert.Equal(t, entities.AnimalAvailable, a.Status())
		assert.Equal(t, 1, a.Version())
		assert.Empty(t, a.PendingEvents())
	})
}

func TestAnimalMicrochip(t *testing.T) {
	a := newAnimal(t)

	require.NoError(t, a.AttachMicrochip("900123456789012"))
	chip, ok := a.MicrochipID()
	require.True(t, ok)
	assert.Equal(t, "900123456789012", chip.String())

	err := a.AttachMicrochip("900000000000001")
	assert.ErrorIs(t, err, entities.ErrMicrochipAlreadyAttached)
	assert.ErrorIs(t, err, domainerr.ErrInvalidState)
	assert.Equal(t, 2, a.Version())
}

func TestAnimalMedia(t *testing.T) {
	a := newAnimal(t)

	require.NoError(t, a.AddPhoto(" https://cdn/1.jpg "))
	require.NoError(t, a.AddVideo("https://cdn/1.mp4"))
	assert.Equal(t, []string{"https://cdn/1.jpg"}, a.Photos())

	assert.ErrorIs(t, a.AddPhoto("https://cdn/1.jpg"), entities.ErrMediaExists)
	assert.ErrorIs(t, a.AddPhoto("  "), entities.ErrEmptyMediaURL)
	assert.ErrorIs(t, a.RemoveVideo("https://cdn/2.mp4"), entities.ErrMediaNotAttached)

	require.NoError(t, a.RemovePhoto("https://cdn/1.jpg"))
	assert.Empty(t, a.Photos())
	assert.Equal(t, 4, a.Version())

	pending := a.PendingEvents()
	require.Len(t, pending, 3)
	removed, ok := pending[2].(events.AnimalMediaRemoved)
	require.True(t, ok)
	assert.Equal(t, events.MediaPhoto, removed.Kind)
}

func TestAnimalUpdates(t *testing.T) {
	a := newAnimal(t)

	height := 30.0
	require.NoError(t, a.UpdateCharacteristics(nil, &height, "чорний"))
	_, hasWeight := a.Characteristics().Weight()
	assert.False(t, hasWeight)

	assert.ErrorIs(t, a.UpdateAdoptionRequirements("  коротко "), entities.ErrRequirementsTooShort)
	require.NoError(t, a.UpdateAdoptionRequirements("Приватний будинок з подвір'ям"))
	require.NoError(t, a.UpdateDescription("Лагідний кіт", "здоровий"))
	require.NoError(t, a.UpdateMedicalFlags(true, true))

	assert.Equal(t, 5, a.Version())
	assert.True(t, a.IsSterilized())
	assert.Equal(t, "здоровий", a.HealthStatus())
}

func TestRestoreAnimal(t *testing.T) {
	a := newAnimal(t)
	require.NoError(t, a.AddPhoto("https://cdn/1.jpg"))

	restored := entities.RestoreAnimal(a.Snapshot())

	assert.Equal(t, a.Snapshot(), restored.Snapshot())
	assert.Equal(t, a.Version(), restored.Version())
	assert.Empty(t, restored.PendingEvents())
	assert.True(t, entities.SameEntity(a, restored))
}
