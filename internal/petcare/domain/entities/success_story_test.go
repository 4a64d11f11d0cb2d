package entities_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
)

func newSuccessStory(t *testing.T) *entities.SuccessStory {
	t.Helper()
	s, err := entities.PublishSuccessStory(entities.NewSuccessStoryParams{
		AnimalID: uuid.New(),
		Title:    "Барсік вдома",
		Content:  "Барсік знайшов родину",
		Photos:   []string{"https://cdn/barsik.jpg"},
	})
	require.NoError(t, err)
	s.ClearEvents()
	return s
}

func TestPublishSuccessStory(t *testing.T) {
	s := newSuccessStory(t)

	assert.Equal(t, "Барсік вдома", s.Title().String())
	assert.Zero(t, s.Views())
	assert.False(t, s.PublishedAt().IsZero())
	assert.Empty(t, s.Videos())

	_, err := entities.PublishSuccessStory(entities.NewSuccessStoryParams{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, entities.ErrEmptyAnimalID)

	_, err = entities.PublishSuccessStory(entities.NewSuccessStoryParams{AnimalID: uuid.New(), Title: "t", Content: "  "})
	assert.ErrorIs(t, err, entities.ErrEmptyStoryContent)

	_, err = entities.PublishSuccessStory(entities.NewSuccessStoryParams{AnimalID: uuid.New(), Content: "c"})
	assert.ErrorIs(t, err, vo.ErrEmptyTitle)
}

func TestSuccessStoryChanges(t *testing.T) {
	s := newSuccessStory(t)
	title, content := "Новий дім", "Оновлена історія"

	require.NoError(t, s.Update(entities.SuccessStoryChanges{Title: &title, Content: &content}))
	require.NoError(t, s.Update(entities.SuccessStoryChanges{Title: &title}))
	assert.Equal(t, "Оновлена історія", s.Content())

	require.NoError(t, s.AddPhoto("https://cdn/new.jpg"))
	assert.ErrorIs(t, s.AddPhoto("  "), entities.ErrEmptyMediaURL)
	require.NoError(t, s.RemovePhoto("https://cdn/barsik.jpg"))
	require.NoError(t, s.AddVideo("https://cdn/walk.mp4"))
	assert.ErrorIs(t, s.AddVideo(""), entities.ErrEmptyMediaURL)
	require.NoError(t, s.RemoveVideo("https://cdn/walk.mp4"))

	s.RecordView()
	s.RecordView()
	assert.Equal(t, 2, s.Views())

	pending := s.PendingEvents()
	assert.Equal(t, []string{
		events.TypeSuccessStoryUpdated,
		events.TypeSuccessStoryMediaAdded,
		events.TypeSuccessStoryMediaRemoved,
		events.TypeSuccessStoryMediaAdded,
		events.TypeSuccessStoryMediaRemoved,
		events.TypeSuccessStoryViewed,
		events.TypeSuccessStoryViewed,
	}, eventTypes(pending))
	assert.Equal(t, events.MediaVideo, pending[3].(events.SuccessStoryMediaAdded).Kind)
	assert.Equal(t, 2, pending[6].(events.SuccessStoryViewed).Views)
	assert.Equal(t, 8, s.Version())

	restored := entities.RestoreSuccessStory(s.Snapshot())
	assert.Equal(t, s.Snapshot(), restored.Snapshot())
}
