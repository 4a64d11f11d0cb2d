package entities

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
)

var ErrEmptyStoryContent = domainerr.InvalidArgument("story content cannot be empty")

// NewSuccessStoryParams - входные данные для PublishSuccessStory.
type NewSuccessStoryParams struct {
	ID       uuid.UUID
	AnimalID uuid.UUID
	UserID   *uuid.UUID
	Title    string
	Content  string
	Photos   []string
	Videos   []string
}

// SuccessStoryChanges - частичное обновление истории; nil поля не меняются.
type SuccessStoryChanges struct {
	Title   *string
	Content *string
}

// SuccessStory - история животного, нашедшего дом.
type SuccessStory struct {
	AggregateRoot
	animalID    uuid.UUID
	userID      *uuid.UUID
	title       vo.Title
	content     string
	photos      []string
	videos      []string
	views       int
	publishedAt time.Time
}

// PublishSuccessStory проверяет параметры и публикует историю с событием SuccessStoryPublished.
func PublishSuccessStory(p NewSuccessStoryParams) (*SuccessStory, error) {
	if p.AnimalID == uuid.Nil {
		return nil, ErrEmptyAnimalID
	}
	title, err := vo.NewTitle(p.Title)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(p.Content)
	if content == "" {
		return nil, ErrEmptyStoryContent
	}
	photos, err := cleanMediaList(p.Photos)
	if err != nil {
		return nil, err
	}
	videos, err := cleanMediaList(p.Videos)
	if err != nil {
		return nil, err
	}

	s := &SuccessStory{
		AggregateRoot: newAggregateRoot(p.ID),
		animalID:      p.AnimalID,
		userID:        clonePtr(p.UserID),
		title:         title,
		content:       content,
		photos:        photos,
		videos:        videos,
		publishedAt:   nowFunc(),
	}
	s.record(events.SuccessStoryPublished{
		Envelope: s.nextEnvelope(),
		AnimalID: p.AnimalID,
		UserID:   s.userID,
		Title:    title.String(),
	})
	s.bumpVersion()
	return s, nil
}

func (s *SuccessStory) AnimalID() uuid.UUID { return s.animalID }

func (s *SuccessStory) UserID() *uuid.UUID { return clonePtr(s.userID) }

func (s *SuccessStory) Title() vo.Title { return s.title }

func (s *SuccessStory) Content() string { return s.content }

func (s *SuccessStory) Photos() []string { return slices.Clone(s.photos) }

func (s *SuccessStory) Videos() []string { return slices.Clone(s.videos) }

func (s *SuccessStory) Views() int { return s.views }

func (s *SuccessStory) PublishedAt() time.Time { return s.publishedAt }

func (s *SuccessStory) Update(c SuccessStoryChanges) error {
	title := s.title
	if c.Title != nil {
		t, err := vo.NewTitle(*c.Title)
		if err != nil {
			return err
		}
		title = t
	}
	content := s.content
	if c.Content != nil {
		content = strings.TrimSpace(*c.Content)
		if content == "" {
			return ErrEmptyStoryContent
		}
	}
	if vo.Equal(title, s.title) && content == s.content {
		return nil
	}

	s.title = title
	s.content = content
	s.record(events.SuccessStoryUpdated{Envelope: s.nextEnvelope(), Title: title.String()})
	s.bumpVersion()
	return nil
}

// RecordView увеличивает счетчик просмотров на один.
func (s *SuccessStory) RecordView() {
	s.views++
	s.record(events.SuccessStoryViewed{Envelope: s.nextEnvelope(), Views: s.views})
	s.bumpVersion()
}

func (s *SuccessStory) AddPhoto(url string) error {
	return s.addMedia(&s.photos, events.MediaPhoto, url)
}

func (s *SuccessStory) RemovePhoto(url string) error {
	return s.removeMedia(&s.photos, events.MediaPhoto, url)
}

func (s *SuccessStory) AddVideo(url string) error {
	return s.addMedia(&s.videos, events.MediaVideo, url)
}

func (s *SuccessStory) RemoveVideo(url string) error {
	return s.removeMedia(&s.videos, events.MediaVideo, url)
}

func (s *SuccessStory) addMedia(list *[]string, kind, url string) error {
	u, err := checkNewMedia(*list, url)
	if err != nil {
		return err
	}

	*list = append(*list, u)
	s.record(events.SuccessStoryMediaAdded{Envelope: s.nextEnvelope(), Kind: kind, URL: u})
	s.bumpVersion()
	return nil
}

func (s *SuccessStory) removeMedia(list *[]string, kind, url string) error {
	i, err := mediaIndex(*list, url)
	if err != nil {
		return err
	}

	removed := (*list)[i]
	*list = slices.Delete(*list, i, i+1)
	s.record(events.SuccessStoryMediaRemoved{Envelope: s.nextEnvelope(), Kind: kind, URL: removed})
	s.bumpVersion()
	return nil
}

// SuccessStoryState - полное состояние истории для слоя хранения.
type SuccessStoryState struct {
	AggregateState
	AnimalID    uuid.UUID
	UserID      *uuid.UUID
	Title       vo.Title
	Content     string
	Photos      []string
	Videos      []string
	Views       int
	PublishedAt time.Time
}

func (s *SuccessStory) Snapshot() SuccessStoryState {
	return SuccessStoryState{
		AggregateState: s.rootState(),
		AnimalID:       s.animalID,
		UserID:         clonePtr(s.userID),
		Title:          s.title,
		Content:        s.content,
		Photos:         slices.Clone(s.photos),
		Videos:         slices.Clone(s.videos),
		Views:          s.views,
		PublishedAt:    s.publishedAt,
	}
}

// RestoreSuccessStory восстанавливает историю из хранилища без проверок и без событий.
func RestoreSuccessStory(st SuccessStoryState) *SuccessStory {
	return &SuccessStory{
		AggregateRoot: restoreRoot(st.AggregateState),
		animalID:      st.AnimalID,
		userID:        clonePtr(st.UserID),
		title:         st.Title,
		content:       st.Content,
		photos:        slices.Clone(st.Photos),
		videos:        slices.Clone(st.Videos),
		views:         st.Views,
		publishedAt:   st.PublishedAt,
	}
}
