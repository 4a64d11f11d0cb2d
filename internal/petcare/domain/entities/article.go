package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
)

// ArticleStatus - статус статьи.
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "Draft"
	ArticlePublished ArticleStatus = "Published"
	ArticleArchived  ArticleStatus = "Archived"
)

func (s ArticleStatus) valid() bool {
	switch s {
	case ArticleDraft, ArticlePublished, ArticleArchived:
		return true
	}
	return false
}

var (
	ErrInvalidArticleStatus    = domainerr.InvalidArgument("unknown article status")
	ErrEmptyArticleContent     = domainerr.InvalidArgument("article content cannot be empty")
	ErrArticleAlreadyPublished = domainerr.InvalidState("article is already published")
	ErrArticleAlreadyArchived  = domainerr.InvalidState("article is already archived")
)

// NewArticleParams - входные данные для CreateArticle. Пустой Status означает Draft.
type NewArticleParams struct {
	ID         uuid.UUID
	Slug       string
	Title      string
	Content    string
	CategoryID *uuid.UUID
	AuthorID   *uuid.UUID
	Status     ArticleStatus
	Thumbnail  string
}

// ArticleChanges - частичное обновление статьи; nil поля не меняются.
type ArticleChanges struct {
	Title      *string
	Content    *string
	CategoryID *uuid.UUID
	Thumbnail  *string
}

// Article - статья базы знаний.
type Article struct {
	AggregateRoot
	slug        vo.Slug
	title       vo.Title
	content     string
	categoryID  *uuid.UUID
	authorID    *uuid.UUID
	status      ArticleStatus
	thumbnail   string
	publishedAt *time.Time
}

// CreateArticle проверяет параметры и создает статью с событием ArticleCreated.
// Статья, созданная сразу опубликованной, получает дату публикации.
func CreateArticle(p NewArticleParams) (*Article, error) {
	slug, err := vo.NewSlug(p.Slug)
	if err != nil {
		return nil, err
	}
	title, err := vo.NewTitle(p.Title)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(p.Content)
	if content == "" {
		return nil, ErrEmptyArticleContent
	}
	status := p.Status
	if status == "" {
		status = ArticleDraft
	}
	if !status.valid() {
		return nil, ErrInvalidArticleStatus
	}

	a := &Article{
		AggregateRoot: newAggregateRoot(p.ID),
		slug:          slug,
		title:         title,
		content:       content,
		categoryID:    clonePtr(p.CategoryID),
		authorID:      clonePtr(p.AuthorID),
		status:        status,
		thumbnail:     strings.TrimSpace(p.Thumbnail),
	}
	if status == ArticlePublished {
		now := nowFunc()
		a.publishedAt = &now
	}
	a.record(events.ArticleCreated{
		Envelope: a.nextEnvelope(),
		Slug:     slug.String(),
		Title:    title.String(),
		AuthorID: a.authorID,
		Status:   string(status),
	})
	a.bumpVersion()
	return a, nil
}

func (a *Article) Slug() vo.Slug { return a.slug }

func (a *Article) Title() vo.Title { return a.title }

func (a *Article) Content() string { return a.content }

func (a *Article) CategoryID() *uuid.UUID { return clonePtr(a.categoryID) }

func (a *Article) AuthorID() *uuid.UUID { return clonePtr(a.authorID) }

func (a *Article) Status() ArticleStatus { return a.status }

func (a *Article) Thumbnail() string { return a.thumbnail }

// PublishedAt возвращает дату публикации, если статья публиковалась.
func (a *Article) PublishedAt() (time.Time, bool) {
	if a.publishedAt == nil {
		return time.Time{}, false
	}
	return *a.publishedAt, true
}

// Update применяет заданные поля. Без фактических изменений событие не пишется.
func (a *Article) Update(c ArticleChanges) error {
	title := a.title
	if c.Title != nil {
		t, err := vo.NewTitle(*c.Title)
		if err != nil {
			return err
		}
		title = t
	}
	content := a.content
	if c.Content != nil {
		content = strings.TrimSpace(*c.Content)
		if content == "" {
			return ErrEmptyArticleContent
		}
	}
	categoryID := a.categoryID
	if c.CategoryID != nil {
		categoryID = clonePtr(c.CategoryID)
	}
	thumbnail := a.thumbnail
	if c.Thumbnail != nil {
		thumbnail = strings.TrimSpace(*c.Thumbnail)
	}

	var changed []string
	if !vo.Equal(title, a.title) {
		changed = append(changed, "title")
	}
	if content != a.content {
		changed = append(changed, "content")
	}
	if !sameID(categoryID, a.categoryID) {
		changed = append(changed, "category_id")
	}
	if thumbnail != a.thumbnail {
		changed = append(changed, "thumbnail")
	}
	if len(changed) == 0 {
		return nil
	}

	a.title = title
	a.content = content
	a.categoryID = categoryID
	a.thumbnail = thumbnail
	a.record(events.ArticleUpdated{Envelope: a.nextEnvelope(), Fields: changed})
	a.bumpVersion()
	return nil
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Publish публикует статью, в том числе из архива.
func (a *Article) Publish() error {
	if a.status == ArticlePublished {
		return ErrArticleAlreadyPublished
	}

	now := nowFunc()
	old := a.status
	a.status = ArticlePublished
	a.publishedAt = &now
	a.record(events.ArticlePublished{
		Envelope:    a.nextEnvelope(),
		OldStatus:   string(old),
		PublishedAt: now,
	})
	a.bumpVersion()
	return nil
}

func (a *Article) Archive() error {
	if a.status == ArticleArchived {
		return ErrArticleAlreadyArchived
	}

	old := a.status
	a.status = ArticleArchived
	a.record(events.ArticleArchived{Envelope: a.nextEnvelope(), OldStatus: string(old)})
	a.bumpVersion()
	return nil
}

// ArticleState - полное состояние статьи для слоя хранения.
type ArticleState struct {
	AggregateState
	Slug        vo.Slug
	Title       vo.Title
	Content     string
	CategoryID  *uuid.UUID
	AuthorID    *uuid.UUID
	Status      ArticleStatus
	Thumbnail   string
	PublishedAt *time.Time
}

func (a *Article) Snapshot() ArticleState {
	return ArticleState{
		AggregateState: a.rootState(),
		Slug:           a.slug,
		Title:          a.title,
		Content:        a.content,
		CategoryID:     clonePtr(a.categoryID),
		AuthorID:       clonePtr(a.authorID),
		Status:         a.status,
		Thumbnail:      a.thumbnail,
		PublishedAt:    clonePtr(a.publishedAt),
	}
}

// RestoreArticle восстанавливает статью из хранилища без проверок и без событий.
func RestoreArticle(s ArticleState) *Article {
	return &Article{
		AggregateRoot: restoreRoot(s.AggregateState),
		slug:          s.Slug,
		title:         s.Title,
		content:       s.Content,
		categoryID:    clonePtr(s.CategoryID),
		authorID:      clonePtr(s.AuthorID),
		status:        s.Status,
		thumbnail:     s.Thumbnail,
		publishedAt:   clonePtr(s.PublishedAt),
	}
}
