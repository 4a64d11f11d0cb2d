package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeArticleCreated   = "ArticleCreated"
	TypeArticleUpdated   = "ArticleUpdated"
	TypeArticlePublished = "ArticlePublished"
	TypeArticleArchived  = "ArticleArchived"
)

type ArticleCreated struct {
	Envelope
	Slug     string     `json:"slug"`
	Title    string     `json:"title"`
	AuthorID *uuid.UUID `json:"author_id,omitempty"`
	Status   string     `json:"status"`
}

// ArticleUpdated перечисляет измененные поля статьи.
type ArticleUpdated struct {
	Envelope
	Fields []string `json:"fields"`
}

type ArticlePublished struct {
	Envelope
	OldStatus   string    `json:"old_status"`
	PublishedAt time.Time `json:"published_at"`
}

type ArticleArchived struct {
	Envelope
	OldStatus string `json:"old_status"`
}

func (ArticleCreated) EventType() string   { return TypeArticleCreated }
func (ArticleUpdated) EventType() string   { return TypeArticleUpdated }
func (ArticlePublished) EventType() string { return TypeArticlePublished }
func (ArticleArchived) EventType() string  { return TypeArticleArchived }
