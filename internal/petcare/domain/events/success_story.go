package events

import "github.com/google/uuid"

const (
	TypeSuccessStoryPublished    = "SuccessStoryPublished"
	TypeSuccessStoryUpdated      = "SuccessStoryUpdated"
	TypeSuccessStoryViewed       = "SuccessStoryViewed"
	TypeSuccessStoryMediaAdded   = "SuccessStoryMediaAdded"
	TypeSuccessStoryMediaRemoved = "SuccessStoryMediaRemoved"
)

type SuccessStoryPublished struct {
	Envelope
	AnimalID uuid.UUID  `json:"animal_id"`
	UserID   *uuid.UUID `json:"user_id,omitempty"`
	Title    string     `json:"title"`
}

type SuccessStoryUpdated struct {
	Envelope
	Title string `json:"title"`
}

type SuccessStoryViewed struct {
	Envelope
	Views int `json:"views"`
}

type SuccessStoryMediaAdded struct {
	Envelope
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

type SuccessStoryMediaRemoved struct {
	Envelope
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

func (SuccessStoryPublished) EventType() string    { return TypeSuccessStoryPublished }
func (SuccessStoryUpdated) EventType() string      { return TypeSuccessStoryUpdated }
func (SuccessStoryViewed) EventType() string       { return TypeSuccessStoryViewed }
func (SuccessStoryMediaAdded) EventType() string   { return TypeSuccessStoryMediaAdded }
func (SuccessStoryMediaRemoved) EventType() string { return TypeSuccessStoryMediaRemoved }
