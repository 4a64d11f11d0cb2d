package valueobjects

import (
	"strings"
	"unicode/utf8"

	"petcare/internal/petcare/domain/domainerr"
)

const MaxTitleLength = 200

var (
	ErrEmptyTitle   = domainerr.InvalidArgument("title cannot be empty")
	ErrTitleTooLong = domainerr.InvalidArgument("title exceeds %d characters", MaxTitleLength)
)

// Title - заголовок задачи, статьи или истории.
type Title struct {
	value string
}

func NewTitle(value string) (Title, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Title{}, ErrEmptyTitle
	}
	if utf8.RuneCountInString(v) > MaxTitleLength {
		return Title{}, ErrTitleTooLong
	}
	return Title{value: v}, nil
}

func (t Title) String() string { return t.value }

func (t Title) EqualityComponents() []any { return []any{t.value} }
