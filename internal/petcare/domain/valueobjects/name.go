package valueobjects

import (
	"strings"
	"unicode/utf8"

	"petcare/internal/petcare/domain/domainerr"
)

const (
	MaxNameLength           = 100
	MaxPersonNamePartLength = 50
)

var (
	ErrEmptyName      = domainerr.InvalidArgument("name cannot be empty")
	ErrNameTooLong    = domainerr.InvalidArgument("name exceeds %d characters", MaxNameLength)
	ErrEmptyFirstName = domainerr.InvalidArgument("first name cannot be empty")
	ErrEmptyLastName  = domainerr.InvalidArgument("last name cannot be empty")
	ErrPersonNameLong = domainerr.InvalidArgument("name part exceeds %d characters", MaxPersonNamePartLength)
)

// Name - непустое имя длиной до 100 символов без крайних пробелов.
type Name struct {
	value string
}

func NewName(value string) (Name, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Name{}, ErrEmptyName
	}
	if utf8.RuneCountInString(v) > MaxNameLength {
		return Name{}, ErrNameTooLong
	}
	return Name{value: v}, nil
}

func (n Name) String() string { return n.value }

func (n Name) EqualityComponents() []any { return []any{n.value} }

// PersonName - имя и фамилия человека.
type PersonName struct {
	first string
	last  string
}

func NewPersonName(first, last string) (PersonName, error) {
	f, err := personNamePart(first, ErrEmptyFirstName)
	if err != nil {
		return PersonName{}, err
	}
	l, err := personNamePart(last, ErrEmptyLastName)
	if err != nil {
		return PersonName{}, err
	}
	return PersonName{first: f, last: l}, nil
}

func personNamePart(value string, errEmpty error) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", errEmpty
	}
	if utf8.RuneCountInString(v) > MaxPersonNamePartLength {
		return "", ErrPersonNameLong
	}
	return v, nil
}

func (p PersonName) FirstName() string { return p.first }

func (p PersonName) LastName() string { return p.last }

// FullName возвращает "Имя Фамилия".
func (p PersonName) FullName() string { return p.first + " " + p.last }

func (p PersonName) WithFirstName(first string) (PersonName, error) {
	return NewPersonName(first, p.last)
}

func (p PersonName) WithLastName(last string) (PersonName, error) {
	return NewPersonName(p.first, last)
}

func (p PersonName) EqualityComponents() []any { return []any{p.first, p.last} }
