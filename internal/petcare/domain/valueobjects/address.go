package valueobjects

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"petcare/internal/petcare/domain/domainerr"
)

const (
	MinAddressLength = 10
	MaxAddressLength = 200
)

var (
	ErrAddressLength  = domainerr.InvalidArgument("address must be %d-%d characters", MinAddressLength, MaxAddressLength)
	ErrInvalidAddress = domainerr.InvalidArgument("address must look like \"вул. Назва, 10, м. Місто\"")
)

// Тип вулиці, назва, номер будинку, місто.
var addressPattern = regexp.MustCompile(
	`(?i)^(вул\.|пров\.|просп\.|пл\.|бульв\.)\s+\p{L}+.*?,\s*(№?\s*\d+[A-Za-zА-Яа-я]?),\s*м\.\s*(\p{L}+)$`)

// Address - украинский почтовый адрес.
type Address struct {
	value    string
	building string
	city     string
}

func NewAddress(value string) (Address, error) {
	v := strings.TrimSpace(value)
	if n := utf8.RuneCountInString(v); n < MinAddressLength || n > MaxAddressLength {
		return Address{}, ErrAddressLength
	}
	m := addressPattern.FindStringSubmatch(v)
	if m == nil {
		return Address{}, ErrInvalidAddress
	}
	return Address{value: v, building: strings.TrimSpace(m[2]), city: m[3]}, nil
}

func (a Address) String() string { return a.value }

func (a Address) Building() string { return a.building }

func (a Address) City() string { return a.city }

func (a Address) EqualityComponents() []any { return []any{a.value} }
