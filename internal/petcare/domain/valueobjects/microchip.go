package valueobjects

import (
	"regexp"
	"strings"

	"petcare/internal/petcare/domain/domainerr"
)

var ErrInvalidMicrochip = domainerr.InvalidArgument("microchip id must be 9-15 latin letters or digits")

var microchipPattern = regexp.MustCompile(`^[0-9A-Z]{9,15}$`)

// MicrochipID - идентификатор чипа животного (ISO 11784 и старые форматы).
type MicrochipID struct {
	value string
}

func NewMicrochipID(value string) (MicrochipID, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	if !microchipPattern.MatchString(v) {
		return MicrochipID{}, ErrInvalidMicrochip
	}
	return MicrochipID{value: v}, nil
}

func (m MicrochipID) String() string { return m.value }

func (m MicrochipID) EqualityComponents() []any { return []any{m.value} }
