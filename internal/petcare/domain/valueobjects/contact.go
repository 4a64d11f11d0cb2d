package valueobjects

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"petcare/internal/petcare/domain/domainerr"
)

// MaxAlternativeContactLength - ограничение для свободного текста альтернативного контакта.
const MaxAlternativeContactLength = 200

var (
	ErrInvalidEmail       = domainerr.InvalidArgument("email has invalid format")
	ErrInvalidPhoneNumber = domainerr.InvalidArgument("phone number must be in E.164 format")
	ErrAlternativeTooLong = domainerr.InvalidArgument("alternative contact exceeds %d characters", MaxAlternativeContactLength)
)

var (
	emailPattern = regexp.MustCompile(`^[\w.\-]+@([\w\-]+\.)+[\w\-]{2,4}$`)
	phonePattern = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)
)

// Email хранится без крайних пробелов в нижнем регистре.
type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if !emailPattern.MatchString(v) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: v}, nil
}

func (e Email) String() string { return e.value }

func (e Email) EqualityComponents() []any { return []any{e.value} }

// PhoneNumber - номер в формате E.164.
type PhoneNumber struct {
	value string
}

func NewPhoneNumber(value string) (PhoneNumber, error) {
	v := strings.TrimSpace(value)
	if !phonePattern.MatchString(v) {
		return PhoneNumber{}, ErrInvalidPhoneNumber
	}
	return PhoneNumber{value: v}, nil
}

func (p PhoneNumber) String() string { return p.value }

func (p PhoneNumber) EqualityComponents() []any { return []any{p.value} }

// ContactInfo объединяет email, телефон и необязательный альтернативный контакт.
type ContactInfo struct {
	email       Email
	phone       PhoneNumber
	alternative string
}

func NewContactInfo(email Email, phone PhoneNumber, alternative string) (ContactInfo, error) {
	alt := strings.TrimSpace(alternative)
	if utf8.RuneCountInString(alt) > MaxAlternativeContactLength {
		return ContactInfo{}, ErrAlternativeTooLong
	}
	if email.value == "" {
		return ContactInfo{}, ErrInvalidEmail
	}
	if phone.value == "" {
		return ContactInfo{}, ErrInvalidPhoneNumber
	}
	return ContactInfo{email: email, phone: phone, alternative: alt}, nil
}

func (c ContactInfo) Email() Email { return c.email }

func (c ContactInfo) Phone() PhoneNumber { return c.phone }

// Alternative возвращает альтернативный контакт или пустую строку.
func (c ContactInfo) Alternative() string { return c.alternative }

func (c ContactInfo) WithEmail(email Email) (ContactInfo, error) {
	return NewContactInfo(email, c.phone, c.alternative)
}

func (c ContactInfo) WithPhone(phone PhoneNumber) (ContactInfo, error) {
	return NewContactInfo(c.email, phone, c.alternative)
}

func (c ContactInfo) WithAlternative(alternative string) (ContactInfo, error) {
	return NewContactInfo(c.email, c.phone, alternative)
}

func (c ContactInfo) EqualityComponents() []any {
	return []any{c.email, c.phone, c.alternative}
}
