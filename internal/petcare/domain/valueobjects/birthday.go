package valueobjects

import (
	"time"

	"petcare/internal/petcare/domain/domainerr"
)

// MaxAgeYears - предельный возраст для даты рождения.
const MaxAgeYears = 90

var (
	ErrBirthdayInFuture = domainerr.InvalidArgument("birthday cannot be in the future")
	ErrBirthdayTooOld   = domainerr.InvalidArgument("birthday cannot be more than %d years ago", MaxAgeYears)
)

// Birthday - календарная дата рождения в UTC.
type Birthday struct {
	date time.Time
}

// NewBirthday проверяет дату относительно now.
func NewBirthday(date, now time.Time) (Birthday, error) {
	d := dateOnly(date)
	today := dateOnly(now)
	if d.After(today) {
		return Birthday{}, ErrBirthdayInFuture
	}
	if d.Before(today.AddDate(-MaxAgeYears, 0, 0)) {
		return Birthday{}, ErrBirthdayTooOld
	}
	return Birthday{date: d}, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (b Birthday) Date() time.Time { return b.date }

// Age возвращает полное число лет на дату now.
func (b Birthday) Age(now time.Time) int {
	today := dateOnly(now)
	years := today.Year() - b.date.Year()
	if !sameOrAfterAnniversary(b.date, today) {
		years--
	}
	return years
}

func sameOrAfterAnniversary(birth, today time.Time) bool {
	if today.Month() != birth.Month() {
		return today.Month() > birth.Month()
	}
	return today.Day() >= birth.Day()
}

func (b Birthday) EqualityComponents() []any { return []any{b.date.Format(time.DateOnly)} }
