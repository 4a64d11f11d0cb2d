package valueobjects

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"petcare/internal/petcare/domain/domainerr"
)

// DefaultCurrency используется, когда валюта не указана.
const DefaultCurrency = "UAH"

var (
	ErrNegativeAmount   = domainerr.InvalidArgument("money amount cannot be negative")
	ErrInvalidCurrency  = domainerr.InvalidArgument("currency must be a three-letter code")
	ErrNegativeFactor   = domainerr.InvalidArgument("multiplication factor cannot be negative")
	ErrCurrencyMismatch = domainerr.InvalidOperation("money currencies differ")
	ErrNegativeResult   = domainerr.InvalidOperation("subtraction result would be negative")
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Money - неотрицательная сумма в валюте. Операции определены только для одной валюты.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney приводит код валюты к верхнему регистру, пустой код заменяется на UAH.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	c := strings.ToUpper(strings.TrimSpace(currency))
	if c == "" {
		c = DefaultCurrency
	}
	if !currencyPattern.MatchString(c) {
		return Money{}, ErrInvalidCurrency
	}
	return Money{amount: amount, currency: c}, nil
}

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) Currency() string { return m.currency }

func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) IsPositive() bool { return m.amount.IsPositive() }

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, ErrNegativeResult
	}
	return Money{amount: result, currency: m.currency}, nil
}

func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, ErrNegativeFactor
	}
	return Money{amount: m.amount.Mul(factor), currency: m.currency}, nil
}

// Compare возвращает -1, 0 или 1.
func (m Money) Compare(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}
	return m.amount.Cmp(other.amount), nil
}

func (m Money) GreaterThan(other Money) (bool, error) {
	c, err := m.Compare(other)
	return c > 0, err
}

func (m Money) LessThan(other Money) (bool, error) {
	c, err := m.Compare(other)
	return c < 0, err
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

func (m Money) Equals(other Money) bool { return Equal(m, other) }

// String возвращает сумму с двумя знаками после запятой и код валюты.
func (m Money) String() string { return m.amount.StringFixed(2) + " " + m.currency }

func (m Money) EqualityComponents() []any { return []any{m.amount.String(), m.currency} }
