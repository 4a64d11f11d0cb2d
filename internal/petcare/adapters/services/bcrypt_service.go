// Package services содержит реализации внешних сервисов, используемых сценариями.
package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"petcare/internal/petcare/domain/domainerr"
	svc "petcare/internal/petcare/ports/services"
)

const (
	// MinPasswordLength - минимальная длина пароля в символах.
	MinPasswordLength = 8
	// MaxPasswordBytes - bcrypt учитывает только первые 72 байта.
	MaxPasswordBytes = 72
)

var (
	ErrInvalidPassword = domainerr.InvalidArgument("password must contain at least %d characters", MinPasswordLength)
	ErrPasswordTooLong = domainerr.InvalidArgument("password must not exceed %d bytes", MaxPasswordBytes)
	ErrHashingFailed   = errors.New("password hashing failed")
	ErrMalformedHash   = errors.New("stored password hash is malformed")
)

const errCtxHashing = "hashing password"

// PasswordHasher хэширует пароли пользователей bcrypt с заданной стоимостью.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher создает сервис паролей; стоимость вне допустимого
// диапазона заменяется bcrypt.DefaultCost.
func NewPasswordHasher(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func checkPassword(password string) error {
	switch {
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return ErrInvalidPassword
	case len(password) > MaxPasswordBytes:
		return ErrPasswordTooLong
	}
	return nil
}

func (h *PasswordHasher) Hash(_ context.Context, password string) (string, error) {
	if err := checkPassword(password); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errCtxHashing, ErrHashingFailed, err)
	}
	return string(hashed), nil
}

// Verify сообщает, подходит ли пароль к хэшу. Несовпадение не является
// ошибкой; поврежденный хэш возвращает ErrMalformedHash.
func (h *PasswordHasher) Verify(_ context.Context, password, hash string) (bool, error) {
	if password == "" {
		return false, ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
}

// NeedsRehash возвращает true, если хэш построен с другой стоимостью
// или не читается.
func (h *PasswordHasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	return err != nil || cost != h.cost
}
