package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/ports/api"
	"petcare/internal/petcare/ports/repositories"
	"petcare/internal/petcare/ports/services"
	"petcare/pkg/logger"
)

const (
	methodRegisterUser   = "RegisterUser"
	methodChangePassword = "ChangePassword"
	methodAwardPoints    = "AwardPoints"
	methodChangeRole     = "ChangeRole"
	methodAuthenticate   = "Authenticate"

	msgRegisteringUser = "registering user"
	msgUserRegistered  = "user registered"
	msgUserUpdated     = "user updated"
	msgUserLoggedIn    = "user logged in"

	msgErrEmailTaken       = "user with this email already exists"
	msgErrPasswordMismatch = "current password does not match"
	msgErrCheckingEmail    = "failed to check email availability"
	msgErrRehashFailed     = "failed to rehash password, keeping the old hash"
	msgErrInvalidLogin     = "invalid credentials"

	errCtxCheckingEmail   = "checking email availability"
	errCtxHashingPassword = "hashing password"
	errCtxVerifyingPass   = "verifying password"
	errCtxFetchingUser    = "fetching user"
	errCtxCreatingUser    = "creating user"
	errCtxUpdatingUser    = "updating user"
)

var (
	ErrEmailTaken         = domainerr.InvalidState("user with this email already exists")
	ErrPasswordMismatch   = domainerr.InvalidArgument("current password is incorrect")
	ErrInvalidCredentials = domainerr.InvalidArgument("email or password is incorrect")
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	users     repositories.UserRepository
	passwords services.PasswordService
	committer *Committer
}

// NewUserUseCase создает новый экземпляр сервиса пользователей.
func NewUserUseCase(
	users repositories.UserRepository,
	passwords services.PasswordService,
	committer *Committer,
) api.UserUseCase {
	return &UserUseCaseImpl{
		users:     users,
		passwords: passwords,
		committer: committer,
	}
}

func (u *UserUseCaseImpl) Register(ctx context.Context, params entities.NewUserParams, password string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegisterUser), zap.String("email", params.Email))
	log.Debug(ctx, msgRegisteringUser)

	existing, err := u.users.FindByEmail(ctx, params.Email)
	switch {
	case err == nil && existing != nil:
		log.Debug(ctx, msgErrEmailTaken)
		return nil, ErrEmailTaken
	case err != nil && !errors.Is(err, domainerr.ErrNotFound):
		log.Error(ctx, msgErrCheckingEmail, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingEmail, err)
	}

	hash, err := u.passwords.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}
	params.PasswordHash = hash

	user, err := entities.CreateUser(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}
	if err := create[*entities.User](ctx, u.committer, u.users, user); err != nil {
		log.Error(ctx, errCtxCreatingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", user.ID().String()))
	return user, nil
}

// ChangePassword проверяет текущий пароль и сохраняет хэш нового.
func (u *UserUseCaseImpl) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodChangePassword), zap.String("userID", userID.String()))

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}
	ok, err := u.passwords.Verify(ctx, oldPassword, user.PasswordHash())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPass, err)
	}
	if !ok {
		log.Debug(ctx, msgErrPasswordMismatch)
		return nil, ErrPasswordMismatch
	}

	hash, err := u.passwords.Hash(ctx, newPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	return u.change(ctx, methodChangePassword, userID, func(usr *entities.User) error {
		return usr.ChangePassword(hash)
	})
}

// Authenticate проверяет пароль и отмечает вход. Если хэш создан
// с устаревшей стоимостью, он пересчитывается в том же сохранении.
// Неизвестный email и неверный пароль неразличимы для вызывающего.
func (u *UserUseCaseImpl) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthenticate))

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, domainerr.ErrNotFound) {
		log.Debug(ctx, msgErrInvalidLogin)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}

	ok, err := u.passwords.Verify(ctx, password, user.PasswordHash())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPass, err)
	}
	if !ok {
		log.Debug(ctx, msgErrInvalidLogin, zap.String("userID", user.ID().String()))
		return nil, ErrInvalidCredentials
	}

	var rehashed string
	if u.passwords.NeedsRehash(user.PasswordHash()) {
		if rehashed, err = u.passwords.Hash(ctx, password); err != nil {
			log.Warn(ctx, msgErrRehashFailed, zap.Error(err))
			rehashed = ""
		}
	}

	loggedIn, err := u.change(ctx, methodAuthenticate, user.ID(), func(usr *entities.User) error {
		if err := usr.RecordLogin(time.Now()); err != nil {
			return err
		}
		if rehashed == "" {
			return nil
		}
		return usr.ChangePassword(rehashed)
	})
	if err != nil {
		return nil, err
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", loggedIn.ID().String()))
	return loggedIn, nil
}

func (u *UserUseCaseImpl) AwardPoints(ctx context.Context, userID uuid.UUID, points int) (*entities.User, error) {
	return u.change(ctx, methodAwardPoints, userID, func(usr *entities.User) error {
		return usr.AddPoints(points)
	})
}

func (u *UserUseCaseImpl) ChangeRole(ctx context.Context, userID uuid.UUID, role entities.UserRole) (*entities.User, error) {
	return u.change(ctx, methodChangeRole, userID, func(usr *entities.User) error {
		return usr.ChangeRole(role)
	})
}

func (u *UserUseCaseImpl) change(
	ctx context.Context,
	method string,
	userID uuid.UUID,
	mutate func(*entities.User) error,
) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("userID", userID.String()))

	user, err := update[*entities.User](ctx, u.committer, u.users, userID, mutate)
	if err != nil {
		log.Debug(ctx, errCtxUpdatingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	log.Info(ctx, msgUserUpdated, zap.Int("version", user.Version()))
	return user, nil
}
