package entities

import (
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
)

// UserRole - роль пользователя на платформе.
type UserRole string

const (
	RoleUser      UserRole = "User"
	RoleAdmin     UserRole = "Admin"
	RoleModerator UserRole = "Moderator"
)

func (r UserRole) valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

const (
	DefaultLanguage   = "uk"
	MaxLanguageLength = 10
)

var (
	ErrEmptyPasswordHash  = domainerr.InvalidArgument("password hash cannot be empty")
	ErrInvalidRole        = domainerr.InvalidArgument("unknown user role")
	ErrNegativePoints     = domainerr.InvalidArgument("points cannot be negative")
	ErrNonPositivePoints  = domainerr.InvalidArgument("points amount must be positive")
	ErrLanguageTooLong    = domainerr.InvalidArgument("language exceeds %d characters", MaxLanguageLength)
	ErrEmptyLoginTime     = domainerr.InvalidArgument("login time cannot be empty")
	ErrEmptyPreferenceKey = domainerr.InvalidArgument("preference key cannot be empty")
	ErrInsufficientPoints = domainerr.InvalidState("user does not have enough points")
	ErrPointsOverflow     = domainerr.InvalidState("points total would overflow")
	ErrAlreadySubscribed  = domainerr.InvalidState("user is already subscribed to the shelter")
	ErrNotSubscribed      = domainerr.InvalidState("user is not subscribed to the shelter")
)

// NewUserParams - входные данные для CreateUser.
type NewUserParams struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Role         UserRole
	Preferences  map[string]string
	Points       int
	ProfilePhoto string
	Language     string
}

// User - пользователь платформы.
type User struct {
	AggregateRoot
	email                vo.Email
	passwordHash         string
	name                 vo.PersonName
	phone                vo.PhoneNumber
	role                 UserRole
	preferences          map[string]string
	points               int
	lastLogin            *time.Time
	profilePhoto         string
	language             string
	subscribedShelterIDs []uuid.UUID
}

// CreateUser проверяет параметры и создает пользователя с событием UserCreated.
func CreateUser(p NewUserParams) (*User, error) {
	email, err := vo.NewEmail(p.Email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.PasswordHash) == "" {
		return nil, ErrEmptyPasswordHash
	}
	name, err := vo.NewPersonName(p.FirstName, p.LastName)
	if err != nil {
		return nil, err
	}
	phone, err := vo.NewPhoneNumber(p.Phone)
	if err != nil {
		return nil, err
	}
	role := p.Role
	if role == "" {
		role = RoleUser
	}
	if !role.valid() {
		return nil, ErrInvalidRole
	}
	if p.Points < 0 {
		return nil, ErrNegativePoints
	}
	language, err := cleanLanguage(p.Language)
	if err != nil {
		return nil, err
	}

	u := &User{
		AggregateRoot: newAggregateRoot(p.ID),
		email:         email,
		passwordHash:  p.PasswordHash,
		name:          name,
		phone:         phone,
		role:          role,
		preferences:   maps.Clone(p.Preferences),
		points:        p.Points,
		profilePhoto:  strings.TrimSpace(p.ProfilePhoto),
		language:      language,
	}
	if u.preferences == nil {
		u.preferences = make(map[string]string)
	}
	u.record(events.UserCreated{Envelope: u.nextEnvelope(), Email: email.String(), Role: string(role)})
	u.bumpVersion()
	return u, nil
}

func cleanLanguage(language string) (string, error) {
	l := strings.TrimSpace(language)
	if l == "" {
		return DefaultLanguage, nil
	}
	if len([]rune(l)) > MaxLanguageLength {
		return "", ErrLanguageTooLong
	}
	return l, nil
}

func (u *User) Email() vo.Email { return u.email }

func (u *User) PasswordHash() string { return u.passwordHash }

func (u *User) Name() vo.PersonName { return u.name }

func (u *User) Phone() vo.PhoneNumber { return u.phone }

func (u *User) Role() UserRole { return u.role }

func (u *User) Preferences() map[string]string { return maps.Clone(u.preferences) }

func (u *User) Points() int { return u.points }

// LastLogin возвращает время последнего входа, если вход был.
func (u *User) LastLogin() (time.Time, bool) {
	if u.lastLogin == nil {
		return time.Time{}, false
	}
	return *u.lastLogin, true
}

func (u *User) ProfilePhoto() string { return u.profilePhoto }

func (u *User) Language() string { return u.language }

func (u *User) SubscribedShelterIDs() []uuid.UUID { return slices.Clone(u.subscribedShelterIDs) }

func (u *User) IsSubscribedTo(shelterID uuid.UUID) bool {
	return slices.Contains(u.subscribedShelterIDs, shelterID)
}

func (u *User) UpdateProfile(firstName, lastName, phone, profilePhoto, language string) error {
	name, err := vo.NewPersonName(firstName, lastName)
	if err != nil {
		return err
	}
	ph, err := vo.NewPhoneNumber(phone)
	if err != nil {
		return err
	}
	lang, err := cleanLanguage(language)
	if err != nil {
		return err
	}

	u.name = name
	u.phone = ph
	u.profilePhoto = strings.TrimSpace(profilePhoto)
	u.language = lang
	u.record(events.UserProfileUpdated{
		Envelope:     u.nextEnvelope(),
		FirstName:    name.FirstName(),
		LastName:     name.LastName(),
		Phone:        ph.String(),
		ProfilePhoto: u.profilePhoto,
		Language:     lang,
	})
	u.bumpVersion()
	return nil
}

func (u *User) ChangeEmail(email string) error {
	e, err := vo.NewEmail(email)
	if err != nil {
		return err
	}
	if vo.Equal(e, u.email) {
		return nil
	}

	old := u.email
	u.email = e
	u.record(events.UserEmailChanged{Envelope: u.nextEnvelope(), OldEmail: old.String(), NewEmail: e.String()})
	u.bumpVersion()
	return nil
}

// ChangePassword принимает уже вычисленный хэш пароля.
func (u *User) ChangePassword(passwordHash string) error {
	if strings.TrimSpace(passwordHash) == "" {
		return ErrEmptyPasswordHash
	}

	u.passwordHash = passwordHash
	u.record(events.UserPasswordChanged{Envelope: u.nextEnvelope()})
	u.bumpVersion()
	return nil
}

func (u *User) ChangeRole(role UserRole) error {
	if !role.valid() {
		return ErrInvalidRole
	}
	if role == u.role {
		return nil
	}

	old := u.role
	u.role = role
	u.record(events.UserRoleChanged{Envelope: u.nextEnvelope(), OldRole: string(old), NewRole: string(role)})
	u.bumpVersion()
	return nil
}

func (u *User) AddPoints(points int) error {
	if points <= 0 {
		return ErrNonPositivePoints
	}
	if points > math.MaxInt-u.points {
		return ErrPointsOverflow
	}

	u.points += points
	u.record(events.UserPointsAdded{Envelope: u.nextEnvelope(), Points: points, Total: u.points})
	u.bumpVersion()
	return nil
}

func (u *User) DeductPoints(points int) error {
	if points <= 0 {
		return ErrNonPositivePoints
	}
	if points > u.points {
		return ErrInsufficientPoints
	}

	u.points -= points
	u.record(events.UserPointsDeducted{Envelope: u.nextEnvelope(), Points: points, Total: u.points})
	u.bumpVersion()
	return nil
}

func (u *User) RecordLogin(at time.Time) error {
	if at.IsZero() {
		return ErrEmptyLoginTime
	}

	t := at.UTC().Truncate(time.Microsecond)
	u.lastLogin = &t
	u.record(events.UserLoggedIn{Envelope: u.nextEnvelope(), At: t})
	u.bumpVersion()
	return nil
}

func (u *User) SubscribeToShelter(shelterID uuid.UUID) error {
	if shelterID == uuid.Nil {
		return ErrEmptyShelterID
	}
	if u.IsSubscribedTo(shelterID) {
		return ErrAlreadySubscribed
	}

	u.subscribedShelterIDs = append(u.subscribedShelterIDs, shelterID)
	u.record(events.UserShelterSubscribed{Envelope: u.nextEnvelope(), ShelterID: shelterID})
	u.bumpVersion()
	return nil
}

func (u *User) UnsubscribeFromShelter(shelterID uuid.UUID) error {
	i := slices.Index(u.subscribedShelterIDs, shelterID)
	if i < 0 {
		return ErrNotSubscribed
	}

	u.subscribedShelterIDs = slices.Delete(u.subscribedShelterIDs, i, i+1)
	u.record(events.UserShelterUnsubscribed{Envelope: u.nextEnvelope(), ShelterID: shelterID})
	u.bumpVersion()
	return nil
}

// SetPreference устанавливает настройку. Пустое значение удаляет ее.
func (u *User) SetPreference(key, value string) error {
	k := strings.TrimSpace(key)
	if k == "" {
		return ErrEmptyPreferenceKey
	}
	current, ok := u.preferences[k]
	if current == value && (ok || value == "") {
		return nil
	}

	if value == "" {
		delete(u.preferences, k)
	} else {
		if u.preferences == nil {
			u.preferences = make(map[string]string)
		}
		u.preferences[k] = value
	}
	u.record(events.UserPreferenceSet{Envelope: u.nextEnvelope(), Key: k, Value: value})
	u.bumpVersion()
	return nil
}

// UserState - полное состояние пользователя для слоя хранения.
type UserState struct {
	AggregateState
	Email                vo.Email
	PasswordHash         string
	Name                 vo.PersonName
	Phone                vo.PhoneNumber
	Role                 UserRole
	Preferences          map[string]string
	Points               int
	LastLogin            *time.Time
	ProfilePhoto         string
	Language             string
	SubscribedShelterIDs []uuid.UUID
}

func (u *User) Snapshot() UserState {
	return UserState{
		AggregateState:       u.rootState(),
		Email:                u.email,
		PasswordHash:         u.passwordHash,
		Name:                 u.name,
		Phone:                u.phone,
		Role:                 u.role,
		Preferences:          maps.Clone(u.preferences),
		Points:               u.points,
		LastLogin:            u.lastLogin,
		ProfilePhoto:         u.profilePhoto,
		Language:             u.language,
		SubscribedShelterIDs: slices.Clone(u.subscribedShelterIDs),
	}
}

// RestoreUser восстанавливает пользователя из хранилища без проверок и без событий.
func RestoreUser(s UserState) *User {
	u := &User{
		AggregateRoot:        restoreRoot(s.AggregateState),
		email:                s.Email,
		passwordHash:         s.PasswordHash,
		name:                 s.Name,
		phone:                s.Phone,
		role:                 s.Role,
		preferences:          maps.Clone(s.Preferences),
		points:               s.Points,
		lastLogin:            s.LastLogin,
		profilePhoto:         s.ProfilePhoto,
		language:             s.Language,
		subscribedShelterIDs: slices.Clone(s.SubscribedShelterIDs),
	}
	if u.preferences == nil {
		u.preferences = make(map[string]string)
	}
	return u
}
