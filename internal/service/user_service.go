package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"taskflow/internal/auth"
	"taskflow/internal/model"
	"taskflow/internal/repository"
)

const (
	minUsernameLen = 2
	maxUsernameLen = 50
	minPasswordLen = 6
)

// UserService covers registration, login and account lookups.
type UserService struct {
	users  *repository.UserRepository
	hasher *auth.PasswordHasher
}

func NewUserService(users *repository.UserRepository, hasher *auth.PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// Register creates the account and its default categories atomically.
func (s *UserService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	switch {
	case username == "" || password == "":
		return nil, validation("username and password are required")
	case utf8.RuneCountInString(username) < minUsernameLen:
		return nil, validation("username must be at least 2 characters")
	case utf8.RuneCountInString(username) > maxUsernameLen:
		return nil, validation("username must be at most 50 characters")
	case utf8.RuneCountInString(password) < minPasswordLen:
		return nil, validation("password must be at least 6 characters")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, validation("password must be at most 72 bytes")
		}
		return nil, err
	}

	user := &model.User{Username: username, PasswordHash: hash}
	if err := s.users.CreateWithCategories(ctx, user, model.DefaultCategories()); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("username already exists")
		}
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user matching the credentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, validation("username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, unauthorized("invalid username or password")
	case err != nil:
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, unauthorized("invalid username or password")
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, notFound("user not found")
	case err != nil:
		return nil, err
	}
	return user, nil
}

// Delete removes the account along with all of its categories and tasks.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	err := s.users.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("user not found")
	}
	return err
}

// EnsureUser registers username unless it already exists.
func (s *UserService) EnsureUser(ctx context.Context, username, password string) (*model.User, bool, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	switch {
	case err == nil:
		return user, false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, err
	}

	user, err = s.Register(ctx, username, password)
	if errors.Is(err, ErrConflict) {
		// Lost a race with another instance.
		user, err = s.users.FindByUsername(ctx, strings.TrimSpace(username))
		return user, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
