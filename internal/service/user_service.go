package service

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"userhub/internal/domain"
	"userhub/internal/repository"
)

// RegisterUserInput carries the fields accepted when registering a user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// UserService describes the user directory operations.
type UserService interface {
	RegisterUser(ctx context.Context, in RegisterUserInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	logger logrus.FieldLogger
}

func NewUserService(users repository.UserRepository, logger logrus.FieldLogger) UserService {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return &userService{
		users:  users,
		logger: logger,
	}
}

// RegisterUser stores a new user unless the email is already taken.
//
// The lookup and the insert are separate statements, so two concurrent
// registrations for the same email can both succeed.
func (s *userService) RegisterUser(ctx context.Context, in RegisterUserInput) (*domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		s.logger.WithField("email", in.Email).Debug("registration rejected: email taken")
		return nil, duplicateUser()
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, storeFailure(err)
	}

	user := &domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, storeFailure(err)
	}

	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Debug("user registered")
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}
	return users, nil
}
