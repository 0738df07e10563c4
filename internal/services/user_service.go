package services

import (
	"context"
	"strings"

	"github.com/ngabriel/sproutquest/internal/errors"
	"github.com/ngabriel/sproutquest/internal/logger"
	"github.com/ngabriel/sproutquest/internal/models"
	"github.com/ngabriel/sproutquest/internal/repository"
)

// UserService handles user-related business logic
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, username, email string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing users")

	users, err := s.userRepo.List(ctx)
	if err != nil {
		log.Error("failed to list users: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, username, email string) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating user: username=%s", username)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}

	user, err := s.userRepo.Upsert(ctx, username, strings.TrimSpace(email))
	if err != nil {
		log.Error("failed to create user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting user: id=%d", id)

	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting user: id=%d", id)

	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if user == nil {
		return errors.NewNotFoundError("user", id)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete user: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
