package service

import (
	"context"
	"errors"

	"impactready/internal/model"
	"impactready/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// UserService handles the onboarding profile
type UserService struct {
	userRepo repository.UserRepo
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// Get returns the user with the given ID
func (s *UserService) Get(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile saves the onboarding profile answers
func (s *UserService) UpdateProfile(ctx context.Context, userID string, profile model.Profile) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.UpdateProfile(ctx, userID, profile)
}
