package service

import (
	"context"
	"errors"

	"twa-games-backend/internal/features/user/models"
	"twa-games-backend/internal/features/user/repository"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	// GetUser returns the public projection of a registered user.
	GetUser(ctx context.Context, id int64) (*models.UserResponse, error)

	// Register persists a completed registration. Calling it again fully
	// replaces the previous row.
	Register(ctx context.Context, id int64, username, fullName, phone, language string) error

	// Language returns the stored language for a user, or fallback when the
	// user is unknown.
	Language(ctx context.Context, id int64, fallback string) string

	Stats(ctx context.Context) (*models.UserStats, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &models.UserResponse{
		TelegramID: user.TelegramID,
		FullName:   user.FullName,
		Language:   user.Language,
		IsPro:      user.IsPro,
	}, nil
}

func (s *userService) Register(ctx context.Context, id int64, username, fullName, phone, language string) error {
	return s.repo.Upsert(ctx, &models.User{
		TelegramID: id,
		Username:   username,
		FullName:   fullName,
		Phone:      phone,
		Language:   language,
	})
}

func (s *userService) Language(ctx context.Context, id int64, fallback string) string {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fallback
	}
	return user.Language
}

func (s *userService) Stats(ctx context.Context) (*models.UserStats, error) {
	return s.repo.CountStats(ctx)
}
