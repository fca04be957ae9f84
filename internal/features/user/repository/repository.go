package repository

import (
	"context"
	"errors"

	"twa-games-backend/internal/features/user/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// Upsert inserts or fully replaces the row for user.TelegramID. Columns
	// not carried by the call (is_pro, created_at) revert to their defaults.
	Upsert(ctx context.Context, user *models.User) error

	// SetPro flips the pro flag. A missing user is a no-op.
	SetPro(ctx context.Context, id int64, pro bool) error

	CountStats(ctx context.Context) (*models.UserStats, error)
}
