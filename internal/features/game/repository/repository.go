package repository

import (
	"context"
	"errors"

	"twa-games-backend/internal/features/game/models"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrShareLinkConflict = errors.New("share link already exists")
)

type GameRepository interface {
	// Create persists a new game with play count 0. Returns
	// ErrShareLinkConflict when the share link collides with an existing row.
	Create(ctx context.Context, game *models.Game) error

	// ListByCreator returns the creator's games, newest first.
	ListByCreator(ctx context.Context, creatorID int64) ([]models.Game, error)

	GetByShareLink(ctx context.Context, shareLink string) (*models.Game, error)

	// DeleteByShareLink removes at most one row. Unknown links are a no-op.
	DeleteByShareLink(ctx context.Context, shareLink string) error

	// IncrementPlays bumps the play counter. Unknown links return
	// ErrGameNotFound.
	IncrementPlays(ctx context.Context, shareLink string) error

	CountStats(ctx context.Context) (*models.GameStats, error)
}
