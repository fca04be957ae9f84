package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "modernc.org/sqlite"

	"twa-games-backend/internal/features/game/models"
	"twa-games-backend/internal/features/game/repository"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) repository.GameRepository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (creator_id, game_type, title, share_link, questions, is_pro)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		game.CreatorID, game.GameType, game.Title, game.ShareLink, game.Questions, game.IsPro)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrShareLinkConflict
		}
		return fmt.Errorf("failed to create game: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		game.ID = id
	}

	return nil
}

func (r *sqliteRepository) ListByCreator(ctx context.Context, creatorID int64) ([]models.Game, error) {
	query := `
		SELECT id, creator_id, game_type, COALESCE(title, ''), share_link, questions, is_pro, plays, created_at
		FROM games
		WHERE creator_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var game models.Game
		if err := rows.Scan(
			&game.ID, &game.CreatorID, &game.GameType, &game.Title,
			&game.ShareLink, &game.Questions, &game.IsPro, &game.Plays, &game.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

func (r *sqliteRepository) GetByShareLink(ctx context.Context, shareLink string) (*models.Game, error) {
	query := `
		SELECT id, creator_id, game_type, COALESCE(title, ''), share_link, questions, is_pro, plays, created_at
		FROM games
		WHERE share_link = ?
	`

	var game models.Game
	err := r.db.QueryRowContext(ctx, query, shareLink).Scan(
		&game.ID, &game.CreatorID, &game.GameType, &game.Title,
		&game.ShareLink, &game.Questions, &game.IsPro, &game.Plays, &game.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return &game, nil
}

func (r *sqliteRepository) DeleteByShareLink(ctx context.Context, shareLink string) error {
	query := `DELETE FROM games WHERE share_link = ?`

	if _, err := r.db.ExecContext(ctx, query, shareLink); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

func (r *sqliteRepository) IncrementPlays(ctx context.Context, shareLink string) error {
	query := `UPDATE games SET plays = plays + 1 WHERE share_link = ?`

	result, err := r.db.ExecContext(ctx, query, shareLink)
	if err != nil {
		return fmt.Errorf("failed to increment plays: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to increment plays: %w", err)
	}
	if affected == 0 {
		return repository.ErrGameNotFound
	}

	return nil
}

func (r *sqliteRepository) CountStats(ctx context.Context) (*models.GameStats, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(plays), 0) FROM games`

	var stats models.GameStats
	if err := r.db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.TotalPlays); err != nil {
		return nil, fmt.Errorf("failed to count games: %w", err)
	}

	return &stats, nil
}

// isUniqueViolation reports whether err is SQLITE_CONSTRAINT_UNIQUE (2067).
func isUniqueViolation(err error) bool {
	var se *sqlite3.Error
	if errors.As(err, &se) {
		return se.Code() == 2067
	}
	return false
}
