package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"twa-games-backend/internal/features/user/models"
	"twa-games-backend/internal/features/user/repository"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) repository.UserRepository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT telegram_id, username, full_name, phone, language, is_pro, created_at
		FROM users
		WHERE telegram_id = ?
	`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.TelegramID, &user.Username, &user.FullName, &user.Phone,
		&user.Language, &user.IsPro, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// Upsert keeps the full-replace semantics of INSERT OR REPLACE: the omitted
// is_pro and created_at columns are reset to their schema defaults.
func (r *sqliteRepository) Upsert(ctx context.Context, user *models.User) error {
	query := `
		INSERT OR REPLACE INTO users (telegram_id, username, full_name, phone, language)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.TelegramID, user.Username, user.FullName, user.Phone, user.Language)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

func (r *sqliteRepository) SetPro(ctx context.Context, id int64, pro bool) error {
	query := `UPDATE users SET is_pro = ? WHERE telegram_id = ?`

	if _, err := r.db.ExecContext(ctx, query, pro, id); err != nil {
		return fmt.Errorf("failed to set pro flag: %w", err)
	}

	return nil
}

func (r *sqliteRepository) CountStats(ctx context.Context) (*models.UserStats, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(is_pro), 0) FROM users`

	var stats models.UserStats
	if err := r.db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Pro); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return &stats, nil
}
