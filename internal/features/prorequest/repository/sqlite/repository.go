package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"twa-games-backend/internal/features/prorequest/models"
	"twa-games-backend/internal/features/prorequest/repository"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) repository.ProRequestRepository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Create(ctx context.Context, userID int64) error {
	query := `INSERT INTO pro_requests (user_id) VALUES (?)`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to create pro request: %w", err)
	}

	return nil
}

func (r *sqliteRepository) HasPending(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT COUNT(*) FROM pro_requests WHERE user_id = ? AND status = ?`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, userID, models.StatusPending).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check pending request: %w", err)
	}

	return count > 0, nil
}

func (r *sqliteRepository) ListPending(ctx context.Context, limit int) ([]models.PendingRequest, error) {
	query := `
		SELECT pr.id, pr.user_id, u.full_name, pr.requested_at
		FROM pro_requests pr
		JOIN users u ON pr.user_id = u.telegram_id
		WHERE pr.status = ?
		ORDER BY pr.requested_at DESC, pr.id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, models.StatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	defer rows.Close()

	var requests []models.PendingRequest
	for rows.Next() {
		var req models.PendingRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.FullName, &req.RequestedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pending request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func (r *sqliteRepository) Resolve(ctx context.Context, requestID int64, approved bool) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRowContext(ctx,
		`SELECT user_id FROM pro_requests WHERE id = ?`, requestID).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repository.ErrRequestNotFound
		}
		return 0, fmt.Errorf("failed to get pro request: %w", err)
	}

	if approved {
		_, err = tx.ExecContext(ctx,
			`UPDATE pro_requests SET status = ?, approved_at = ? WHERE id = ?`,
			models.StatusApproved, time.Now(), requestID)
		if err != nil {
			return 0, fmt.Errorf("failed to approve pro request: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET is_pro = 1 WHERE telegram_id = ?`, userID)
		if err != nil {
			return 0, fmt.Errorf("failed to set user pro: %w", err)
		}
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE pro_requests SET status = ? WHERE id = ?`,
			models.StatusRejected, requestID)
		if err != nil {
			return 0, fmt.Errorf("failed to reject pro request: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return userID, nil
}
