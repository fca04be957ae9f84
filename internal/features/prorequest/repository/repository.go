package repository

import (
	"context"
	"errors"

	"twa-games-backend/internal/features/prorequest/models"
)

var ErrRequestNotFound = errors.New("pro request not found")

type ProRequestRepository interface {
	// Create inserts a new pending request. Callers are expected to check
	// HasPending first; the check-then-act is not atomic.
	Create(ctx context.Context, userID int64) error

	HasPending(ctx context.Context, userID int64) (bool, error)

	// ListPending returns up to limit pending requests joined with the
	// requester, most recent first.
	ListPending(ctx context.Context, limit int) ([]models.PendingRequest, error)

	// Resolve marks the request approved or rejected and returns the linked
	// user ID. Approval also stamps approved_at and flips the user's pro flag
	// in the same transaction.
	Resolve(ctx context.Context, requestID int64, approved bool) (int64, error)
}
