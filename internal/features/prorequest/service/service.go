package service

import (
	"context"
	"errors"

	"twa-games-backend/internal/features/prorequest/models"
	"twa-games-backend/internal/features/prorequest/repository"
)

var (
	ErrAlreadyPending  = errors.New("pro request already pending")
	ErrRequestNotFound = errors.New("pro request not found")
)

type ProRequestService interface {
	// Request creates a pending pro request unless the user already has one.
	// Returns ErrAlreadyPending in that case.
	Request(ctx context.Context, userID int64) error

	HasPending(ctx context.Context, userID int64) (bool, error)

	ListPending(ctx context.Context, limit int) ([]models.PendingRequest, error)

	// Resolve settles a request and returns the linked user ID.
	Resolve(ctx context.Context, requestID int64, approved bool) (int64, error)
}

type proRequestService struct {
	repo repository.ProRequestRepository
}

func NewProRequestService(repo repository.ProRequestRepository) ProRequestService {
	return &proRequestService{repo: repo}
}

// Request is a check-then-act: two near-simultaneous calls can both pass the
// pending check. Accepted as a low-consequence race.
func (s *proRequestService) Request(ctx context.Context, userID int64) error {
	pending, err := s.repo.HasPending(ctx, userID)
	if err != nil {
		return err
	}
	if pending {
		return ErrAlreadyPending
	}

	return s.repo.Create(ctx, userID)
}

func (s *proRequestService) HasPending(ctx context.Context, userID int64) (bool, error) {
	return s.repo.HasPending(ctx, userID)
}

func (s *proRequestService) ListPending(ctx context.Context, limit int) ([]models.PendingRequest, error) {
	return s.repo.ListPending(ctx, limit)
}

func (s *proRequestService) Resolve(ctx context.Context, requestID int64, approved bool) (int64, error) {
	userID, err := s.repo.Resolve(ctx, requestID, approved)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return 0, ErrRequestNotFound
		}
		return 0, err
	}
	return userID, nil
}
