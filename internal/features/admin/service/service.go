package service

import (
	"context"
	"errors"

	"twa-games-backend/internal/common/logger"
	gamemodels "twa-games-backend/internal/features/game/models"
	gameservice "twa-games-backend/internal/features/game/service"
	promodels "twa-games-backend/internal/features/prorequest/models"
	proservice "twa-games-backend/internal/features/prorequest/service"
	usermodels "twa-games-backend/internal/features/user/models"
	userservice "twa-games-backend/internal/features/user/service"
)

var ErrPermissionDenied = errors.New("permission denied")

// pendingLimit bounds the admin pending-requests view.
const pendingLimit = 10

// Notifier delivers best-effort messages back through the conversational
// channel. Failures are logged and dropped, never surfaced.
type Notifier interface {
	NotifyProApproved(ctx context.Context, userID int64) error
}

type AdminService interface {
	IsAdmin(callerID int64) bool

	UserStats(ctx context.Context, callerID int64) (*usermodels.UserStats, error)
	GameStats(ctx context.Context, callerID int64) (*gamemodels.GameStats, error)
	PendingRequests(ctx context.Context, callerID int64) ([]promodels.PendingRequest, error)

	// Approve resolves the request, flips the user's pro flag and fires the
	// approval notification without waiting on delivery.
	Approve(ctx context.Context, callerID, requestID int64) error
	Reject(ctx context.Context, callerID, requestID int64) error
}

type adminService struct {
	admins   map[int64]struct{}
	users    userservice.UserService
	games    gameservice.GameService
	requests proservice.ProRequestService
	notifier Notifier
}

func NewAdminService(adminIDs []int64, users userservice.UserService, games gameservice.GameService,
	requests proservice.ProRequestService, notifier Notifier) AdminService {

	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &adminService{
		admins:   admins,
		users:    users,
		games:    games,
		requests: requests,
		notifier: notifier,
	}
}

func (s *adminService) IsAdmin(callerID int64) bool {
	_, ok := s.admins[callerID]
	return ok
}

func (s *adminService) UserStats(ctx context.Context, callerID int64) (*usermodels.UserStats, error) {
	if !s.IsAdmin(callerID) {
		return nil, ErrPermissionDenied
	}
	return s.users.Stats(ctx)
}

func (s *adminService) GameStats(ctx context.Context, callerID int64) (*gamemodels.GameStats, error) {
	if !s.IsAdmin(callerID) {
		return nil, ErrPermissionDenied
	}
	return s.games.Stats(ctx)
}

func (s *adminService) PendingRequests(ctx context.Context, callerID int64) ([]promodels.PendingRequest, error) {
	if !s.IsAdmin(callerID) {
		return nil, ErrPermissionDenied
	}
	return s.requests.ListPending(ctx, pendingLimit)
}

func (s *adminService) Approve(ctx context.Context, callerID, requestID int64) error {
	if !s.IsAdmin(callerID) {
		return ErrPermissionDenied
	}

	userID, err := s.requests.Resolve(ctx, requestID, true)
	if err != nil {
		return err
	}

	if s.notifier != nil {
		// Fire-and-forget: the admin flow never blocks on delivery.
		go func(userID int64) {
			if err := s.notifier.NotifyProApproved(context.Background(), userID); err != nil {
				logger.Warn().Err(err).Int64("user_id", userID).Msg("Failed to deliver approval notification")
			}
		}(userID)
	}

	return nil
}

func (s *adminService) Reject(ctx context.Context, callerID, requestID int64) error {
	if !s.IsAdmin(callerID) {
		return ErrPermissionDenied
	}

	_, err := s.requests.Resolve(ctx, requestID, false)
	return err
}
