package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"twa-games-backend/internal/features/game/models"
	"twa-games-backend/internal/features/game/repository"
)

var ErrGameNotFound = errors.New("game not found")

// createRetries bounds share-link regeneration on a UNIQUE collision.
const createRetries = 5

type GameService interface {
	// CreateGame persists a game and returns its share link.
	CreateGame(ctx context.Context, creatorID int64, gameType string, questions []models.Question) (string, error)

	// ListGames returns the creator's games with decoded questions, newest
	// first.
	ListGames(ctx context.Context, creatorID int64) ([]models.GameResponse, error)

	// DeleteGame removes a game by share link. Unknown links succeed.
	DeleteGame(ctx context.Context, shareLink string) error

	// RecordPlay increments the play counter and returns the updated game.
	RecordPlay(ctx context.Context, shareLink string) (*models.GameResponse, error)

	Stats(ctx context.Context) (*models.GameStats, error)
}

type gameService struct {
	repo repository.GameRepository
}

func NewGameService(repo repository.GameRepository) GameService {
	return &gameService{repo: repo}
}

func (s *gameService) CreateGame(ctx context.Context, creatorID int64, gameType string, questions []models.Question) (string, error) {
	encoded, err := models.EncodeQuestions(questions)
	if err != nil {
		return "", err
	}

	for attempt := 0; attempt < createRetries; attempt++ {
		game := &models.Game{
			CreatorID: creatorID,
			GameType:  gameType,
			ShareLink: newShareLink(),
			Questions: encoded,
		}

		err := s.repo.Create(ctx, game)
		if err == nil {
			return game.ShareLink, nil
		}
		if !errors.Is(err, repository.ErrShareLinkConflict) {
			return "", err
		}
	}

	return "", repository.ErrShareLinkConflict
}

func (s *gameService) ListGames(ctx context.Context, creatorID int64) ([]models.GameResponse, error) {
	games, err := s.repo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.GameResponse, 0, len(games))
	for _, game := range games {
		resp, err := toGameResponse(&game)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}

	return responses, nil
}

func (s *gameService) DeleteGame(ctx context.Context, shareLink string) error {
	return s.repo.DeleteByShareLink(ctx, shareLink)
}

func (s *gameService) RecordPlay(ctx context.Context, shareLink string) (*models.GameResponse, error) {
	if err := s.repo.IncrementPlays(ctx, shareLink); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	game, err := s.repo.GetByShareLink(ctx, shareLink)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	return toGameResponse(game)
}

func (s *gameService) Stats(ctx context.Context) (*models.GameStats, error) {
	return s.repo.CountStats(ctx)
}

func toGameResponse(game *models.Game) (*models.GameResponse, error) {
	questions, err := models.DecodeQuestions(game.Questions)
	if err != nil {
		return nil, err
	}

	return &models.GameResponse{
		ID:        game.ID,
		GameType:  game.GameType,
		ShareLink: game.ShareLink,
		Plays:     game.Plays,
		Questions: questions,
	}, nil
}

func newShareLink() string {
	return fmt.Sprintf("game_%s", uuid.New().String()[:8])
}
