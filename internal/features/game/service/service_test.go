package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twa-games-backend/internal/features/game/models"
	gamesqlite "twa-games-backend/internal/features/game/repository/sqlite"
	"twa-games-backend/internal/platform/db"
)

func newTestService(t *testing.T) (GameService, *sql.DB) {
	t.Helper()

	sqlDB, err := db.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewGameService(gamesqlite.NewSQLiteRepository(sqlDB)), sqlDB
}

func TestCreateGame_TokensAreUnique(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		link, err := svc.CreateGame(ctx, 42, "quiz", []models.Question{{Q: "2+2?", A: "4"}})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(link, "game_"))
		assert.False(t, seen[link], "share link %s returned twice", link)
		seen[link] = true
	}
}

func TestCreateGame_EmptyQuestionsPermitted(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	link, err := svc.CreateGame(ctx, 42, "quiz", nil)
	require.NoError(t, err)

	games, err := svc.ListGames(ctx, 42)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, link, games[0].ShareLink)
	assert.Empty(t, games[0].Questions)
	assert.NotNil(t, games[0].Questions)
}

func TestListGames_DecodesQuestions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.CreateGame(ctx, 42, "quiz", []models.Question{
		{Q: "2+2?", A: "4"},
		{Q: "capital of France?", A: "Paris"},
	})
	require.NoError(t, err)

	games, err := svc.ListGames(ctx, 42)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, []models.Question{
		{Q: "2+2?", A: "4"},
		{Q: "capital of France?", A: "Paris"},
	}, games[0].Questions)
	assert.Equal(t, int64(0), games[0].Plays)
}

func TestDeleteGame_RemovesAndStaysIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	link, err := svc.CreateGame(ctx, 42, "quiz", []models.Question{{Q: "q", A: "a"}})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGame(ctx, link))

	games, err := svc.ListGames(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, games)

	assert.NoError(t, svc.DeleteGame(ctx, link))
}

func TestRecordPlay(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	link, err := svc.CreateGame(ctx, 42, "quiz", []models.Question{{Q: "q", A: "a"}})
	require.NoError(t, err)

	game, err := svc.RecordPlay(ctx, link)
	require.NoError(t, err)
	assert.Equal(t, int64(1), game.Plays)

	game, err = svc.RecordPlay(ctx, link)
	require.NoError(t, err)
	assert.Equal(t, int64(2), game.Plays)

	_, err = svc.RecordPlay(ctx, "game_missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
}
