package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twa-games-backend/internal/features/game/models"
	"twa-games-backend/internal/features/game/repository"
	"twa-games-backend/internal/platform/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	sqlDB, err := db.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return sqlDB
}

func newGame(creatorID int64, shareLink string) *models.Game {
	return &models.Game{
		CreatorID: creatorID,
		GameType:  "quiz",
		ShareLink: shareLink,
		Questions: `[{"q":"2+2?","a":"4"}]`,
	}
}

func TestCreate_AssignsID(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(openTestDB(t))

	game := newGame(42, "game_aaaa0001")
	require.NoError(t, repo.Create(ctx, game))
	assert.NotZero(t, game.ID)

	stored, err := repo.GetByShareLink(ctx, "game_aaaa0001")
	require.NoError(t, err)
	assert.Equal(t, game.ID, stored.ID)
	assert.Equal(t, int64(0), stored.Plays)
}

func TestCreate_ShareLinkConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(openTestDB(t))

	require.NoError(t, repo.Create(ctx, newGame(42, "game_dup")))

	err := repo.Create(ctx, newGame(43, "game_dup"))
	assert.ErrorIs(t, err, repository.ErrShareLinkConflict)
}

func TestListByCreator_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(openTestDB(t))

	require.NoError(t, repo.Create(ctx, newGame(42, "game_first")))
	require.NoError(t, repo.Create(ctx, newGame(42, "game_second")))
	require.NoError(t, repo.Create(ctx, newGame(99, "game_other")))

	games, err := repo.ListByCreator(ctx, 42)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "game_second", games[0].ShareLink)
	assert.Equal(t, "game_first", games[1].ShareLink)
}

func TestDeleteByShareLink_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(openTestDB(t))

	require.NoError(t, repo.Create(ctx, newGame(42, "game_gone")))
	require.NoError(t, repo.DeleteByShareLink(ctx, "game_gone"))

	games, err := repo.ListByCreator(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, games)

	// Unknown token is a silent no-op.
	assert.NoError(t, repo.DeleteByShareLink(ctx, "game_gone"))
	assert.NoError(t, repo.DeleteByShareLink(ctx, "never_existed"))
}

func TestIncrementPlays(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(openTestDB(t))

	require.NoError(t, repo.Create(ctx, newGame(42, "game_play")))

	require.NoError(t, repo.IncrementPlays(ctx, "game_play"))
	require.NoError(t, repo.IncrementPlays(ctx, "game_play"))

	game, err := repo.GetByShareLink(ctx, "game_play")
	require.NoError(t, err)
	assert.Equal(t, int64(2), game.Plays)

	err = repo.IncrementPlays(ctx, "unknown")
	assert.ErrorIs(t, err, repository.ErrGameNotFound)
}

func TestCountStats(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(openTestDB(t))

	require.NoError(t, repo.Create(ctx, newGame(42, "game_one")))
	require.NoError(t, repo.Create(ctx, newGame(42, "game_two")))
	require.NoError(t, repo.IncrementPlays(ctx, "game_one"))
	require.NoError(t, repo.IncrementPlays(ctx, "game_two"))
	require.NoError(t, repo.IncrementPlays(ctx, "game_two"))

	stats, err := repo.CountStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(3), stats.TotalPlays)
}
