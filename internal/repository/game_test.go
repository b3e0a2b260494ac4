package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/testing/suite"
)

func TestGameRepository_SaveGame(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a game with one move played
	game := entity.NewGame().ApplyMove(4, 4)

	// When: SaveGame is called
	err := gameRepo.SaveGame(ctx, "room-1", "game-1", game)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestGameRepository_GetGame(t *testing.T) {
	t.Run("GetGame_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: an archived game with one move played
		game := entity.NewGame().ApplyMove(4, 4)

		err := gameRepo.SaveGame(ctx, "room-1", "game-1", game)
		require.NoError(t, err)

		// When: GetGame is called with the same keys
		retrievedGame, err := gameRepo.GetGame(ctx, "room-1", "game-1")

		// Then: the retrieved game should match the saved game
		require.NoError(t, err)
		require.Equal(t, game.Boards, retrievedGame.Boards)
		require.Equal(t, game.CurrentPlayer, retrievedGame.CurrentPlayer)
		require.Equal(t, game.HistoryIndex, retrievedGame.HistoryIndex)
	})

	t.Run("GetGame_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: GetGame is called with an unknown game id
		retrievedGame, err := gameRepo.GetGame(ctx, "room-1", "missing")

		// Then: an ErrGameNotFound error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrGameNotFound, err)
		assert.Nil(t, retrievedGame)
	})
}
