package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/sudoku-backend/internal/entity"
	"github.com/rocketscienceinc/sudoku-backend/internal/repository"
	"github.com/rocketscienceinc/sudoku-backend/internal/sudoku"
	"github.com/rocketscienceinc/sudoku-backend/testing/suite"
)

func testGame(id string) *entity.Game {
	solution := sudoku.Grid{
		{5, 3, 4, 6, 7, 8, 9, 1, 2},
		{6, 7, 2, 1, 9, 5, 3, 4, 8},
		{1, 9, 8, 3, 4, 2, 5, 6, 7},
		{8, 5, 9, 7, 6, 1, 4, 2, 3},
		{4, 2, 6, 8, 5, 3, 7, 9, 1},
		{7, 1, 3, 9, 2, 4, 8, 5, 6},
		{9, 6, 1, 5, 3, 7, 2, 8, 4},
		{2, 8, 7, 4, 1, 9, 6, 3, 5},
		{3, 4, 5, 2, 8, 6, 1, 7, 9},
	}

	puzzle := solution
	puzzle[0][0] = 0
	puzzle[4][4] = 0

	return entity.NewGame(id, "player-1", sudoku.DifficultyMedium, puzzle, solution)
}

func TestGameRepository(t *testing.T) {
	ctx, s := suite.New(t)

	repo := repository.NewGameRepository(s.Storage)

	t.Run("Stores and reads back a game with play state", func(t *testing.T) {
		// Given: a game with progress and notes
		game := testGame("g-100")
		game.SetValue(0, 0, 5)
		game.ToggleNote(4, 4, 7)

		// When: persisting and reloading it
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		loaded, err := repo.GetByID(ctx, "g-100")
		require.NoError(t, err)

		// Then: every field survives the round trip
		assert.Equal(t, game.ID, loaded.ID)
		assert.Equal(t, game.PlayerID, loaded.PlayerID)
		assert.Equal(t, game.Difficulty, loaded.Difficulty)
		assert.Equal(t, game.Puzzle, loaded.Puzzle)
		assert.Equal(t, game.Board, loaded.Board)
		assert.Equal(t, game.Notes, loaded.Notes)
		assert.Equal(t, game.Status, loaded.Status)
	})

	t.Run("Updates overwrite the stored game", func(t *testing.T) {
		game := testGame("g-101")
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		game.SetValue(4, 4, 5)
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		loaded, err := repo.GetByID(ctx, "g-101")
		require.NoError(t, err)
		assert.Equal(t, uint8(5), loaded.Board[4][4])
	})

	t.Run("Unknown ID yields ErrGameNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrGameNotFound)
	})

	t.Run("Delete removes the game", func(t *testing.T) {
		game := testGame("g-102")
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		require.NoError(t, repo.DeleteByID(ctx, "g-102"))

		_, err := repo.GetByID(ctx, "g-102")
		assert.ErrorIs(t, err, repository.ErrGameNotFound)
	})

	t.Run("Deleting a missing game is not an error", func(t *testing.T) {
		assert.NoError(t, repo.DeleteByID(ctx, "never-existed"))
	})
}
