package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/sudoku-backend/internal/entity"
	"github.com/rocketscienceinc/sudoku-backend/internal/repository"
	"github.com/rocketscienceinc/sudoku-backend/testing/suite"
)

func TestPlayerRepository(t *testing.T) {
	ctx, s := suite.New(t)

	repo := repository.NewPlayerRepository(s.Storage)

	t.Run("Stores and reads back a player", func(t *testing.T) {
		player := &entity.Player{ID: "p-100", GameID: "g-100"}

		require.NoError(t, repo.CreateOrUpdate(ctx, player))

		loaded, err := repo.GetByID(ctx, "p-100")
		require.NoError(t, err)
		assert.Equal(t, player, loaded)
	})

	t.Run("Updates overwrite the stored player", func(t *testing.T) {
		player := &entity.Player{ID: "p-101", GameID: "g-1"}
		require.NoError(t, repo.CreateOrUpdate(ctx, player))

		player.GameID = ""
		require.NoError(t, repo.CreateOrUpdate(ctx, player))

		loaded, err := repo.GetByID(ctx, "p-101")
		require.NoError(t, err)
		assert.Empty(t, loaded.GameID)
	})

	t.Run("Unknown ID yields ErrPlayerNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrPlayerNotFound)
	})
}
