package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/sudoku-backend/internal/repository"
	"github.com/rocketscienceinc/sudoku-backend/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/sudoku-backend/internal/sudoku"
)

func newArchive(t *testing.T) (context.Context, repository.ArchiveRepository) {
	t.Helper()

	ctx := context.Background()

	storage, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = storage.Connection.Close()
	})

	require.NoError(t, storage.Init(ctx))

	return ctx, repository.NewArchiveRepository(storage.Connection)
}

func archivedPair() (sudoku.Grid, sudoku.Grid) {
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
	puzzle[8][8] = 0

	return puzzle, solution
}

func TestArchiveRepository(t *testing.T) {
	t.Run("Save assigns an ID and a timestamp", func(t *testing.T) {
		ctx, archive := newArchive(t)
		puzzle, solution := archivedPair()

		record := &repository.PuzzleRecord{
			Difficulty: sudoku.DifficultyMedium,
			Puzzle:     puzzle,
			Solution:   solution,
		}

		require.NoError(t, archive.Save(ctx, record))

		assert.NotZero(t, record.ID)
		assert.NotZero(t, record.CreatedAt)
	})

	t.Run("Grids survive the round trip", func(t *testing.T) {
		ctx, archive := newArchive(t)
		puzzle, solution := archivedPair()

		record := &repository.PuzzleRecord{
			Difficulty: sudoku.DifficultyHard,
			Puzzle:     puzzle,
			Solution:   solution,
		}
		require.NoError(t, archive.Save(ctx, record))

		records, err := archive.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, sudoku.DifficultyHard, records[0].Difficulty)
		assert.Equal(t, puzzle, records[0].Puzzle)
		assert.Equal(t, solution, records[0].Solution)
	})

	t.Run("ListRecent orders newest first and honors the limit", func(t *testing.T) {
		ctx, archive := newArchive(t)
		puzzle, solution := archivedPair()

		// Given: three inserts with increasing timestamps
		for i := int64(1); i <= 3; i++ {
			record := &repository.PuzzleRecord{
				Difficulty: sudoku.DifficultyEasy,
				Puzzle:     puzzle,
				Solution:   solution,
				CreatedAt:  1000 + i,
			}
			require.NoError(t, archive.Save(ctx, record))
		}

		// When: asking for the two most recent
		records, err := archive.ListRecent(ctx, 2)
		require.NoError(t, err)

		// Then: newest first, limit applied
		require.Len(t, records, 2)
		assert.Equal(t, int64(1003), records[0].CreatedAt)
		assert.Equal(t, int64(1002), records[1].CreatedAt)
	})

	t.Run("An empty archive lists nothing", func(t *testing.T) {
		ctx, archive := newArchive(t)

		records, err := archive.ListRecent(ctx, 5)

		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
