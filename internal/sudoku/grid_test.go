package sudoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solvedGrid returns a canonical complete valid grid used across the
// package tests.
func solvedGrid() Grid {
	return Grid{
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
}

func TestGrid_IsAllowed(t *testing.T) {
	t.Run("Zero is always allowed", func(t *testing.T) {
		// Given: a complete grid
		grid := solvedGrid()

		// When/Then: placing zero anywhere is allowed
		assert.True(t, grid.IsAllowed(0, 0, 0))
		assert.True(t, grid.IsAllowed(8, 8, 0))
	})

	t.Run("A placed value does not conflict with itself", func(t *testing.T) {
		// Given: a complete grid with 5 at (0,0)
		grid := solvedGrid()

		// When: re-checking the value already sitting in the cell
		allowed := grid.IsAllowed(0, 0, 5)

		// Then: the cell itself is ignored
		assert.True(t, allowed)
	})

	t.Run("Row duplicate is rejected", func(t *testing.T) {
		var grid Grid
		grid[4][1] = 7

		// Then: 7 cannot go anywhere else in row 4
		assert.False(t, grid.IsAllowed(4, 8, 7))
	})

	t.Run("Column duplicate is rejected", func(t *testing.T) {
		var grid Grid
		grid[1][6] = 3

		assert.False(t, grid.IsAllowed(8, 6, 3))
	})

	t.Run("Box duplicate is rejected", func(t *testing.T) {
		var grid Grid
		grid[0][0] = 9

		// Then: 9 cannot go into another cell of the top-left box
		assert.False(t, grid.IsAllowed(2, 2, 9))
	})

	t.Run("Unrelated cell is allowed", func(t *testing.T) {
		var grid Grid
		grid[0][0] = 9

		assert.True(t, grid.IsAllowed(4, 4, 9))
	})
}

func TestGrid_PeerValues(t *testing.T) {
	grid := solvedGrid()

	t.Run("RowValues returns the whole row", func(t *testing.T) {
		assert.Equal(t, [GridSize]uint8{5, 3, 4, 6, 7, 8, 9, 1, 2}, grid.RowValues(0))
	})

	t.Run("ColValues returns the whole column", func(t *testing.T) {
		assert.Equal(t, [GridSize]uint8{5, 6, 1, 8, 4, 7, 9, 2, 3}, grid.ColValues(0))
	})

	t.Run("BoxValues returns the 3x3 box in row-major order", func(t *testing.T) {
		// The center box, addressed from any of its cells.
		expected := [GridSize]uint8{7, 6, 1, 8, 5, 3, 9, 2, 4}

		assert.Equal(t, expected, grid.BoxValues(4, 4))
		assert.Equal(t, expected, grid.BoxValues(3, 5))
	})
}

func TestGrid_FindEmpty(t *testing.T) {
	t.Run("Complete grid has no empty cell", func(t *testing.T) {
		grid := solvedGrid()

		_, _, found := grid.FindEmpty()

		assert.False(t, found)
	})

	t.Run("First empty cell is found in row-major order", func(t *testing.T) {
		grid := solvedGrid()
		grid[2][7] = 0
		grid[5][1] = 0

		row, col, found := grid.FindEmpty()

		require.True(t, found)
		assert.Equal(t, 2, row)
		assert.Equal(t, 7, col)
	})
}

func TestGrid_IsValidAndComplete(t *testing.T) {
	t.Run("Canonical grid is complete and valid", func(t *testing.T) {
		grid := solvedGrid()

		assert.True(t, grid.IsComplete())
		assert.True(t, grid.IsValid())
	})

	t.Run("A duplicate breaks validity", func(t *testing.T) {
		grid := solvedGrid()
		grid[0][1] = 5 // duplicates the 5 at (0,0)

		assert.False(t, grid.IsValid())
	})

	t.Run("A partially filled grid can be valid", func(t *testing.T) {
		grid := solvedGrid()
		grid[0][0] = 0

		assert.False(t, grid.IsComplete())
		assert.True(t, grid.IsValid())
	})
}

func TestInBounds(t *testing.T) {
	assert.True(t, InBounds(0, 0))
	assert.True(t, InBounds(8, 8))
	assert.False(t, InBounds(-1, 0))
	assert.False(t, InBounds(0, 9))
	assert.False(t, InBounds(9, 0))
}
