package sudoku

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSolver(seed int64) *Solver {
	return NewSolver(rand.New(rand.NewSource(seed)))
}

// uniquePuzzle blanks four cells of the canonical grid, each forced by
// its own row, so the completion is unique and equals solvedGrid().
func uniquePuzzle() Grid {
	grid := solvedGrid()
	grid[0][0] = 0
	grid[3][4] = 0
	grid[6][8] = 0
	grid[8][2] = 0

	return grid
}

// twoSolutionPuzzle blanks a swappable rectangle of the canonical grid:
// (3,5)=1, (3,8)=3, (4,5)=3, (4,8)=1 can be completed either way, so
// exactly two solutions exist.
func twoSolutionPuzzle() Grid {
	grid := solvedGrid()
	grid[3][5] = 0
	grid[3][8] = 0
	grid[4][5] = 0
	grid[4][8] = 0

	return grid
}

func TestSolver_Solve(t *testing.T) {
	t.Run("An already solved grid is reported solved and left unchanged", func(t *testing.T) {
		// Given: the canonical complete grid
		grid := solvedGrid()

		// When: solving it deterministically
		ok := newTestSolver(1).Solve(&grid)

		// Then: it succeeds without touching a single cell
		require.True(t, ok)
		assert.Equal(t, solvedGrid(), grid)
	})

	t.Run("A puzzle with a unique completion solves to it", func(t *testing.T) {
		grid := uniquePuzzle()

		ok := newTestSolver(1).Solve(&grid)

		require.True(t, ok)
		assert.Equal(t, solvedGrid(), grid)
	})

	t.Run("An unsatisfiable grid reports false and is restored", func(t *testing.T) {
		// Given: row 0 needs a 9 at (0,8), but column 8 already has one
		var grid Grid
		for col := 0; col < 8; col++ {
			grid[0][col] = uint8(col + 1)
		}
		grid[1][8] = 9
		original := grid

		// When: solving
		ok := newTestSolver(1).Solve(&grid)

		// Then: failure, with every tried cell reset to zero
		assert.False(t, ok)
		assert.Equal(t, original, grid)
	})
}

func TestSolver_SolveRandom(t *testing.T) {
	t.Run("An empty grid fills into a complete valid grid", func(t *testing.T) {
		var grid Grid

		ok := newTestSolver(42).SolveRandom(&grid)

		require.True(t, ok)
		assert.True(t, grid.IsComplete())
		assert.True(t, grid.IsValid())
	})

	t.Run("The same seed reproduces the same grid", func(t *testing.T) {
		var first, second Grid

		require.True(t, newTestSolver(7).SolveRandom(&first))
		require.True(t, newTestSolver(7).SolveRandom(&second))

		assert.Equal(t, first, second)
	})

	t.Run("Different seeds produce different grids", func(t *testing.T) {
		var first, second Grid

		require.True(t, newTestSolver(1).SolveRandom(&first))
		require.True(t, newTestSolver(2).SolveRandom(&second))

		assert.NotEqual(t, first, second)
	})
}

func TestSolver_CountSolutions(t *testing.T) {
	solver := newTestSolver(1)

	t.Run("A unique puzzle counts exactly one", func(t *testing.T) {
		grid := uniquePuzzle()

		assert.Equal(t, 1, solver.CountSolutions(&grid, 2))
	})

	t.Run("An ambiguous puzzle counts two", func(t *testing.T) {
		grid := twoSolutionPuzzle()

		assert.Equal(t, 2, solver.CountSolutions(&grid, 3))
	})

	t.Run("The limit cuts enumeration short", func(t *testing.T) {
		grid := twoSolutionPuzzle()

		assert.Equal(t, 1, solver.CountSolutions(&grid, 1))
		assert.Equal(t, 2, solver.CountSolutions(&grid, 2))
	})

	t.Run("Counting never modifies the caller's grid", func(t *testing.T) {
		grid := twoSolutionPuzzle()
		original := grid

		_ = solver.CountSolutions(&grid, 2)

		assert.Equal(t, original, grid)
	})

	t.Run("A non-positive limit counts nothing", func(t *testing.T) {
		grid := uniquePuzzle()

		assert.Equal(t, 0, solver.CountSolutions(&grid, 0))
	})
}
