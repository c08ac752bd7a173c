package sudoku

import (
	"math/rand"
	"time"
)

// Signal tells the search whether to keep enumerating completions. An
// OnSolution callback returns Stop to halt the whole search immediately
// and Continue to keep looking for further completions.
type Signal int

const (
	Continue Signal = iota
	Stop
)

// Solver is a recursive backtracking solver over a Grid. With the fixed
// ascending candidate order the search is fully deterministic, which is
// what solution counting relies on; the randomized order exists only to
// produce varied solved grids and is never used for counting.
type Solver struct {
	rng *rand.Rand
}

// NewSolver returns a solver that uses rng to shuffle candidates. A nil
// rng falls back to a clock-seeded source.
func NewSolver(rng *rand.Rand) *Solver {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // puzzle shuffling, not security
	}

	return &Solver{rng: rng}
}

// Solve fills grid in place with the first completion found in
// deterministic order (ascending digits, row-major cells). It returns
// false when no completion exists; the grid is then back in its original
// state.
func (that *Solver) Solve(grid *Grid) bool {
	return that.search(grid, false, nil) == Stop
}

// SolveRandom is Solve with a uniformly shuffled candidate order per
// cell. Running it on an empty grid yields a random full solution.
func (that *Solver) SolveRandom(grid *Grid) bool {
	return that.search(grid, true, nil) == Stop
}

// CountSolutions counts the completions of grid in deterministic order,
// stopping as soon as limit is reached. The caller's grid is never
// modified; the search runs on a private copy. Uniqueness checks call
// this with limit 2 since an exact count above one is never needed.
func (that *Solver) CountSolutions(grid *Grid, limit int) int {
	if limit <= 0 {
		return 0
	}

	work := *grid
	count := 0

	that.search(&work, false, func(*Grid) Signal {
		count++
		if count >= limit {
			return Stop
		}

		return Continue
	})

	return count
}

// search is the backtracking core. A fully filled grid is reported to
// onSolution and its signal propagated up the stack; without a callback a
// full grid means "first solution found" and counts as Stop. When a
// cell's candidates are exhausted it is reset to zero before unwinding,
// restoring the precondition for the caller's own backtracking.
func (that *Solver) search(grid *Grid, randomize bool, onSolution func(*Grid) Signal) Signal {
	row, col, ok := grid.FindEmpty()
	if !ok {
		if onSolution != nil {
			return onSolution(grid)
		}

		return Stop
	}

	digits := [GridSize]uint8{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if randomize {
		that.rng.Shuffle(GridSize, func(i, j int) { digits[i], digits[j] = digits[j], digits[i] })
	}

	for _, value := range digits {
		if !grid.IsAllowed(row, col, value) {
			continue
		}

		grid[row][col] = value
		if that.search(grid, randomize, onSolution) == Stop {
			return Stop
		}
	}

	grid[row][col] = 0

	return Continue
}
