package sudoku

import (
	"errors"
	"math/rand"
	"time"
)

// Difficulty selectors understood by the generator. Anything else is
// treated as DifficultyMedium.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyExpert = "expert"
)

// maxAttempts bounds how many times Generate may rebuild a puzzle from
// scratch before giving up.
const maxAttempts = 8

// ErrGenerationExhausted is returned when every attempt produced an
// invalid or non-unique puzzle. There is no usable pair to fall back to,
// so callers must surface the failure instead of presenting a board.
var ErrGenerationExhausted = errors.New("puzzle generation attempts exhausted")

// Generator carves puzzles with exactly one solution out of randomly
// solved grids.
type Generator struct {
	solver *Solver
	rng    *rand.Rand
}

// NewGenerator returns a generator driven by rng; nil falls back to a
// clock-seeded source. The same source drives the randomized solve and
// the carve order, so a fixed seed reproduces the exact same puzzle.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // puzzle shuffling, not security
	}

	return &Generator{
		solver: NewSolver(rng),
		rng:    rng,
	}
}

// NormalizeDifficulty maps unknown selectors to DifficultyMedium so every
// layer above the generator stores one of the four canonical labels.
func NormalizeDifficulty(difficulty string) string {
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert:
		return difficulty
	default:
		return DifficultyMedium
	}
}

// removalTarget maps a difficulty to the number of cells the generator
// tries to blank. Difficulty is purely a removal budget; it promises
// nothing about which human techniques the puzzle needs.
func removalTarget(difficulty string) int {
	var target int

	switch NormalizeDifficulty(difficulty) {
	case DifficultyEasy:
		target = 45
	case DifficultyHard:
		target = 62
	case DifficultyExpert:
		target = 70
	default:
		target = 55
	}

	if target > GridSize*GridSize {
		target = GridSize * GridSize
	}

	return target
}

// Generate produces a {puzzle, solution} pair for the given difficulty.
// The solution is a complete valid grid, the puzzle keeps a subset of its
// cells as givens, and re-solving the puzzle yields exactly that one
// solution. Generate fails only after maxAttempts rebuilds.
func (that *Generator) Generate(difficulty string) (Grid, Grid, error) {
	target := removalTarget(difficulty)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		puzzle, solution, ok := that.attempt(target)
		if ok {
			return puzzle, solution, nil
		}
	}

	return Grid{}, Grid{}, ErrGenerationExhausted
}

// attempt builds one candidate pair: solve an empty grid in random
// order, then blank cells in a shuffled order, keeping a removal only
// while the puzzle still has exactly one completion. A cell that stayed
// removed is never put back within the attempt.
func (that *Generator) attempt(target int) (Grid, Grid, bool) {
	var solution Grid
	if !that.solver.SolveRandom(&solution) {
		// An empty grid is always satisfiable, but a solver failure here
		// must abandon the attempt rather than corrupt the pair.
		return Grid{}, Grid{}, false
	}

	puzzle := solution
	removed := 0

	for _, position := range that.rng.Perm(GridSize * GridSize) {
		if removed >= target {
			break
		}

		row, col := position/GridSize, position%GridSize

		previous := puzzle[row][col]
		puzzle[row][col] = 0

		if that.solver.CountSolutions(&puzzle, 2) == 1 {
			removed++
			continue
		}

		puzzle[row][col] = previous
	}

	resolved, ok := that.validate(&puzzle)
	if !ok {
		return Grid{}, Grid{}, false
	}

	// Keep the original solution reference when the deterministic
	// re-solve agrees with it; adopt the fresh one otherwise.
	if resolved != solution {
		solution = resolved
	}

	return puzzle, solution, true
}

// validate re-solves the carved puzzle from scratch and confirms that a
// completion exists, that it is a complete valid grid, and that it is the
// only one.
func (that *Generator) validate(puzzle *Grid) (Grid, bool) {
	work := *puzzle
	if !that.solver.Solve(&work) {
		return Grid{}, false
	}

	if !work.IsComplete() || !work.IsValid() {
		return Grid{}, false
	}

	if that.solver.CountSolutions(puzzle, 2) != 1 {
		return Grid{}, false
	}

	return work, true
}
