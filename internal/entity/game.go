package entity

import (
	"github.com/rocketscienceinc/sudoku-backend/internal/sudoku"
)

const (
	StatusOngoing = "ongoing"
	StatusSolved  = "solved"
)

// Notes keeps the pencil marks of every cell as a 9-bit mask: bit v is
// set when digit v is noted. A fixed-size mask keeps snapshots cheap and
// avoids allocating a set per cell.
type Notes [sudoku.GridSize][sudoku.GridSize]uint16

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Hint suggests a single value for a single cell.
type Hint struct {
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Value uint8 `json:"value"`
}

// Game is one running puzzle: the immutable givens and solution plus the
// player's live board and pencil notes. Board starts equal to Puzzle and
// is the only grid that ever mutates; Puzzle and Solution are read-only
// for the lifetime of the game.
type Game struct {
	ID         string      `json:"id"`
	PlayerID   string      `json:"player_id,omitempty"`
	Difficulty string      `json:"difficulty"`
	Puzzle     sudoku.Grid `json:"puzzle"`
	Solution   sudoku.Grid `json:"solution"`
	Board      sudoku.Grid `json:"board"`
	Notes      Notes       `json:"notes"`
	Status     string      `json:"status"`
}

func NewGame(id, playerID, difficulty string, puzzle, solution sudoku.Grid) *Game {
	return &Game{
		ID:         id,
		PlayerID:   playerID,
		Difficulty: difficulty,
		Puzzle:     puzzle,
		Solution:   solution,
		Board:      puzzle,
		Status:     StatusOngoing,
	}
}

// IsGiven reports whether (row, col) is one of the puzzle's givens.
// Cells off the board count as given so that every mutation helper
// treats them as untouchable.
func (that *Game) IsGiven(row, col int) bool {
	if !sudoku.InBounds(row, col) {
		return true
	}

	return that.Puzzle[row][col] != 0
}

// SetValue writes value into the live board. Writes to givens,
// out-of-range cells or digits above nine are no-ops; zero delegates to
// ClearValue. Placing a digit wipes the cell's own notes, values and
// notes being mutually exclusive per cell.
func (that *Game) SetValue(row, col int, value uint8) {
	if that.IsGiven(row, col) || value > 9 {
		return
	}

	if value == 0 {
		that.ClearValue(row, col)
		return
	}

	that.Board[row][col] = value
	that.Notes[row][col] = 0
	that.UpdateStatus()
}

// ClearValue empties a non-given cell of the live board.
func (that *Game) ClearValue(row, col int) {
	if that.IsGiven(row, col) {
		return
	}

	that.Board[row][col] = 0
	that.Status = StatusOngoing
}

// ToggleNote flips candidate value in the cell's note set. Notes only
// exist on empty cells; toggling on a filled cell or with a digit outside
// 1..9 is a no-op.
func (that *Game) ToggleNote(row, col int, value uint8) {
	if !sudoku.InBounds(row, col) || value < 1 || value > 9 {
		return
	}

	if that.Board[row][col] != 0 {
		return
	}

	that.Notes[row][col] ^= 1 << value
}

// HasNote reports whether value is noted in the cell.
func (that *Game) HasNote(row, col int, value uint8) bool {
	if !sudoku.InBounds(row, col) || value < 1 || value > 9 {
		return false
	}

	return that.Notes[row][col]&(1<<value) != 0
}

// ClearNotesInPeers removes value from the notes of every empty cell
// sharing the row, column or box with (row, col). Whether this
// "auto-clean" runs after a placement is the caller's policy, not the
// entity's.
func (that *Game) ClearNotesInPeers(row, col int, value uint8) {
	if !sudoku.InBounds(row, col) || value < 1 || value > 9 {
		return
	}

	mask := uint16(1) << value

	for i := 0; i < sudoku.GridSize; i++ {
		if that.Board[row][i] == 0 {
			that.Notes[row][i] &^= mask
		}
		if that.Board[i][col] == 0 {
			that.Notes[i][col] &^= mask
		}
	}

	boxRow, boxCol := (row/sudoku.BoxSize)*sudoku.BoxSize, (col/sudoku.BoxSize)*sudoku.BoxSize
	for r := boxRow; r < boxRow+sudoku.BoxSize; r++ {
		for c := boxCol; c < boxCol+sudoku.BoxSize; c++ {
			if that.Board[r][c] == 0 {
				that.Notes[r][c] &^= mask
			}
		}
	}
}

// Conflicts returns every filled cell whose value breaks the row, column
// or box rule against the rest of the live board. This flags Sudoku-rule
// violations, not deviations from the solution.
func (that *Game) Conflicts() []CellCoord {
	conflicts := make([]CellCoord, 0, 8)

	for row := 0; row < sudoku.GridSize; row++ {
		for col := 0; col < sudoku.GridSize; col++ {
			value := that.Board[row][col]
			if value != 0 && !that.Board.IsAllowed(row, col, value) {
				conflicts = append(conflicts, CellCoord{Row: row, Col: col})
			}
		}
	}

	return conflicts
}

// Candidates lists the digits that do not clash with any peer of the
// empty cell (row, col) on the live board. Filled cells have no
// candidates.
func (that *Game) Candidates(row, col int) []uint8 {
	if !sudoku.InBounds(row, col) || that.Board[row][col] != 0 {
		return nil
	}

	candidates := make([]uint8, 0, sudoku.GridSize)
	for value := uint8(1); value <= 9; value++ {
		if that.Board.IsAllowed(row, col, value) {
			candidates = append(candidates, value)
		}
	}

	return candidates
}

// FindHint returns the first empty cell, scanning row-major, that has
// exactly one candidate left. Naked singles are the only technique used;
// the first match wins, not the "best" one.
func (that *Game) FindHint() (*Hint, bool) {
	for row := 0; row < sudoku.GridSize; row++ {
		for col := 0; col < sudoku.GridSize; col++ {
			if that.Board[row][col] != 0 {
				continue
			}

			if candidates := that.Candidates(row, col); len(candidates) == 1 {
				return &Hint{Row: row, Col: col, Value: candidates[0]}, true
			}
		}
	}

	return nil, false
}

// IsSolved reports whether the live board matches the solution cell for
// cell. Rule-valid is not enough; the canonical solution is the only
// accepted answer.
func (that *Game) IsSolved() bool {
	return that.Board == that.Solution
}

// UpdateStatus derives Status from the live board.
func (that *Game) UpdateStatus() {
	if that.IsSolved() {
		that.Status = StatusSolved
	} else {
		that.Status = StatusOngoing
	}
}

// ResetToPuzzle restores the board to the original givens and wipes all
// notes.
func (that *Game) ResetToPuzzle() {
	that.Board = that.Puzzle
	that.Notes = Notes{}
	that.Status = StatusOngoing
}
