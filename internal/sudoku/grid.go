package sudoku

const (
	// GridSize is the number of rows and columns of a standard board.
	GridSize = 9
	// BoxSize is the side length of a 3x3 box.
	BoxSize = 3
)

// Grid is a standard 9x9 Sudoku grid; zero means the cell is empty.
//
// Grid is a plain value type on purpose: assigning one copies all 81
// cells, so a puzzle, its solution and the live board never alias each
// other.
type Grid [GridSize][GridSize]uint8

// InBounds reports whether (row, col) addresses a cell on the grid.
func InBounds(row, col int) bool {
	return row >= 0 && row < GridSize && col >= 0 && col < GridSize
}

// IsAllowed reports whether value can sit at (row, col) without clashing
// with another cell in the same row, column or box. The cell itself is
// ignored, so a value already placed there never conflicts with itself.
// Zero is trivially allowed.
func (that *Grid) IsAllowed(row, col int, value uint8) bool {
	if value == 0 {
		return true
	}

	for i := 0; i < GridSize; i++ {
		if i != col && that[row][i] == value {
			return false
		}
		if i != row && that[i][col] == value {
			return false
		}
	}

	boxRow, boxCol := (row/BoxSize)*BoxSize, (col/BoxSize)*BoxSize
	for r := boxRow; r < boxRow+BoxSize; r++ {
		for c := boxCol; c < boxCol+BoxSize; c++ {
			if (r != row || c != col) && that[r][c] == value {
				return false
			}
		}
	}

	return true
}

// RowValues returns the nine values of row, zeros included.
func (that *Grid) RowValues(row int) [GridSize]uint8 {
	return that[row]
}

// ColValues returns the nine values of col, zeros included.
func (that *Grid) ColValues(col int) [GridSize]uint8 {
	var values [GridSize]uint8
	for r := 0; r < GridSize; r++ {
		values[r] = that[r][col]
	}

	return values
}

// BoxValues returns the nine values of the 3x3 box containing (row, col),
// zeros included, in row-major order.
func (that *Grid) BoxValues(row, col int) [GridSize]uint8 {
	var values [GridSize]uint8

	boxRow, boxCol := (row/BoxSize)*BoxSize, (col/BoxSize)*BoxSize
	i := 0
	for r := boxRow; r < boxRow+BoxSize; r++ {
		for c := boxCol; c < boxCol+BoxSize; c++ {
			values[i] = that[r][c]
			i++
		}
	}

	return values
}

// FindEmpty returns the first empty cell in row-major order.
func (that *Grid) FindEmpty() (int, int, bool) {
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if that[r][c] == 0 {
				return r, c, true
			}
		}
	}

	return 0, 0, false
}

// IsComplete reports whether every cell holds a digit.
func (that *Grid) IsComplete() bool {
	_, _, empty := that.FindEmpty()
	return !empty
}

// IsValid reports whether no filled cell breaks the row, column or box
// rule. Empty cells are skipped, so a partially filled grid can be valid.
func (that *Grid) IsValid() bool {
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if value := that[r][c]; value != 0 && !that.IsAllowed(r, c, value) {
				return false
			}
		}
	}

	return true
}
