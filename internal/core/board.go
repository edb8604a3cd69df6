package core

// BoardCell is one cell of a Board as seen by a host.
type BoardCell struct {
	Filled  bool  // Occupied by a settled block or the falling piece
	Falling bool  // Part of the falling piece
	Color   Color // Color hint; meaningful only when Filled
}

// Board is a host-facing view of a block grid, independent of the game that
// produced it. Row 0 is the bottom row.
type Board struct {
	Cols  int
	Rows  int
	Cells []BoardCell // Row-major, index = row*Cols + col

	// Preview shows the next piece on a small board of its own; nil when the
	// game has nothing to preview.
	Preview *Board
}

// NewBoard creates an empty board.
func NewBoard(cols, rows int) Board {
	return Board{
		Cols:  cols,
		Rows:  rows,
		Cells: make([]BoardCell, cols*rows),
	}
}

// At returns the cell at (col, row), or an empty cell outside the board.
func (b Board) At(col, row int) BoardCell {
	if col < 0 || col >= b.Cols || row < 0 || row >= b.Rows {
		return BoardCell{}
	}
	return b.Cells[row*b.Cols+col]
}

// Set writes the cell at (col, row). Out-of-bounds writes are ignored.
func (b Board) Set(col, row int, c BoardCell) {
	if col < 0 || col >= b.Cols || row < 0 || row >= b.Rows {
		return
	}
	b.Cells[row*b.Cols+col] = c
}
