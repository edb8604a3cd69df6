package engine

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// CellState is the occupancy of a grid cell.
type CellState uint8

const (
	CellEmpty     CellState = iota // Nothing here
	CellTransient                  // Covered by the falling piece
	CellFrozen                     // Settled permanently
)

// String returns the name of the state.
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellTransient:
		return "transient"
	case CellFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// Block is the content of one grid cell.
// Shape is meaningful only when State is not CellEmpty; it is the color hint.
type Block struct {
	State CellState
	Shape Shape
}

// Grid is the well: Cols x Rows blocks stored in row-major order
// (index = row*Cols + col, row 0 at the bottom).
type Grid struct {
	Cols   int
	Rows   int
	Blocks []Block

	// rowCounts is scratch space for FullRows, reused between passes.
	rowCounts *intmap.Map[int, int]
}

// NewGrid creates an empty grid. Panics on non-positive dimensions.
func NewGrid(cols, rows int) *Grid {
	if cols <= 0 || rows <= 0 {
		panic(fmt.Sprintf("engine: invalid grid size %dx%d", cols, rows))
	}
	return &Grid{
		Cols:      cols,
		Rows:      rows,
		Blocks:    make([]Block, cols*rows),
		rowCounts: intmap.New[int, int](rows),
	}
}

// InBounds returns true if the cell lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < g.Cols && c.Row >= 0 && c.Row < g.Rows
}

// index converts a cell to a flat index, panicking when out of bounds.
// Core logic never builds such a cell, so reaching the panic is a bug.
func (g *Grid) index(col, row int) int {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		panic(fmt.Sprintf("engine: cell (%d,%d) outside %dx%d grid", col, row, g.Cols, g.Rows))
	}
	return row*g.Cols + col
}

// State returns the occupancy of (col, row).
func (g *Grid) State(col, row int) CellState {
	return g.Blocks[g.index(col, row)].State
}

// Block returns the full content of (col, row).
func (g *Grid) Block(col, row int) Block {
	return g.Blocks[g.index(col, row)]
}

// Set writes the occupancy of (col, row), keeping its shape.
func (g *Grid) Set(col, row int, state CellState) {
	g.Blocks[g.index(col, row)].State = state
}

// SetBlock writes state and shape of (col, row).
func (g *Grid) SetBlock(col, row int, b Block) {
	g.Blocks[g.index(col, row)] = b
}

// IsFrozen reports whether c is a frozen in-grid cell.
// Cells outside the grid are never frozen.
func (g *Grid) IsFrozen(c Cell) bool {
	return g.InBounds(c) && g.Blocks[g.index(c.Col, c.Row)].State == CellFrozen
}

// Blocked reports whether a piece cell may not occupy c: left/right walls,
// the floor, or a frozen block. Rows above the top are open.
func (g *Grid) Blocked(c Cell) bool {
	if c.Col < 0 || c.Col >= g.Cols || c.Row < 0 {
		return true
	}
	return g.IsFrozen(c)
}

// RowFrozenCount returns the number of frozen cells in row.
func (g *Grid) RowFrozenCount(row int) int {
	count := 0
	for col := 0; col < g.Cols; col++ {
		if g.Blocks[g.index(col, row)].State == CellFrozen {
			count++
		}
	}
	return count
}

// FrozenCount returns the number of frozen cells in the grid.
func (g *Grid) FrozenCount() int {
	count := 0
	for _, b := range g.Blocks {
		if b.State == CellFrozen {
			count++
		}
	}
	return count
}

// FullRows returns the rows in which every column is frozen, ascending.
func (g *Grid) FullRows() []int {
	g.rowCounts.Clear()
	for i, b := range g.Blocks {
		if b.State != CellFrozen {
			continue
		}
		row := i / g.Cols
		n, _ := g.rowCounts.Get(row)
		g.rowCounts.Put(row, n+1)
	}

	var full []int
	for row := 0; row < g.Rows; row++ {
		if n, ok := g.rowCounts.Get(row); ok && n == g.Cols {
			full = append(full, row)
		}
	}
	return full
}

// IsFull reports whether every column of row is frozen.
func (g *Grid) IsFull(row int) bool {
	return g.RowFrozenCount(row) == g.Cols
}

// ClearRowAndCollapse removes a full row, shifts every row above it down by one
// and inserts an empty row at the top. A row that is not full is left alone.
// Returns true if the row was cleared.
func (g *Grid) ClearRowAndCollapse(row int) bool {
	if !g.IsFull(row) {
		return false
	}
	for r := row; r < g.Rows-1; r++ {
		copy(g.Blocks[r*g.Cols:(r+1)*g.Cols], g.Blocks[(r+1)*g.Cols:(r+2)*g.Cols])
	}
	top := g.Rows - 1
	for col := 0; col < g.Cols; col++ {
		g.Blocks[top*g.Cols+col] = Block{}
	}
	return true
}

// TopOut reports whether the top row holds a frozen cell.
func (g *Grid) TopOut() bool {
	return g.RowFrozenCount(g.Rows-1) > 0
}

// ClearResult describes the outcome of one line-clear pass.
type ClearResult struct {
	Cleared  []int // Rows removed, in the order they were removed
	GameOver bool  // Top row was occupied; nothing was cleared
}

// ClearPass runs one line-clear pass. The game-over check comes first: an
// occupied top row refuses the pass. Otherwise only the lowest full row is
// cleared, unless all is set, in which case every full row goes.
func (g *Grid) ClearPass(all bool) ClearResult {
	if g.TopOut() {
		return ClearResult{GameOver: true}
	}

	var res ClearResult
	for {
		full := g.FullRows()
		if len(full) == 0 {
			return res
		}
		// Lowest first; rows above shift down onto the same index, so
		// clearing full[0] repeatedly walks the stack bottom-up.
		row := full[0]
		g.ClearRowAndCollapse(row)
		res.Cleared = append(res.Cleared, row)
		if !all {
			return res
		}
	}
}

// ClearTransient resets every transient cell to empty.
func (g *Grid) ClearTransient() {
	for i := range g.Blocks {
		if g.Blocks[i].State == CellTransient {
			g.Blocks[i] = Block{}
		}
	}
}

// Reset empties the whole grid.
func (g *Grid) Reset() {
	for i := range g.Blocks {
		g.Blocks[i] = Block{}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.Cols, g.Rows)
	copy(c.Blocks, g.Blocks)
	return c
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.Cols != other.Cols || g.Rows != other.Rows {
		return false
	}
	for i, b := range g.Blocks {
		if b != other.Blocks[i] {
			return false
		}
	}
	return true
}
