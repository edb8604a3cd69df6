package engine

import "strings"

// Snapshot captures the complete driver state for determinism testing and replay.
type Snapshot struct {
	Tick        uint64
	Cols        int
	Rows        int
	Blocks      []Block
	Anchor      Cell
	Shape       Shape
	Rotation    Rotation
	Phase       Phase
	Next        Shape
	Pieces      int
	RowsCleared int
	GameOver    bool
}

// Snapshot returns a copy of the current state.
func (d *Driver) Snapshot() Snapshot {
	blocks := make([]Block, len(d.grid.Blocks))
	copy(blocks, d.grid.Blocks)
	return Snapshot{
		Tick:        d.stats.Ticks,
		Cols:        d.grid.Cols,
		Rows:        d.grid.Rows,
		Blocks:      blocks,
		Anchor:      d.piece.Anchor,
		Shape:       d.piece.Shape,
		Rotation:    d.piece.Rotation,
		Phase:       d.piece.Phase,
		Next:        d.next,
		Pieces:      d.stats.Pieces,
		RowsCleared: d.stats.RowsCleared,
		GameOver:    d.gameOver,
	}
}

// Equal returns true if two snapshots describe the same state.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.Tick != other.Tick || s.Cols != other.Cols || s.Rows != other.Rows ||
		s.Anchor != other.Anchor || s.Shape != other.Shape || s.Rotation != other.Rotation ||
		s.Phase != other.Phase || s.Next != other.Next || s.Pieces != other.Pieces ||
		s.RowsCleared != other.RowsCleared || s.GameOver != other.GameOver {
		return false
	}
	if len(s.Blocks) != len(other.Blocks) {
		return false
	}
	for i, b := range s.Blocks {
		if b != other.Blocks[i] {
			return false
		}
	}
	return true
}

// String draws the board top row first: '.' empty, lowercase shape letter for
// the falling piece, uppercase for frozen blocks.
func (s Snapshot) String() string {
	var sb strings.Builder
	sb.Grow((s.Cols + 1) * s.Rows)
	for row := s.Rows - 1; row >= 0; row-- {
		for col := 0; col < s.Cols; col++ {
			b := s.Blocks[row*s.Cols+col]
			switch b.State {
			case CellFrozen:
				sb.WriteString(b.Shape.String())
			case CellTransient:
				sb.WriteString(strings.ToLower(b.Shape.String()))
			default:
				sb.WriteByte('.')
			}
		}
		if row > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
