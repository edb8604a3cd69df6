package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

func fillRow(g *engine.Grid, row int, shape engine.Shape) {
	for col := 0; col < g.Cols; col++ {
		g.SetBlock(col, row, engine.Block{State: engine.CellFrozen, Shape: shape})
	}
}

func TestNewGridIsEmpty(t *testing.T) {
	g := engine.NewGrid(12, 20)

	assert.Equal(t, 12, g.Cols)
	assert.Equal(t, 20, g.Rows)
	assert.Len(t, g.Blocks, 240)
	assert.Zero(t, g.FrozenCount())
	assert.Empty(t, g.FullRows())
	assert.False(t, g.TopOut())
	assert.Equal(t, engine.CellEmpty, g.State(11, 19))
}

func TestGridOutOfBoundsPanics(t *testing.T) {
	g := engine.NewGrid(12, 20)

	tests := []struct {
		name     string
		col, row int
	}{
		{"left", -1, 0},
		{"right", 12, 0},
		{"below", 0, -1},
		{"above", 0, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Panics(t, func() { g.State(tc.col, tc.row) })
			assert.Panics(t, func() { g.Set(tc.col, tc.row, engine.CellFrozen) })
		})
	}
}

func TestGridBlocked(t *testing.T) {
	g := engine.NewGrid(12, 20)
	g.Set(3, 3, engine.CellFrozen)
	g.Set(4, 3, engine.CellTransient)

	tests := []struct {
		cell    engine.Cell
		blocked bool
	}{
		{engine.C(3, 3), true},
		{engine.C(4, 3), false},
		{engine.C(-1, 5), true},
		{engine.C(12, 5), true},
		{engine.C(5, -1), true},
		{engine.C(5, 20), false}, // hidden rows above the top are open
		{engine.C(5, 25), false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.blocked, g.Blocked(tc.cell), "Blocked(%s)", tc.cell)
	}
}

func TestFullRows(t *testing.T) {
	g := engine.NewGrid(12, 20)
	fillRow(g, 0, engine.ShapeI)
	fillRow(g, 4, engine.ShapeJ)
	fillRow(g, 7, engine.ShapeL)
	g.Set(0, 7, engine.CellTransient) // transient does not count

	assert.Equal(t, []int{0, 4}, g.FullRows())
	assert.Equal(t, 11, g.RowFrozenCount(7))
}

func TestClearNonFullRowIsNoop(t *testing.T) {
	g := engine.NewGrid(12, 20)
	for col := 0; col < 11; col++ {
		g.Set(col, 0, engine.CellFrozen)
	}
	g.Set(2, 5, engine.CellFrozen)
	before := g.Clone()

	assert.False(t, g.ClearRowAndCollapse(0))
	assert.False(t, g.ClearRowAndCollapse(3))
	assert.True(t, g.Equal(before))
}

func TestClearBottomRowShiftsEverythingDown(t *testing.T) {
	g := engine.NewGrid(12, 20)
	fillRow(g, 0, engine.ShapeO)
	g.SetBlock(0, 1, engine.Block{State: engine.CellFrozen, Shape: engine.ShapeT})
	g.SetBlock(5, 10, engine.Block{State: engine.CellFrozen, Shape: engine.ShapeS})
	g.SetBlock(11, 18, engine.Block{State: engine.CellFrozen, Shape: engine.ShapeZ})
	before := g.FrozenCount()

	res := g.ClearPass(false)

	require.False(t, res.GameOver)
	assert.Equal(t, []int{0}, res.Cleared)
	assert.Equal(t, before-12, g.FrozenCount())
	assert.Equal(t, engine.Block{State: engine.CellFrozen, Shape: engine.ShapeT}, g.Block(0, 0))
	assert.Equal(t, engine.Block{State: engine.CellFrozen, Shape: engine.ShapeS}, g.Block(5, 9))
	assert.Equal(t, engine.Block{State: engine.CellFrozen, Shape: engine.ShapeZ}, g.Block(11, 17))
	assert.Equal(t, engine.CellEmpty, g.State(5, 10))
	assert.Equal(t, 1, g.RowFrozenCount(0))
	for col := 0; col < 12; col++ {
		assert.Equal(t, engine.CellEmpty, g.State(col, 19), "top row col %d", col)
	}
}

func TestClearShiftsRowsAboveByExactlyOne(t *testing.T) {
	g := engine.NewGrid(12, 20)
	fillRow(g, 6, engine.ShapeL)
	for row := 0; row < 19; row++ {
		if row != 6 {
			g.Set(row%12, row, engine.CellFrozen)
		}
	}
	before := g.Clone()

	require.True(t, g.ClearRowAndCollapse(6))

	for row := 0; row < 6; row++ {
		for col := 0; col < 12; col++ {
			assert.Equal(t, before.Block(col, row), g.Block(col, row), "below cleared row (%d,%d)", col, row)
		}
	}
	for row := 6; row < 19; row++ {
		for col := 0; col < 12; col++ {
			assert.Equal(t, before.Block(col, row+1), g.Block(col, row), "shifted (%d,%d)", col, row)
		}
	}
	assert.Equal(t, 0, g.RowFrozenCount(19))
	assert.Equal(t, before.FrozenCount()-12, g.FrozenCount())
}

func TestClearPassRemovesOneRowPerPass(t *testing.T) {
	g := engine.NewGrid(12, 20)
	fillRow(g, 0, engine.ShapeI)
	fillRow(g, 1, engine.ShapeI)
	fillRow(g, 3, engine.ShapeI)

	res := g.ClearPass(false)
	assert.Equal(t, []int{0}, res.Cleared)
	assert.Equal(t, []int{0, 2}, g.FullRows())

	res = g.ClearPass(false)
	assert.Equal(t, []int{0}, res.Cleared)
	assert.Equal(t, []int{1}, g.FullRows())

	res = g.ClearPass(false)
	assert.Equal(t, []int{1}, res.Cleared)
	assert.Empty(t, g.FullRows())

	res = g.ClearPass(false)
	assert.Empty(t, res.Cleared)
	assert.Zero(t, g.FrozenCount())
}

func TestClearPassAllRows(t *testing.T) {
	g := engine.NewGrid(12, 20)
	fillRow(g, 0, engine.ShapeI)
	fillRow(g, 1, engine.ShapeI)
	g.Set(4, 2, engine.CellFrozen)
	fillRow(g, 3, engine.ShapeI)

	res := g.ClearPass(true)

	assert.Equal(t, []int{0, 0, 1}, res.Cleared)
	assert.Empty(t, g.FullRows())
	assert.Equal(t, 1, g.FrozenCount())
	assert.Equal(t, engine.CellFrozen, g.State(4, 0))
}

func TestClearPassGameOver(t *testing.T) {
	g := engine.NewGrid(12, 20)
	fillRow(g, 0, engine.ShapeI)
	g.Set(3, 19, engine.CellFrozen)
	before := g.FrozenCount()

	for range 3 {
		res := g.ClearPass(false)
		assert.True(t, res.GameOver)
		assert.Empty(t, res.Cleared)
		assert.Equal(t, before, g.FrozenCount())
	}
}

func TestClearTransientAndReset(t *testing.T) {
	g := engine.NewGrid(6, 6)
	g.Set(1, 1, engine.CellTransient)
	g.Set(2, 2, engine.CellFrozen)

	g.ClearTransient()
	assert.Equal(t, engine.CellEmpty, g.State(1, 1))
	assert.Equal(t, engine.CellFrozen, g.State(2, 2))

	g.Reset()
	assert.Zero(t, g.FrozenCount())
}
