package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

func falling(shape engine.Shape, rot engine.Rotation, anchor engine.Cell) engine.Piece {
	return engine.Piece{Anchor: anchor, Shape: shape, Rotation: rot, Phase: engine.PhaseFalling}
}

func TestSpawn(t *testing.T) {
	g := engine.NewGrid(12, 20)
	var p engine.Piece

	require.True(t, p.Spawn(g, engine.ShapeO))
	assert.Equal(t, engine.C(6, 19), p.Anchor)
	assert.Equal(t, engine.RotUp, p.Rotation)
	assert.Equal(t, engine.PhaseFalling, p.Phase)
	assert.Equal(t, cellSet([4]engine.Cell{
		engine.C(6, 19), engine.C(7, 19), engine.C(6, 18), engine.C(7, 18),
	}), cellSet(p.Footprint()))
}

func TestSpawnBlocked(t *testing.T) {
	g := engine.NewGrid(12, 20)
	g.Set(6, 19, engine.CellFrozen)

	var p engine.Piece
	assert.False(t, p.Spawn(g, engine.ShapeT))
}

func TestMoveStopsAtWalls(t *testing.T) {
	g := engine.NewGrid(12, 20)
	p := falling(engine.ShapeO, engine.RotUp, engine.C(6, 10))

	for range 6 {
		require.True(t, p.MoveLeft(g))
	}
	assert.Equal(t, engine.C(0, 10), p.Anchor)
	assert.False(t, p.MoveLeft(g))
	assert.Equal(t, engine.C(0, 10), p.Anchor)

	for range 10 {
		require.True(t, p.MoveRight(g))
	}
	assert.Equal(t, engine.C(10, 10), p.Anchor)
	assert.False(t, p.MoveRight(g))
	assert.Equal(t, engine.C(10, 10), p.Anchor)
}

func TestMoveIsFootprintAtomic(t *testing.T) {
	g := engine.NewGrid(12, 20)
	// Only the lower-left target cell is blocked; the upper one is free.
	g.Set(3, 4, engine.CellFrozen)
	p := falling(engine.ShapeO, engine.RotUp, engine.C(4, 5))

	assert.False(t, p.MoveLeft(g))
	assert.Equal(t, engine.C(4, 5), p.Anchor)
	assert.True(t, p.MoveRight(g))
	assert.Equal(t, engine.C(5, 5), p.Anchor)
}

func TestRotateRollsBack(t *testing.T) {
	tests := []struct {
		name   string
		piece  engine.Piece
		frozen []engine.Cell
	}{
		{
			name:  "left wall",
			piece: falling(engine.ShapeT, engine.RotRight, engine.C(0, 5)),
		},
		{
			name:  "floor",
			piece: falling(engine.ShapeI, engine.RotUp, engine.C(5, 1)),
		},
		{
			name:   "frozen block",
			piece:  falling(engine.ShapeT, engine.RotUp, engine.C(5, 10)),
			frozen: []engine.Cell{engine.C(5, 9)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := engine.NewGrid(12, 20)
			for _, c := range tc.frozen {
				g.Set(c.Col, c.Row, engine.CellFrozen)
			}
			p := tc.piece

			assert.False(t, p.Rotate(g))
			assert.Equal(t, tc.piece.Rotation, p.Rotation)
			assert.Equal(t, tc.piece.Anchor, p.Anchor, "no wall kick")
		})
	}
}

func TestRotateFullTurn(t *testing.T) {
	g := engine.NewGrid(12, 20)
	for _, shape := range engine.Shapes {
		p := falling(shape, engine.RotUp, engine.C(6, 10))
		start := p.Footprint()
		for range 4 {
			require.True(t, p.Rotate(g), shape.String())
		}
		assert.Equal(t, engine.RotUp, p.Rotation)
		assert.Equal(t, start, p.Footprint())
	}
}

func TestOPieceFallsToFloor(t *testing.T) {
	g := engine.NewGrid(12, 20)
	var p engine.Piece
	require.True(t, p.Spawn(g, engine.ShapeO))

	for i := range 18 {
		require.False(t, p.Advance(g), "advance %d froze early", i+1)
	}
	assert.Equal(t, engine.C(6, 1), p.Anchor)
	assert.Zero(t, g.FrozenCount())

	assert.True(t, p.Advance(g))
	assert.Equal(t, engine.PhaseFrozen, p.Phase)
	assert.Equal(t, engine.C(6, 1), p.Anchor)
	for _, c := range []engine.Cell{engine.C(6, 1), engine.C(7, 1), engine.C(6, 0), engine.C(7, 0)} {
		assert.Equal(t, engine.Block{State: engine.CellFrozen, Shape: engine.ShapeO}, g.Block(c.Col, c.Row), c.String())
	}
	assert.Equal(t, 4, g.FrozenCount())

	// A frozen piece ignores further input.
	assert.False(t, p.Advance(g))
	assert.False(t, p.MoveLeft(g))
	assert.False(t, p.Rotate(g))
}

func TestPieceRestsOnStack(t *testing.T) {
	g := engine.NewGrid(12, 20)
	g.Set(6, 5, engine.CellFrozen)
	p := falling(engine.ShapeO, engine.RotUp, engine.C(6, 8))

	assert.False(t, p.Advance(g))
	assert.Equal(t, engine.C(6, 7), p.Anchor)
	assert.True(t, p.Resting(g))
	assert.True(t, p.Advance(g))
	assert.Equal(t, engine.CellFrozen, g.State(6, 6))
	assert.Equal(t, engine.CellFrozen, g.State(7, 7))
}

func TestHiddenCellsAndOverflow(t *testing.T) {
	g := engine.NewGrid(12, 20)
	for col := 5; col <= 7; col++ {
		g.Set(col, 18, engine.CellFrozen)
	}

	var p engine.Piece
	require.True(t, p.Spawn(g, engine.ShapeT))
	assert.Contains(t, p.Footprint(), engine.C(6, 20))

	p.Project(g)
	transient := 0
	for _, b := range g.Blocks {
		if b.State == engine.CellTransient {
			transient++
		}
	}
	assert.Equal(t, 3, transient, "only in-grid cells are projected")
	g.ClearTransient()

	require.True(t, p.Advance(g))
	assert.True(t, p.Overflow(g))
	assert.Equal(t, engine.CellFrozen, g.State(6, 19))
}
