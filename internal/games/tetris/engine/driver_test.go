package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

const gravity = engine.DefaultGravityInterval

func newDriver(t *testing.T, seed int64) *engine.Driver {
	t.Helper()
	d, err := engine.NewDriver(engine.DefaultSettings(), seed)
	require.NoError(t, err)
	return d
}

// assertProjection checks that transient cells are exactly the in-grid
// footprint of the falling piece.
func assertProjection(t *testing.T, d *engine.Driver) {
	t.Helper()
	g := d.Grid()
	p := d.Piece()

	want := map[engine.Cell]bool{}
	if p.Falling() {
		for _, c := range p.Footprint() {
			if g.InBounds(c) {
				want[c] = true
			}
		}
	}
	got := map[engine.Cell]bool{}
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.State(col, row) == engine.CellTransient {
				got[engine.C(col, row)] = true
			}
		}
	}
	assert.Equal(t, want, got)
}

func TestNewDriverValidatesSettings(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*engine.Settings)
	}{
		{"narrow", func(s *engine.Settings) { s.Cols = 3 }},
		{"short", func(s *engine.Settings) { s.Rows = 0 }},
		{"no gravity", func(s *engine.Settings) { s.GravityInterval = 0 }},
		{"negative soft drop", func(s *engine.Settings) { s.SoftDropInterval = -time.Millisecond }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := engine.DefaultSettings()
			tc.modify(&s)
			_, err := engine.NewDriver(s, 1)
			assert.Error(t, err)
		})
	}
}

func TestFirstUpdateSpawns(t *testing.T) {
	d := newDriver(t, 42)

	ev := d.Update(0, 0)

	assert.True(t, ev.Spawned)
	assert.False(t, ev.GameOver)
	assert.Equal(t, engine.C(6, 19), d.Piece().Anchor)
	assert.Equal(t, engine.RotUp, d.Piece().Rotation)
	assert.Equal(t, 1, d.Stats().Pieces)
	assertProjection(t, d)
}

func TestGravityAdvancesOneRowPerInterval(t *testing.T) {
	d := newDriver(t, 7)
	d.Update(0, 0)

	d.Update(gravity/2, 0)
	assert.Equal(t, 19, d.Piece().Anchor.Row, "half an interval")

	d.Update(gravity/2, 0)
	assert.Equal(t, 18, d.Piece().Anchor.Row)

	d.Update(gravity, 0)
	assert.Equal(t, 17, d.Piece().Anchor.Row)
	assertProjection(t, d)
}

func TestSoftDrop(t *testing.T) {
	d := newDriver(t, 7)
	d.Update(0, 0)
	soft := engine.Commands(0).With(engine.CmdSoftDrop)

	d.Update(10*time.Millisecond, 0)
	assert.Equal(t, 19, d.Piece().Anchor.Row)
	assert.Equal(t, gravity, d.Interval())

	d.Update(0, soft)
	assert.Equal(t, 18, d.Piece().Anchor.Row)
	assert.Equal(t, engine.DefaultSoftDropInterval, d.Interval())

	d.Update(0, 0)
	assert.Equal(t, gravity, d.Interval(), "released")
}

func TestSoftDropDoesNotReleaseStoredTime(t *testing.T) {
	d := newDriver(t, 3)
	d.Update(0, 0)
	for range 4 {
		d.Update(100*time.Millisecond, 0)
	}
	require.Equal(t, 19, d.Piece().Anchor.Row)

	d.Update(0, engine.Commands(0).With(engine.CmdSoftDrop))
	assert.Equal(t, 18, d.Piece().Anchor.Row)
}

func TestMovesApplyBeforeGravity(t *testing.T) {
	d := newDriver(t, 11)
	d.Update(0, 0)
	start := d.Piece().Anchor

	d.Update(gravity, engine.Commands(0).With(engine.CmdMoveLeft))
	assert.Equal(t, engine.C(start.Col-1, start.Row-1), d.Piece().Anchor)

	d.Update(0, engine.Commands(0).With(engine.CmdMoveRight).With(engine.CmdMoveLeft))
	assert.Equal(t, start.Col-1, d.Piece().Anchor.Col, "left and right cancel")
	assertProjection(t, d)
}

func TestLeftoverRowsClearOnePerFrame(t *testing.T) {
	d := newDriver(t, 5)
	for row := 0; row < 2; row++ {
		fillRow(d.Grid(), row, engine.ShapeI)
	}
	d.Grid().SetBlock(5, 2, engine.Block{State: engine.CellFrozen, Shape: engine.ShapeT})

	ev := d.Update(0, 0)
	assert.Equal(t, []int{0}, ev.Cleared)
	assert.False(t, ev.Spawned, "no spawn while full rows are left")
	assert.Equal(t, []int{0}, d.Grid().FullRows())

	ev = d.Update(0, 0)
	assert.Equal(t, []int{0}, ev.Cleared)
	assert.False(t, ev.Spawned)
	assert.Empty(t, d.Grid().FullRows())
	assert.Equal(t, 2, d.Stats().RowsCleared)

	ev = d.Update(0, 0)
	assert.Empty(t, ev.Cleared)
	assert.True(t, ev.Spawned)
	assert.Equal(t, 1, d.Grid().FrozenCount())
	assert.Equal(t, engine.CellFrozen, d.Grid().State(5, 0))
	assertProjection(t, d)
}

func TestRowsNeverCollapseUnderFallingPiece(t *testing.T) {
	d := newDriver(t, 13)
	d.Update(0, 0)
	d.Update(10*gravity, 0)
	p := d.Piece()
	require.True(t, p.Falling())
	require.Equal(t, 9, p.Anchor.Row)

	// Two full rows below the piece and a frozen block right above it.
	for row := 0; row < 2; row++ {
		fillRow(d.Grid(), row, engine.ShapeI)
	}
	top := p.Footprint()[0]
	for _, c := range p.Footprint() {
		if c.Row > top.Row {
			top = c
		}
	}
	d.Grid().SetBlock(top.Col, top.Row+1, engine.Block{State: engine.CellFrozen, Shape: engine.ShapeZ})
	require.Equal(t, 25, d.Grid().FrozenCount())

	for range 2 {
		ev := d.Update(0, 0)
		assert.Empty(t, ev.Cleared)
		assert.Equal(t, 25, d.Grid().FrozenCount())
		assertProjection(t, d)
	}

	var ev engine.Events
	for frame := 0; frame < 40 && !ev.Froze; frame++ {
		ev = d.Update(gravity, 0)
	}
	require.True(t, ev.Froze)
	assert.Equal(t, []int{0}, ev.Cleared)

	ev = d.Update(0, 0)
	assert.Equal(t, []int{0}, ev.Cleared)
	assert.False(t, ev.Spawned)

	ev = d.Update(0, 0)
	assert.True(t, ev.Spawned)
	assert.Equal(t, 2, d.Stats().RowsCleared)
	assert.Equal(t, 25+4-24, d.Grid().FrozenCount())
	assertProjection(t, d)
}

func TestNextShapeSpawnsNext(t *testing.T) {
	d := newDriver(t, 31)

	spawns := 0
	for frame := 0; frame < 3000 && !d.GameOver(); frame++ {
		next := d.Next()
		ev := d.Update(gravity, 0)
		if ev.Spawned && !ev.GameOver {
			spawns++
			assert.Equal(t, next, d.Piece().Shape, "frame %d", frame)
		}
		assert.Equal(t, d.Next(), d.Snapshot().Next)
	}
	assert.Greater(t, spawns, 5)
}

func TestClearAllRowsSetting(t *testing.T) {
	s := engine.DefaultSettings()
	s.ClearAllRows = true
	d, err := engine.NewDriver(s, 5)
	require.NoError(t, err)
	for row := 0; row < 3; row++ {
		fillRow(d.Grid(), row, engine.ShapeL)
	}

	ev := d.Update(0, 0)
	assert.Equal(t, []int{0, 0, 0}, ev.Cleared)
	assert.Zero(t, d.Grid().FrozenCount())
}

func TestGameOverIsPermanent(t *testing.T) {
	d := newDriver(t, 9)
	d.Update(0, 0)
	d.Grid().Set(0, 19, engine.CellFrozen)

	ev := d.Update(gravity, 0)
	require.True(t, ev.GameOver)
	assert.True(t, d.GameOver())
	ticks := d.Stats().Ticks
	before := d.Snapshot()

	for range 5 {
		ev = d.Update(gravity, engine.Commands(0).With(engine.CmdMoveLeft).With(engine.CmdRotate))
		assert.True(t, ev.GameOver)
		assert.False(t, ev.Spawned)
	}
	assert.Equal(t, ticks, d.Stats().Ticks)
	assert.True(t, before.Equal(d.Snapshot()))

	d.Restart(9)
	assert.False(t, d.GameOver())
	assert.Zero(t, d.Grid().FrozenCount())
	assert.False(t, d.Update(0, 0).GameOver)
}

func TestStackReachesTopWithoutInput(t *testing.T) {
	d := newDriver(t, 2024)

	over := false
	for frame := 0; frame < 5000 && !over; frame++ {
		ev := d.Update(gravity, 0)
		over = ev.GameOver
		if !over {
			assertProjection(t, d)
		}
	}

	require.True(t, over, "pieces dropped in the center column must top out")
	assert.Zero(t, d.Stats().RowsCleared, "center drops never fill a row")
	assert.Greater(t, d.Stats().Pieces, 5)
}

func TestDeterminism(t *testing.T) {
	script := func(frame int) (time.Duration, engine.Commands) {
		var cmds engine.Commands
		switch frame % 7 {
		case 1:
			cmds = cmds.With(engine.CmdMoveLeft)
		case 3:
			cmds = cmds.With(engine.CmdRotate)
		case 4:
			cmds = cmds.With(engine.CmdMoveRight).With(engine.CmdSoftDrop)
		case 6:
			cmds = cmds.With(engine.CmdSoftDrop)
		}
		return time.Duration(frame%5+1) * 40 * time.Millisecond, cmds
	}

	a := newDriver(t, 77)
	b := newDriver(t, 77)
	for frame := 0; frame < 3000; frame++ {
		dt, cmds := script(frame)
		evA := a.Update(dt, cmds)
		evB := b.Update(dt, cmds)
		require.Equal(t, evA, evB, "frame %d", frame)
		require.True(t, a.Snapshot().Equal(b.Snapshot()), "frame %d", frame)
	}
}

func TestCommandsString(t *testing.T) {
	tests := []struct {
		cmds engine.Commands
		want string
	}{
		{0, ""},
		{engine.Commands(0).With(engine.CmdMoveLeft), "L"},
		{engine.Commands(0).With(engine.CmdSoftDrop).With(engine.CmdMoveLeft), "L v"},
		{engine.Commands(0).With(engine.CmdRotate).With(engine.CmdMoveRight), "R ^"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.cmds.String())
	}
	assert.True(t, engine.Commands(0).Empty())
}

func TestSnapshotString(t *testing.T) {
	d, err := engine.NewDriver(engine.Settings{
		Cols: 4, Rows: 4, GravityInterval: gravity, SoftDropInterval: time.Millisecond,
	}, 1)
	require.NoError(t, err)
	d.Grid().SetBlock(0, 0, engine.Block{State: engine.CellFrozen, Shape: engine.ShapeZ})

	assert.Equal(t, "....\n....\n....\nZ...", d.Snapshot().String())
}
