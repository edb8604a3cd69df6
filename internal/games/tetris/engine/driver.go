package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Command is a discrete input for the active piece.
type Command uint8

const (
	CmdMoveLeft Command = 1 << iota
	CmdMoveRight
	CmdRotate
	CmdSoftDrop // Held this frame: gravity uses the soft-drop interval
)

// Commands is the set of commands received during one frame.
type Commands uint8

// Has returns true if c is part of the set.
func (cs Commands) Has(c Command) bool {
	return cs&Commands(c) != 0
}

// With returns the set extended by c.
func (cs Commands) With(c Command) Commands {
	return cs | Commands(c)
}

// Empty reports whether no command was received.
func (cs Commands) Empty() bool {
	return cs == 0
}

// String returns a compact form such as "L R ^ v".
func (cs Commands) String() string {
	s := ""
	for _, c := range []struct {
		cmd  Command
		name string
	}{
		{CmdMoveLeft, "L"},
		{CmdMoveRight, "R"},
		{CmdRotate, "^"},
		{CmdSoftDrop, "v"},
	} {
		if cs.Has(c.cmd) {
			if s != "" {
				s += " "
			}
			s += c.name
		}
	}
	return s
}

// Default timing and board constants.
const (
	DefaultCols             = 12
	DefaultRows             = 20
	DefaultGravityInterval  = 500 * time.Millisecond
	DefaultSoftDropInterval = 10 * time.Millisecond
)

// Settings configures a Driver.
type Settings struct {
	Cols             int
	Rows             int
	GravityInterval  time.Duration
	SoftDropInterval time.Duration
	ClearAllRows     bool // Clear every full row per pass instead of one
}

// DefaultSettings returns the standard 12x20 board with 500ms gravity.
func DefaultSettings() Settings {
	return Settings{
		Cols:             DefaultCols,
		Rows:             DefaultRows,
		GravityInterval:  DefaultGravityInterval,
		SoftDropInterval: DefaultSoftDropInterval,
	}
}

// Validate checks that the settings describe a playable board.
func (s Settings) Validate() error {
	if s.Cols < 4 || s.Rows < 4 {
		return fmt.Errorf("engine: board %dx%d is smaller than 4x4", s.Cols, s.Rows)
	}
	if s.GravityInterval <= 0 || s.SoftDropInterval <= 0 {
		return fmt.Errorf("engine: intervals must be positive (gravity %s, soft drop %s)",
			s.GravityInterval, s.SoftDropInterval)
	}
	return nil
}

// Events reports what happened during one Update.
type Events struct {
	Spawned  bool  // A new piece entered the board
	Froze    bool  // The active piece settled
	Cleared  []int // Rows removed by line-clear passes, in order
	GameOver bool  // The game is over (reported on every Update once set)
}

// Stats counts activity since the last restart.
type Stats struct {
	Ticks       uint64 // Updates processed
	Pieces      int    // Pieces spawned
	RowsCleared int
}

// Driver runs the frame loop: commands and time go in, grid state comes out.
// It is not safe for concurrent use; hosts call it from one goroutine.
type Driver struct {
	settings Settings
	rng      *rand.Rand
	grid     *Grid
	piece    Piece
	next     Shape // Shape of the piece after the current one

	gravityTimer time.Duration
	softDrop     bool
	gameOver     bool
	stats        Stats
}

// NewDriver creates a driver with its own random source.
// Settings are validated; an invalid configuration returns an error.
func NewDriver(s Settings, seed int64) (*Driver, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{
		settings: s,
		grid:     NewGrid(s.Cols, s.Rows),
	}
	d.Restart(seed)
	return d, nil
}

// Restart clears the board and reseeds the random source.
func (d *Driver) Restart(seed int64) {
	d.rng = rand.New(rand.NewSource(seed))
	d.next = Shapes[d.rng.Intn(ShapeCount)]
	d.grid.Reset()
	d.piece = Piece{Phase: PhaseSpawning}
	d.gravityTimer = 0
	d.softDrop = false
	d.gameOver = false
	d.stats = Stats{}
}

// Update advances the game by one frame of length dt.
func (d *Driver) Update(dt time.Duration, cmds Commands) Events {
	if d.gameOver {
		return Events{GameOver: true}
	}
	d.stats.Ticks++

	var ev Events
	d.grid.ClearTransient()

	if d.piece.Phase == PhaseFalling {
		// Rows only fill on a freeze, so there is nothing to clear here.
		if d.grid.TopOut() {
			d.gameOver = true
			ev.GameOver = true
			return ev
		}
	} else {
		// Leftover full rows clear one pass per frame, and the next piece
		// spawns only once none are left.
		if d.runClearPass(&ev) || len(ev.Cleared) > 0 {
			return ev
		}
		d.spawn(&ev)
		if ev.GameOver {
			return ev
		}
	}

	if cmds.Has(CmdMoveLeft) {
		d.piece.MoveLeft(d.grid)
	}
	if cmds.Has(CmdMoveRight) {
		d.piece.MoveRight(d.grid)
	}
	if cmds.Has(CmdRotate) {
		d.piece.Rotate(d.grid)
	}

	d.softDrop = cmds.Has(CmdSoftDrop)
	interval := d.Interval()
	if d.softDrop && d.gravityTimer > interval {
		// Switching to soft drop must not release a burst of stored time.
		d.gravityTimer = interval
	}

	d.gravityTimer += dt
	for d.gravityTimer >= interval {
		d.gravityTimer -= interval
		if d.piece.Advance(d.grid) {
			ev.Froze = true
			d.gravityTimer = 0
			break
		}
	}

	if ev.Froze {
		if d.piece.Overflow(d.grid) {
			d.gameOver = true
			ev.GameOver = true
			return ev
		}
		d.runClearPass(&ev)
		return ev
	}

	d.piece.Project(d.grid)
	return ev
}

// spawn places the previewed shape and draws the next one uniformly at
// random. A blocked spawn ends the game.
func (d *Driver) spawn(ev *Events) {
	shape := d.next
	d.next = Shapes[d.rng.Intn(ShapeCount)]
	d.gravityTimer = 0
	ok := d.piece.Spawn(d.grid, shape)
	d.stats.Pieces++
	ev.Spawned = true
	if !ok {
		d.gameOver = true
		ev.GameOver = true
	}
}

// runClearPass runs one line-clear pass and records the outcome.
// Returns true when the pass signalled game over.
func (d *Driver) runClearPass(ev *Events) bool {
	res := d.grid.ClearPass(d.settings.ClearAllRows)
	if res.GameOver {
		d.gameOver = true
		ev.GameOver = true
		return true
	}
	ev.Cleared = append(ev.Cleared, res.Cleared...)
	d.stats.RowsCleared += len(res.Cleared)
	return false
}

// Interval returns the current gravity interval, honoring soft drop.
func (d *Driver) Interval() time.Duration {
	if d.softDrop {
		return d.settings.SoftDropInterval
	}
	return d.settings.GravityInterval
}

// Grid returns the board. Hosts must treat it as read-only.
func (d *Driver) Grid() *Grid {
	return d.grid
}

// Piece returns a copy of the active piece.
func (d *Driver) Piece() Piece {
	return d.piece
}

// Next returns the shape that spawns after the current piece.
func (d *Driver) Next() Shape {
	return d.next
}

// GameOver reports whether the game has ended.
func (d *Driver) GameOver() bool {
	return d.gameOver
}

// Stats returns activity counters since the last restart.
func (d *Driver) Stats() Stats {
	return d.stats
}

// Settings returns the driver configuration.
func (d *Driver) Settings() Settings {
	return d.settings
}
