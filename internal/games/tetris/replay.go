package tetris

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// ErrReplayMismatch is returned when replaying a run does not reproduce the
// outcome stored with it.
var ErrReplayMismatch = errors.New("replay does not match recorded run")

// ConfigFromRecord rebuilds the config a run was played with. Colors are the
// variant defaults since they do not affect play.
func ConfigFromRecord(rec core.RunRecord) config.TetrisConfig {
	cfg := config.Default(rec.GameID)
	cfg.Board = config.BoardConfig{Cols: rec.Cols, Rows: rec.Rows}
	cfg.Timing = config.TimingConfig{GravityMS: rec.GravityMS, SoftDropMS: rec.SoftDropMS}
	cfg.Rules.ClearAllFullRows = rec.ClearAll
	return cfg
}

// commandsByTick indexes recorded commands by tick.
func commandsByTick(rec core.RunRecord) map[uint64]engine.Commands {
	byTick := make(map[uint64]engine.Commands, len(rec.Commands))
	for _, c := range rec.Commands {
		byTick[c.Tick] = engine.Commands(c.Commands)
	}
	return byTick
}

// Replay re-runs a recorded game tick by tick and returns the final engine
// state. The result is checked against the recorded outcome.
func Replay(rec core.RunRecord) (engine.Snapshot, error) {
	if rec.TickRate <= 0 {
		return engine.Snapshot{}, fmt.Errorf("tetris: replay run %d: invalid tick rate %d", rec.ID, rec.TickRate)
	}
	d, err := engine.NewDriver(SettingsFromConfig(ConfigFromRecord(rec)), rec.Seed)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("tetris: replay run %d: %w", rec.ID, err)
	}

	dt := time.Second / time.Duration(rec.TickRate)
	byTick := commandsByTick(rec)
	for tick := uint64(1); tick <= rec.Ticks && !d.GameOver(); tick++ {
		d.Update(dt, byTick[tick])
	}

	snap := d.Snapshot()
	return snap, checkOutcome(rec, snap)
}

func checkOutcome(rec core.RunRecord, snap engine.Snapshot) error {
	wantOver := rec.EndReason == core.EndGameOver
	switch {
	case snap.Tick != rec.Ticks:
		return fmt.Errorf("%w: %d ticks, recorded %d", ErrReplayMismatch, snap.Tick, rec.Ticks)
	case snap.GameOver != wantOver:
		return fmt.Errorf("%w: game over %v, recorded %q", ErrReplayMismatch, snap.GameOver, rec.EndReason)
	case snap.Pieces != rec.Pieces || snap.RowsCleared != rec.RowsCleared:
		return fmt.Errorf("%w: %d pieces / %d rows, recorded %d / %d", ErrReplayMismatch,
			snap.Pieces, snap.RowsCleared, rec.Pieces, rec.RowsCleared)
	}
	return nil
}

// ReplayGame plays a recorded run back through the regular game surface so a
// terminal host can show it. Player input other than pause is ignored.
type ReplayGame struct {
	*Game
	rec    core.RunRecord
	byTick map[uint64]engine.Commands
}

// NewReplayGame creates a game that replays rec.
func NewReplayGame(rec core.RunRecord) *ReplayGame {
	return &ReplayGame{
		Game:   NewWithConfig(rec.GameID, ConfigFromRecord(rec)),
		rec:    rec,
		byTick: commandsByTick(rec),
	}
}

// Title returns the display name for the replay.
func (r *ReplayGame) Title() string {
	return fmt.Sprintf("Replay #%d", r.rec.ID)
}

// Reset restarts the replay from the recorded seed and tick rate; the
// runtime's seed and rate are ignored.
func (r *ReplayGame) Reset(runtime core.RuntimeConfig) {
	runtime.Seed = r.rec.Seed
	runtime.TickRate = r.rec.TickRate
	r.Game.Reset(runtime)
}

// Step feeds the next recorded tick. Once the recorded ticks run out the
// replay holds its last frame.
func (r *ReplayGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		r.paused = !r.paused
	}
	if r.paused || r.Done() {
		return core.StepResult{State: r.State()}
	}

	next := r.driver.Stats().Ticks + 1
	return r.advance(r.byTick[next])
}

// Done reports whether every recorded tick has been played.
func (r *ReplayGame) Done() bool {
	return r.driver.GameOver() || r.driver.Stats().Ticks >= r.rec.Ticks
}

// Render draws the replay with a progress line in place of the HUD.
func (r *ReplayGame) Render(dst *core.Screen) {
	r.Game.Render(dst)
	dst.DrawHLine(0, 0, dst.Width(), ' ')
	dst.DrawText(0, 0, fmt.Sprintf(" %s  tick %d/%d ", r.Title(), r.driver.Stats().Ticks, r.rec.Ticks))
}
