// Package tetris hosts the falling-block engine as a registry game: it turns
// fixed platform ticks and semantic actions into engine frames, records the
// commands of each run and draws the well into a core.Screen.
package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// speedPreset stores the difficulty preset set via CLI
var speedPreset config.SpeedPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the speed preset. Unknown names clear it;
// the CLI validates names with config.ParseSpeedPreset first.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseSpeedPreset(preset)
	if err != nil {
		p = ""
	}
	speedPreset = p
}

var titles = map[string]string{
	config.VariantStandard: "Tetris",
	config.VariantClassic:  "Tetris Classic",
}

func init() {
	registry.Register(config.VariantStandard, func() registry.Game {
		return New(config.VariantStandard)
	})
	registry.Register(config.VariantClassic, func() registry.Game {
		return New(config.VariantClassic)
	})
}

// Game adapts engine.Driver to registry.Game.
type Game struct {
	variant string
	fixed   *config.TetrisConfig // Set by NewWithConfig; skips file loading

	cfg     config.TetrisConfig
	colors  [engine.ShapeCount]core.Color
	runtime core.RuntimeConfig
	driver  *engine.Driver
	dt      time.Duration

	softDropLeft int // Ticks of soft drop remaining from the last press
	paused       bool
	record       core.RunRecord
}

// New creates a game for a variant. Its config is loaded on Reset.
func New(variant string) *Game {
	return &Game{variant: variant}
}

// NewWithConfig creates a game that always uses cfg instead of loading files.
func NewWithConfig(variant string, cfg config.TetrisConfig) *Game {
	return &Game{variant: variant, fixed: &cfg}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if t, ok := titles[g.variant]; ok {
		return t
	}
	return "Tetris"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.dt = time.Second / time.Duration(runtime.TickRate)

	g.cfg = g.loadConfig()
	for _, s := range engine.Shapes {
		g.colors[s] = g.cfg.ShapeColor(s.String())
	}

	driver, err := engine.NewDriver(SettingsFromConfig(g.cfg), runtime.Seed)
	if err != nil {
		// Configs are validated on load, so only a hand-built config gets here.
		g.cfg = config.Default(g.variant)
		driver, _ = engine.NewDriver(SettingsFromConfig(g.cfg), runtime.Seed)
	}
	g.driver = driver

	g.softDropLeft = 0
	g.paused = false
	g.record = core.RunRecord{
		GameID:     g.variant,
		Seed:       runtime.Seed,
		TickRate:   runtime.TickRate,
		Cols:       g.cfg.Board.Cols,
		Rows:       g.cfg.Board.Rows,
		GravityMS:  g.cfg.Timing.GravityMS,
		SoftDropMS: g.cfg.Timing.SoftDropMS,
		ClearAll:   g.cfg.Rules.ClearAllFullRows,
	}
}

// loadConfig resolves the config for the next run.
func (g *Game) loadConfig() config.TetrisConfig {
	if g.fixed != nil {
		return *g.fixed
	}

	cfg, err := config.Load(g.variant, configPath)
	if err != nil {
		cfg = config.Default(g.variant)
	}

	// Apply difficulty preset if set
	if speedPreset != "" {
		config.ApplySpeedPreset(&cfg, speedPreset)
	}
	return cfg
}

// SettingsFromConfig converts a variant config into engine settings.
func SettingsFromConfig(cfg config.TetrisConfig) engine.Settings {
	return engine.Settings{
		Cols:             cfg.Board.Cols,
		Rows:             cfg.Board.Rows,
		GravityInterval:  time.Duration(cfg.Timing.GravityMS) * time.Millisecond,
		SoftDropInterval: time.Duration(cfg.Timing.SoftDropMS) * time.Millisecond,
		ClearAllRows:     cfg.Rules.ClearAllFullRows,
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.driver.GameOver() {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	return g.advance(g.commands(in))
}

// commands translates one frame of actions into engine commands.
// Without held input a soft-drop press keeps soft drop active for the
// configured number of ticks, since terminals deliver no key releases.
func (g *Game) commands(in core.InputFrame) engine.Commands {
	var cmds engine.Commands
	if in.Has(core.ActionMoveLeft) {
		cmds = cmds.With(engine.CmdMoveLeft)
	}
	if in.Has(core.ActionMoveRight) {
		cmds = cmds.With(engine.CmdMoveRight)
	}
	if in.Has(core.ActionRotate) {
		cmds = cmds.With(engine.CmdRotate)
	}

	if g.runtime.HeldInput {
		if in.Has(core.ActionSoftDrop) {
			cmds = cmds.With(engine.CmdSoftDrop)
		}
		return cmds
	}

	if in.Has(core.ActionSoftDrop) {
		g.softDropLeft = core.Max(g.cfg.Rules.SoftDropHoldTicks, 1)
	}
	if g.softDropLeft > 0 {
		cmds = cmds.With(engine.CmdSoftDrop)
		g.softDropLeft--
	}
	return cmds
}

// advance runs one engine frame and records its commands.
func (g *Game) advance(cmds engine.Commands) core.StepResult {
	ev := g.driver.Update(g.dt, cmds)

	if !cmds.Empty() {
		g.record.Commands = append(g.record.Commands, core.CommandRecord{
			Tick:     g.driver.Stats().Ticks,
			Commands: uint8(cmds),
		})
	}

	return core.StepResult{
		State:   g.State(),
		Froze:   ev.Froze,
		Cleared: ev.Cleared,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	stats := g.driver.Stats()
	return core.GameState{
		GameOver:    g.driver.GameOver(),
		Paused:      g.paused,
		Ticks:       stats.Ticks,
		Pieces:      stats.Pieces,
		RowsCleared: stats.RowsCleared,
	}
}

// Board returns the well for pixel hosts.
func (g *Game) Board() core.Board {
	grid := g.driver.Grid()
	b := core.NewBoard(grid.Cols, grid.Rows)
	for i, blk := range grid.Blocks {
		if blk.State == engine.CellEmpty {
			continue
		}
		b.Cells[i] = core.BoardCell{
			Filled:  true,
			Falling: blk.State == engine.CellTransient,
			Color:   g.colors[blk.Shape],
		}
	}

	next := g.driver.Next()
	preview := core.NewBoard(previewSize, previewSize)
	for _, c := range previewCells(next) {
		preview.Set(c.Col, c.Row, core.BoardCell{Filled: true, Color: g.colors[next]})
	}
	b.Preview = &preview
	return b
}

// Next returns the shape that spawns after the falling piece.
func (g *Game) Next() engine.Shape {
	return g.driver.Next()
}

// Record returns the run so far: rules, seed, outcome and every tick that
// carried commands.
func (g *Game) Record() core.RunRecord {
	rec := g.record
	stats := g.driver.Stats()
	rec.Ticks = stats.Ticks
	rec.Pieces = stats.Pieces
	rec.RowsCleared = stats.RowsCleared
	rec.EndReason = core.EndQuit
	if g.driver.GameOver() {
		rec.EndReason = core.EndGameOver
	}
	rec.Commands = append([]core.CommandRecord(nil), g.record.Commands...)
	return rec
}

// Snapshot returns the engine state for determinism checks.
func (g *Game) Snapshot() engine.Snapshot {
	return g.driver.Snapshot()
}

// Config returns the config of the current run.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}
