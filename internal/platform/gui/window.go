// Package gui hosts a game in a desktop window using Ebitengine. It draws the
// game's board as filled rectangles and feeds keyboard state to the game at a
// fixed tick rate.
package gui

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Window layout in logical pixels
const (
	cellSize = 24
	margin   = 12
	hudH     = 36
	gap      = 1 // Gap between blocks
	labelH   = 16
)

var (
	backgroundColor = color.RGBA{0x12, 0x12, 0x18, 0xff}
	wellColor       = color.RGBA{0x1e, 0x1e, 0x28, 0xff}
	overlayColor    = color.RGBA{0x00, 0x00, 0x00, 0xb0}
)

// Options configures the window host.
type Options struct {
	Store  *storage.Store // Run history; nil disables saving
	Logger *log.Logger
	Scale  int // Window size multiplier, at least 1
}

// host implements ebiten.Game.
type host struct {
	game   registry.BoardGame
	opts   Options
	config core.RuntimeConfig
	input  core.InputFrame
	state  core.GameState
	saved  bool
	runID  int64
}

// Run opens a window and plays game until the window closes or the player
// quits. It returns the ID of the saved run, or 0 when nothing was saved.
func Run(game registry.BoardGame, cfg core.RuntimeConfig, opts Options) (int64, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	// Keys are polled every tick, so soft drop ends on release.
	cfg.HeldInput = true
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	h := &host{
		game:   game,
		opts:   opts,
		config: cfg,
		input:  core.NewInputFrame(),
	}
	game.Reset(cfg)
	h.state = game.State()

	w, ht := h.Layout(0, 0)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(w*opts.Scale, ht*opts.Scale)
	ebiten.SetTPS(cfg.TickRate)

	opts.Logger.Debug("window opened", "game", game.ID(), "tps", cfg.TickRate, "seed", cfg.Seed)

	err := ebiten.RunGame(h)
	h.saveRun()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return h.runID, fmt.Errorf("gui: %w", err)
	}
	return h.runID, nil
}

// Update runs one game tick. Ebiten calls it TPS times per second.
func (h *host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	h.pollInput()

	if h.input.Has(core.ActionRestart) && h.state.GameOver {
		h.config.Seed = time.Now().UnixNano()
		h.game.Reset(h.config)
		h.state = h.game.State()
		h.saved = false
		h.input.Clear()
		return nil
	}

	result := h.game.Step(h.input)
	h.state = result.State
	if len(result.Cleared) > 0 {
		h.opts.Logger.Debug("rows cleared", "rows", result.Cleared, "tick", h.state.Ticks)
	}
	if h.state.GameOver {
		h.saveRun()
	}

	h.input.Clear()
	return nil
}

// pollInput maps keyboard state to actions. Moves and rotation fire on
// press; soft drop is active for as long as the key is held.
func (h *host) pollInput() {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}

	if pressed(ebiten.KeyArrowLeft, ebiten.KeyA) {
		h.input.Set(core.ActionMoveLeft)
	}
	if pressed(ebiten.KeyArrowRight, ebiten.KeyD) {
		h.input.Set(core.ActionMoveRight)
	}
	if pressed(ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeySpace) {
		h.input.Set(core.ActionRotate)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		h.input.Set(core.ActionSoftDrop)
	}
	if pressed(ebiten.KeyP) {
		h.input.Set(core.ActionPause)
	}
	if pressed(ebiten.KeyR) {
		h.input.Set(core.ActionRestart)
	}
}

// saveRun writes the current run to the store once.
func (h *host) saveRun() {
	if h.saved || h.opts.Store == nil {
		return
	}
	recorded, ok := h.game.(registry.RecordedGame)
	if !ok {
		return
	}
	h.saved = true

	rec := recorded.Record()
	if rec.Ticks == 0 {
		return
	}
	id, err := h.opts.Store.SaveRun(rec)
	if err != nil {
		h.opts.Logger.Error("could not save run", "error", err)
		return
	}
	h.runID = id
	h.opts.Logger.Info("run saved", "run", id, "lines", rec.RowsCleared, "end", rec.EndReason)
}

// Draw renders the board. Board row 0 is drawn at the bottom of the well.
func (h *host) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	b := h.game.Board()
	x0 := float32(margin)
	y0 := float32(hudH)
	vector.DrawFilledRect(screen, x0, y0, float32(b.Cols*cellSize), float32(b.Rows*cellSize), wellColor, false)

	for row := 0; row < b.Rows; row++ {
		y := y0 + float32((b.Rows-1-row)*cellSize)
		for col := 0; col < b.Cols; col++ {
			cell := b.At(col, row)
			if !cell.Filled {
				continue
			}
			x := x0 + float32(col*cellSize)
			rgb := cell.Color.RGB()
			c := color.NRGBA{rgb.R, rgb.G, rgb.B, 0xff}
			if cell.Falling {
				c.A = 0xd0
			}
			vector.DrawFilledRect(screen, x+gap, y+gap, cellSize-2*gap, cellSize-2*gap, c, false)
		}
	}
	if b.Preview != nil {
		h.drawPreview(screen, *b.Preview, x0+float32(b.Cols*cellSize+margin), y0)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  pieces %d  lines %d",
		h.game.Title(), h.state.Pieces, h.state.RowsCleared), margin, 4)
	ebitenutil.DebugPrintAt(screen, "arrows move/rotate  P pause  Q quit", margin, 18)

	switch {
	case h.state.GameOver:
		h.drawOverlay(screen, "GAME OVER - press R")
	case h.state.Paused:
		h.drawOverlay(screen, "PAUSED")
	}
}

// drawPreview draws the next piece in its own well at (x0, y0), with the
// label above the cells.
func (h *host) drawPreview(screen *ebiten.Image, p core.Board, x0, y0 float32) {
	ebitenutil.DebugPrintAt(screen, "NEXT", int(x0), int(y0))
	y0 += labelH
	vector.DrawFilledRect(screen, x0, y0, float32(p.Cols*cellSize), float32(p.Rows*cellSize), wellColor, false)
	for row := 0; row < p.Rows; row++ {
		y := y0 + float32((p.Rows-1-row)*cellSize)
		for col := 0; col < p.Cols; col++ {
			cell := p.At(col, row)
			if !cell.Filled {
				continue
			}
			x := x0 + float32(col*cellSize)
			rgb := cell.Color.RGB()
			vector.DrawFilledRect(screen, x+gap, y+gap, cellSize-2*gap, cellSize-2*gap,
				color.NRGBA{rgb.R, rgb.G, rgb.B, 0xff}, false)
		}
	}
}

func (h *host) drawOverlay(screen *ebiten.Image, msg string) {
	w, ht := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, float32(ht/2-16), float32(w), 32, overlayColor, false)
	// The debug font is 6 pixels per glyph.
	ebitenutil.DebugPrintAt(screen, msg, (w-len(msg)*6)/2, ht/2-8)
}

// Layout returns a fixed logical size derived from the board dimensions.
func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := h.game.Board()
	w := b.Cols*cellSize + 2*margin
	if b.Preview != nil {
		w += b.Preview.Cols*cellSize + margin
	}
	return w, b.Rows*cellSize + hudH + margin
}
