package tetris

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Visual characters for rendering
const (
	FrozenChar  = '█'
	FallingChar = '▓'
	EmptyChar   = '·'
)

// cellWidth is the number of screen columns per grid column; terminal cells
// are about twice as tall as they are wide.
const cellWidth = 2

// previewSize is the side of the square the next shape is drawn in.
const previewSize = 4

// previewCells returns the cells of shape in rotation Up, shifted so the
// lowest row and leftmost column are 0 and centered in the preview square.
func previewCells(shape engine.Shape) [4]engine.Cell {
	cells := engine.Footprint(shape, engine.RotUp, engine.C(0, 0))
	minC, maxC, minR, maxR := cells[0].Col, cells[0].Col, cells[0].Row, cells[0].Row
	for _, c := range cells[1:] {
		minC, maxC = core.Min(minC, c.Col), core.Max(maxC, c.Col)
		minR, maxR = core.Min(minR, c.Row), core.Max(maxR, c.Row)
	}
	dc := (previewSize-(maxC-minC+1))/2 - minC
	dr := (previewSize-(maxR-minR+1))/2 - minR
	for i, c := range cells {
		cells[i] = engine.C(c.Col+dc, c.Row+dr)
	}
	return cells
}

const controlsHint = "←/→ move  ↑ rotate  ↓ drop  P pause  Q quit"

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	grid := g.driver.Grid()
	boardW := grid.Cols*cellWidth + 2
	boardH := grid.Rows + 2

	area := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	if boardW > area.W || boardH > area.H {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", boardW, boardH+1))
		return
	}

	box := area.Centered(boardW, boardH)
	dst.DrawBoxColored(box, core.ColorGray)
	g.renderGrid(dst, grid, box.X+1, box.Y+1)
	g.renderPreview(dst, box.Right()+2, box.Y)

	if box.Bottom() < dst.Height() && utf8.RuneCountInString(controlsHint) <= dst.Width() {
		dst.DrawTextCentered(dst.Height()-1, controlsHint)
	}

	switch {
	case g.driver.GameOver():
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status line.
func (g *Game) renderHUD(dst *core.Screen) {
	stats := g.driver.Stats()
	hud := fmt.Sprintf(" %s  Pieces: %d  Lines: %d  Gravity: %dms",
		g.Title(), stats.Pieces, stats.RowsCleared, g.cfg.Timing.GravityMS)
	dst.DrawText(0, 0, hud)
}

// renderGrid draws the well with its top-left interior corner at (x0, y0).
// Grid row 0 is the bottom, so rows are flipped on screen.
func (g *Game) renderGrid(dst *core.Screen, grid *engine.Grid, x0, y0 int) {
	for row := 0; row < grid.Rows; row++ {
		y := y0 + grid.Rows - 1 - row
		for col := 0; col < grid.Cols; col++ {
			x := x0 + col*cellWidth
			blk := grid.Block(col, row)
			switch blk.State {
			case engine.CellFrozen:
				dst.SetColored(x, y, FrozenChar, g.colors[blk.Shape])
				dst.SetColored(x+1, y, FrozenChar, g.colors[blk.Shape])
			case engine.CellTransient:
				dst.SetStyled(x, y, FallingChar, g.colors[blk.Shape], core.AttrBold)
				dst.SetStyled(x+1, y, FallingChar, g.colors[blk.Shape], core.AttrBold)
			default:
				dst.SetStyled(x+1, y, EmptyChar, core.ColorGray, core.AttrFaint)
			}
		}
	}
}

// renderPreview draws the next shape in a labelled box at (x, y) when it fits.
func (g *Game) renderPreview(dst *core.Screen, x, y int) {
	panel := core.NewRect(x, y, previewSize*cellWidth+2, previewSize+2)
	if panel.Right() > dst.Width() || panel.Bottom() > dst.Height() {
		return
	}
	dst.DrawBoxColored(panel, core.ColorGray)
	dst.DrawTextColored(panel.X+2, panel.Y, "Next", core.ColorGray)

	next := g.driver.Next()
	for _, c := range previewCells(next) {
		px := panel.X + 1 + c.Col*cellWidth
		py := panel.Y + previewSize - c.Row
		dst.SetColored(px, py, FrozenChar, g.colors[next])
		dst.SetColored(px+1, py, FrozenChar, g.colors[next])
	}
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := core.Max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	box := dst.Bounds().Centered(boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
