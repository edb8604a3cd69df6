package engine

// Phase is the lifecycle state of the active piece.
type Phase uint8

const (
	PhaseSpawning Phase = iota // Waiting to be placed at the top
	PhaseFalling               // Accepting moves and gravity
	PhaseFrozen                // Settled; replaced on the next frame
)

// String returns the name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// Piece is the falling tetromino. It never owns grid cells; it only reads the
// grid to validate moves and writes frozen blocks when it settles.
type Piece struct {
	Anchor   Cell
	Shape    Shape
	Rotation Rotation
	Phase    Phase
}

// SpawnAnchor returns the spawn position for a grid: top row, center column.
func SpawnAnchor(g *Grid) Cell {
	return C(g.Cols/2, g.Rows-1)
}

// Spawn places a new piece of the given shape at the top-center of g,
// rotation Up, and moves it straight to falling.
// Returns false if the spawn position overlaps frozen blocks.
func (p *Piece) Spawn(g *Grid, shape Shape) bool {
	p.Anchor = SpawnAnchor(g)
	p.Shape = shape
	p.Rotation = RotUp
	p.Phase = PhaseFalling
	return p.fits(g, p.Anchor, p.Rotation)
}

// Footprint returns the 4 cells the piece currently covers.
func (p *Piece) Footprint() [4]Cell {
	return Footprint(p.Shape, p.Rotation, p.Anchor)
}

// Falling reports whether the piece accepts moves.
func (p *Piece) Falling() bool {
	return p.Phase == PhaseFalling
}

// fits reports whether every footprint cell at (anchor, rot) is free.
func (p *Piece) fits(g *Grid, anchor Cell, rot Rotation) bool {
	for _, c := range Footprint(p.Shape, rot, anchor) {
		if g.Blocked(c) {
			return false
		}
	}
	return true
}

// shift moves the anchor horizontally by dc if the whole footprint fits.
func (p *Piece) shift(g *Grid, dc int) bool {
	if !p.Falling() {
		return false
	}
	target := p.Anchor.Add(dc, 0)
	if !p.fits(g, target, p.Rotation) {
		return false
	}
	p.Anchor = target
	return true
}

// MoveLeft shifts the piece one column left. Any blocked cell vetoes the move.
func (p *Piece) MoveLeft(g *Grid) bool {
	return p.shift(g, -1)
}

// MoveRight shifts the piece one column right. Any blocked cell vetoes the move.
func (p *Piece) MoveRight(g *Grid) bool {
	return p.shift(g, 1)
}

// Rotate turns the piece clockwise around its anchor. If the new footprint is
// blocked the rotation is rolled back. There is no wall kick.
func (p *Piece) Rotate(g *Grid) bool {
	if !p.Falling() {
		return false
	}
	p.Rotation = p.Rotation.CW()
	if !p.fits(g, p.Anchor, p.Rotation) {
		p.Rotation = p.Rotation.CCW()
		return false
	}
	return true
}

// Resting reports whether the piece cannot fall further: a footprint cell is
// on row 0, or directly above a frozen block that is not part of the piece.
func (p *Piece) Resting(g *Grid) bool {
	cells := p.Footprint()
	for _, c := range cells {
		if c.Row == 0 {
			return true
		}
		below := c.Below()
		if g.IsFrozen(below) && !contains(cells, below) {
			return true
		}
	}
	return false
}

// Advance applies one gravity tick. A resting piece freezes: its footprint is
// written to g as frozen blocks and Advance returns true. Otherwise the
// anchor drops one row.
func (p *Piece) Advance(g *Grid) bool {
	if !p.Falling() {
		return false
	}
	if p.Resting(g) {
		p.freeze(g)
		return true
	}
	p.Anchor = p.Anchor.Below()
	return false
}

// freeze settles the piece. Cells above the top row cannot be stored and are
// reported by Overflow.
func (p *Piece) freeze(g *Grid) {
	for _, c := range p.Footprint() {
		if g.InBounds(c) {
			g.SetBlock(c.Col, c.Row, Block{State: CellFrozen, Shape: p.Shape})
		}
	}
	p.Phase = PhaseFrozen
}

// Overflow reports whether any footprint cell lies above the top row.
func (p *Piece) Overflow(g *Grid) bool {
	for _, c := range p.Footprint() {
		if c.Row >= g.Rows {
			return true
		}
	}
	return false
}

// Project marks the in-grid footprint cells transient. Callers clear stale
// transient cells first.
func (p *Piece) Project(g *Grid) {
	if !p.Falling() {
		return
	}
	for _, c := range p.Footprint() {
		if g.InBounds(c) {
			g.SetBlock(c.Col, c.Row, Block{State: CellTransient, Shape: p.Shape})
		}
	}
}

func contains(cells [4]Cell, c Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}
