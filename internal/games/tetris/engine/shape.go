// Package engine implements the falling-block rules: shape geometry, the grid,
// the active piece and the frame driver.
// This package is UI-agnostic and deterministic for a given seed.
package engine

import "fmt"

// Cell is a grid coordinate. Col grows to the right, Row grows upward
// (row 0 is the bottom of the well).
type Cell struct {
	Col int
	Row int
}

// C is a convenience constructor for Cell.
func C(col, row int) Cell {
	return Cell{Col: col, Row: row}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Add returns the cell offset by (dc, dr).
func (c Cell) Add(dc, dr int) Cell {
	return Cell{Col: c.Col + dc, Row: c.Row + dr}
}

// Below returns the cell directly underneath.
func (c Cell) Below() Cell {
	return c.Add(0, -1)
}

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	ShapeI Shape = iota
	ShapeJ
	ShapeL
	ShapeO
	ShapeS
	ShapeT
	ShapeZ
)

// ShapeCount is the number of shape variants.
const ShapeCount = 7

// Shapes lists all variants in declaration order.
var Shapes = [ShapeCount]Shape{ShapeI, ShapeJ, ShapeL, ShapeO, ShapeS, ShapeT, ShapeZ}

// String returns the single-letter name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	case ShapeO:
		return "O"
	case ShapeS:
		return "S"
	case ShapeT:
		return "T"
	case ShapeZ:
		return "Z"
	default:
		return "?"
	}
}

// Valid reports whether s is one of the seven variants.
func (s Shape) Valid() bool {
	return s < ShapeCount
}

// ParseShape converts a single-letter name into a Shape.
func ParseShape(name string) (Shape, bool) {
	for _, s := range Shapes {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// Rotation is the orientation of a piece.
type Rotation uint8

const (
	RotUp Rotation = iota
	RotRight
	RotDown
	RotLeft
)

// rotationCount is the order of the rotation group.
const rotationCount = 4

// String returns the name of the rotation.
func (r Rotation) String() string {
	switch r {
	case RotUp:
		return "Up"
	case RotRight:
		return "Right"
	case RotDown:
		return "Down"
	case RotLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Valid reports whether r is normalized to Up..Left.
func (r Rotation) Valid() bool {
	return r < rotationCount
}

// CW returns the next rotation clockwise, wrapping Left -> Up.
func (r Rotation) CW() Rotation {
	return (r + 1) % rotationCount
}

// CCW returns the previous rotation, wrapping Up -> Left.
func (r Rotation) CCW() Rotation {
	return (r + rotationCount - 1) % rotationCount
}

// offset is a footprint cell relative to the anchor.
type offset struct {
	dc, dr int
}

// footprints holds the 4 offsets of every shape in every rotation.
// Each rotation of a non-O shape is the clockwise turn (dc,dr) -> (dr,-dc)
// of the previous one. O never changes.
var footprints = [ShapeCount][rotationCount][4]offset{
	ShapeI: {
		RotUp:    {{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
		RotRight: {{0, 1}, {0, 0}, {0, -1}, {0, -2}},
		RotDown:  {{1, 0}, {0, 0}, {-1, 0}, {-2, 0}},
		RotLeft:  {{0, -1}, {0, 0}, {0, 1}, {0, 2}},
	},
	ShapeJ: {
		RotUp:    {{-1, 1}, {-1, 0}, {0, 0}, {1, 0}},
		RotRight: {{1, 1}, {0, 1}, {0, 0}, {0, -1}},
		RotDown:  {{1, -1}, {1, 0}, {0, 0}, {-1, 0}},
		RotLeft:  {{-1, -1}, {0, -1}, {0, 0}, {0, 1}},
	},
	ShapeL: {
		RotUp:    {{1, 1}, {-1, 0}, {0, 0}, {1, 0}},
		RotRight: {{1, -1}, {0, 1}, {0, 0}, {0, -1}},
		RotDown:  {{-1, -1}, {1, 0}, {0, 0}, {-1, 0}},
		RotLeft:  {{-1, 1}, {0, -1}, {0, 0}, {0, 1}},
	},
	ShapeO: {
		RotUp:    {{0, 0}, {1, 0}, {0, -1}, {1, -1}},
		RotRight: {{0, 0}, {1, 0}, {0, -1}, {1, -1}},
		RotDown:  {{0, 0}, {1, 0}, {0, -1}, {1, -1}},
		RotLeft:  {{0, 0}, {1, 0}, {0, -1}, {1, -1}},
	},
	ShapeS: {
		RotUp:    {{0, 1}, {1, 1}, {-1, 0}, {0, 0}},
		RotRight: {{1, 0}, {1, -1}, {0, 1}, {0, 0}},
		RotDown:  {{0, -1}, {-1, -1}, {1, 0}, {0, 0}},
		RotLeft:  {{-1, 0}, {-1, 1}, {0, -1}, {0, 0}},
	},
	ShapeT: {
		RotUp:    {{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
		RotRight: {{0, 1}, {0, 0}, {0, -1}, {1, 0}},
		RotDown:  {{1, 0}, {0, 0}, {-1, 0}, {0, -1}},
		RotLeft:  {{0, -1}, {0, 0}, {0, 1}, {-1, 0}},
	},
	ShapeZ: {
		RotUp:    {{-1, 1}, {0, 1}, {0, 0}, {1, 0}},
		RotRight: {{1, 1}, {1, 0}, {0, 0}, {0, -1}},
		RotDown:  {{1, -1}, {0, -1}, {0, 0}, {-1, 0}},
		RotLeft:  {{-1, -1}, {-1, 0}, {0, 0}, {0, 1}},
	},
}

// Footprint returns the 4 cells covered by shape in rotation rot at anchor.
// Panics on an invalid shape or rotation.
func Footprint(shape Shape, rot Rotation, anchor Cell) [4]Cell {
	if !shape.Valid() || !rot.Valid() {
		panic(fmt.Sprintf("engine: invalid shape/rotation %d/%d", shape, rot))
	}
	var cells [4]Cell
	for i, o := range footprints[shape][rot] {
		cells[i] = anchor.Add(o.dc, o.dr)
	}
	return cells
}

// Occupies reports whether candidate is part of the footprint of shape in
// rotation rot anchored at anchor.
func Occupies(shape Shape, rot Rotation, anchor, candidate Cell) bool {
	for _, c := range Footprint(shape, rot, anchor) {
		if c == candidate {
			return true
		}
	}
	return false
}
