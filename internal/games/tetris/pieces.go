package tetris

import "github.com/vovakirdan/arcade-portal/internal/core"

// Kind identifies a tetromino.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
	kindCount
)

func (k Kind) String() string {
	return [...]string{"I", "O", "T", "S", "Z", "J", "L"}[k]
}

// shape is the spawn orientation of a tetromino inside its bounding box.
type shape struct {
	size  int
	cells []core.Point
	color core.Color
}

var shapes = [kindCount]shape{
	KindI: {size: 4, cells: []core.Point{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}}, color: core.ColorBrightCyan},
	KindO: {size: 2, cells: []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, color: core.ColorBrightYellow},
	KindT: {size: 3, cells: []core.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}, color: core.ColorMagenta},
	KindS: {size: 3, cells: []core.Point{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, color: core.ColorBrightGreen},
	KindZ: {size: 3, cells: []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}}, color: core.ColorBrightRed},
	KindJ: {size: 3, cells: []core.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}, color: core.ColorBlue},
	KindL: {size: 3, cells: []core.Point{{X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}, color: core.ColorOrange},
}

// rotations[kind][r] holds the cells after r clockwise quarter turns.
var rotations [kindCount][4][]core.Point

func init() {
	for k, s := range shapes {
		cells := s.cells
		for r := range 4 {
			rotations[k][r] = cells
			next := make([]core.Point, len(cells))
			for i, c := range cells {
				next[i] = core.Point{X: s.size - 1 - c.Y, Y: c.X}
			}
			cells = next
		}
	}
}

// kickOffsets are the horizontal shifts tried, in order, when a rotation collides.
var kickOffsets = [...]int{0, -1, 1, -2, 2}

// Piece is the falling tetromino. X, Y is the top-left of its bounding box.
type Piece struct {
	Kind Kind
	Rot  int
	X, Y int
}

// Cells returns the board cells occupied by the piece.
func (p Piece) Cells() []core.Point {
	base := rotations[p.Kind][p.Rot&3]
	out := make([]core.Point, len(base))
	for i, c := range base {
		out[i] = core.Point{X: p.X + c.X, Y: p.Y + c.Y}
	}
	return out
}

// Moved returns the piece shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns the piece turned clockwise.
func (p Piece) Rotated() Piece {
	p.Rot = (p.Rot + 1) & 3
	return p
}
