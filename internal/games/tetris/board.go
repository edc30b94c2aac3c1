package tetris

import "github.com/vovakirdan/arcade-portal/internal/core"

// Board is the locked-cell grid. A cell holds 0 when empty, otherwise
// the locking piece's Kind + 1.
type Board struct {
	Cols, Rows int
	cells      [][]int
}

// NewBoard allocates an empty board.
func NewBoard(cols, rows int) *Board {
	b := &Board{Cols: cols, Rows: rows, cells: make([][]int, rows)}
	for y := range b.cells {
		b.cells[y] = make([]int, cols)
	}
	return b
}

// InBounds reports whether p is a board cell.
func (b *Board) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < b.Cols && p.Y >= 0 && p.Y < b.Rows
}

// Filled reports whether the cell at p is occupied.
func (b *Board) Filled(p core.Point) bool {
	return b.cells[p.Y][p.X] != 0
}

// At returns the raw cell value.
func (b *Board) At(x, y int) int {
	return b.cells[y][x]
}

// SetCell writes a raw cell value.
func (b *Board) SetCell(x, y, v int) {
	b.cells[y][x] = v
}

// Fits reports whether every cell of p is inside the board and empty.
func (b *Board) Fits(p Piece) bool {
	for _, c := range p.Cells() {
		if !b.InBounds(c) || b.Filled(c) {
			return false
		}
	}
	return true
}

// Lock writes the piece into the grid.
func (b *Board) Lock(p Piece) {
	for _, c := range p.Cells() {
		b.cells[c.Y][c.X] = int(p.Kind) + 1
	}
}

// rowFull reports whether every cell in row y is occupied.
func (b *Board) rowFull(y int) bool {
	for _, v := range b.cells[y] {
		if v == 0 {
			return false
		}
	}
	return true
}

// ClearLines removes full rows, shifts the rows above down and returns
// the number removed.
func (b *Board) ClearLines() int {
	kept := make([][]int, 0, b.Rows)
	for y := range b.cells {
		if !b.rowFull(y) {
			kept = append(kept, b.cells[y])
		}
	}
	cleared := b.Rows - len(kept)
	if cleared == 0 {
		return 0
	}

	fresh := make([][]int, cleared, b.Rows)
	for i := range fresh {
		fresh[i] = make([]int, b.Cols)
	}
	b.cells = append(fresh, kept...)
	return cleared
}
