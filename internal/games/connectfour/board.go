package connectfour

// Disc is the content of a board cell.
type Disc uint8

const (
	Empty  Disc = iota
	Red         // Player
	Yellow      // CPU
)

// Other returns the opposing colour.
func (d Disc) Other() Disc {
	switch d {
	case Red:
		return Yellow
	case Yellow:
		return Red
	}
	return Empty
}

func (d Disc) String() string {
	switch d {
	case Red:
		return "Red"
	case Yellow:
		return "Yellow"
	}
	return "Empty"
}

// winLength is the run needed to win.
const winLength = 4

// axes are the four line directions checked for a win.
var axes = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// Board is a rows×cols grid. Row 0 is the top.
type Board struct {
	Rows, Cols int
	cells      [][]Disc
}

// NewBoard allocates an empty board.
func NewBoard(rows, cols int) *Board {
	b := &Board{Rows: rows, Cols: cols, cells: make([][]Disc, rows)}
	for r := range b.cells {
		b.cells[r] = make([]Disc, cols)
	}
	return b
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	c := NewBoard(b.Rows, b.Cols)
	for r := range b.cells {
		copy(c.cells[r], b.cells[r])
	}
	return c
}

// At returns the disc at (row, col), Empty when off the board.
func (b *Board) At(row, col int) Disc {
	if row < 0 || row >= b.Rows || col < 0 || col >= b.Cols {
		return Empty
	}
	return b.cells[row][col]
}

// Set writes a disc.
func (b *Board) Set(row, col int, d Disc) {
	b.cells[row][col] = d
}

// Legal reports whether a disc can still be dropped into col.
func (b *Board) Legal(col int) bool {
	return col >= 0 && col < b.Cols && b.cells[0][col] == Empty
}

// LegalColumns lists playable columns left to right.
func (b *Board) LegalColumns() []int {
	var out []int
	for c := range b.Cols {
		if b.Legal(c) {
			out = append(out, c)
		}
	}
	return out
}

// LandingRow returns the row a disc dropped into col comes to rest on,
// or -1 when the column is full.
func (b *Board) LandingRow(col int) int {
	if !b.Legal(col) {
		return -1
	}
	row := 0
	for row+1 < b.Rows && b.cells[row+1][col] == Empty {
		row++
	}
	return row
}

// Drop places d in col and returns the landing row, or -1 when full.
func (b *Board) Drop(col int, d Disc) int {
	row := b.LandingRow(col)
	if row >= 0 {
		b.cells[row][col] = d
	}
	return row
}

// Full reports whether no column accepts another disc.
func (b *Board) Full() bool {
	for c := range b.Cols {
		if b.Legal(c) {
			return false
		}
	}
	return true
}

// runThrough counts the line of d through (row, col) along one axis.
func (b *Board) runThrough(row, col, dr, dc int, d Disc) int {
	n := 1
	for r, c := row+dr, col+dc; b.At(r, c) == d; r, c = r+dr, c+dc {
		n++
	}
	for r, c := row-dr, col-dc; b.At(r, c) == d; r, c = r-dr, c-dc {
		n++
	}
	return n
}

// WinsAt reports whether the disc at (row, col) completes a line.
func (b *Board) WinsAt(row, col int) bool {
	d := b.At(row, col)
	if d == Empty {
		return false
	}
	for _, ax := range axes {
		if b.runThrough(row, col, ax[0], ax[1], d) >= winLength {
			return true
		}
	}
	return false
}

// CheckWin reports whether d has four in a row anywhere on the board.
func (b *Board) CheckWin(d Disc) bool {
	for r := range b.Rows {
		for c := range b.Cols {
			if b.cells[r][c] != d {
				continue
			}
			for _, ax := range axes {
				n := 0
				for i := range winLength {
					if b.At(r+ax[0]*i, c+ax[1]*i) != d {
						break
					}
					n++
				}
				if n == winLength {
					return true
				}
			}
		}
	}
	return false
}

// winningMoves returns the columns where dropping d wins immediately.
func (b *Board) winningMoves(d Disc) []int {
	var out []int
	for _, c := range b.LegalColumns() {
		row := b.LandingRow(c)
		b.cells[row][c] = d
		if b.WinsAt(row, c) {
			out = append(out, c)
		}
		b.cells[row][c] = Empty
	}
	return out
}
