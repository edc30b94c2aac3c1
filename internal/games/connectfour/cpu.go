package connectfour

import "math/rand"

// cpuView is the input to the move cascade.
type cpuView struct {
	board       *Board
	me          Disc
	level       int
	forkLevel   int
	preferLevel int
	rng         *rand.Rand
}

// move is one rule of the cascade. It returns a legal column when it applies.
type move func(v cpuView) (int, bool)

// cascade is the CPU's ordered rule list. The first rule that yields a
// legal column decides the move.
var cascade = []move{
	takeWin,
	blockWin,
	makeFork,
	blockFork,
	preferColumn,
	randomColumn,
}

// ChooseColumn runs the cascade for the CPU.
func ChooseColumn(v cpuView) int {
	for _, m := range cascade {
		if col, ok := m(v); ok && v.board.Legal(col) {
			return col
		}
	}
	return -1
}

// takeWin completes a line of our own.
func takeWin(v cpuView) (int, bool) {
	if cols := v.board.winningMoves(v.me); len(cols) > 0 {
		return cols[0], true
	}
	return 0, false
}

// blockWin fills the cell the opponent would win on.
func blockWin(v cpuView) (int, bool) {
	if cols := v.board.winningMoves(v.me.Other()); len(cols) > 0 {
		return cols[0], true
	}
	return 0, false
}

// forkColumn finds a drop for d that leaves d with two or more winning replies.
func forkColumn(b *Board, d Disc) (int, bool) {
	for _, c := range b.LegalColumns() {
		next := b.Clone()
		next.Drop(c, d)
		if len(next.winningMoves(d)) >= 2 {
			return c, true
		}
	}
	return 0, false
}

// makeFork creates two simultaneous threats.
func makeFork(v cpuView) (int, bool) {
	if v.level < v.forkLevel {
		return 0, false
	}
	return forkColumn(v.board, v.me)
}

// blockFork occupies the column the opponent would fork from.
func blockFork(v cpuView) (int, bool) {
	if v.level < v.forkLevel {
		return 0, false
	}
	return forkColumn(v.board, v.me.Other())
}

// centreFirst orders columns from the middle outwards.
func centreFirst(cols int) []int {
	mid := cols / 2
	out := []int{mid}
	for d := 1; len(out) < cols; d++ {
		if mid-d >= 0 {
			out = append(out, mid-d)
		}
		if mid+d < cols {
			out = append(out, mid+d)
		}
	}
	return out
}

// givesAway reports whether dropping in col lets the opponent win on top.
func givesAway(b *Board, col int, me Disc) bool {
	next := b.Clone()
	row := next.Drop(col, me)
	if row <= 0 {
		return false
	}
	next.Set(row-1, col, me.Other())
	return next.WinsAt(row-1, col)
}

// preferColumn plays the most central legal column. From the level after
// it unlocks, columns that hand the opponent a win are skipped when
// anything else is available.
func preferColumn(v cpuView) (int, bool) {
	if v.level < v.preferLevel {
		return 0, false
	}
	order := centreFirst(v.board.Cols)
	if v.level > v.preferLevel {
		for _, c := range order {
			if v.board.Legal(c) && !givesAway(v.board, c, v.me) {
				return c, true
			}
		}
	}
	for _, c := range order {
		if v.board.Legal(c) {
			return c, true
		}
	}
	return 0, false
}

// randomColumn picks any legal column uniformly.
func randomColumn(v cpuView) (int, bool) {
	cols := v.board.LegalColumns()
	if len(cols) == 0 {
		return 0, false
	}
	return cols[v.rng.Intn(len(cols))], true
}
