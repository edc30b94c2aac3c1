package connectfour

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick   uint64
	Score  int
	Level  int
	Turn   Turn
	Cursor int
	Discs  int // Discs on the board
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	n := 0
	for r := range g.board.Rows {
		for c := range g.board.Cols {
			if g.board.At(r, c) != Empty {
				n++
			}
		}
	}
	return Snapshot{
		Tick:   g.tick,
		Score:  g.score,
		Level:  g.level,
		Turn:   g.turn,
		Cursor: g.cursor,
		Discs:  n,
	}
}
