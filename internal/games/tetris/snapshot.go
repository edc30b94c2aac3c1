package tetris

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Score    int
	Lines    int
	Level    int
	Piece    Piece
	Next     Kind
	Filled   int // Number of locked cells
	GameOver bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	filled := 0
	for y := range g.board.Rows {
		for x := range g.board.Cols {
			if g.board.At(x, y) != 0 {
				filled++
			}
		}
	}
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Lines:    g.lines,
		Level:    g.level,
		Piece:    g.piece,
		Next:     g.next,
		Filled:   filled,
		GameOver: g.gameOver,
	}
}
