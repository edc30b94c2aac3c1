package pang

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Score    int
	Lives    int
	Level    int
	PlayerX  float64
	Bubbles  int
	Bullets  int
	GameOver bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Lives:    g.lives,
		Level:    g.level,
		PlayerX:  g.playerX,
		Bubbles:  len(g.bubbles),
		Bullets:  len(g.bullets),
		GameOver: g.gameOver,
	}
}
